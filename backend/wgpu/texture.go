// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	"github.com/gogpu/dither/render"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// uploadFormat is the device format of CPU images.
const uploadFormat = gputypes.TextureFormatRGBA32Float

// rowAlignment is the required BytesPerRow alignment of texture copies.
const rowAlignment = 256

// Texture is a host-owned device texture usable as a render.Texture.
//
// The executor never destroys a Texture; its owner does.
type Texture struct {
	tex    hal.Texture
	view   hal.TextureView
	width  int
	height int
	format gputypes.TextureFormat
}

// WrapTexture wraps a device texture and a view on it. The view must cover
// mip level 0 and be usable as a render attachment or binding, depending on
// where the texture is used.
func WrapTexture(tex hal.Texture, view hal.TextureView, width, height int, format gputypes.TextureFormat) *Texture {
	return &Texture{tex: tex, view: view, width: width, height: height, format: format}
}

func (t *Texture) Width() int                     { return t.width }
func (t *Texture) Height() int                    { return t.height }
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// HalTexture returns the wrapped device texture.
func (t *Texture) HalTexture() hal.Texture { return t.tex }

// surface is a device texture the executor uses within a sequence.
type surface struct {
	tex    hal.Texture
	view   hal.TextureView
	width  uint32
	height uint32
	format gputypes.TextureFormat
	filter render.FilterMode
	owned  bool
	// image is the CPU image mirrored by this surface, if any.
	image *render.Image
	// written reports that a blit rendered into the surface.
	written bool
}

func (s *surface) extent() hal.Extent3D {
	return hal.Extent3D{Width: s.width, Height: s.height, DepthOrArrayLayers: 1}
}

func (s *surface) destroy(device hal.Device) {
	if !s.owned {
		return
	}
	if s.view != nil {
		device.DestroyTextureView(s.view)
	}
	if s.tex != nil {
		device.DestroyTexture(s.tex)
	}
}

// createSurface allocates a 2D texture usable as attachment, binding and
// copy source and destination.
func createSurface(device hal.Device, label string, width, height int, format gputypes.TextureFormat) (*surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("wgpu: %s: invalid size %dx%d", label, width, height)
	}
	s := &surface{
		width:  uint32(width),  //nolint:gosec // validated positive
		height: uint32(height), //nolint:gosec // validated positive
		format: format,
		owned:  true,
	}
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          s.extent(),
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage: gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding |
			gputypes.TextureUsageCopySrc | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture %s: %w", label, err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("create texture view %s: %w", label, err)
	}
	s.tex, s.view = tex, view
	return s, nil
}

// uploadImage creates a surface holding img.
func uploadImage(device hal.Device, queue hal.Queue, img *render.Image) (*surface, error) {
	s, err := createSurface(device, "dither_upload", img.Width(), img.Height(), uploadFormat)
	if err != nil {
		return nil, err
	}
	s.image = img

	size := s.extent()
	err = queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: s.tex, MipLevel: 0, Aspect: gputypes.TextureAspectAll},
		encodeFloats(img.Pix()),
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: s.width * 16, RowsPerImage: s.height},
		&size,
	)
	if err != nil {
		s.destroy(device)
		return nil, fmt.Errorf("upload image: %w", err)
	}
	return s, nil
}

// readback describes a pending copy of a surface back into its image.
type readback struct {
	surface     *surface
	buffer      hal.Buffer
	bytesPerRow uint32
}

// paddedRow returns the aligned bytes per row of a surface copy.
func paddedRow(width uint32) uint32 {
	row := width * 16
	return (row + rowAlignment - 1) / rowAlignment * rowAlignment
}

// encodeReadback records a copy of s into a new staging buffer.
func encodeReadback(device hal.Device, enc hal.CommandEncoder, s *surface) (*readback, error) {
	row := paddedRow(s.width)
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "dither_readback",
		Size:  uint64(row) * uint64(s.height),
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create readback buffer: %w", err)
	}

	enc.TransitionTextures([]hal.TextureBarrier{{
		Texture: s.tex,
		Range:   hal.TextureRange{Aspect: gputypes.TextureAspectAll},
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	enc.CopyTextureToBuffer(s.tex, buf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: row, RowsPerImage: s.height},
		TextureBase:  hal.ImageCopyTexture{Texture: s.tex, MipLevel: 0, Aspect: gputypes.TextureAspectAll},
		Size:         s.extent(),
	}})
	return &readback{surface: s, buffer: buf, bytesPerRow: row}, nil
}

// finish maps the staging buffer and writes the pixels into the image.
func (r *readback) finish(device hal.Device) error {
	defer device.DestroyBuffer(r.buffer)

	s := r.surface
	size := uint64(r.bytesPerRow) * uint64(s.height)
	mapping, err := device.MapBuffer(r.buffer, 0, size)
	if err != nil {
		return fmt.Errorf("map readback buffer: %w", err)
	}
	data := unsafe.Slice((*byte)(mapping.Ptr), size) //nolint:gosec // mapping covers size bytes

	img := s.image
	w := int(s.width)
	for y := 0; y < int(s.height); y++ {
		row := data[y*int(r.bytesPerRow):]
		for x := 0; x < w; x++ {
			px := row[x*16:]
			img.Set(x, y, render.Color{
				R: math.Float32frombits(binary.LittleEndian.Uint32(px[0:])),
				G: math.Float32frombits(binary.LittleEndian.Uint32(px[4:])),
				B: math.Float32frombits(binary.LittleEndian.Uint32(px[8:])),
				A: math.Float32frombits(binary.LittleEndian.Uint32(px[12:])),
			})
		}
	}
	return device.UnmapBuffer(r.buffer)
}

// encodeFloats serializes float32 values as little-endian bytes.
func encodeFloats(v []float32) []byte {
	out := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(f))
	}
	return out
}
