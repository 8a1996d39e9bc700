// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command ditherdemo runs the dithering pass over an image.
//
// It loads a settings file, runs a number of frames through an executor and
// writes the last frame as PNG:
//
//	ditherdemo -config dither.toml -input photo.png -frames 4 -output out.png
//
// Without -input a gradient test image is generated. PNG, JPEG, GIF, BMP
// and TIFF inputs are accepted.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/dither"
	"github.com/gogpu/dither/backend"
	_ "github.com/gogpu/dither/backend/software"
	_ "github.com/gogpu/dither/backend/wgpu"
	"github.com/gogpu/dither/config"
	"github.com/gogpu/dither/palette"
	"github.com/gogpu/dither/recording"
	"github.com/gogpu/dither/render"
	"github.com/gogpu/gputypes"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML settings file (default: gameboy palette, bayer4)")
		input      = flag.String("input", "", "input image (default: generated gradient)")
		output     = flag.String("output", "dither.png", "output PNG file")
		frames     = flag.Int("frames", 1, "number of frames to run")
		executor   = flag.String("backend", "", "executor name: wgpu or software (default: best available)")
		width      = flag.Int("width", 320, "generated image width")
		height     = flag.Int("height", 180, "generated image height")
		verbose    = flag.Bool("v", false, "log pass and executor activity")
	)
	flag.Parse()

	if *verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		dither.SetLogger(logger)
	}

	settings, err := loadSettings(*configPath)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	src, err := loadImage(*input, *width, *height)
	if err != nil {
		log.Fatalf("Failed to load image: %v", err)
	}

	exec, name, err := openExecutor(*executor)
	if err != nil {
		log.Fatalf("Failed to create executor: %v", err)
	}
	defer backend.Release(exec)

	pass, err := dither.NewPass("Dithering", exec, settings)
	if err != nil {
		log.Fatalf("Failed to create pass: %v", err)
	}

	out, err := run(pass, exec, settings, src, *frames)
	if err != nil {
		log.Fatalf("Frame failed: %v", err)
	}

	if err := savePNG(*output, out); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Dithered image saved to %s (%dx%d, %d frames, %s executor)\n",
		*output, out.Width(), out.Height(), *frames, name)
}

func loadSettings(path string) (dither.Settings, error) {
	if path == "" {
		s := dither.DefaultSettings()
		pal, err := palette.Preset("gameboy")
		if err != nil {
			return s, err
		}
		pat, err := palette.Bayer(4)
		if err != nil {
			return s, err
		}
		s.Dithering.Palette = pal
		s.Dithering.Pattern = pat
		return s, nil
	}
	f, err := config.Load(path)
	if err != nil {
		return dither.Settings{}, err
	}
	return f.Settings()
}

func loadImage(path string, w, h int) (*render.Image, error) {
	if path == "" {
		return gradient(w, h), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	log.Printf("Loaded %s image %s (%dx%d)\n", format, path, img.Bounds().Dx(), img.Bounds().Dy())
	return render.ImageFromGo(img, gputypes.TextureFormatRGBA8Unorm), nil
}

// gradient returns a horizontal luminance ramp tinted vertically.
func gradient(w, h int) *render.Image {
	img := render.NewImage(w, h, gputypes.TextureFormatRGBA8Unorm)
	for y := 0; y < h; y++ {
		t := float32(y) / float32(max(h-1, 1))
		for x := 0; x < w; x++ {
			v := float32(x) / float32(max(w-1, 1))
			img.Set(x, y, render.Color{R: v, G: v*(1-t) + t*0.5, B: v * (1 - t*0.5), A: 1})
		}
	}
	return img
}

func openExecutor(name string) (recording.Executor, string, error) {
	if name == "" {
		return backend.Default()
	}
	exec, err := backend.Get(name)
	return exec, name, err
}

// run executes frames over src. The current color buffer and named sources
// read src; a named destination is written into a separate image.
func run(pass *dither.Pass, exec recording.Executor, s dither.Settings, src *render.Image, frames int) (*render.Image, error) {
	textures := render.NewNamedTextures()
	color := src.Clone()
	out := color
	if s.Source.Kind() == dither.BufferNamed {
		textures.Set(s.Source.Name(), src)
	}
	if s.Destination.Kind() == dither.BufferNamed {
		out = render.NewImage(src.Width(), src.Height(), src.Format())
		textures.Set(s.Destination.Name(), out)
	}

	ctx := context.Background()
	for i := 0; i < max(frames, 1); i++ {
		if err := color.CopyFrom(src); err != nil {
			return nil, err
		}
		frame := &dither.FrameContext{
			Width:    src.Width(),
			Height:   src.Height(),
			Format:   src.Format(),
			Color:    color,
			Textures: textures,
		}
		seq, err := pass.Execute(frame)
		if err != nil {
			return nil, err
		}
		if err := seq.Playback(ctx, exec); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func savePNG(path string, img *render.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img.ToNRGBA()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
