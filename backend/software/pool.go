// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"sync"

	"github.com/gogpu/dither/render"
	"github.com/gogpu/gputypes"
)

// Pool is a thread-safe pool for reusing temporary images.
//
// Pool groups images by size and format, so the per-frame temporaries of
// a steady camera are allocated once and then recycled.
type Pool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*render.Image
	maxSize int // max images per bucket
}

type poolKey struct {
	width  int
	height int
	format gputypes.TextureFormat
}

// NewPool creates a pool retaining at most maxPerBucket images of each
// size and format. A maxPerBucket of 0 means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[poolKey][]*render.Image),
		maxSize: maxPerBucket,
	}
}

// Get returns a cleared image of the given size and format.
func (p *Pool) Get(width, height int, format gputypes.TextureFormat) *render.Image {
	key := poolKey{width: width, height: height, format: format}

	p.mu.Lock()
	bucket := p.buckets[key]
	if n := len(bucket); n > 0 {
		img := bucket[n-1]
		p.buckets[key] = bucket[:n-1]
		p.mu.Unlock()

		img.Clear()
		return img
	}
	p.mu.Unlock()

	return render.NewImage(width, height, format)
}

// Put returns img to the pool. If img is nil or the bucket is full, img is
// discarded.
func (p *Pool) Put(img *render.Image) {
	if img == nil {
		return
	}
	key := poolKey{width: img.Width(), height: img.Height(), format: img.Format()}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, img)
}

// Len returns the number of pooled images.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, b := range p.buckets {
		n += len(b)
	}
	return n
}
