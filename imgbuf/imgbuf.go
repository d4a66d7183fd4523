// Package imgbuf provides the pixel buffer owned by a camera instance.
//
// A Buffer holds one contiguous frame of width*height*bytesPerPixel bytes.
// The camera keeps two of them, the live image and the dark background, and
// resizes both in lockstep whenever binning or pixel format changes.
package imgbuf

import "fmt"

// Buffer is a resizable frame buffer. The pixel slice length is always
// exactly Width*Height*BytesPerPixel; Resize reallocates, it never keeps
// stale pixel data around.
//
// Buffer is not safe for concurrent use; the camera guards it with its
// pixel lock.
type Buffer struct {
	width         int
	height        int
	bytesPerPixel int
	pixels        []byte
}

// New creates a buffer of the given geometry with zeroed pixels.
func New(width, height, bytesPerPixel int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height, bytesPerPixel)
	return b
}

// Resize sets the buffer geometry and reallocates the pixel storage.
func (b *Buffer) Resize(width, height, bytesPerPixel int) {
	b.width = width
	b.height = height
	b.bytesPerPixel = bytesPerPixel
	b.pixels = make([]byte, width*height*bytesPerPixel)
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.height }

// BytesPerPixel returns the per-pixel byte depth.
func (b *Buffer) BytesPerPixel() int { return b.bytesPerPixel }

// Size returns the pixel storage size in bytes.
func (b *Buffer) Size() int { return len(b.pixels) }

// Pixels returns the backing pixel slice. Callers must hold whatever lock
// protects the buffer while touching it.
func (b *Buffer) Pixels() []byte { return b.pixels }

// SetPixels copies data verbatim into the buffer. The data length must
// match the buffer size exactly.
func (b *Buffer) SetPixels(data []byte) error {
	if len(data) != len(b.pixels) {
		return fmt.Errorf("pixel data size %d does not match buffer size %d", len(data), len(b.pixels))
	}
	copy(b.pixels, data)
	return nil
}

// Subtract performs elementwise dark-frame subtraction: every byte of bkg
// is subtracted from the corresponding byte of b. The arithmetic wraps
// modulo 256; raw sensor dark-frame subtraction relies on wrapping, so the
// result is deliberately not clamped at zero. Both buffers must have the
// same size.
func (b *Buffer) Subtract(bkg *Buffer) error {
	if len(bkg.pixels) != len(b.pixels) {
		return fmt.Errorf("background size %d does not match image size %d", len(bkg.pixels), len(b.pixels))
	}
	for i := range b.pixels {
		b.pixels[i] -= bkg.pixels[i]
	}
	return nil
}
