// Package video provides packed RGBA frames and composable effects
// around the secam filter.
package video

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// BytesPerPixel is the size of one packed RGBA pixel.
const BytesPerPixel = 4

// Frame is a packed, row-major, non-premultiplied RGBA frame with no row
// padding.
type Frame struct {
	Width  int
	Height int
	Pix    []byte
}

// NewFrame allocates a zeroed frame.
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*BytesPerPixel),
	}
}

// Validate checks that Pix holds exactly Width*Height pixels.
func (f *Frame) Validate() error {
	if f == nil {
		return ErrNilFrame
	}
	if f.Width < 0 || f.Height < 0 {
		return fmt.Errorf("%w: invalid dimensions %dx%d", ErrFrameMismatch, f.Width, f.Height)
	}
	if want := f.Width * f.Height * BytesPerPixel; len(f.Pix) != want {
		return fmt.Errorf("%w: %dx%d needs %d bytes, got %d", ErrFrameMismatch, f.Width, f.Height, want, len(f.Pix))
	}
	return nil
}

// SameSize reports whether two frames have equal dimensions.
func (f *Frame) SameSize(o *Frame) bool {
	return f.Width == o.Width && f.Height == o.Height
}

// CopyFrom copies o's pixels into f. Both frames must have the same size.
func (f *Frame) CopyFrom(o *Frame) error {
	if f == nil || o == nil {
		return ErrNilFrame
	}
	if !f.SameSize(o) {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrFrameMismatch, f.Width, f.Height, o.Width, o.Height)
	}
	copy(f.Pix, o.Pix)
	return nil
}

// FromImage converts any image into a new frame.
func FromImage(img image.Image) *Frame {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && n.Stride == b.Dx()*BytesPerPixel && len(n.Pix) == b.Dx()*b.Dy()*BytesPerPixel {
		return &Frame{Width: b.Dx(), Height: b.Dy(), Pix: append([]byte(nil), n.Pix...)}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &Frame{Width: b.Dx(), Height: b.Dy(), Pix: dst.Pix}
}

// Image returns an NRGBA view sharing the frame's pixels.
func (f *Frame) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    f.Pix,
		Stride: f.Width * BytesPerPixel,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}
}
