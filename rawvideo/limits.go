package rawvideo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxDimension bounds either side of a raw frame (16K video).
	MaxDimension = 16384

	// MaxFrameBytes is the largest frame a stream may carry (8K RGBA).
	MaxFrameBytes = 7680 * 4320 * BytesPerPixel

	// BytesPerPixel is the size of one packed RGBA pixel.
	BytesPerPixel = 4
)

var (
	// ErrInvalidSize indicates a malformed or non-positive frame size.
	ErrInvalidSize = errors.New("invalid frame size")

	// ErrFrameTooLarge indicates a frame exceeding MaxFrameBytes.
	ErrFrameTooLarge = errors.New("frame too large")

	// ErrShortFrame indicates a stream that ended inside a frame.
	ErrShortFrame = errors.New("stream ended mid-frame")
)

// ValidateSize checks frame dimensions against the stream limits and
// returns the frame's byte length.
func ValidateSize(width, height int) (int, error) {
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return 0, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	size := width * height * BytesPerPixel
	if size > MaxFrameBytes {
		return 0, fmt.Errorf("%w: %dx%d needs %d bytes, limit %d", ErrFrameTooLarge, width, height, size, MaxFrameBytes)
	}
	return size, nil
}

// ParseSize parses a "WIDTHxHEIGHT" string such as "720x576".
func ParseSize(s string) (width, height int, err error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q, want WIDTHxHEIGHT", ErrInvalidSize, s)
	}
	if width, err = strconv.Atoi(w); err != nil {
		return 0, 0, fmt.Errorf("%w: width %q", ErrInvalidSize, w)
	}
	if height, err = strconv.Atoi(h); err != nil {
		return 0, 0, fmt.Errorf("%w: height %q", ErrInvalidSize, h)
	}
	if _, err := ValidateSize(width, height); err != nil {
		return 0, 0, err
	}
	return width, height, nil
}
