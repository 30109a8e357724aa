package secam

import "errors"

// Sentinel errors for secam package operations.
// These errors enable reliable error classification using errors.Is().

// Construction errors.
var (
	// ErrInvalidDimensions indicates a negative frame width or height.
	ErrInvalidDimensions = errors.New("invalid frame dimensions")
)

// Frame errors.
var (
	// ErrBufferSize indicates a pixel buffer shorter than width*height RGBA pixels.
	ErrBufferSize = errors.New("pixel buffer too small")
)

// Parameter errors.
var (
	// ErrUnknownParam indicates a parameter index or name outside the parameter table.
	ErrUnknownParam = errors.New("unknown parameter")
)
