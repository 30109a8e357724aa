package video

import "errors"

var (
	// ErrNilFrame indicates a nil source or destination frame.
	ErrNilFrame = errors.New("frame cannot be nil")

	// ErrFrameMismatch indicates frames whose dimensions or buffers disagree.
	ErrFrameMismatch = errors.New("frame size mismatch")
)
