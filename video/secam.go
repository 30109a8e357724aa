package video

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/secamiz0r/secam"
)

// SecamEffect runs a secam.Filter as a chain stage.
type SecamEffect struct {
	filter    *secam.Filter
	timestamp float64
}

// NewSecamEffect wraps an existing filter.
func NewSecamEffect(filter *secam.Filter) *SecamEffect {
	logrus.WithFields(logrus.Fields{
		"function":        "NewSecamEffect",
		"width":           filter.Width(),
		"height":          filter.Height(),
		"fire_intensity":  filter.FireIntensity(),
		"noise_intensity": filter.NoiseIntensity(),
	}).Debug("Creating SECAM effect")

	return &SecamEffect{filter: filter}
}

// Filter returns the wrapped filter for parameter changes.
func (se *SecamEffect) Filter() *secam.Filter {
	return se.filter
}

// SetTime sets the timestamp passed to the next Apply, in milliseconds.
func (se *SecamEffect) SetTime(ms float64) {
	se.timestamp = ms
}

// Apply filters src into dst. Frames must match the filter's size.
func (se *SecamEffect) Apply(dst, src *Frame) error {
	if src == nil || dst == nil {
		return fmt.Errorf("input frame cannot be nil: %w", ErrNilFrame)
	}
	if src.Width != se.filter.Width() || src.Height != se.filter.Height() || !dst.SameSize(src) {
		return fmt.Errorf("%w: filter is %dx%d, frames are %dx%d and %dx%d", ErrFrameMismatch,
			se.filter.Width(), se.filter.Height(), src.Width, src.Height, dst.Width, dst.Height)
	}

	return se.filter.Update(se.timestamp, src.Pix, dst.Pix)
}

// GetName returns the effect name.
func (se *SecamEffect) GetName() string {
	return fmt.Sprintf("SECAM(fire=%.3f,noise=%.3f)", se.filter.FireIntensity(), se.filter.NoiseIntensity())
}
