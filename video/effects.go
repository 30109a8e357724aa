package video

import (
	"fmt"
)

// Effect represents a video effect that can be applied to frames.
type Effect interface {
	// Apply processes src into dst. The frames have equal size and may be
	// the same frame.
	Apply(dst, src *Frame) error
	// GetName returns the effect name for identification
	GetName() string
}

// EffectChain manages multiple effects applied in sequence.
//
// Intermediate results live in two scratch frames owned by the chain.
// They are allocated on first use and reused while the frame size stays
// the same, so steady-state processing does not allocate.
type EffectChain struct {
	effects []Effect
	scratch [2]*Frame
}

// NewEffectChain creates a new effect processing chain.
func NewEffectChain() *EffectChain {
	return &EffectChain{
		effects: make([]Effect, 0),
	}
}

// AddEffect adds an effect to the processing chain.
func (ec *EffectChain) AddEffect(effect Effect) {
	ec.effects = append(ec.effects, effect)
}

// Apply processes src through all effects in the chain into dst.
func (ec *EffectChain) Apply(dst, src *Frame) error {
	if src == nil || dst == nil {
		return fmt.Errorf("input frame cannot be nil: %w", ErrNilFrame)
	}
	if err := src.Validate(); err != nil {
		return err
	}
	if !dst.SameSize(src) || len(dst.Pix) != len(src.Pix) {
		return fmt.Errorf("%w: destination %dx%d, source %dx%d",
			ErrFrameMismatch, dst.Width, dst.Height, src.Width, src.Height)
	}

	// If no effects, return a copy
	if len(ec.effects) == 0 {
		copy(dst.Pix, src.Pix)
		return nil
	}

	current := src
	for i, effect := range ec.effects {
		out := dst
		if i < len(ec.effects)-1 {
			out = ec.scratchFor(i, src)
		}
		if err := effect.Apply(out, current); err != nil {
			return fmt.Errorf("effect %d (%s) failed: %w", i, effect.GetName(), err)
		}
		current = out
	}

	return nil
}

func (ec *EffectChain) scratchFor(i int, like *Frame) *Frame {
	s := ec.scratch[i%2]
	if s == nil || !s.SameSize(like) {
		s = NewFrame(like.Width, like.Height)
		ec.scratch[i%2] = s
	}
	return s
}

// GetEffectCount returns the number of effects in the chain.
func (ec *EffectChain) GetEffectCount() int {
	return len(ec.effects)
}

// Clear removes all effects from the chain.
func (ec *EffectChain) Clear() {
	ec.effects = ec.effects[:0]
}

// BrightnessEffect adjusts the brightness of video frames.
type BrightnessEffect struct {
	adjustment int // -255 to +255
}

// NewBrightnessEffect creates a brightness adjustment effect.
// adjustment: -255 (darkest) to +255 (brightest), 0 = no change
func NewBrightnessEffect(adjustment int) *BrightnessEffect {
	// Clamp to valid range
	if adjustment < -255 {
		adjustment = -255
	}
	if adjustment > 255 {
		adjustment = 255
	}

	return &BrightnessEffect{
		adjustment: adjustment,
	}
}

// Apply offsets R, G and B; alpha is copied.
func (be *BrightnessEffect) Apply(dst, src *Frame) error {
	if err := checkPair(dst, src); err != nil {
		return err
	}

	for i := 0; i+BytesPerPixel <= len(src.Pix); i += BytesPerPixel {
		for c := 0; c < 3; c++ {
			dst.Pix[i+c] = clampByte(int(src.Pix[i+c]) + be.adjustment)
		}
		dst.Pix[i+3] = src.Pix[i+3]
	}

	return nil
}

// checkPair reports whether a per-pixel effect can write src's pixels
// into dst.
func checkPair(dst, src *Frame) error {
	if src == nil || dst == nil {
		return fmt.Errorf("input frame cannot be nil: %w", ErrNilFrame)
	}
	if !dst.SameSize(src) || len(dst.Pix) < len(src.Pix) {
		return fmt.Errorf("%w: %dx%d (%d bytes) into %dx%d (%d bytes)", ErrFrameMismatch,
			src.Width, src.Height, len(src.Pix), dst.Width, dst.Height, len(dst.Pix))
	}
	return nil
}

// GetName returns the effect name.
func (be *BrightnessEffect) GetName() string {
	return fmt.Sprintf("Brightness(%+d)", be.adjustment)
}

// ContrastEffect adjusts the contrast of video frames.
type ContrastEffect struct {
	factor float64 // 0.0 = gray, 1.0 = normal, 2.0 = high contrast
}

// NewContrastEffect creates a contrast adjustment effect.
// factor: 0.0 (no contrast/gray) to 3.0 (high contrast), 1.0 = no change
func NewContrastEffect(factor float64) *ContrastEffect {
	// Clamp to reasonable range
	if factor < 0.0 {
		factor = 0.0
	}
	if factor > 3.0 {
		factor = 3.0
	}

	return &ContrastEffect{
		factor: factor,
	}
}

// Apply scales R, G and B around the midpoint; alpha is copied.
func (ce *ContrastEffect) Apply(dst, src *Frame) error {
	if err := checkPair(dst, src); err != nil {
		return err
	}

	const midpoint = 128.0

	for i := 0; i+BytesPerPixel <= len(src.Pix); i += BytesPerPixel {
		for c := 0; c < 3; c++ {
			newValue := midpoint + (float64(src.Pix[i+c])-midpoint)*ce.factor
			dst.Pix[i+c] = clampByte(int(newValue + 0.5)) // Round to nearest
		}
		dst.Pix[i+3] = src.Pix[i+3]
	}

	return nil
}

// GetName returns the effect name.
func (ce *ContrastEffect) GetName() string {
	return fmt.Sprintf("Contrast(%.2f)", ce.factor)
}

func clampByte(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
