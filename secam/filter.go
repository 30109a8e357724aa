package secam

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Default parameter values.
const (
	DefaultFireIntensity  = 0.125
	DefaultNoiseIntensity = 0.125
)

// Options configures a Filter at construction.
type Options struct {
	FireIntensity  float64
	NoiseIntensity float64
	SignPolicy     SignPolicy
	// Entropy seeds the per-row random streams. Nil selects the
	// process-wide math/rand/v2 generator.
	Entropy Entropy
}

// DefaultOptions returns the options New uses.
func DefaultOptions() Options {
	return Options{
		FireIntensity:  DefaultFireIntensity,
		NoiseIntensity: DefaultNoiseIntensity,
		SignPolicy:     SignConstant,
	}
}

// Filter is one SECAM filter instance for a fixed frame size.
//
// A Filter must not be used from more than one goroutine at a time;
// callers serialize parameter changes and Update calls themselves.
type Filter struct {
	width      int
	height     int
	frameCount uint64

	fireIntensity float64
	fireThreshold int32
	fireSeed      int32

	noiseIntensity float64
	lumaNoise      int32
	chromaNoise    int32
	echoOffset     int32

	signPolicy SignPolicy
	entropy    Entropy
}

// New creates a filter for width x height frames with default options.
func New(width, height int) (*Filter, error) {
	return NewWithOptions(width, height, DefaultOptions())
}

// NewWithOptions creates a filter for width x height frames. Zero
// dimensions are accepted and make Update a no-op.
func NewWithOptions(width, height int, opts Options) (*Filter, error) {
	if width < 0 || height < 0 {
		logrus.WithFields(logrus.Fields{
			"function": "NewWithOptions",
			"width":    width,
			"height":   height,
		}).Error("Rejecting negative frame dimensions")
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	f := &Filter{
		width:      width,
		height:     height,
		signPolicy: opts.SignPolicy,
		entropy:    opts.Entropy,
	}
	if f.entropy == nil {
		f.entropy = globalEntropy{}
	}
	f.SetFireIntensity(opts.FireIntensity)
	f.SetNoiseIntensity(opts.NoiseIntensity)

	logrus.WithFields(logrus.Fields{
		"function":        "NewWithOptions",
		"width":           width,
		"height":          height,
		"fire_intensity":  f.fireIntensity,
		"noise_intensity": f.noiseIntensity,
		"sign_policy":     f.signPolicy.String(),
	}).Info("SECAM filter created")

	return f, nil
}

// Width returns the frame width.
func (f *Filter) Width() int { return f.width }

// Height returns the frame height.
func (f *Filter) Height() int { return f.height }

// FrameCount returns the number of completed Update calls.
func (f *Filter) FrameCount() uint64 { return f.frameCount }

// FrameSize returns the byte length of one packed RGBA frame.
func (f *Filter) FrameSize() int { return f.width * f.height * bytesPerPixel }

// SetSignPolicy changes how new fire runs pick their polarity.
func (f *Filter) SetSignPolicy(p SignPolicy) { f.signPolicy = p }

// SignPolicy returns the current fire sign policy.
func (f *Filter) SignPolicy() SignPolicy { return f.signPolicy }

// SetEntropy replaces the seed source. Nil restores the process-wide generator.
func (f *Filter) SetEntropy(src Entropy) {
	if src == nil {
		src = globalEntropy{}
	}
	f.entropy = src
}

// Update filters one frame from src into dst. Both buffers hold
// width*height packed RGBA pixels, row-major; they may be the same slice.
//
// Rows are processed in pairs. With an odd height the last row of dst is
// left untouched. The timestamp is accepted for host compatibility and
// does not influence the output. Update never allocates.
func (f *Filter) Update(timestamp float64, src, dst []byte) error {
	size := f.FrameSize()
	if len(src) < size || len(dst) < size {
		return fmt.Errorf("%w: need %d bytes, got src=%d dst=%d", ErrBufferSize, size, len(src), len(dst))
	}

	for y := 0; y+1 < f.height; y += 2 {
		srcEven, srcOdd := rowPair(src, f.width, y)
		dstEven, dstOdd := rowPair(dst, f.width, y)

		p := encodePair(dstEven, dstOdd, rgbaPair{even: srcEven, odd: srcOdd}, f.width)
		p = f.detectPair(p)
		p = f.filterPair(p)
		decodePair(p)
	}

	f.frameCount++
	return nil
}
