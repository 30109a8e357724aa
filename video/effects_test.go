package video

import (
	"errors"
	"image"
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/secamiz0r/secam"
)

func createTestFrame(width, height int) *Frame {
	frame := NewFrame(width, height)
	for i := 0; i < width*height; i++ {
		frame.Pix[i*4+0] = byte(i * 7)
		frame.Pix[i*4+1] = byte(i * 3)
		frame.Pix[i*4+2] = byte(255 - i)
		frame.Pix[i*4+3] = byte(100 + i%100)
	}
	return frame
}

func TestBrightnessEffect(t *testing.T) {
	tests := []struct {
		name       string
		adjustment int
		expectName string
		in, out    byte
	}{
		{"brighter", 20, "Brightness(+20)", 100, 120},
		{"darker", -50, "Brightness(-50)", 30, 0},
		{"clamped high", 500, "Brightness(+255)", 10, 255},
		{"neutral", 0, "Brightness(+0)", 77, 77},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			effect := NewBrightnessEffect(tt.adjustment)
			assert.Equal(t, tt.expectName, effect.GetName())

			src := &Frame{Width: 1, Height: 1, Pix: []byte{tt.in, tt.in, tt.in, 42}}
			dst := NewFrame(1, 1)
			require.NoError(t, effect.Apply(dst, src))
			assert.Equal(t, []byte{tt.out, tt.out, tt.out, 42}, dst.Pix)
		})
	}
}

func TestContrastEffect(t *testing.T) {
	effect := NewContrastEffect(2.0)
	assert.Equal(t, "Contrast(2.00)", effect.GetName())

	src := &Frame{Width: 2, Height: 1, Pix: []byte{138, 118, 0, 1, 255, 128, 64, 2}}
	dst := NewFrame(2, 1)
	require.NoError(t, effect.Apply(dst, src))

	assert.Equal(t, []byte{148, 108, 0, 1, 255, 128, 0, 2}, dst.Pix)
	assert.Equal(t, 3.0, NewContrastEffect(9).factor)
	assert.Equal(t, 0.0, NewContrastEffect(-1).factor)
}

func TestEffect_NilFrame(t *testing.T) {
	for _, effect := range []Effect{NewBrightnessEffect(1), NewContrastEffect(1)} {
		err := effect.Apply(nil, NewFrame(1, 1))
		assert.True(t, errors.Is(err, ErrNilFrame), effect.GetName())
		assert.Contains(t, err.Error(), "input frame cannot be nil")
	}
}

func TestEffect_SizeMismatch(t *testing.T) {
	short := NewFrame(4, 4)
	short.Pix = short.Pix[:8]

	tests := []struct {
		name     string
		dst, src *Frame
	}{
		{"smaller destination", NewFrame(1, 1), NewFrame(4, 4)},
		{"larger destination", NewFrame(4, 4), NewFrame(1, 1)},
		{"truncated destination buffer", short, NewFrame(4, 4)},
	}

	for _, effect := range []Effect{NewBrightnessEffect(1), NewContrastEffect(1)} {
		for _, tt := range tests {
			t.Run(effect.GetName()+"/"+tt.name, func(t *testing.T) {
				var err error
				require.NotPanics(t, func() { err = effect.Apply(tt.dst, tt.src) })
				assert.True(t, errors.Is(err, ErrFrameMismatch))
			})
		}
	}
}

func TestNewEffectChain(t *testing.T) {
	chain := NewEffectChain()
	assert.Equal(t, 0, chain.GetEffectCount())

	chain.AddEffect(NewBrightnessEffect(10))
	chain.AddEffect(NewContrastEffect(1.2))
	assert.Equal(t, 2, chain.GetEffectCount())

	chain.Clear()
	assert.Equal(t, 0, chain.GetEffectCount())
}

func TestEffectChain_EmptyCopies(t *testing.T) {
	chain := NewEffectChain()
	src := createTestFrame(8, 4)
	dst := NewFrame(8, 4)

	require.NoError(t, chain.Apply(dst, src))
	assert.Equal(t, src.Pix, dst.Pix)
}

func TestEffectChain_AppliesInOrder(t *testing.T) {
	chain := NewEffectChain()
	chain.AddEffect(NewBrightnessEffect(100))
	chain.AddEffect(NewContrastEffect(0))
	chain.AddEffect(NewBrightnessEffect(-28))

	src := createTestFrame(4, 2)
	dst := NewFrame(4, 2)
	require.NoError(t, chain.Apply(dst, src))

	for i := 0; i < 8; i++ {
		assert.Equal(t, []byte{100, 100, 100}, dst.Pix[i*4:i*4+3])
		assert.Equal(t, src.Pix[i*4+3], dst.Pix[i*4+3])
	}
}

func TestEffectChain_ReusesScratch(t *testing.T) {
	chain := NewEffectChain()
	chain.AddEffect(NewBrightnessEffect(1))
	chain.AddEffect(NewBrightnessEffect(1))
	chain.AddEffect(NewBrightnessEffect(1))

	src := createTestFrame(16, 16)
	dst := NewFrame(16, 16)
	require.NoError(t, chain.Apply(dst, src))

	allocs := testing.AllocsPerRun(10, func() {
		_ = chain.Apply(dst, src)
	})
	assert.Equal(t, float64(0), allocs)
}

func TestEffectChain_Errors(t *testing.T) {
	chain := NewEffectChain()

	assert.True(t, errors.Is(chain.Apply(nil, NewFrame(1, 1)), ErrNilFrame))
	assert.True(t, errors.Is(chain.Apply(NewFrame(2, 2), NewFrame(1, 1)), ErrFrameMismatch))

	bad := &Frame{Width: 2, Height: 2, Pix: make([]byte, 3)}
	assert.True(t, errors.Is(chain.Apply(NewFrame(2, 2), bad), ErrFrameMismatch))
}

func TestSecamEffect(t *testing.T) {
	opts := secam.DefaultOptions()
	opts.Entropy = rand.NewPCG(1, 2)
	f, err := secam.NewWithOptions(16, 8, opts)
	require.NoError(t, err)

	effect := NewSecamEffect(f)
	assert.Same(t, f, effect.Filter())
	assert.Equal(t, "SECAM(fire=0.125,noise=0.125)", effect.GetName())

	chain := NewEffectChain()
	chain.AddEffect(NewBrightnessEffect(10))
	chain.AddEffect(effect)

	src := createTestFrame(16, 8)
	dst := NewFrame(16, 8)
	effect.SetTime(40)
	require.NoError(t, chain.Apply(dst, src))
	assert.Equal(t, uint64(1), f.FrameCount())

	for i := 0; i < 16*8; i++ {
		assert.Equal(t, src.Pix[i*4+3], dst.Pix[i*4+3])
	}

	err = effect.Apply(NewFrame(4, 4), NewFrame(4, 4))
	assert.True(t, errors.Is(err, ErrFrameMismatch))
}

func TestFrame_ImageRoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 10, 13, 12))
	img.Set(10, 10, color.RGBA{R: 255, A: 255})
	img.Set(12, 11, color.RGBA{B: 255, A: 255})

	frame := FromImage(img)
	require.NoError(t, frame.Validate())
	assert.Equal(t, 3, frame.Width)
	assert.Equal(t, 2, frame.Height)
	assert.Equal(t, []byte{255, 0, 0, 255}, frame.Pix[0:4])
	assert.Equal(t, []byte{0, 0, 255, 255}, frame.Pix[5*4:6*4])

	out := frame.Image()
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, out.NRGBAAt(0, 0))

	// A packed NRGBA is copied, not shared.
	again := FromImage(out)
	again.Pix[0] = 1
	assert.Equal(t, byte(255), frame.Pix[0])
}

func TestFrame_CopyFrom(t *testing.T) {
	a := createTestFrame(3, 3)
	b := NewFrame(3, 3)
	require.NoError(t, b.CopyFrom(a))
	assert.Equal(t, a.Pix, b.Pix)

	assert.True(t, errors.Is(b.CopyFrom(NewFrame(1, 1)), ErrFrameMismatch))
	assert.True(t, errors.Is((*Frame)(nil).Validate(), ErrNilFrame))
}

func BenchmarkEffectChain(b *testing.B) {
	f, err := secam.New(640, 480)
	if err != nil {
		b.Fatal(err)
	}
	chain := NewEffectChain()
	chain.AddEffect(NewContrastEffect(1.1))
	chain.AddEffect(NewSecamEffect(f))
	src := createTestFrame(640, 480)
	dst := NewFrame(640, 480)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := chain.Apply(dst, src); err != nil {
			b.Fatal(err)
		}
	}
}
