package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/secamiz0r/imageio"
	"github.com/opd-ai/secamiz0r/rawvideo"
	"github.com/opd-ai/secamiz0r/secam"
	"github.com/opd-ai/secamiz0r/video"
)

func parse(t *testing.T, args ...string) *CLIConfig {
	t.Helper()
	fs := flag.NewFlagSet("secamiz0r", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	config, err := parseCLIFlags(fs, args)
	require.NoError(t, err)
	return config
}

func TestParseCLIFlags_Defaults(t *testing.T) {
	config := parse(t)

	assert.Equal(t, secam.DefaultFireIntensity, config.fire)
	assert.Equal(t, secam.DefaultNoiseIntensity, config.noise)
	assert.Equal(t, "constant", config.signName)
	assert.Equal(t, 1, config.frames)
	assert.Equal(t, 25.0, config.fps)
	assert.Equal(t, "info", config.logLevel)
}

func TestValidateCLIConfig(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"still ok", []string{"-in", "a.png", "-out", "b.png"}, ""},
		{"still frames need pattern", []string{"-in", "a.png", "-out", "b.png", "-frames", "3"}, "needs a %d verb"},
		{"still frames with pattern", []string{"-in", "a.png", "-out", "b-%02d.png", "-frames", "3"}, ""},
		{"missing input", []string{"-out", "b.png"}, "input image is required"},
		{"missing output", []string{"-in", "a.png"}, "output image is required"},
		{"zero frames", []string{"-in", "a.png", "-out", "b.png", "-frames", "0"}, "at least 1"},
		{"bad sign", []string{"-sign", "sideways", "-size", "4x2"}, "invalid sign policy"},
		{"dynamic sign", []string{"-sign", "Dynamic", "-size", "4x2"}, ""},
		{"raw ok", []string{"-size", "720x576", "-zstd-in"}, ""},
		{"raw bad size", []string{"-size", "720"}, "invalid frame size"},
		{"zstd needs raw", []string{"-in", "a.png", "-out", "b.png", "-zstd-out"}, "require -size"},
		{"bad fps", []string{"-size", "4x2", "-fps", "0"}, "fps must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCLIConfig(parse(t, tt.args...))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateCLIConfig_DerivedFields(t *testing.T) {
	config := parse(t, "-size", "8x4", "-sign", "dynamic")
	require.NoError(t, validateCLIConfig(config))

	assert.Equal(t, 8, config.width)
	assert.Equal(t, 4, config.height)
	assert.Equal(t, secam.SignDynamic, config.sign)
}

func TestSetupLogging(t *testing.T) {
	assert.NoError(t, setupLogging(parse(t, "-log-level", "debug")))
	assert.Error(t, setupLogging(parse(t, "-log-level", "loud")))
	require.NoError(t, setupLogging(parse(t, "-log-level", "warn")))
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "out-007.png", outputPath("out-%03d.png", 7))
	assert.Equal(t, "out.png", outputPath("out.png", 7))
}

func rawConfig(t *testing.T, args ...string) *CLIConfig {
	t.Helper()
	config := parse(t, args...)
	require.NoError(t, validateCLIConfig(config))
	return config
}

func TestRunRaw(t *testing.T) {
	config := rawConfig(t, "-size", "8x4", "-seed", "11")

	var in bytes.Buffer
	for i := 0; i < 3; i++ {
		in.Write(bytes.Repeat([]byte{200, 40, 90, 255}, 8*4))
	}

	var out bytes.Buffer
	require.NoError(t, runRaw(config, &in, &out))
	require.Equal(t, 3*8*4*4, out.Len())

	for i := 3; i < out.Len(); i += 4 {
		assert.Equal(t, byte(255), out.Bytes()[i])
	}

	// The same seed reproduces the same stream.
	var in2, out2 bytes.Buffer
	for i := 0; i < 3; i++ {
		in2.Write(bytes.Repeat([]byte{200, 40, 90, 255}, 8*4))
	}
	require.NoError(t, runRaw(rawConfig(t, "-size", "8x4", "-seed", "11"), &in2, &out2))
	assert.Equal(t, out.Bytes(), out2.Bytes())
}

func TestRunRaw_Compressed(t *testing.T) {
	var frames bytes.Buffer
	w, err := rawvideo.NewWriter(&frames, 4, 2, true)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		require.NoError(t, w.WriteFrame(make([]byte, 4*2*4)))
	}
	require.NoError(t, w.Close())

	var out bytes.Buffer
	config := rawConfig(t, "-size", "4x2", "-zstd-in", "-zstd-out", "-sweep")
	require.NoError(t, runRaw(config, &frames, &out))

	r, err := rawvideo.NewReader(&out, 4, 2, true)
	require.NoError(t, err)
	defer r.Close()

	buf := make([]byte, r.FrameSize())
	require.NoError(t, r.ReadFrame(buf))
	require.NoError(t, r.ReadFrame(buf))
	assert.Equal(t, io.EOF, r.ReadFrame(buf))
}

type closer struct{ err error }

func (c closer) Close() error { return c.err }

func TestCloseInto(t *testing.T) {
	errClose := errors.New("close failed")
	errEarlier := errors.New("write failed")

	tests := []struct {
		name       string
		closeErr   error
		earlierErr error
		want       error
	}{
		{"clean", nil, nil, nil},
		{"close error surfaces", errClose, nil, errClose},
		{"earlier error wins", errClose, errEarlier, errEarlier},
		{"earlier error kept", nil, errEarlier, errEarlier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.earlierErr
			closeInto(closer{err: tt.closeErr}, &err)
			assert.Equal(t, tt.want, err)
		})
	}
}

func TestRun_RawFiles(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.rgba")
	outPath := filepath.Join(dir, "out.rgba")
	require.NoError(t, os.WriteFile(inPath, bytes.Repeat([]byte{90, 90, 90, 255}, 2*4*2), 0o644))

	config := rawConfig(t, "-size", "4x2", "-seed", "3", "-in", inPath, "-out", outPath)
	require.NoError(t, run(config))

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Len(t, got, 2*4*2*4)
}

func TestRunRaw_ShortStream(t *testing.T) {
	config := rawConfig(t, "-size", "4x2")
	err := runRaw(config, bytes.NewReader(make([]byte, 10)), io.Discard)
	assert.ErrorIs(t, err, rawvideo.ErrShortFrame)
}

func TestPipeline_Sweep(t *testing.T) {
	config := rawConfig(t, "-size", "4x2", "-sweep", "-fps", "10")
	p, err := newPipeline(config, 4, 2)
	require.NoError(t, err)

	// Frame 25 at 10 fps is 2.5 s, a quarter of the sweep.
	require.NoError(t, p.process(video.NewFrame(4, 2), video.NewFrame(4, 2), 25))
	assert.InDelta(t, 0.25, p.filter.FireIntensity(), 1e-12)
	assert.InDelta(t, 0.25, p.filter.NoiseIntensity(), 1e-12)

	require.NoError(t, p.process(video.NewFrame(4, 2), video.NewFrame(4, 2), 100))
	assert.InDelta(t, 0.0, p.filter.FireIntensity(), 1e-12)
}

func TestPipeline_PreAdjustments(t *testing.T) {
	config := rawConfig(t, "-size", "4x2", "-brightness", "10", "-contrast", "1.5")
	p, err := newPipeline(config, 4, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, p.chain.GetEffectCount())

	p, err = newPipeline(rawConfig(t, "-size", "4x2"), 4, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, p.chain.GetEffectCount())
}

func TestRunStill(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")

	img := image.NewNRGBA(image.Rect(0, 0, 16, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 16), G: 128, B: uint8(y * 32), A: 255})
		}
	}
	require.NoError(t, imageio.Save(input, img))

	config := rawConfig(t, "-in", input, "-out", filepath.Join(dir, "out-%d.png"), "-frames", "3", "-seed", "5")
	require.NoError(t, run(config))

	for i := 0; i < 3; i++ {
		out, err := imageio.Load(filepath.Join(dir, fmt.Sprintf("out-%d.png", i)))
		require.NoError(t, err)
		assert.Equal(t, img.Bounds(), out.Bounds())
	}

	_, err := os.Stat(filepath.Join(dir, "out-3.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunStill_MissingInput(t *testing.T) {
	config := rawConfig(t, "-in", filepath.Join(t.TempDir(), "nope.png"), "-out", "x.png")
	assert.Error(t, run(config))
}
