package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/opd-ai/secamiz0r/imageio"
	"github.com/opd-ai/secamiz0r/rawvideo"
	"github.com/opd-ai/secamiz0r/secam"
	"github.com/opd-ai/secamiz0r/video"
)

// sweepPeriod is the stream time, in milliseconds, of one 0→1 intensity sweep.
const sweepPeriod = 10000.0

// errTerminalOutput is returned when raw frames would be written to a TTY.
var errTerminalOutput = errors.New("refusing to write raw frames to a terminal (use -out or -force-tty)")

// pipeline is the effect chain shared by both modes.
type pipeline struct {
	config *CLIConfig
	filter *secam.Filter
	effect *video.SecamEffect
	chain  *video.EffectChain
}

func newPipeline(config *CLIConfig, width, height int) (*pipeline, error) {
	opts := secam.DefaultOptions()
	opts.FireIntensity = config.fire
	opts.NoiseIntensity = config.noise
	opts.SignPolicy = config.sign
	if config.seed != 0 {
		opts.Entropy = rand.NewPCG(config.seed, config.seed^0x9e3779b97f4a7c15)
	}

	filter, err := secam.NewWithOptions(width, height, opts)
	if err != nil {
		return nil, err
	}

	chain := video.NewEffectChain()
	if config.bright != 0 {
		chain.AddEffect(video.NewBrightnessEffect(config.bright))
	}
	if config.contrast != 1 {
		chain.AddEffect(video.NewContrastEffect(config.contrast))
	}
	effect := video.NewSecamEffect(filter)
	chain.AddEffect(effect)

	return &pipeline{config: config, filter: filter, effect: effect, chain: chain}, nil
}

// timestamp returns the stream time of frame index in milliseconds.
func (p *pipeline) timestamp(index uint64) float64 {
	return float64(index) * 1000 / p.config.fps
}

// process filters frame index from src into dst.
func (p *pipeline) process(dst, src *video.Frame, index uint64) error {
	ts := p.timestamp(index)
	if p.config.sweep {
		d := math.Mod(ts, sweepPeriod) / sweepPeriod
		p.filter.SetFireIntensity(d)
		p.filter.SetNoiseIntensity(d)
	}
	p.effect.SetTime(ts)
	return p.chain.Apply(dst, src)
}

func run(config *CLIConfig) (err error) {
	if config.size == "" {
		return runStill(config)
	}

	in := io.Reader(os.Stdin)
	if config.input != "" && config.input != "-" {
		f, err := os.Open(config.input)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	out := io.Writer(os.Stdout)
	if config.output != "" && config.output != "-" {
		f, cerr := os.Create(config.output)
		if cerr != nil {
			return cerr
		}
		defer closeInto(f, &err)
		out = f
	} else if term.IsTerminal(int(os.Stdout.Fd())) && !config.forceTTY {
		return errTerminalOutput
	}

	return runRaw(config, in, out)
}

// closeInto closes c and stores its error in *err unless an earlier error
// is already there.
func closeInto(c io.Closer, err *error) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = cerr
	}
}

// outputPath expands the frame number into the output pattern.
func outputPath(pattern string, index int) string {
	if strings.Contains(pattern, "%") {
		return fmt.Sprintf(pattern, index)
	}
	return pattern
}

// runStill renders config.frames filtered copies of one image.
func runStill(config *CLIConfig) error {
	img, err := imageio.Load(config.input)
	if err != nil {
		return err
	}
	src := video.FromImage(img)

	p, err := newPipeline(config, src.Width, src.Height)
	if err != nil {
		return err
	}

	dst := video.NewFrame(src.Width, src.Height)
	start := time.Now()
	for i := 0; i < config.frames; i++ {
		if err := p.process(dst, src, uint64(i)); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if err := imageio.Save(outputPath(config.output, i), dst.Image()); err != nil {
			return err
		}
	}

	logrus.WithFields(logrus.Fields{
		"function": "runStill",
		"input":    config.input,
		"frames":   config.frames,
		"width":    src.Width,
		"height":   src.Height,
		"elapsed":  time.Since(start).String(),
	}).Info("Still image rendered")

	return nil
}

// runRaw filters a raw RGBA stream frame by frame until in is exhausted.
func runRaw(config *CLIConfig, in io.Reader, out io.Writer) (err error) {
	r, err := rawvideo.NewReader(in, config.width, config.height, config.zstdIn)
	if err != nil {
		return err
	}
	defer r.Close()

	w, err := rawvideo.NewWriter(out, config.width, config.height, config.zstdOut)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	p, err := newPipeline(config, config.width, config.height)
	if err != nil {
		return err
	}

	src := video.NewFrame(config.width, config.height)
	dst := video.NewFrame(config.width, config.height)
	start := time.Now()

	for {
		if err := r.ReadFrame(src.Pix); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if err := p.process(dst, src, r.Frames()-1); err != nil {
			return fmt.Errorf("frame %d: %w", r.Frames()-1, err)
		}
		if err := w.WriteFrame(dst.Pix); err != nil {
			return err
		}
	}

	logrus.WithFields(logrus.Fields{
		"function": "runRaw",
		"frames":   w.Frames(),
		"width":    config.width,
		"height":   config.height,
		"elapsed":  time.Since(start).String(),
	}).Info("Raw stream filtered")

	return nil
}
