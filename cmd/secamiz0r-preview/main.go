//go:build !headless

// Package main provides a live preview window for the secamiz0r filter.
//
// The input image is re-filtered every tick so the fire and noise animate;
// the intensities are tuned from the keyboard.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/secamiz0r/imageio"
	"github.com/opd-ai/secamiz0r/secam"
	"github.com/opd-ai/secamiz0r/video"
)

var keyActions = map[ebiten.Key]action{
	ebiten.KeyArrowUp:    actionFireUp,
	ebiten.KeyArrowDown:  actionFireDown,
	ebiten.KeyArrowRight: actionNoiseUp,
	ebiten.KeyArrowLeft:  actionNoiseDown,
	ebiten.KeyS:          actionToggleSign,
	ebiten.KeySpace:      actionTogglePause,
	ebiten.KeyH:          actionToggleHUD,
	ebiten.KeyPeriod:     actionStep,
}

// preview implements ebiten.Game.
type preview struct {
	src, dst *video.Frame
	effect   *video.SecamEffect
	controls *controls
	window   *ebiten.Image
	display  []byte
	tps      int
}

func (p *preview) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for key, a := range keyActions {
		if inpututil.IsKeyJustPressed(key) {
			p.controls.apply(a)
		}
	}

	if !p.controls.shouldRender() {
		return nil
	}

	f := p.effect.Filter()
	p.effect.SetTime(float64(f.FrameCount()) * 1000 / float64(p.tps))
	return p.effect.Apply(p.dst, p.src)
}

func (p *preview) Draw(screen *ebiten.Image) {
	premultiply(p.display, p.dst.Pix)
	p.window.WritePixels(p.display)
	screen.DrawImage(p.window, nil)
	if p.controls.showHUD {
		ebitenutil.DebugPrint(screen, p.controls.hud())
	}
}

func (p *preview) Layout(_, _ int) (int, int) {
	return p.src.Width, p.src.Height
}

func main() {
	var (
		input    = flag.String("in", "", "Input image")
		fire     = flag.Float64("fire", secam.DefaultFireIntensity, "Initial fire intensity")
		noise    = flag.Float64("noise", secam.DefaultNoiseIntensity, "Initial noise intensity")
		scale    = flag.Int("scale", 2, "Window scale factor")
		tps      = flag.Int("tps", 25, "Frames per second")
		logLevel = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	)
	flag.Parse()

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q\n", *logLevel)
		os.Exit(2)
	}
	logrus.SetLevel(level)

	if *input == "" || *scale < 1 || *tps < 1 {
		fmt.Fprintln(os.Stderr, "Usage: secamiz0r-preview -in image [-fire x] [-noise x] [-scale n] [-tps n]")
		os.Exit(2)
	}

	if err := run(*input, *fire, *noise, *scale, *tps); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "main",
			"error":    err.Error(),
		}).Error("Preview failed")
		os.Exit(1)
	}
}

func run(input string, fire, noise float64, scale, tps int) error {
	img, err := imageio.Load(input)
	if err != nil {
		return err
	}
	src := video.FromImage(img)

	opts := secam.DefaultOptions()
	opts.FireIntensity = fire
	opts.NoiseIntensity = noise
	filter, err := secam.NewWithOptions(src.Width, src.Height, opts)
	if err != nil {
		return err
	}

	p := &preview{
		src:      src,
		dst:      video.NewFrame(src.Width, src.Height),
		effect:   video.NewSecamEffect(filter),
		controls: newControls(filter),
		window:   ebiten.NewImage(src.Width, src.Height),
		display:  make([]byte, len(src.Pix)),
		tps:      tps,
	}

	ebiten.SetWindowSize(src.Width*scale, src.Height*scale)
	ebiten.SetWindowTitle("secamiz0r - " + input)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(tps)

	logrus.WithFields(logrus.Fields{
		"function": "run",
		"input":    input,
		"width":    src.Width,
		"height":   src.Height,
		"tps":      tps,
	}).Info("Starting preview")

	if err := ebiten.RunGame(p); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
