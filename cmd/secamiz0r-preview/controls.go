package main

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/secamiz0r/secam"
)

// intensityStep is the change per key press.
const intensityStep = 0.025

// action is one user command, decoupled from the windowing backend.
type action int

const (
	actionNone action = iota
	actionFireUp
	actionFireDown
	actionNoiseUp
	actionNoiseDown
	actionToggleSign
	actionTogglePause
	actionToggleHUD
	actionStep
)

// controls applies actions to a filter and tracks preview state.
type controls struct {
	filter  *secam.Filter
	paused  bool
	showHUD bool
	step    bool
}

func newControls(filter *secam.Filter) *controls {
	return &controls{filter: filter, showHUD: true}
}

// clampUnit keeps interactive intensities inside [0,1].
func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (c *controls) apply(a action) {
	f := c.filter
	switch a {
	case actionFireUp:
		f.SetFireIntensity(clampUnit(f.FireIntensity() + intensityStep))
	case actionFireDown:
		f.SetFireIntensity(clampUnit(f.FireIntensity() - intensityStep))
	case actionNoiseUp:
		f.SetNoiseIntensity(clampUnit(f.NoiseIntensity() + intensityStep))
	case actionNoiseDown:
		f.SetNoiseIntensity(clampUnit(f.NoiseIntensity() - intensityStep))
	case actionToggleSign:
		if f.SignPolicy() == secam.SignConstant {
			f.SetSignPolicy(secam.SignDynamic)
		} else {
			f.SetSignPolicy(secam.SignConstant)
		}
		logrus.WithFields(logrus.Fields{
			"function":    "controls.apply",
			"sign_policy": f.SignPolicy().String(),
		}).Info("Fire sign policy changed")
	case actionTogglePause:
		c.paused = !c.paused
	case actionToggleHUD:
		c.showHUD = !c.showHUD
	case actionStep:
		c.step = true
	}
}

// shouldRender reports whether the next tick renders a new frame and
// consumes a pending single step.
func (c *controls) shouldRender() bool {
	if !c.paused {
		return true
	}
	if c.step {
		c.step = false
		return true
	}
	return false
}

// hud returns the overlay text.
func (c *controls) hud() string {
	d := c.filter.Derived()
	state := "running"
	if c.paused {
		state = "paused"
	}
	return fmt.Sprintf(
		"fire %.3f (threshold %d)  noise %.3f (luma %d chroma %d echo %d)\n"+
			"sign %s  frame %d  %s\n"+
			"up/down fire  left/right noise  S sign  space pause  . step  H hud  Q quit",
		c.filter.FireIntensity(), d.FireThreshold,
		c.filter.NoiseIntensity(), d.LumaNoise, d.ChromaNoise, d.EchoOffset,
		c.filter.SignPolicy(), c.filter.FrameCount(), state,
	)
}

// premultiply converts straight-alpha RGBA in src to the premultiplied
// form the window image expects.
func premultiply(dst, src []byte) {
	for i := 0; i+3 < len(src) && i+3 < len(dst); i += 4 {
		a := uint32(src[i+3])
		dst[i] = byte((uint32(src[i])*a + 127) / 255)
		dst[i+1] = byte((uint32(src[i+1])*a + 127) / 255)
		dst[i+2] = byte((uint32(src[i+2])*a + 127) / 255)
		dst[i+3] = src[i+3]
	}
}
