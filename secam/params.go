package secam

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// ParamType describes a parameter's value type as presented to a host.
type ParamType int

const (
	// ParamDouble is a floating-point parameter.
	ParamDouble ParamType = iota
)

// ParamInfo describes one tunable parameter.
type ParamInfo struct {
	Name        string
	Type        ParamType
	Explanation string
}

// PluginInfo describes the filter to a host.
type PluginInfo struct {
	Name         string
	Author       string
	Explanation  string
	MajorVersion int
	MinorVersion int
	NumParams    int
}

// Parameter indices.
const (
	ParamFireIntensity = iota
	ParamNoiseIntensity
)

var paramTable = [...]ParamInfo{
	ParamFireIntensity:  {Name: "Fire intensity", Type: ParamDouble},
	ParamNoiseIntensity: {Name: "Noise intensity", Type: ParamDouble},
}

// Info returns the plugin description.
func Info() PluginInfo {
	return PluginInfo{
		Name:         "secamiz0r",
		Author:       "tuorqai",
		Explanation:  "SECAM Fire effect",
		MajorVersion: 1,
		MinorVersion: 0,
		NumParams:    len(paramTable),
	}
}

// Params returns a copy of the parameter table in index order.
func Params() []ParamInfo {
	return append([]ParamInfo(nil), paramTable[:]...)
}

// ParamIndex returns the index of the named parameter.
func ParamIndex(name string) (int, error) {
	for i, p := range paramTable {
		if p.Name == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownParam, name)
}

// SetParam sets the parameter at index.
func (f *Filter) SetParam(index int, value float64) error {
	switch index {
	case ParamFireIntensity:
		f.SetFireIntensity(value)
	case ParamNoiseIntensity:
		f.SetNoiseIntensity(value)
	default:
		return fmt.Errorf("%w: index %d", ErrUnknownParam, index)
	}
	return nil
}

// Param returns the parameter at index.
func (f *Filter) Param(index int) (float64, error) {
	switch index {
	case ParamFireIntensity:
		return f.fireIntensity, nil
	case ParamNoiseIntensity:
		return f.noiseIntensity, nil
	default:
		return 0, fmt.Errorf("%w: index %d", ErrUnknownParam, index)
	}
}

// SetParamByName sets a parameter by its table name.
func (f *Filter) SetParamByName(name string, value float64) error {
	i, err := ParamIndex(name)
	if err != nil {
		return err
	}
	return f.SetParam(i, value)
}

// ParamByName returns a parameter by its table name.
func (f *Filter) ParamByName(name string) (float64, error) {
	i, err := ParamIndex(name)
	if err != nil {
		return 0, err
	}
	return f.Param(i)
}

// SetFireIntensity stores x and recomputes the fire threshold and seed.
// Values outside [0,1] are kept and extrapolate.
func (f *Filter) SetFireIntensity(x float64) {
	f.fireIntensity = x
	f.fireThreshold = 1024 - truncInt32(x*x*256.0)
	f.fireSeed = truncInt32(x * 1024.0)

	logrus.WithFields(logrus.Fields{
		"function":       "Filter.SetFireIntensity",
		"fire_intensity": x,
		"fire_threshold": f.fireThreshold,
		"fire_seed":      f.fireSeed,
	}).Debug("Fire intensity updated")
}

// FireIntensity returns the value last set.
func (f *Filter) FireIntensity() float64 { return f.fireIntensity }

// SetNoiseIntensity stores x and recomputes the luma noise, chroma noise
// and echo offset, each clamped to its working range.
func (f *Filter) SetNoiseIntensity(x float64) {
	f.noiseIntensity = x
	f.lumaNoise = clampInt32(truncInt32(x*x*256.0), 16, 224)
	f.chromaNoise = clampInt32(truncInt32(x*256.0), 32, 256)
	f.echoOffset = clampInt32(truncInt32(x*8.0), 2, 16)

	logrus.WithFields(logrus.Fields{
		"function":        "Filter.SetNoiseIntensity",
		"noise_intensity": x,
		"luma_noise":      f.lumaNoise,
		"chroma_noise":    f.chromaNoise,
		"echo_offset":     f.echoOffset,
	}).Debug("Noise intensity updated")
}

// NoiseIntensity returns the value last set.
func (f *Filter) NoiseIntensity() float64 { return f.noiseIntensity }

// Derived holds the integer values computed from the two intensities.
type Derived struct {
	FireThreshold int
	FireSeed      int
	LumaNoise     int
	ChromaNoise   int
	EchoOffset    int
}

// Derived returns the current derived values.
func (f *Filter) Derived() Derived {
	return Derived{
		FireThreshold: int(f.fireThreshold),
		FireSeed:      int(f.fireSeed),
		LumaNoise:     int(f.lumaNoise),
		ChromaNoise:   int(f.chromaNoise),
		EchoOffset:    int(f.echoOffset),
	}
}

// truncInt32 converts toward zero like a C cast, saturating at the int32
// range. NaN maps to zero.
func truncInt32(v float64) int32 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	}
	return int32(v)
}
