// Package main provides the secamiz0r command-line filter.
//
// It renders a still image as a sequence of SECAM-degraded frames, or
// filters a raw RGBA video stream from stdin to stdout so it can sit
// between two ffmpeg processes:
//
//	ffmpeg -i in.mp4 -f rawvideo -pix_fmt rgba - |
//	    secamiz0r -size 720x576 -fire 0.4 |
//	    ffmpeg -f rawvideo -pix_fmt rgba -s 720x576 -i - out.mp4
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/secamiz0r/rawvideo"
	"github.com/opd-ai/secamiz0r/secam"
)

// CLIConfig holds the parsed command line.
type CLIConfig struct {
	input  string
	output string
	frames int

	size     string
	width    int
	height   int
	zstdIn   bool
	zstdOut  bool
	forceTTY bool

	fire     float64
	noise    float64
	signName string
	sign     secam.SignPolicy
	seed     uint64
	sweep    bool
	fps      float64

	bright   int
	contrast float64

	logLevel string
	help     bool
}

// parseCLIFlags parses command-line flags and returns the configuration.
func parseCLIFlags(fs *flag.FlagSet, args []string) (*CLIConfig, error) {
	config := &CLIConfig{}

	// Input/output
	fs.StringVar(&config.input, "in", "", "Input image, or raw stream in -size mode (default stdin)")
	fs.StringVar(&config.output, "out", "", "Output image (use %d for frame numbers), or raw stream in -size mode (default stdout)")
	fs.IntVar(&config.frames, "frames", 1, "Number of frames to render from a still image")

	// Raw stream mode
	fs.StringVar(&config.size, "size", "", "Raw RGBA stream mode: frame size WIDTHxHEIGHT")
	fs.BoolVar(&config.zstdIn, "zstd-in", false, "Raw input is zstd-compressed")
	fs.BoolVar(&config.zstdOut, "zstd-out", false, "Compress raw output with zstd")
	fs.BoolVar(&config.forceTTY, "force-tty", false, "Allow writing raw frames to a terminal")

	// Filter parameters
	fs.Float64Var(&config.fire, "fire", secam.DefaultFireIntensity, "Fire intensity")
	fs.Float64Var(&config.noise, "noise", secam.DefaultNoiseIntensity, "Noise intensity")
	fs.StringVar(&config.signName, "sign", secam.SignConstant.String(), "Fire sign policy (constant, dynamic)")
	fs.Uint64Var(&config.seed, "seed", 0, "Random seed for reproducible output (0 = random)")
	fs.BoolVar(&config.sweep, "sweep", false, "Sweep both intensities from 0 to 1 every 10 seconds of stream time")
	fs.Float64Var(&config.fps, "fps", 25, "Frame rate used to derive frame timestamps")

	// Pre-adjustments
	fs.IntVar(&config.bright, "brightness", 0, "Brightness offset applied before the filter")
	fs.Float64Var(&config.contrast, "contrast", 1, "Contrast factor applied before the filter")

	// Logging configuration
	fs.StringVar(&config.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	// Help
	fs.BoolVar(&config.help, "help", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return config, nil
}

// printUsage prints the usage information.
func printUsage(fs *flag.FlagSet) {
	fmt.Println("secamiz0r - SECAM fire and noise filter")
	fmt.Println("=======================================")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s -in photo.png -out frame-%%03d.png -frames 25 [options]\n", os.Args[0])
	fmt.Printf("  %s -size WIDTHxHEIGHT [-in stream.rgba] [-out filtered.rgba] [options]\n", os.Args[0])
	fmt.Println()
	fmt.Println("Options:")
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Printf("  # Heavy fire on a still image\n")
	fmt.Printf("  %s -in in.jpg -out out.png -fire 0.6 -noise 0.3\n", os.Args[0])
	fmt.Println()
	fmt.Printf("  # Filter a compressed raw capture deterministically\n")
	fmt.Printf("  %s -size 720x576 -zstd-in -in cap.rgba.zst -out cap.rgba -seed 7\n", os.Args[0])
}

// validateCLIConfig validates the CLI configuration and fills derived fields.
func validateCLIConfig(config *CLIConfig) error {
	switch strings.ToLower(config.signName) {
	case secam.SignConstant.String():
		config.sign = secam.SignConstant
	case secam.SignDynamic.String():
		config.sign = secam.SignDynamic
	default:
		return fmt.Errorf("invalid sign policy %q: must be constant or dynamic", config.signName)
	}

	if config.fps <= 0 {
		return fmt.Errorf("fps must be positive")
	}

	if config.size != "" {
		w, h, err := rawvideo.ParseSize(config.size)
		if err != nil {
			return err
		}
		config.width, config.height = w, h
		return nil
	}

	if config.zstdIn || config.zstdOut {
		return fmt.Errorf("-zstd-in and -zstd-out require -size")
	}
	if config.input == "" {
		return fmt.Errorf("input image is required (-in)")
	}
	if config.output == "" {
		return fmt.Errorf("output image is required (-out)")
	}
	if config.frames < 1 {
		return fmt.Errorf("frames must be at least 1")
	}
	if config.frames > 1 && !strings.Contains(config.output, "%") {
		return fmt.Errorf("output %q needs a %%d verb to hold %d frames", config.output, config.frames)
	}

	return nil
}

// setupLogging configures logrus from the CLI configuration. Logs go to
// stderr so stdout stays free for frame data.
func setupLogging(config *CLIConfig) error {
	level, err := logrus.ParseLevel(config.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", config.logLevel, err)
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	config, err := parseCLIFlags(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if config.help {
		printUsage(fs)
		os.Exit(0)
	}

	if err := validateCLIConfig(config); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n\n", err)
		printUsage(fs)
		os.Exit(1)
	}

	if err := setupLogging(config); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(config); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "main",
			"error":    err.Error(),
		}).Error("secamiz0r failed")
		os.Exit(1)
	}
}
