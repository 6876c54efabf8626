package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/pflag"
)

// Config holds everything the smoke test needs to bring up a window.
type Config struct {
	Title      string
	Width      int32
	Height     int32
	ClearColor [4]float32
	Driver     string
	VSync      bool
	Resizable  bool
	Overlay    bool
	MaxFrames  uint64
	Duration   time.Duration
	LogLevel   log.Level
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		Title:      "Tes SDL",
		Width:      800,
		Height:     600,
		ClearColor: [4]float32{0, 0, 0, 1},
		LogLevel:   log.InfoLevel,
	}
}

// Parse reads the command line into a Config. Usage goes to output.
// A request for help is reported as pflag.ErrHelp.
func Parse(name string, args []string, output io.Writer) (Config, error) {
	cfg := Default()
	var (
		clearColor string
		logLevel   string
	)

	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.SetOutput(output)
	flags.StringVar(&cfg.Title, "title", cfg.Title, "window title")
	flags.Int32Var(&cfg.Width, "width", cfg.Width, "window width in screen coordinates")
	flags.Int32Var(&cfg.Height, "height", cfg.Height, "window height in screen coordinates")
	flags.StringVar(&clearColor, "clear-color", "#000000", "color the screen is cleared to each frame")
	flags.StringVar(&cfg.Driver, "driver", "", "SDL render driver (software, opengl, ...); empty picks the default")
	flags.BoolVar(&cfg.VSync, "vsync", false, "synchronize present with the display refresh")
	flags.BoolVar(&cfg.Resizable, "resizable", false, "allow the window to be resized")
	flags.BoolVar(&cfg.Overlay, "overlay", false, "draw the diagnostics overlay")
	flags.Uint64Var(&cfg.MaxFrames, "frames", 0, "stop after this many frames (0 runs until quit)")
	flags.DurationVar(&cfg.Duration, "duration", 0, "stop after this long (0 runs until quit)")
	flags.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")

	if err := flags.Parse(args); err != nil {
		return cfg, err
	}
	if flags.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected arguments: %s", strings.Join(flags.Args(), " "))
	}

	color, err := ParseColor(clearColor)
	if err != nil {
		return cfg, err
	}
	cfg.ClearColor = color

	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return cfg, fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
	}
	cfg.LogLevel = level

	return cfg, cfg.Validate()
}

// ParseColor turns a "#rrggbb" string into an opaque RGBA quadruple in 0..1.
func ParseColor(s string) ([4]float32, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return [4]float32{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), 1}, nil
}

// Validate reports the first problem with cfg.
func (cfg Config) Validate() error {
	switch {
	case cfg.Width <= 0 || cfg.Height <= 0:
		return fmt.Errorf("invalid window size %dx%d", cfg.Width, cfg.Height)
	case cfg.Duration < 0:
		return errors.New("duration must not be negative")
	}
	return nil
}
