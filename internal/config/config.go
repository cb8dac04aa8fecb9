// Package config resolves featureviz settings from command-line flags,
// falling back to FEATUREVIZ_* environment variables and then defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cwbudde/algo-featureviz/render"
)

// Config holds the runtime configuration.
type Config struct {
	// Server
	Addr string

	// Dataset
	Dataset      string
	Extension    string
	Labels       int // seeded labels "0".."Labels-1"
	LabelPattern string
	Columns      int

	// Analysis
	SampleRate int
	Quality    string // resampler quality: fast, balanced, best

	// Figures
	Width, Height int

	// Logging
	LogLevel string
	Dev      bool

	// One-shot rendering: when RenderPath is set the binary renders that
	// file in Mode to Out and exits.
	RenderPath string
	Mode       string
	Out        string
}

// Load parses args (without the program name). Environment variables
// supply the defaults; explicit flags override them.
func Load(args []string, stderr io.Writer) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("featureviz", flag.ContinueOnError)
	if stderr != nil {
		fs.SetOutput(stderr)
	}
	fs.StringVar(&cfg.Addr, "addr", envStr("FEATUREVIZ_ADDR", ":8080"), "HTTP listen address")
	fs.StringVar(&cfg.Dataset, "dataset", envStr("FEATUREVIZ_DATASET", "audio"), "directory of labeled audio samples")
	fs.StringVar(&cfg.Extension, "ext", envStr("FEATUREVIZ_EXT", ".wav"), "sample file extension")
	fs.IntVar(&cfg.Labels, "labels", envInt("FEATUREVIZ_LABELS", 50), "number of seeded class labels \"0\"..\"n-1\"")
	fs.StringVar(&cfg.LabelPattern, "label-pattern", envStr("FEATUREVIZ_LABEL_PATTERN", ""), "regexp whose first group is the class label (default: text after the last '-')")
	fs.IntVar(&cfg.Columns, "columns", envInt("FEATUREVIZ_COLUMNS", 5), "samples shown per class")
	fs.IntVar(&cfg.SampleRate, "sr", envInt("FEATUREVIZ_SR", 22050), "analysis sample rate in Hz")
	fs.StringVar(&cfg.Quality, "quality", envStr("FEATUREVIZ_QUALITY", "balanced"), "resampler quality: fast, balanced, best")
	fs.IntVar(&cfg.Width, "width", envInt("FEATUREVIZ_WIDTH", 480), "figure width in pixels")
	fs.IntVar(&cfg.Height, "height", envInt("FEATUREVIZ_HEIGHT", 320), "figure height in pixels")
	fs.StringVar(&cfg.LogLevel, "log-level", envStr("FEATUREVIZ_LOG_LEVEL", "info"), "log level: debug, info, warn, error")
	fs.BoolVar(&cfg.Dev, "dev", envBool("FEATUREVIZ_DEV", false), "human-readable development logging")
	fs.StringVar(&cfg.RenderPath, "render", envStr("FEATUREVIZ_RENDER", ""), "render a single file instead of serving")
	fs.StringVar(&cfg.Mode, "mode", envStr("FEATUREVIZ_MODE", "1"), "visualization mode for -render (1-5 or name)")
	fs.StringVar(&cfg.Out, "out", envStr("FEATUREVIZ_OUT", "figure.png"), "output PNG path for -render")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("config: unexpected arguments %v", fs.Args())
	}
	return cfg, cfg.Validate()
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	var errs []error
	if c.Dataset == "" {
		errs = append(errs, errors.New("dataset directory is empty"))
	}
	if c.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("sample rate must be > 0: %d", c.SampleRate))
	}
	if c.Columns <= 0 {
		errs = append(errs, fmt.Errorf("columns must be > 0: %d", c.Columns))
	}
	if c.Width < render.MinWidth || c.Height < render.MinHeight {
		errs = append(errs, fmt.Errorf("figure size must be at least %dx%d: %dx%d", render.MinWidth, render.MinHeight, c.Width, c.Height))
	}
	if c.Labels < 0 {
		errs = append(errs, fmt.Errorf("labels must be >= 0: %d", c.Labels))
	}
	if c.RenderPath != "" && c.Out == "" {
		errs = append(errs, errors.New("-render requires -out"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
