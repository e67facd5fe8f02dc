// Package config holds the settings shared by the CLI, the batch runner and
// the MCP server, with defaults and environment overrides.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/dividenconquer/blurhash-generator/internal/blurhash"
)

// Environment variables read by FromEnv.
const (
	EnvXComponents  = "BLURHASH_X_COMPONENTS"
	EnvYComponents  = "BLURHASH_Y_COMPONENTS"
	EnvMaxDimension = "BLURHASH_MAX_DIMENSION"
	EnvMaxPixels    = "BLURHASH_MAX_PIXELS"
	EnvWorkers      = "BLURHASH_WORKERS"
	EnvPunch        = "BLURHASH_PUNCH"
	EnvGamma        = "BLURHASH_GAMMA"
	EnvLogLevel     = "BLURHASH_LOG_LEVEL"
)

// Config is the resolved settings for one process.
type Config struct {
	XComponents  int
	YComponents  int
	MaxDimension int // longest side images are shrunk to before encoding; 0 keeps full size
	MaxPixels    int // batch runs skip images with more pixels than this; 0 disables the limit
	DecodeWidth  int
	DecodeHeight int
	Punch        float64
	Workers      int
	Gamma        blurhash.Gamma
	Debug        bool
}

// Default returns the built-in settings: 4x3 components, 64 pixel encode
// box, a 10 megapixel batch limit, 32x32 decode, punch 1, one worker per
// CPU, sRGB.
func Default() Config {
	return Config{
		XComponents:  4,
		YComponents:  3,
		MaxDimension: 64,
		MaxPixels:    10_000_000,
		DecodeWidth:  32,
		DecodeHeight: 32,
		Punch:        1,
		Workers:      runtime.NumCPU(),
		Gamma:        blurhash.SRGB,
	}
}

// Load is FromEnv over the process environment.
func Load() (Config, error) {
	return FromEnv(os.Getenv)
}

// FromEnv overlays the BLURHASH_* variables returned by getenv on Default.
// Unset or empty variables keep their default.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()

	ints := []struct {
		key string
		dst *int
	}{
		{EnvXComponents, &cfg.XComponents},
		{EnvYComponents, &cfg.YComponents},
		{EnvMaxDimension, &cfg.MaxDimension},
		{EnvMaxPixels, &cfg.MaxPixels},
		{EnvWorkers, &cfg.Workers},
	}
	for _, v := range ints {
		s := strings.TrimSpace(getenv(v.key))
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", v.key, err)
		}
		*v.dst = n
	}

	if s := strings.TrimSpace(getenv(EnvPunch)); s != "" {
		p, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvPunch, err)
		}
		cfg.Punch = p
	}

	if s := getenv(EnvGamma); s != "" {
		g, err := blurhash.ParseGamma(s)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvGamma, err)
		}
		cfg.Gamma = g
	}

	cfg.Debug = strings.EqualFold(strings.TrimSpace(getenv(EnvLogLevel)), "debug")
	return cfg, nil
}

// Validate checks that every field is in range.
func (c Config) Validate() error {
	if c.XComponents < 1 || c.XComponents > 9 || c.YComponents < 1 || c.YComponents > 9 {
		return fmt.Errorf("components %dx%d: each must be between 1 and 9", c.XComponents, c.YComponents)
	}
	if c.MaxDimension < 0 {
		return fmt.Errorf("max dimension %d must not be negative", c.MaxDimension)
	}
	if c.MaxPixels < 0 {
		return fmt.Errorf("max pixels %d must not be negative", c.MaxPixels)
	}
	if c.DecodeWidth <= 0 || c.DecodeHeight <= 0 {
		return fmt.Errorf("decode size %dx%d must be positive", c.DecodeWidth, c.DecodeHeight)
	}
	if c.Punch <= 0 {
		return fmt.Errorf("punch %v must be positive", c.Punch)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers %d must be at least 1", c.Workers)
	}
	return nil
}

// Options returns the codec options for c.
func (c Config) Options() blurhash.Options {
	return blurhash.Options{Gamma: c.Gamma, Punch: c.Punch}
}
