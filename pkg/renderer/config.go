package renderer

import (
	"errors"
	"fmt"
	"runtime"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum reflection/refraction bounces
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 10,
		MaxDepth:        30,
	}
}

// Config describes the image to render and how to parallelise it
type Config struct {
	Width    int
	Height   int
	Workers  int   // Number of parallel workers (0 = use CPU count)
	Seed     int64 // Base seed for sub-pixel jitter; row r uses Seed+r
	Sampling SamplingConfig
}

// DefaultConfig returns a 400x225 render with default sampling
func DefaultConfig() Config {
	return Config{
		Width:    400,
		Height:   225,
		Seed:     42,
		Sampling: DefaultSamplingConfig(),
	}
}

// ErrInvalidConfig is returned for configurations that cannot produce an image
var ErrInvalidConfig = errors.New("invalid render config")

// Validate checks dimensions and sampling parameters
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Sampling.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: %d samples per pixel", ErrInvalidConfig, c.Sampling.SamplesPerPixel)
	}
	if c.Sampling.MaxDepth < 0 {
		return fmt.Errorf("%w: negative max depth %d", ErrInvalidConfig, c.Sampling.MaxDepth)
	}
	return nil
}

// workerCount resolves the number of workers, never more than there are rows
func (c Config) workerCount() int {
	n := c.Workers
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n > c.Height {
		n = c.Height
	}
	return n
}
