package renderer

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/df07/go-band-raytracer/pkg/scene"
)

// ErrInvalidConfig is returned before any worker starts when the image size
// or worker count cannot be rendered.
var ErrInvalidConfig = errors.New("invalid render config")

// Config contains the render invocation parameters
type Config struct {
	Width   int // Image width in pixels
	Height  int // Image height in pixels
	Workers int // Number of bands/workers; must divide Height (0 = pick from CPU count)
}

// DefaultConfig returns the reference scene's layout with one worker per
// 1-row band
func DefaultConfig() Config {
	return Config{
		Width:   scene.ReferenceWidth,
		Height:  scene.ReferenceHeight,
		Workers: scene.ReferenceHeight,
	}
}

// Validate checks the config. Uneven bands are rejected rather than
// truncated so no row is ever silently dropped.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: worker count %d is negative", ErrInvalidConfig, c.Workers)
	}
	if c.Workers > 0 && c.Height%c.Workers != 0 {
		return fmt.Errorf("%w: %d workers do not evenly divide height %d", ErrInvalidConfig, c.Workers, c.Height)
	}
	return nil
}

// ResolveWorkers returns the worker count to use, resolving 0 to the largest
// divisor of Height that does not exceed the CPU count.
func (c Config) ResolveWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return largestDivisorAtMost(c.Height, runtime.NumCPU())
}

func largestDivisorAtMost(n, limit int) int {
	for d := min(n, limit); d > 1; d-- {
		if n%d == 0 {
			return d
		}
	}
	return 1
}
