package renderer

import (
	"errors"
	"runtime"
	"testing"

	"github.com/df07/go-band-raytracer/pkg/scene"
)

func TestDefaultConfig_ReferenceLayout(t *testing.T) {
	config := DefaultConfig()
	expected := Config{Width: scene.ReferenceWidth, Height: scene.ReferenceHeight, Workers: scene.ReferenceHeight}
	if config != expected {
		t.Errorf("Expected %+v, got %+v", expected, config)
	}
	if config.Width != 800 || config.Height != 600 {
		t.Errorf("Expected 800x600, got %dx%d", config.Width, config.Height)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{"default", DefaultConfig(), false},
		{"single worker", Config{Width: 800, Height: 600, Workers: 1}, false},
		{"auto workers", Config{Width: 800, Height: 600, Workers: 0}, false},
		{"uneven bands", Config{Width: 800, Height: 600, Workers: 7}, true},
		{"more workers than rows", Config{Width: 10, Height: 4, Workers: 8}, true},
		{"negative workers", Config{Width: 10, Height: 10, Workers: -1}, true},
		{"zero width", Config{Width: 0, Height: 10, Workers: 1}, true},
		{"negative height", Config{Width: 10, Height: -10, Workers: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("Expected ErrInvalidConfig, got %v", err)
				}
			} else if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_ResolveWorkers(t *testing.T) {
	if got := (Config{Width: 8, Height: 600, Workers: 25}).ResolveWorkers(); got != 25 {
		t.Errorf("Expected explicit worker count to be kept, got %d", got)
	}

	got := Config{Width: 8, Height: 600}.ResolveWorkers()
	if got < 1 || got > runtime.NumCPU() || 600%got != 0 {
		t.Errorf("Auto worker count %d must divide 600 and not exceed %d CPUs", got, runtime.NumCPU())
	}
}

func TestLargestDivisorAtMost(t *testing.T) {
	tests := []struct {
		n, limit, expected int
	}{
		{600, 8, 8},
		{600, 7, 6},
		{600, 1, 1},
		{7, 4, 1},
		{12, 100, 12},
		{1, 16, 1},
	}

	for _, tt := range tests {
		if got := largestDivisorAtMost(tt.n, tt.limit); got != tt.expected {
			t.Errorf("largestDivisorAtMost(%d, %d): expected %d, got %d", tt.n, tt.limit, tt.expected, got)
		}
	}
}
