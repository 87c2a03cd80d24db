package material

import (
	"testing"

	"github.com/df07/go-band-raytracer/pkg/core"
)

func TestMaterial_Lambert(t *testing.T) {
	red := NewMaterial(core.NewColor(1, 0, 0), 0.2)
	white := core.NewColor(1, 1, 1)

	tests := []struct {
		name     string
		cosTheta float32
		coef     float32
		expected core.Color
	}{
		{"head on", 1, 1, core.NewColor(1, 0, 0)},
		{"half angle", 0.5, 1, core.NewColor(0.5, 0, 0)},
		{"attenuated bounce", 1, 0.25, core.NewColor(0.25, 0, 0)},
		{"no energy left", 1, 0, core.NewColor(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := red.Lambert(white, tt.cosTheta, tt.coef)
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestMaterial_Valid(t *testing.T) {
	tests := []struct {
		reflection float32
		valid      bool
	}{
		{0, true},
		{0.5, true},
		{1, true},
		{-0.1, false},
		{1.01, false},
	}

	for _, tt := range tests {
		m := NewMaterial(core.NewColor(1, 1, 1), tt.reflection)
		if m.Valid() != tt.valid {
			t.Errorf("reflection %f: expected valid=%t", tt.reflection, tt.valid)
		}
	}
}
