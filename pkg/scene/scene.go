package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-band-raytracer/pkg/geometry"
	"github.com/df07/go-band-raytracer/pkg/lights"
	"github.com/df07/go-band-raytracer/pkg/material"
)

// ErrInvalidScene is returned when a scene references data it does not have
// or carries values the renderer cannot use.
var ErrInvalidScene = errors.New("invalid scene")

// Scene contains all the elements needed for rendering. A Scene is built
// once and never mutated afterwards, so workers share it without locking.
type Scene struct {
	spheres   []geometry.Sphere
	lights    []lights.PointLight
	materials []material.Material
}

// New copies the given entities into a validated, immutable scene
func New(spheres []geometry.Sphere, pointLights []lights.PointLight, materials []material.Material) (*Scene, error) {
	s := &Scene{
		spheres:   append([]geometry.Sphere(nil), spheres...),
		lights:    append([]lights.PointLight(nil), pointLights...),
		materials: append([]material.Material(nil), materials...),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks material references and value ranges
func (s *Scene) Validate() error {
	for i, sphere := range s.spheres {
		if sphere.MaterialIndex < 0 || sphere.MaterialIndex >= len(s.materials) {
			return fmt.Errorf("%w: sphere %d references material %d, scene has %d materials",
				ErrInvalidScene, i, sphere.MaterialIndex, len(s.materials))
		}
		if !(sphere.Radius > 0) {
			return fmt.Errorf("%w: sphere %d has non-positive radius %v", ErrInvalidScene, i, sphere.Radius)
		}
	}
	for i, m := range s.materials {
		if !m.Valid() {
			return fmt.Errorf("%w: material %d reflection %v outside [0, 1]", ErrInvalidScene, i, m.Reflection)
		}
	}
	return nil
}

// Spheres returns the scene's spheres. The slice must not be modified.
func (s *Scene) Spheres() []geometry.Sphere { return s.spheres }

// Lights returns the scene's point lights. The slice must not be modified.
func (s *Scene) Lights() []lights.PointLight { return s.lights }

// Materials returns the scene's material table. The slice must not be modified.
func (s *Scene) Materials() []material.Material { return s.materials }

// MaterialOf returns the material of sphere i
func (s *Scene) MaterialOf(i int) material.Material {
	return s.materials[s.spheres[i].MaterialIndex]
}
