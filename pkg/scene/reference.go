package scene

import (
	"github.com/df07/go-band-raytracer/pkg/core"
	"github.com/df07/go-band-raytracer/pkg/geometry"
	"github.com/df07/go-band-raytracer/pkg/lights"
	"github.com/df07/go-band-raytracer/pkg/material"
)

// Reference image layout the reference scene was composed for
const (
	ReferenceWidth  = 800
	ReferenceHeight = 600
)

// NewReferenceScene creates the three-sphere scene: a red, a green and a
// blue sphere of increasing reflectivity lit by three point lights.
func NewReferenceScene() *Scene {
	materials := []material.Material{
		material.NewMaterial(core.NewColor(1, 0, 0), 0.2),
		material.NewMaterial(core.NewColor(0, 1, 0), 0.5),
		material.NewMaterial(core.NewColor(0, 0, 1), 0.9),
	}

	spheres := []geometry.Sphere{
		geometry.NewSphere(core.NewVec3(200, 300, 0), 100, 0),
		geometry.NewSphere(core.NewVec3(400, 400, 0), 100, 1),
		geometry.NewSphere(core.NewVec3(500, 140, 0), 100, 2),
	}

	pointLights := []lights.PointLight{
		lights.NewPointLight(core.NewVec3(0, 240, -100), core.NewColor(1, 1, 1)),
		lights.NewPointLight(core.NewVec3(3200, 3000, -1000), core.NewColor(0.6, 0.7, 1)),
		lights.NewPointLight(core.NewVec3(600, 0, -100), core.NewColor(0.3, 0.5, 1)),
	}

	s, err := New(spheres, pointLights, materials)
	if err != nil {
		// The literal above is known to be valid
		panic(err)
	}
	return s
}
