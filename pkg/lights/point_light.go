package lights

import "github.com/df07/go-band-raytracer/pkg/core"

// PointLight is an omnidirectional light with no distance falloff.
// It is never occluded: every surface facing it receives its full intensity.
type PointLight struct {
	Position  core.Vec3
	Intensity core.Color
}

// NewPointLight creates a new point light
func NewPointLight(position core.Vec3, intensity core.Color) PointLight {
	return PointLight{Position: position, Intensity: intensity}
}

// Illuminates returns the unit direction from point toward the light and
// whether a surface at point with unit normal faces it.
func (l PointLight) Illuminates(point, normal core.Vec3) (core.Vec3, bool) {
	dist := l.Position.Subtract(point)
	if normal.Dot(dist) <= 0 {
		return core.Vec3{}, false
	}
	length := dist.Length()
	if length <= 0 {
		return core.Vec3{}, false
	}
	return dist.Multiply(1 / length), true
}
