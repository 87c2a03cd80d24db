package geometry

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-band-raytracer/pkg/core"
)

// Epsilon is the minimum accepted hit distance. Hits closer than this are
// treated as the surface a reflected ray just left.
const Epsilon float32 = 0.001

// Sphere represents a sphere shape. Materials are shared, so a sphere only
// stores the index of its material in the scene's material table.
type Sphere struct {
	Center        core.Vec3
	Radius        float32
	MaterialIndex int
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float32, materialIndex int) Sphere {
	return Sphere{
		Center:        center,
		Radius:        radius,
		MaterialIndex: materialIndex,
	}
}

// Intersect is the method form of IntersectRaySphere
func (s Sphere) Intersect(ray core.Ray, closest *float32) bool {
	return IntersectRaySphere(ray, s, closest)
}

// Normal returns the unnormalized surface normal at point
func (s Sphere) Normal(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center)
}

// IntersectRaySphere reports whether ray hits sphere strictly closer than
// *closest and farther than Epsilon. On a hit *closest is updated to the new
// distance; otherwise it is left untouched. Only the distance is reported, so
// callers testing several spheres remember which one produced the last hit.
func IntersectRaySphere(ray core.Ray, sphere Sphere, closest *float32) bool {
	// Quadratic equation coefficients: At² + Bt + C = 0
	a := ray.Direction.Dot(ray.Direction)
	oc := ray.Origin.Subtract(sphere.Center)
	b := 2 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - sphere.Radius*sphere.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return false
	}

	sqrtD := math32.Sqrt(discriminant)
	t0 := (-b + sqrtD) / (2 * a)
	t1 := (-b - sqrtD) / (2 * a)
	if t0 > t1 {
		t0 = t1
	}

	if t0 > Epsilon && t0 < *closest {
		*closest = t0
		return true
	}
	return false
}

// Nearest tests ray against every sphere, threading one closest distance
// through all of them. It returns the index of the nearest sphere hit closer
// than tMax, or -1 if nothing was hit.
func Nearest(ray core.Ray, spheres []Sphere, tMax float32) (int, float32) {
	closest := tMax
	index := -1
	for i := range spheres {
		if IntersectRaySphere(ray, spheres[i], &closest) {
			index = i
		}
	}
	return index, closest
}
