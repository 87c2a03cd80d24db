package integrator

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-band-raytracer/pkg/core"
	"github.com/df07/go-band-raytracer/pkg/geometry"
	"github.com/df07/go-band-raytracer/pkg/scene"
)

const (
	// MaxBounces caps the reflection chain of a single primary ray
	MaxBounces = 15
	// MaxDistance is the initial closest-hit distance; anything farther is a miss
	MaxDistance float32 = 20000
	// CameraZ is the plane primary rays start from
	CameraZ float32 = -2000
)

// Termination says why a trace stopped
type Termination int

const (
	// Escaped: the ray left the scene without hitting a sphere
	Escaped Termination = iota
	// Degenerate: the hit point coincided with a sphere center
	Degenerate
	// Absorbed: a material with zero reflection consumed the remaining energy
	Absorbed
	// BounceLimit: MaxBounces reflections were traced
	BounceLimit
)

func (t Termination) String() string {
	switch t {
	case Escaped:
		return "escaped"
	case Degenerate:
		return "degenerate"
	case Absorbed:
		return "absorbed"
	case BounceLimit:
		return "bounce-limit"
	default:
		return "unknown"
	}
}

// TraceResult describes how a single trace went
type TraceResult struct {
	Bounces     int         // Number of shading steps performed
	Coefficient float32     // Energy left for the next bounce when the trace stopped
	FirstHit    int         // Index of the sphere hit by the primary ray, -1 on miss
	Reason      Termination // Why the trace stopped
}

// Whitted shades rays with Lambertian direct lighting plus iterative mirror
// reflection. It holds only a reference to an immutable scene, so a single
// instance may be shared by any number of goroutines.
type Whitted struct {
	scene *scene.Scene
}

// NewWhitted creates a new integrator for s
func NewWhitted(s *scene.Scene) *Whitted {
	return &Whitted{scene: s}
}

// PrimaryRay returns the orthographic ray for pixel (x, y)
func PrimaryRay(x, y int) core.Ray {
	return core.NewRay(core.NewVec3(float32(x), float32(y), CameraZ), core.NewVec3(0, 0, 1))
}

// PixelColor traces the primary ray of pixel (x, y)
func (w *Whitted) PixelColor(x, y int) (core.Color, TraceResult) {
	return w.Trace(PrimaryRay(x, y))
}

// Trace follows ray through the scene, accumulating direct light at every
// hit and continuing along the mirror direction while energy remains.
func (w *Whitted) Trace(ray core.Ray) (core.Color, TraceResult) {
	spheres := w.scene.Spheres()
	pointLights := w.scene.Lights()

	var color core.Color
	result := TraceResult{Coefficient: 1, FirstHit: -1}

	for {
		// Seeking hit
		current, t := geometry.Nearest(ray, spheres, MaxDistance)
		if current == -1 {
			result.Reason = Escaped
			return color, result
		}
		if result.Bounces == 0 {
			result.FirstHit = current
		}

		hitPoint := ray.At(t)
		normal := spheres[current].Normal(hitPoint)
		lengthSq := normal.Dot(normal)
		if lengthSq == 0 {
			result.Reason = Degenerate
			return color, result
		}
		normal = normal.Multiply(1 / math32.Sqrt(lengthSq))

		// Shading
		mat := w.scene.MaterialOf(current)
		for _, light := range pointLights {
			lightDir, lit := light.Illuminates(hitPoint, normal)
			if !lit {
				continue
			}
			color = color.Add(mat.Lambert(light.Intensity, lightDir.Dot(normal), result.Coefficient))
		}

		// Reflecting
		result.Coefficient *= mat.Reflection
		ray = core.NewRay(hitPoint, ray.Direction.Reflect(normal))
		result.Bounces++

		if !(result.Coefficient > 0) {
			result.Reason = Absorbed
			return color, result
		}
		if result.Bounces >= MaxBounces {
			result.Reason = BounceLimit
			return color, result
		}
	}
}
