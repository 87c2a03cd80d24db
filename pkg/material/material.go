package material

import "github.com/df07/go-band-raytracer/pkg/core"

// Material describes how a surface responds to light
type Material struct {
	Diffuse    core.Color // Modulates direct (Lambertian) lighting
	Reflection float32    // Fraction of energy carried into the next bounce, in [0, 1]
}

// NewMaterial creates a new material
func NewMaterial(diffuse core.Color, reflection float32) Material {
	return Material{Diffuse: diffuse, Reflection: reflection}
}

// Lambert returns the diffuse contribution of a light with the given
// intensity arriving at cosine cosTheta, already attenuated by coef.
func (m Material) Lambert(intensity core.Color, cosTheta, coef float32) core.Color {
	lambert := cosTheta * coef
	return core.Color{
		R: lambert * intensity.R * m.Diffuse.R,
		G: lambert * intensity.G * m.Diffuse.G,
		B: lambert * intensity.B * m.Diffuse.B,
	}
}

// Valid reports whether the reflection factor is within [0, 1]
func (m Material) Valid() bool {
	return m.Reflection >= 0 && m.Reflection <= 1
}
