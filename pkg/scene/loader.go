package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Masterminds/semver/v3"

	"github.com/df07/go-band-raytracer/pkg/core"
	"github.com/df07/go-band-raytracer/pkg/geometry"
	"github.com/df07/go-band-raytracer/pkg/lights"
	"github.com/df07/go-band-raytracer/pkg/material"
)

// FormatVersion is the scene file format version written by Encode
const FormatVersion = "1.0"

// supportedFormats is the range of scene file versions Decode accepts
const supportedFormats = "^1.0"

// File is the JSON representation of a scene
type File struct {
	Version   string         `json:"version,omitempty"`
	Spheres   []SphereFile   `json:"spheres"`
	Lights    []LightFile    `json:"lights"`
	Materials []MaterialFile `json:"materials"`
}

type SphereFile struct {
	Center   [3]float32 `json:"center"`
	Radius   float32    `json:"radius"`
	Material int        `json:"material"`
}

type LightFile struct {
	Position  [3]float32 `json:"position"`
	Intensity [3]float32 `json:"intensity"`
}

type MaterialFile struct {
	Diffuse    [3]float32 `json:"diffuse"`
	Reflection float32    `json:"reflection"`
}

// LoadFile reads and validates a JSON scene file
func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode parses a JSON scene and validates it
func Decode(r io.Reader) (*Scene, error) {
	var file File
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	if err := checkVersion(file.Version); err != nil {
		return nil, err
	}
	return file.Scene()
}

func checkVersion(version string) error {
	if version == "" {
		version = FormatVersion
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: bad version %q: %v", ErrInvalidScene, version, err)
	}
	c, err := semver.NewConstraint(supportedFormats)
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: unsupported scene format %s (want %s)", ErrInvalidScene, v, supportedFormats)
	}
	return nil
}

// Scene converts the file representation into a validated scene
func (f File) Scene() (*Scene, error) {
	spheres := make([]geometry.Sphere, len(f.Spheres))
	for i, s := range f.Spheres {
		spheres[i] = geometry.NewSphere(vec(s.Center), s.Radius, s.Material)
	}
	pointLights := make([]lights.PointLight, len(f.Lights))
	for i, l := range f.Lights {
		pointLights[i] = lights.NewPointLight(vec(l.Position), color(l.Intensity))
	}
	materials := make([]material.Material, len(f.Materials))
	for i, m := range f.Materials {
		materials[i] = material.NewMaterial(color(m.Diffuse), m.Reflection)
	}
	return New(spheres, pointLights, materials)
}

// Encode writes s as an indented JSON scene file
func Encode(w io.Writer, s *Scene) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToFile(s))
}

// ToFile converts a scene into its JSON representation
func ToFile(s *Scene) File {
	file := File{
		Version:   FormatVersion,
		Spheres:   make([]SphereFile, len(s.spheres)),
		Lights:    make([]LightFile, len(s.lights)),
		Materials: make([]MaterialFile, len(s.materials)),
	}
	for i, sp := range s.spheres {
		file.Spheres[i] = SphereFile{Center: arr(sp.Center), Radius: sp.Radius, Material: sp.MaterialIndex}
	}
	for i, l := range s.lights {
		file.Lights[i] = LightFile{Position: arr(l.Position), Intensity: [3]float32{l.Intensity.R, l.Intensity.G, l.Intensity.B}}
	}
	for i, m := range s.materials {
		file.Materials[i] = MaterialFile{Diffuse: [3]float32{m.Diffuse.R, m.Diffuse.G, m.Diffuse.B}, Reflection: m.Reflection}
	}
	return file
}

func vec(a [3]float32) core.Vec3 {
	return core.NewVec3(a[0], a[1], a[2])
}

func color(a [3]float32) core.Color {
	return core.NewColor(a[0], a[1], a[2])
}

func arr(v core.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}
