// Package material implements Phong surface materials, procedural colour
// patterns and the Schlick approximation used to blend reflection with
// refraction.
package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/transform"
)

// Material describes how a surface responds to light. A material is read-only
// once the scene is built and may be shared by any number of objects.
type Material struct {
	Colour  core.Vec3 // Flat colour, used when Pattern is nil
	Pattern Pattern   // Optional procedural colour

	Ambient   float64
	Diffuse   float64
	Specular  float64
	Shininess float64

	Reflective      float64 // Fraction of light mirrored, in [0, 1]
	Transparency    float64 // Fraction of light transmitted, in [0, 1]
	RefractiveIndex float64 // 1.0 is vacuum
}

// NewMaterial creates a white matte material with the default Phong coefficients
func NewMaterial() *Material {
	return &Material{
		Colour:          core.NewVec3(1, 1, 1),
		Ambient:         0.1,
		Diffuse:         0.9,
		Specular:        0.9,
		Shininess:       200,
		RefractiveIndex: 1,
	}
}

// NewColoured creates a default material with a flat colour
func NewColoured(colour core.Vec3) *Material {
	m := NewMaterial()
	m.Colour = colour
	return m
}

// NewGlass creates a clear, slightly reflective transparent material
func NewGlass(refractiveIndex float64) *Material {
	m := NewMaterial()
	m.Colour = core.NewVec3(0, 0, 0)
	m.Diffuse = 0.1
	m.Reflective = 0.9
	m.Transparency = 1
	m.RefractiveIndex = refractiveIndex
	return m
}

// NewMirror creates a dark, fully reflective material
func NewMirror() *Material {
	m := NewMaterial()
	m.Colour = core.NewVec3(0, 0, 0)
	m.Diffuse = 0.1
	m.Reflective = 1
	return m
}

// ColourAt returns the surface colour at a world-space point on an object
// placed by objectTransform
func (m *Material) ColourAt(point core.Vec3, objectTransform transform.Transform) core.Vec3 {
	if m.Pattern == nil {
		return m.Colour
	}
	objectPoint := objectTransform.InversePoint(point)
	patternTransform := m.Pattern.Transform()
	return m.Pattern.At(patternTransform.InversePoint(objectPoint))
}

// Lighting evaluates the Phong model for one light. eye and normal must be
// unit vectors; colour is the surface colour already resolved by ColourAt.
// A shadowed point receives only the ambient term.
func (m *Material) Lighting(light *lights.PointLight, point, eye, normal, colour core.Vec3, inShadow bool) core.Vec3 {
	effective := colour.MultiplyVec(light.Intensity)
	ambient := effective.Multiply(m.Ambient)
	if inShadow {
		return ambient
	}

	lightDir := light.Sample(point).Direction
	lightDotNormal := lightDir.Dot(normal)
	if lightDotNormal < 0 {
		// Light is on the far side of the surface
		return ambient
	}

	diffuse := effective.Multiply(m.Diffuse * lightDotNormal)

	specular := core.Vec3{}
	reflectDotEye := core.Reflect(lightDir.Negate(), normal).Dot(eye)
	if reflectDotEye > 0 {
		factor := math.Pow(reflectDotEye, m.Shininess)
		specular = light.Intensity.Multiply(m.Specular * factor)
	}

	return ambient.Add(diffuse).Add(specular)
}
