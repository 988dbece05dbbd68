package material

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/transform"
)

func TestNewMaterial_Defaults(t *testing.T) {
	m := NewMaterial()
	if m.Colour != core.NewVec3(1, 1, 1) {
		t.Errorf("Expected white, got %v", m.Colour)
	}
	if m.Ambient != 0.1 || m.Diffuse != 0.9 || m.Specular != 0.9 || m.Shininess != 200 {
		t.Errorf("Unexpected Phong coefficients: %+v", m)
	}
	if m.Reflective != 0 || m.Transparency != 0 || m.RefractiveIndex != 1 {
		t.Errorf("Default material should be opaque vacuum-index, got %+v", m)
	}
}

func TestMaterial_Lighting(t *testing.T) {
	m := NewMaterial()
	white := core.NewVec3(1, 1, 1)
	position := core.NewVec3(0, 0, 0)
	normal := core.NewVec3(0, 0, -1)
	s2 := math.Sqrt2 / 2

	tests := []struct {
		name     string
		eye      core.Vec3
		light    core.Vec3
		inShadow bool
		expected float64
	}{
		{"eye between light and surface", core.NewVec3(0, 0, -1), core.NewVec3(0, 0, -10), false, 1.9},
		{"eye offset 45 degrees", core.NewVec3(0, s2, -s2), core.NewVec3(0, 0, -10), false, 1.0},
		{"light offset 45 degrees", core.NewVec3(0, 0, -1), core.NewVec3(0, 10, -10), false, 0.7364},
		{"eye in the reflection path", core.NewVec3(0, -s2, -s2), core.NewVec3(0, 10, -10), false, 1.6364},
		{"light behind the surface", core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 10), false, 0.1},
		{"in shadow", core.NewVec3(0, 0, -1), core.NewVec3(0, 0, -10), true, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			light := lights.NewPointLight(tt.light, white)
			result := m.Lighting(light, position, tt.eye, normal, m.Colour, tt.inShadow)
			expected := core.NewVec3(tt.expected, tt.expected, tt.expected)
			if !result.ApproxEqual(expected, 1e-4) {
				t.Errorf("Expected %v, got %v", expected, result)
			}
		})
	}
}

func TestMaterial_Lighting_UsesLightColour(t *testing.T) {
	m := NewMaterial()
	m.Specular = 0
	light := lights.NewPointLight(core.NewVec3(0, 0, -10), core.NewVec3(1, 0, 0))
	normal := core.NewVec3(0, 0, -1)

	result := m.Lighting(light, core.Vec3{}, normal, normal, core.NewVec3(0.5, 0.5, 0.5), false)
	expected := core.NewVec3(0.5, 0, 0)
	if !result.ApproxEqual(expected, 1e-9) {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestMaterial_ColourAt(t *testing.T) {
	white := core.NewVec3(1, 1, 1)
	black := core.NewVec3(0, 0, 0)

	scaled := transform.Identity()
	if err := scaled.ScaleUniform(2); err != nil {
		t.Fatal(err)
	}
	shifted := transform.Identity()
	shifted.Translate(0.5, 0, 0)

	tests := []struct {
		name     string
		object   transform.Transform
		pattern  transform.Transform
		point    core.Vec3
		expected core.Vec3
	}{
		{"object transform", scaled, transform.Identity(), core.NewVec3(1.5, 0, 0), white},
		{"pattern transform", transform.Identity(), scaled, core.NewVec3(1.5, 0, 0), white},
		{"object then pattern", scaled, shifted, core.NewVec3(2.5, 0, 0), white},
		{"untransformed", transform.Identity(), transform.Identity(), core.NewVec3(1.5, 0, 0), black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMaterial()
			m.Pattern = NewStripes(white, black)
			m.Pattern.SetTransform(tt.pattern)
			if c := m.ColourAt(tt.point, tt.object); !c.ApproxEqual(tt.expected, 1e-9) {
				t.Errorf("Expected %v, got %v", tt.expected, c)
			}
		})
	}
}

func TestMaterial_ColourAt_FlatColour(t *testing.T) {
	m := NewColoured(core.NewVec3(0.2, 0.4, 0.6))
	if c := m.ColourAt(core.NewVec3(5, -3, 2), transform.Identity()); c != m.Colour {
		t.Errorf("Expected flat colour %v, got %v", m.Colour, c)
	}
}
