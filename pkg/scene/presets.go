package scene

import (
	"fmt"
	"math"
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/transform"
)

// PresetInfo describes a built-in scene
type PresetInfo struct {
	Name        string
	Description string
	Build       func() *Scene
}

var presets = map[string]PresetInfo{
	"spheres": {
		Name:        "spheres",
		Description: "Three spheres on a checkered floor",
		Build:       NewSpheresScene,
	},
	"shapes": {
		Name:        "shapes",
		Description: "One of each primitive with reflective and patterned materials",
		Build:       NewShapesScene,
	},
	"nested-glass": {
		Name:        "nested-glass",
		Description: "Two glass spheres inside a larger glass sphere",
		Build:       NewNestedGlassScene,
	},
}

// PresetNames returns the built-in scene names in alphabetical order
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns the built-in scene description for name
func Preset(name string) (PresetInfo, bool) {
	info, ok := presets[name]
	return info, ok
}

// NewPreset builds the built-in scene called name
func NewPreset(name string) (*Scene, error) {
	info, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", name)
	}
	return info.Build(), nil
}

// MustPlace returns a transform that scales uniformly then moves to position.
// It panics on a zero scale and is meant for scenes built from constants.
func MustPlace(position core.Vec3, scale float64) transform.Transform {
	t := transform.Identity()
	t.Translate(position.X, position.Y, position.Z)
	if err := t.ScaleUniform(scale); err != nil {
		panic(err)
	}
	return t
}

// NewSpheresScene creates three coloured spheres on a checkered floor
func NewSpheresScene() *Scene {
	s := New()
	s.Background = core.NewVec3(0.1, 0.1, 0.15)
	s.AddLight(core.NewVec3(-10, 10, -10), core.NewVec3(1, 1, 1))

	floor := material.NewMaterial()
	floor.Pattern = material.NewCheckers(core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(0.2, 0.2, 0.2))
	floor.Specular = 0
	floor.Reflective = 0.2
	s.Add(geometry.NewPlane(), transform.Identity(), floor)

	middle := material.NewColoured(core.NewVec3(0.1, 1, 0.5))
	middle.Diffuse = 0.7
	middle.Specular = 0.3
	s.Add(geometry.NewSphere(), MustPlace(core.NewVec3(-0.5, 1, 0.5), 1), middle)

	right := material.NewColoured(core.NewVec3(0.5, 1, 0.1))
	right.Diffuse = 0.7
	right.Specular = 0.3
	s.Add(geometry.NewSphere(), MustPlace(core.NewVec3(1.5, 0.5, -0.5), 0.5), right)

	left := material.NewColoured(core.NewVec3(1, 0.8, 0.1))
	left.Diffuse = 0.7
	left.Specular = 0.3
	left.Reflective = 0.3
	s.Add(geometry.NewSphere(), MustPlace(core.NewVec3(-1.5, 0.33, -0.75), 0.33), left)

	return s
}

// NewShapesScene creates one of each primitive on a striped floor
func NewShapesScene() *Scene {
	s := New()
	s.Camera.LookFrom = core.NewVec3(0, 3, -8)
	s.Camera.LookAt = core.NewVec3(0, 0.75, 0)
	s.Background = core.NewVec3(0.05, 0.05, 0.1)
	s.AddLight(core.NewVec3(-6, 10, -10), core.NewVec3(1, 1, 1))

	floor := material.NewMaterial()
	stripes := material.NewStripes(core.NewVec3(0.8, 0.8, 0.8), core.NewVec3(0.3, 0.3, 0.35))
	turned := transform.Identity()
	turned.Rotate(transform.AxisY, math.Pi/4)
	stripes.SetTransform(turned)
	floor.Pattern = stripes
	floor.Specular = 0
	s.Add(geometry.NewPlane(), transform.Identity(), floor)

	mirror := material.NewMirror()
	s.Add(geometry.NewSphere(), MustPlace(core.NewVec3(-3, 1, 1), 1), mirror)

	ringed := material.NewMaterial()
	ringed.Pattern = material.NewRings(core.NewVec3(0.9, 0.3, 0.2), core.NewVec3(0.9, 0.8, 0.3))
	ringed.Pattern.SetTransform(MustPlace(core.Vec3{}, 0.2))
	s.Add(geometry.NewTruncatedCylinder(0, 1.5, true), MustPlace(core.NewVec3(-0.75, 0, 2), 0.75), ringed)

	cone := material.NewColoured(core.NewVec3(0.2, 0.5, 0.9))
	coneT := transform.Identity()
	coneT.Translate(1, 1, 2)
	s.Add(geometry.NewTruncatedCone(-1, 0, true), coneT, cone)

	box := material.NewMaterial()
	box.Pattern = material.NewGradient(core.NewVec3(0.9, 0.1, 0.5), core.NewVec3(0.1, 0.4, 0.9))
	boxT := MustPlace(core.NewVec3(3, 0.75, 1), 0.75)
	boxT.Rotate(transform.AxisY, math.Pi/6)
	s.Add(geometry.NewBox(), boxT, box)

	glass := material.NewGlass(1.5)
	s.Add(geometry.NewSphere(), MustPlace(core.NewVec3(0.75, 0.6, -1.5), 0.6), glass)

	disc := material.NewColoured(core.NewVec3(0.9, 0.9, 0.2))
	discT := transform.Identity()
	discT.Translate(-2, 0.01, -1.5)
	discT.Rotate(transform.AxisX, -math.Pi/8)
	if err := discT.ScaleUniform(0.6); err != nil {
		panic(err)
	}
	s.Add(geometry.NewDisc(), discT, disc)

	return s
}

// NewNestedGlassScene creates a glass sphere holding two denser glass spheres
// in front of a checkered wall
func NewNestedGlassScene() *Scene {
	s := New()
	s.Camera.LookFrom = core.NewVec3(0, 0, -6)
	s.Camera.LookAt = core.NewVec3(0, 0, 0)
	s.Background = core.NewVec3(0.2, 0.2, 0.2)
	s.AddLight(core.NewVec3(-5, 5, -10), core.NewVec3(1, 1, 1))

	wall := material.NewMaterial()
	wall.Pattern = material.NewCheckers(core.NewVec3(0.15, 0.15, 0.15), core.NewVec3(0.85, 0.85, 0.85))
	wall.Ambient = 0.8
	wall.Diffuse = 0.2
	wall.Specular = 0
	wallT := transform.Identity()
	wallT.Translate(0, 0, 10)
	wallT.Rotate(transform.AxisX, math.Pi/2)
	s.Add(geometry.NewPlane(), wallT, wall)

	s.Add(geometry.NewSphere(), MustPlace(core.Vec3{}, 2), material.NewGlass(1.5))
	s.Add(geometry.NewSphere(), MustPlace(core.NewVec3(0, 0, -0.25), 1), material.NewGlass(2.0))
	s.Add(geometry.NewSphere(), MustPlace(core.NewVec3(0, 0, 0.25), 1), material.NewGlass(2.5))

	return s
}
