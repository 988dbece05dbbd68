package loaders

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/df07/go-whitted-raytracer/pkg/transform"
)

// SceneFile is the document form of a YAML scene
type SceneFile struct {
	Camera     *CameraInput  `yaml:"camera"`
	Background []float64     `yaml:"background"`
	Objects    []ObjectInput `yaml:"objects"`
	Lights     []LightInput  `yaml:"lights"`
}

// CameraInput places the camera. Missing fields fall back to the default camera.
type CameraInput struct {
	LookFrom []float64 `yaml:"look_from"`
	LookAt   []float64 `yaml:"look_at"`
	Up       []float64 `yaml:"vup"`
	VFov     *float64  `yaml:"vfov"`
	Aperture float64   `yaml:"aperture"`
}

// ObjectInput is one primitive with its material and placement
type ObjectInput struct {
	Type      string          `yaml:"type"`
	Min       *float64        `yaml:"min"`
	Max       *float64        `yaml:"max"`
	Capped    bool            `yaml:"capped"`
	Material  MaterialInput   `yaml:"material"`
	Transform []TransformStep `yaml:"transform"`
}

// MaterialInput overrides the default material field by field
type MaterialInput struct {
	Colour          []float64     `yaml:"colour"`
	Pattern         *PatternInput `yaml:"pattern"`
	Ambient         *float64      `yaml:"ambient"`
	Diffuse         *float64      `yaml:"diffuse"`
	Specular        *float64      `yaml:"specular"`
	Shininess       *float64      `yaml:"shininess"`
	Reflective      *float64      `yaml:"reflective"`
	Reflectivity    *float64      `yaml:"reflectivity"` // Alias of reflective
	Transparency    *float64      `yaml:"transparency"`
	RefractiveIndex *float64      `yaml:"refractive_index"`
}

// PatternInput selects a two-colour pattern
type PatternInput struct {
	Type      string          `yaml:"type"`
	ColourA   []float64       `yaml:"colour_a"`
	ColourB   []float64       `yaml:"colour_b"`
	Transform []TransformStep `yaml:"transform"`
}

// LightInput is a point light
type LightInput struct {
	Position []float64 `yaml:"position"`
	Colour   []float64 `yaml:"colour"`
}

// TransformStep is either a single-key mapping such as `translate: [0, 1, 0]`
// or a tagged node such as `!Rotate_y 45`
type TransformStep struct {
	Op     string
	Values []float64
}

// UnmarshalYAML accepts either a sequence or a single number as the step's argument
func (s *TransformStep) UnmarshalYAML(value *yaml.Node) error {
	if isLocalTag(value.Tag) && value.Kind != yaml.MappingNode {
		s.Op = strings.ToLower(strings.TrimPrefix(value.Tag, "!"))
		arg := *value
		arg.Tag = ""
		arg.Style &^= yaml.TaggedStyle
		return s.decodeArgs(&arg)
	}

	if value.Kind != yaml.MappingNode || len(value.Content) != 2 {
		return fmt.Errorf("line %d: transform step must be a single-key mapping or a tagged value", value.Line)
	}
	key, arg := value.Content[0], value.Content[1]
	s.Op = strings.ToLower(key.Value)
	return s.decodeArgs(arg)
}

func (s *TransformStep) decodeArgs(arg *yaml.Node) error {
	switch arg.Kind {
	case yaml.SequenceNode:
		return arg.Decode(&s.Values)
	case yaml.ScalarNode:
		var v float64
		if err := arg.Decode(&v); err != nil {
			return err
		}
		s.Values = []float64{v}
		return nil
	default:
		return fmt.Errorf("line %d: invalid argument for %q", arg.Line, s.Op)
	}
}

// isLocalTag reports whether tag is an application tag like !Translate rather
// than a core schema tag like !!seq
func isLocalTag(tag string) bool {
	return strings.HasPrefix(tag, "!") && !strings.HasPrefix(tag, "!!") && len(tag) > 1
}

// ParseYAML decodes a scene document without building it
func ParseYAML(reader io.Reader) (*SceneFile, error) {
	var file SceneFile
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return &file, nil
		}
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	return &file, nil
}

// LoadYAMLScene reads and builds a scene file
func LoadYAMLScene(filename string) (*scene.Scene, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer f.Close()

	file, err := ParseYAML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	s, err := file.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// Build converts the document into a scene. Errors name the offending object or light.
func (f *SceneFile) Build() (*scene.Scene, error) {
	s := scene.New()

	if f.Camera != nil {
		camera, err := f.Camera.config()
		if err != nil {
			return nil, fmt.Errorf("camera: %w", err)
		}
		s.Camera = camera
	}

	if f.Background != nil {
		bg, err := toVec3(f.Background, "background")
		if err != nil {
			return nil, err
		}
		s.Background = bg
	}

	for i, obj := range f.Objects {
		shape, err := obj.shape()
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		m, err := obj.Material.build()
		if err != nil {
			return nil, fmt.Errorf("object %d: material: %w", i, err)
		}
		t, err := buildTransform(obj.Transform)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		s.Add(shape, t, m)
	}

	for i, light := range f.Lights {
		position, err := toVec3(light.Position, "position")
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		colour := core.NewVec3(1, 1, 1)
		if light.Colour != nil {
			if colour, err = toVec3(light.Colour, "colour"); err != nil {
				return nil, fmt.Errorf("light %d: %w", i, err)
			}
		}
		s.AddLight(position, colour)
	}

	return s, nil
}

func (c *CameraInput) config() (scene.CameraConfig, error) {
	config := scene.DefaultCameraConfig()
	var err error
	if c.LookFrom != nil {
		if config.LookFrom, err = toVec3(c.LookFrom, "look_from"); err != nil {
			return config, err
		}
	}
	if c.LookAt != nil {
		if config.LookAt, err = toVec3(c.LookAt, "look_at"); err != nil {
			return config, err
		}
	}
	if c.Up != nil {
		if config.Up, err = toVec3(c.Up, "vup"); err != nil {
			return config, err
		}
	}
	if c.VFov != nil {
		if *c.VFov <= 0 || *c.VFov >= 180 {
			return config, fmt.Errorf("vfov %g out of range (0, 180)", *c.VFov)
		}
		config.VFov = *c.VFov
	}
	if c.Aperture < 0 {
		return config, fmt.Errorf("negative aperture %g", c.Aperture)
	}
	config.Aperture = c.Aperture
	return config, nil
}

func (o *ObjectInput) shape() (geometry.Shape, error) {
	lo, hi := math.Inf(-1), math.Inf(1)
	if o.Min != nil {
		lo = *o.Min
	}
	if o.Max != nil {
		hi = *o.Max
	}

	switch strings.ToLower(o.Type) {
	case "sphere":
		return geometry.NewSphere(), nil
	case "plane":
		return geometry.NewPlane(), nil
	case "disc", "disk":
		return geometry.NewDisc(), nil
	case "box", "cube":
		return geometry.NewBox(), nil
	case "cylinder":
		return geometry.NewTruncatedCylinder(lo, hi, o.Capped), nil
	case "cone":
		return geometry.NewTruncatedCone(lo, hi, o.Capped), nil
	case "":
		return nil, errors.New("missing type")
	default:
		return nil, fmt.Errorf("unknown type %q", o.Type)
	}
}

func (in *MaterialInput) build() (*material.Material, error) {
	m := material.NewMaterial()

	if in.Colour != nil {
		colour, err := toVec3(in.Colour, "colour")
		if err != nil {
			return nil, err
		}
		m.Colour = colour
	}

	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&m.Ambient, in.Ambient)
	set(&m.Diffuse, in.Diffuse)
	set(&m.Specular, in.Specular)
	set(&m.Shininess, in.Shininess)
	set(&m.Reflective, in.Reflectivity)
	set(&m.Reflective, in.Reflective)
	set(&m.Transparency, in.Transparency)
	set(&m.RefractiveIndex, in.RefractiveIndex)

	if m.RefractiveIndex <= 0 {
		return nil, fmt.Errorf("refractive_index must be positive, got %g", m.RefractiveIndex)
	}

	if in.Pattern != nil {
		pattern, err := in.Pattern.build()
		if err != nil {
			return nil, fmt.Errorf("pattern: %w", err)
		}
		m.Pattern = pattern
	}
	return m, nil
}

func (in *PatternInput) build() (material.Pattern, error) {
	a, err := toVec3(in.ColourA, "colour_a")
	if err != nil {
		return nil, err
	}
	b, err := toVec3(in.ColourB, "colour_b")
	if err != nil {
		return nil, err
	}

	var pattern material.Pattern
	switch strings.ToLower(in.Type) {
	case "stripes":
		pattern = material.NewStripes(a, b)
	case "gradient":
		pattern = material.NewGradient(a, b)
	case "rings":
		pattern = material.NewRings(a, b)
	case "checkers":
		pattern = material.NewCheckers(a, b)
	default:
		return nil, fmt.Errorf("unknown type %q", in.Type)
	}

	t, err := buildTransform(in.Transform)
	if err != nil {
		return nil, err
	}
	pattern.SetTransform(t)
	return pattern, nil
}

// buildTransform appends the steps in order. Rotations are given in degrees.
func buildTransform(steps []TransformStep) (transform.Transform, error) {
	t := transform.Identity()
	for i, step := range steps {
		if err := applyStep(&t, step); err != nil {
			return t, fmt.Errorf("transform step %d (%s): %w", i, step.Op, err)
		}
	}
	return t, nil
}

func applyStep(t *transform.Transform, step TransformStep) error {
	want := map[string]int{
		"translate":     3,
		"scale":         3,
		"scale_uniform": 1,
		"rotate_x":      1,
		"rotate_y":      1,
		"rotate_z":      1,
		"shear":         6,
	}
	n, ok := want[step.Op]
	if !ok {
		return errors.New("unknown operation")
	}
	if len(step.Values) != n {
		return fmt.Errorf("expected %d values, got %d", n, len(step.Values))
	}

	v := step.Values
	switch step.Op {
	case "translate":
		t.Translate(v[0], v[1], v[2])
	case "scale":
		return t.Scale(v[0], v[1], v[2])
	case "scale_uniform":
		return t.ScaleUniform(v[0])
	case "rotate_x":
		t.Rotate(transform.AxisX, mgl64.DegToRad(v[0]))
	case "rotate_y":
		t.Rotate(transform.AxisY, mgl64.DegToRad(v[0]))
	case "rotate_z":
		t.Rotate(transform.AxisZ, mgl64.DegToRad(v[0]))
	case "shear":
		return t.Shear(v[0], v[1], v[2], v[3], v[4], v[5])
	}
	return nil
}

func toVec3(v []float64, field string) (core.Vec3, error) {
	if len(v) != 3 {
		return core.Vec3{}, fmt.Errorf("%s: expected 3 components, got %d", field, len(v))
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}
