package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/transform"
)

// Pattern is a procedural colour function of a point in pattern space
type Pattern interface {
	// At evaluates the pattern at a point already mapped into pattern space
	At(point core.Vec3) core.Vec3
	// Transform places the pattern relative to the object it is painted on
	Transform() transform.Transform
	SetTransform(t transform.Transform)
}

// twoColour holds the colours and placement shared by every pattern
type twoColour struct {
	A, B      core.Vec3
	transform transform.Transform
}

func (p *twoColour) Transform() transform.Transform     { return p.transform }
func (p *twoColour) SetTransform(t transform.Transform) { p.transform = t }

func (p *twoColour) pick(even bool) core.Vec3 {
	if even {
		return p.A
	}
	return p.B
}

// isEven reports whether floor(f) is an even integer
func isEven(f float64) bool {
	return int64(math.Floor(f))%2 == 0
}

// Stripes alternates A and B across unit slabs along X
type Stripes struct{ twoColour }

func NewStripes(a, b core.Vec3) *Stripes {
	return &Stripes{twoColour{A: a, B: b}}
}

func (s *Stripes) At(point core.Vec3) core.Vec3 {
	return s.pick(isEven(point.X))
}

// Gradient blends from A to B across each unit interval of X
type Gradient struct{ twoColour }

func NewGradient(a, b core.Vec3) *Gradient {
	return &Gradient{twoColour{A: a, B: b}}
}

func (g *Gradient) At(point core.Vec3) core.Vec3 {
	return g.A.Lerp(g.B, point.X-math.Floor(point.X))
}

// Rings alternates A and B in concentric unit bands around the Y axis
type Rings struct{ twoColour }

func NewRings(a, b core.Vec3) *Rings {
	return &Rings{twoColour{A: a, B: b}}
}

func (r *Rings) At(point core.Vec3) core.Vec3 {
	return r.pick(isEven(math.Sqrt(point.X*point.X + point.Z*point.Z)))
}

// Checkers alternates A and B in a 3D grid of unit cubes
type Checkers struct{ twoColour }

func NewCheckers(a, b core.Vec3) *Checkers {
	return &Checkers{twoColour{A: a, B: b}}
}

func (c *Checkers) At(point core.Vec3) core.Vec3 {
	sum := math.Floor(point.X) + math.Floor(point.Y) + math.Floor(point.Z)
	return c.pick(isEven(sum))
}
