package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Disc is the unit-radius disc in the XZ plane at y = 0
type Disc struct{}

// NewDisc creates a new disc
func NewDisc() *Disc {
	return &Disc{}
}

// Hit intersects the plane y = 0 and rejects points outside the unit radius
func (d *Disc) Hit(ray core.Ray, tMin, tMax float64, dst []float64) []float64 {
	t, ok := hitPlaneY(ray, 0)
	if !ok || !inRange(t, tMin, tMax) {
		return dst
	}
	if !withinRadius(ray, t, 1) {
		return dst
	}
	return append(dst, t)
}

// Normal is +Y everywhere
func (d *Disc) Normal(point core.Vec3) core.Vec3 {
	return core.NewVec3(0, 1, 0)
}

// withinRadius reports whether the ray at t lies within radius of the Y axis
func withinRadius(ray core.Ray, t, radius float64) bool {
	x := ray.Origin.X + t*ray.Direction.X
	z := ray.Origin.Z + t*ray.Direction.Z
	return x*x+z*z <= radius*radius
}
