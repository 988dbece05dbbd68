package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cylinder is the unit-radius cylinder around the Y axis, truncated to Min < y < Max.
// Caps are only tested when Capped is set and both extents are finite.
type Cylinder struct {
	Min    float64
	Max    float64
	Capped bool
}

// NewCylinder creates an infinite, open cylinder
func NewCylinder() *Cylinder {
	return &Cylinder{Min: math.Inf(-1), Max: math.Inf(1)}
}

// NewTruncatedCylinder creates a cylinder spanning min < y < max
func NewTruncatedCylinder(min, max float64, capped bool) *Cylinder {
	return &Cylinder{Min: min, Max: max, Capped: capped}
}

// Hit solves x² + z² = 1 for the wall, then the optional caps
func (c *Cylinder) Hit(ray core.Ray, tMin, tMax float64, dst []float64) []float64 {
	a := ray.Direction.X*ray.Direction.X + ray.Direction.Z*ray.Direction.Z

	// Parallel to the axis: no wall hits, caps only
	if math.Abs(a) >= parallelEpsilon {
		b := 2*ray.Origin.X*ray.Direction.X + 2*ray.Origin.Z*ray.Direction.Z
		cc := ray.Origin.X*ray.Origin.X + ray.Origin.Z*ray.Origin.Z - 1

		if t0, t1, ok := solveQuadratic(a, b, cc); ok {
			dst = c.appendWall(ray, t0, tMin, tMax, dst)
			dst = c.appendWall(ray, t1, tMin, tMax, dst)
		}
	}

	return c.hitCaps(ray, tMin, tMax, dst)
}

func (c *Cylinder) appendWall(ray core.Ray, t, tMin, tMax float64, dst []float64) []float64 {
	if !inRange(t, tMin, tMax) {
		return dst
	}
	y := ray.Origin.Y + t*ray.Direction.Y
	if y > c.Min && y < c.Max {
		dst = append(dst, t)
	}
	return dst
}

func (c *Cylinder) hitCaps(ray core.Ray, tMin, tMax float64, dst []float64) []float64 {
	if !c.hasCaps() {
		return dst
	}
	for _, h := range [2]float64{c.Min, c.Max} {
		t, ok := hitPlaneY(ray, h)
		if ok && inRange(t, tMin, tMax) && withinRadius(ray, t, 1) {
			dst = append(dst, t)
		}
	}
	return dst
}

func (c *Cylinder) hasCaps() bool {
	return c.Capped && !math.IsInf(c.Min, 0) && !math.IsInf(c.Max, 0)
}

// Normal is radial on the wall and ±Y on the caps
func (c *Cylinder) Normal(point core.Vec3) core.Vec3 {
	if c.hasCaps() {
		dist := point.X*point.X + point.Z*point.Z
		if dist < 1 && point.Y >= c.Max-capEpsilon {
			return core.NewVec3(0, 1, 0)
		}
		if dist < 1 && point.Y <= c.Min+capEpsilon {
			return core.NewVec3(0, -1, 0)
		}
	}
	return core.NewVec3(point.X, 0, point.Z)
}
