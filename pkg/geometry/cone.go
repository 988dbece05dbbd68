package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cone is the double cone x² - y² + z² = 0 around the Y axis, truncated to Min < y < Max.
// A cap at height h has radius |h|.
type Cone struct {
	Min    float64
	Max    float64
	Capped bool
}

// NewCone creates an infinite, open double cone
func NewCone() *Cone {
	return &Cone{Min: math.Inf(-1), Max: math.Inf(1)}
}

// NewTruncatedCone creates a cone spanning min < y < max
func NewTruncatedCone(min, max float64, capped bool) *Cone {
	return &Cone{Min: min, Max: max, Capped: capped}
}

// Hit solves the cone quadratic, falling back to the linear case when the
// ray is parallel to one of the cone halves
func (c *Cone) Hit(ray core.Ray, tMin, tMax float64, dst []float64) []float64 {
	o, d := ray.Origin, ray.Direction
	a := d.X*d.X - d.Y*d.Y + d.Z*d.Z
	b := 2*o.X*d.X - 2*o.Y*d.Y + 2*o.Z*d.Z
	cc := o.X*o.X - o.Y*o.Y + o.Z*o.Z

	switch {
	case math.Abs(a) < parallelEpsilon:
		// b*t + c = 0: a single intersection with the other half, none when b vanishes too
		if math.Abs(b) >= parallelEpsilon {
			dst = c.appendWall(ray, -cc/b, tMin, tMax, dst)
		}
	default:
		if t0, t1, ok := solveQuadratic(a, b, cc); ok {
			dst = c.appendWall(ray, t0, tMin, tMax, dst)
			dst = c.appendWall(ray, t1, tMin, tMax, dst)
		}
	}

	return c.hitCaps(ray, tMin, tMax, dst)
}

func (c *Cone) appendWall(ray core.Ray, t, tMin, tMax float64, dst []float64) []float64 {
	if !inRange(t, tMin, tMax) {
		return dst
	}
	y := ray.Origin.Y + t*ray.Direction.Y
	if y > c.Min && y < c.Max {
		dst = append(dst, t)
	}
	return dst
}

func (c *Cone) hitCaps(ray core.Ray, tMin, tMax float64, dst []float64) []float64 {
	if !c.hasCaps() {
		return dst
	}
	for _, h := range [2]float64{c.Min, c.Max} {
		t, ok := hitPlaneY(ray, h)
		if ok && inRange(t, tMin, tMax) && withinRadius(ray, t, math.Abs(h)) {
			dst = append(dst, t)
		}
	}
	return dst
}

func (c *Cone) hasCaps() bool {
	return c.Capped && !math.IsInf(c.Min, 0) && !math.IsInf(c.Max, 0)
}

// Normal slopes away from the axis on the wall and is ±Y on the caps
func (c *Cone) Normal(point core.Vec3) core.Vec3 {
	dist := point.X*point.X + point.Z*point.Z
	if c.hasCaps() {
		if point.Y >= c.Max-capEpsilon && dist <= c.Max*c.Max {
			return core.NewVec3(0, 1, 0)
		}
		if point.Y <= c.Min+capEpsilon && dist <= c.Min*c.Min {
			return core.NewVec3(0, -1, 0)
		}
	}

	y := math.Sqrt(dist)
	if point.Y > 0 {
		y = -y
	}
	return core.NewVec3(point.X, y, point.Z)
}
