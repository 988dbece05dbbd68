package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere is the unit sphere centred on the origin
type Sphere struct{}

// NewSphere creates a new sphere
func NewSphere() *Sphere {
	return &Sphere{}
}

// Hit solves |O + tD|² = 1
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64, dst []float64) []float64 {
	// Quadratic equation coefficients: at² + 2*halfB*t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := ray.Origin.Dot(ray.Direction)
	c := ray.Origin.Dot(ray.Origin) - 1

	discriminant := halfB*halfB - a*c
	if discriminant < 0 || a == 0 {
		return dst
	}

	// A tangent ray yields two equal roots
	sqrtD := math.Sqrt(discriminant)
	near := (-halfB - sqrtD) / a
	far := (-halfB + sqrtD) / a

	if inRange(near, tMin, tMax) {
		dst = append(dst, near)
	}
	if inRange(far, tMin, tMax) {
		dst = append(dst, far)
	}
	return dst
}

// Normal points from the centre to the surface point
func (s *Sphere) Normal(point core.Vec3) core.Vec3 {
	return point
}
