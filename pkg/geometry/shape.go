// Package geometry holds the canonical object-space primitives. Every shape is
// centred on the origin at unit size; instances are placed in the world by a
// transform owned by the scene object wrapping the shape.
package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// parallelEpsilon below which a ray direction component counts as zero
const parallelEpsilon = 1e-8

// capEpsilon decides whether a point lies on a cap rather than the wall
const capEpsilon = 1e-6

// Shape interface for object-space primitives hit by object-space rays
type Shape interface {
	// Hit appends every root t of the ray against the shape with tMin <= t <= tMax to dst.
	// Roots are not sorted.
	Hit(ray core.Ray, tMin, tMax float64, dst []float64) []float64
	// Normal returns the outward object-space normal at an object-space point on the surface.
	// The result need not be unit length.
	Normal(point core.Vec3) core.Vec3
}

func inRange(t, tMin, tMax float64) bool {
	return t >= tMin && t <= tMax
}

// solveQuadratic returns the roots of a*t² + b*t + c = 0 in ascending order.
// ok is false when the discriminant is negative.
func solveQuadratic(a, b, c float64) (t0, t1 float64, ok bool) {
	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, 0, false
	}
	sqrtD := math.Sqrt(discriminant)
	t0 = (-b - sqrtD) / (2 * a)
	t1 = (-b + sqrtD) / (2 * a)
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	return t0, t1, true
}
