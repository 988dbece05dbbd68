package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Plane is the infinite XZ plane at y = 0 with normal +Y
type Plane struct{}

// NewPlane creates a new plane
func NewPlane() *Plane {
	return &Plane{}
}

// Hit solves O.y + t*D.y = 0
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64, dst []float64) []float64 {
	t, ok := hitPlaneY(ray, 0)
	if ok && inRange(t, tMin, tMax) {
		dst = append(dst, t)
	}
	return dst
}

// Normal is +Y everywhere
func (p *Plane) Normal(point core.Vec3) core.Vec3 {
	return core.NewVec3(0, 1, 0)
}

// hitPlaneY intersects the ray with the horizontal plane y = h
func hitPlaneY(ray core.Ray, h float64) (float64, bool) {
	// Ray is parallel to the plane
	if math.Abs(ray.Direction.Y) < parallelEpsilon {
		return 0, false
	}
	return (h - ray.Origin.Y) / ray.Direction.Y, true
}
