package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Slabs returns the t at which the ray's line enters and leaves the box, using
// the slab method. The interval is empty (near > far) when the line misses.
// Neither value is clamped, so either may be negative.
func (aabb AABB) Slabs(ray Ray) (near, far float64) {
	near, far = math.Inf(-1), math.Inf(1)
	axes := [3][4]float64{
		{aabb.Min.X, aabb.Max.X, ray.Origin.X, ray.Direction.X},
		{aabb.Min.Y, aabb.Max.Y, ray.Origin.Y, ray.Direction.Y},
		{aabb.Min.Z, aabb.Max.Z, ray.Origin.Z, ray.Direction.Z},
	}

	for _, axis := range axes {
		lo, hi, origin, direction := axis[0], axis[1], axis[2], axis[3]

		// Ray is parallel to this slab
		if math.Abs(direction) < 1e-8 {
			if origin < lo || origin > hi {
				return math.Inf(1), math.Inf(-1)
			}
			continue
		}

		t1 := (lo - origin) / direction
		t2 := (hi - origin) / direction
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		near = math.Max(near, t1)
		far = math.Min(far, t2)
	}
	return near, far
}

// Hit tests whether the ray passes through the box anywhere in [tMin, tMax]
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	near, far := aabb.Slabs(ray)
	return math.Max(near, tMin) <= math.Min(far, tMax)
}

// Contains reports whether the point lies inside or on the box
func (aabb AABB) Contains(p Vec3) bool {
	return p.X >= aabb.Min.X && p.X <= aabb.Max.X &&
		p.Y >= aabb.Min.Y && p.Y <= aabb.Max.Y &&
		p.Z >= aabb.Min.Z && p.Z <= aabb.Max.Z
}
