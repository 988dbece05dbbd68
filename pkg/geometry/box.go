package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Box is the axis-aligned cube spanning [-1, 1] on every axis
type Box struct{}

// NewBox creates a new box
func NewBox() *Box {
	return &Box{}
}

// unitBox is the extent of every Box in object space
var unitBox = core.NewAABB(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))

// Hit returns where the ray enters and leaves the cube, when those fall in range
func (b *Box) Hit(ray core.Ray, tMin, tMax float64, dst []float64) []float64 {
	near, far := unitBox.Slabs(ray)
	if near > far {
		return dst
	}

	if inRange(near, tMin, tMax) {
		dst = append(dst, near)
	}
	if inRange(far, tMin, tMax) {
		dst = append(dst, far)
	}
	return dst
}

// Normal points along the axis of the face the point lies on
func (b *Box) Normal(point core.Vec3) core.Vec3 {
	ax, ay, az := math.Abs(point.X), math.Abs(point.Y), math.Abs(point.Z)
	maxc := max(ax, ay, az)

	switch maxc {
	case ax:
		return core.NewVec3(point.X, 0, 0)
	case ay:
		return core.NewVec3(0, point.Y, 0)
	default:
		return core.NewVec3(0, 0, point.Z)
	}
}
