// Package transform places primitives, patterns and the camera in world space.
//
// A Transform carries an affine matrix together with its inverse. Operations are
// appended by right-multiplying the elementary matrix M onto the transform and
// left-multiplying M⁻¹ onto the inverse, so the inverse is never recomputed from
// scratch and inverse*matrix stays the identity.
package transform

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrNotInvertible is returned when an operation would make the transform singular
var ErrNotInvertible = errors.New("matrix is not invertible")

// determinantEpsilon below which a general matrix is treated as singular
const determinantEpsilon = 1e-12

// Axis selects a rotation axis
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Transform is an invertible affine map with its pre-computed inverse.
// The zero value is the identity.
type Transform struct {
	matrix  mgl64.Mat4
	inverse mgl64.Mat4
	set     bool
}

// Identity returns the identity transform
func Identity() Transform {
	return Transform{matrix: mgl64.Ident4(), inverse: mgl64.Ident4(), set: true}
}

// FromMatrix wraps an arbitrary affine matrix, inverting it once
func FromMatrix(m mgl64.Mat4) (Transform, error) {
	if math.Abs(m.Det()) < determinantEpsilon {
		return Transform{}, fmt.Errorf("from matrix: %w", ErrNotInvertible)
	}
	return Transform{matrix: m, inverse: m.Inv(), set: true}, nil
}

func (t *Transform) init() {
	if !t.set {
		*t = Identity()
	}
}

// append right-multiplies m onto the transform and left-multiplies inv onto the inverse
func (t *Transform) append(m, inv mgl64.Mat4) {
	t.init()
	t.matrix = t.matrix.Mul4(m)
	t.inverse = inv.Mul4(t.inverse)
}

// Translate appends a translation
func (t *Transform) Translate(dx, dy, dz float64) {
	t.append(mgl64.Translate3D(dx, dy, dz), mgl64.Translate3D(-dx, -dy, -dz))
}

// Rotate appends a rotation of angle radians about a principal axis
func (t *Transform) Rotate(axis Axis, angle float64) {
	switch axis {
	case AxisX:
		t.append(mgl64.HomogRotate3DX(angle), mgl64.HomogRotate3DX(-angle))
	case AxisY:
		t.append(mgl64.HomogRotate3DY(angle), mgl64.HomogRotate3DY(-angle))
	case AxisZ:
		t.append(mgl64.HomogRotate3DZ(angle), mgl64.HomogRotate3DZ(-angle))
	}
}

// Scale appends a non-uniform scale. A zero factor is rejected.
func (t *Transform) Scale(sx, sy, sz float64) error {
	if sx == 0 || sy == 0 || sz == 0 {
		return fmt.Errorf("scale (%g, %g, %g): %w", sx, sy, sz, ErrNotInvertible)
	}
	t.append(mgl64.Scale3D(sx, sy, sz), mgl64.Scale3D(1/sx, 1/sy, 1/sz))
	return nil
}

// ScaleUniform appends the same scale on every axis
func (t *Transform) ScaleUniform(s float64) error {
	return t.Scale(s, s, s)
}

// Shear appends a shear where xy moves x in proportion to y, and so on
func (t *Transform) Shear(xy, xz, yx, yz, zx, zy float64) error {
	// Column-major: rows are (1 xy xz), (yx 1 yz), (zx zy 1)
	m := mgl64.Mat4{
		1, yx, zx, 0,
		xy, 1, zy, 0,
		xz, yz, 1, 0,
		0, 0, 0, 1,
	}
	if math.Abs(m.Det()) < determinantEpsilon {
		return fmt.Errorf("shear (%g, %g, %g, %g, %g, %g): %w", xy, xz, yx, yz, zx, zy, ErrNotInvertible)
	}
	t.append(m, m.Inv())
	return nil
}

func (t Transform) matrices() (mgl64.Mat4, mgl64.Mat4) {
	if !t.set {
		return mgl64.Ident4(), mgl64.Ident4()
	}
	return t.matrix, t.inverse
}

// Matrix returns the forward (object to world) matrix
func (t Transform) Matrix() mgl64.Mat4 {
	m, _ := t.matrices()
	return m
}

// Inverse returns the world to object matrix
func (t Transform) Inverse() mgl64.Mat4 {
	_, inv := t.matrices()
	return inv
}

// Point maps a point from object space to world space
func (t Transform) Point(p core.Vec3) core.Vec3 {
	return apply(t.Matrix(), p, 1)
}

// Vector maps a direction from object space to world space
func (t Transform) Vector(v core.Vec3) core.Vec3 {
	return apply(t.Matrix(), v, 0)
}

// InversePoint maps a world-space point into object space
func (t Transform) InversePoint(p core.Vec3) core.Vec3 {
	return apply(t.Inverse(), p, 1)
}

// InverseVector maps a world-space direction into object space
func (t Transform) InverseVector(v core.Vec3) core.Vec3 {
	return apply(t.Inverse(), v, 0)
}

// InverseRay maps a world-space ray into object space. The direction is not
// renormalized so t values stay comparable between the two spaces.
func (t Transform) InverseRay(r core.Ray) core.Ray {
	inv := t.Inverse()
	return core.NewRay(apply(inv, r.Origin, 1), apply(inv, r.Direction, 0))
}

// NormalToWorld maps an object-space normal to world space using the inverse
// transpose, then renormalizes. Required because non-uniform scale skews normals.
func (t Transform) NormalToWorld(n core.Vec3) core.Vec3 {
	return apply(t.Inverse().Transpose(), n, 0).Normalize()
}

func apply(m mgl64.Mat4, v core.Vec3, w float64) core.Vec3 {
	r := m.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, w})
	return core.NewVec3(r[0], r[1], r[2])
}
