package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/transform"
)

// Object places an object-space shape in the world. Objects are created
// through Scene.Add, which assigns the ID.
type Object struct {
	ID        int
	Shape     geometry.Shape
	Transform transform.Transform
	Material  *material.Material // Shared, read-only
}

// Hit transforms the world ray into object space and appends an Intersection
// for every root of the shape within [tMin, tMax]
func (o *Object) Hit(ray core.Ray, tMin, tMax float64, dst []Intersection) []Intersection {
	local := o.Transform.InverseRay(ray)

	var buf [4]float64
	for _, t := range o.Shape.Hit(local, tMin, tMax, buf[:0]) {
		dst = append(dst, o.intersection(ray, local, t))
	}
	return dst
}

// intersection builds the full record for a root t shared by the world and object-space rays
func (o *Object) intersection(ray, local core.Ray, t float64) Intersection {
	point := ray.At(t)
	outward := o.Transform.NormalToWorld(o.Shape.Normal(local.At(t)))

	direction := ray.Direction.Normalize()
	frontFace := direction.Dot(outward) < 0
	normal := outward
	if !frontFace {
		normal = outward.Negate()
	}

	offset := normal.Multiply(core.Epsilon)
	return Intersection{
		T:          t,
		Point:      point,
		Normal:     normal,
		FrontFace:  frontFace,
		Eye:        direction.Negate(),
		Reflect:    core.Reflect(direction, normal),
		OverPoint:  point.Add(offset),
		UnderPoint: point.Subtract(offset),
		Colour:     o.Material.ColourAt(point, o.Transform),
		ObjectID:   o.ID,
		Material:   o.Material,
		ExitIndex:  1,
		EnterIndex: 1,
	}
}
