// Package scene holds the objects, lights and camera settings that make up a
// renderable world, and resolves rays against them into intersections.
package scene

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/transform"
)

// CameraConfig describes where the scene is viewed from
type CameraConfig struct {
	LookFrom core.Vec3
	LookAt   core.Vec3
	Up       core.Vec3
	VFov     float64 // Field of view in degrees
	Aperture float64 // Lens diameter, 0 for a pinhole camera
}

// DefaultCameraConfig looks along +Z at the origin from five units back
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		LookFrom: core.NewVec3(0, 1.5, -5),
		LookAt:   core.NewVec3(0, 1, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     60,
	}
}

// Scene contains all the elements needed for rendering. It must not be
// modified once a render has started.
type Scene struct {
	Camera     CameraConfig
	Objects    []*Object // Indexed by object ID
	Lights     []*lights.PointLight
	Background core.Vec3 // Returned for rays that hit nothing
}

// New creates an empty scene with the default camera and a black background
func New() *Scene {
	return &Scene{Camera: DefaultCameraConfig()}
}

// Add registers a shape with its placement and material, assigning the next object ID
func (s *Scene) Add(shape geometry.Shape, t transform.Transform, m *material.Material) *Object {
	obj := &Object{
		ID:        len(s.Objects),
		Shape:     shape,
		Transform: t,
		Material:  m,
	}
	s.Objects = append(s.Objects, obj)
	return obj
}

// AddLight adds a point light
func (s *Scene) AddLight(position, intensity core.Vec3) *lights.PointLight {
	light := lights.NewPointLight(position, intensity)
	s.Lights = append(s.Lights, light)
	return light
}

// Preprocess checks that every object can be intersected and shaded. The
// renderer calls it before tracing any ray.
func (s *Scene) Preprocess() error {
	for i, obj := range s.Objects {
		if obj.Shape == nil {
			return fmt.Errorf("object %d has no shape", i)
		}
		if obj.Material == nil {
			return fmt.Errorf("object %d has no material", i)
		}
	}
	return nil
}

// Hit returns every intersection of the ray with every object, unsorted
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) []Intersection {
	var hits []Intersection
	for _, obj := range s.Objects {
		hits = obj.Hit(ray, tMin, tMax, hits)
	}
	return hits
}

// Intersections returns every hit sorted by t with refractive indices resolved
func (s *Scene) Intersections(ray core.Ray, tMin, tMax float64) []Intersection {
	hits := s.Hit(ray, tMin, tMax)
	SortIntersections(hits)
	ComputeRefractiveIndices(hits)
	return hits
}

// GetPrimitiveCount returns the number of objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Objects)
}
