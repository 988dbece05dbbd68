// Package lights provides the light sources a scene is illuminated by.
package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// LightSample describes a light as seen from a shading point
type LightSample struct {
	Point     core.Vec3 // Position of the light
	Direction core.Vec3 // Unit direction from shading point to light
	Distance  float64   // Distance to light
	Emission  core.Vec3 // Light intensity
}

// PointLight is an infinitely small light with no falloff
type PointLight struct {
	Position  core.Vec3
	Intensity core.Vec3 // RGB colour and brightness
}

// NewPointLight creates a point light at position with the given intensity
func NewPointLight(position, intensity core.Vec3) *PointLight {
	return &PointLight{Position: position, Intensity: intensity}
}

// Sample returns the direction and distance from point to the light
func (l *PointLight) Sample(point core.Vec3) LightSample {
	toLight := l.Position.Subtract(point)
	distance := toLight.Length()
	return LightSample{
		Point:     l.Position,
		Direction: toLight.Normalize(),
		Distance:  distance,
		Emission:  l.Intensity,
	}
}
