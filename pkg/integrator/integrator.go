// Package integrator computes the colour seen along a ray.
package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns the colour seen along ray, following at most depth
	// secondary bounces
	RayColor(ray core.Ray, scene *scene.Scene, depth int) core.Vec3
}
