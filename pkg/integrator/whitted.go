package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// WhittedIntegrator implements recursive Whitted ray tracing: Phong shading from
// the first light with hard shadows, plus mirror reflection and refraction
// blended by the Schlick approximation
type WhittedIntegrator struct{}

// NewWhittedIntegrator creates a new Whitted integrator
func NewWhittedIntegrator() *WhittedIntegrator {
	return &WhittedIntegrator{}
}

// RayColor finds the nearest visible hit along the ray and shades it
func (w *WhittedIntegrator) RayColor(ray core.Ray, s *scene.Scene, depth int) core.Vec3 {
	// The whole line is queried so the refractive-index stack accounts for
	// volumes the ray origin is already inside
	hits := s.Intersections(ray, math.Inf(-1), math.Inf(1))
	hit := scene.FirstVisible(hits)
	if hit == nil {
		return s.Background
	}
	return w.ShadeHit(s, hit, depth)
}

// ShadeHit combines the local Phong term with the reflected and refracted colours
func (w *WhittedIntegrator) ShadeHit(s *scene.Scene, hit *scene.Intersection, depth int) core.Vec3 {
	m := hit.Material

	surface := core.Vec3{}
	if len(s.Lights) > 0 {
		light := s.Lights[0]
		shadowed := w.IsShadowed(s, light, hit.OverPoint)
		surface = m.Lighting(light, hit.Point, hit.Eye, hit.Normal, hit.Colour, shadowed)
	}

	reflected := w.ReflectedColor(s, hit, depth)
	refracted := w.RefractedColor(s, hit, depth)

	if m.Reflective > 0 && m.Transparency > 0 {
		reflectance := hit.Schlick()
		return surface.Add(reflected.Multiply(reflectance)).Add(refracted.Multiply(1 - reflectance))
	}
	return surface.Add(reflected).Add(refracted)
}

// IsShadowed reports whether any object lies between point and the light
func (w *WhittedIntegrator) IsShadowed(s *scene.Scene, light *lights.PointLight, point core.Vec3) bool {
	sample := light.Sample(point)
	ray := core.NewRay(point, sample.Direction)

	for _, hit := range s.Hit(ray, 0, sample.Distance) {
		if hit.T < sample.Distance {
			return true
		}
	}
	return false
}

// ReflectedColor traces the mirror ray, scaled by the material's reflectiveness
func (w *WhittedIntegrator) ReflectedColor(s *scene.Scene, hit *scene.Intersection, depth int) core.Vec3 {
	reflective := hit.Material.Reflective
	if depth <= 0 || reflective == 0 {
		return core.Vec3{}
	}

	ray := core.NewRay(hit.OverPoint, hit.Reflect)
	return w.RayColor(ray, s, depth-1).Multiply(reflective)
}

// RefractedColor traces the transmitted ray, scaled by the material's transparency.
// Total internal reflection contributes nothing here; the light is carried by the
// reflected term instead.
func (w *WhittedIntegrator) RefractedColor(s *scene.Scene, hit *scene.Intersection, depth int) core.Vec3 {
	transparency := hit.Material.Transparency
	if depth <= 0 || transparency == 0 {
		return core.Vec3{}
	}

	direction, ok := core.Refract(hit.Eye, hit.Normal, hit.ExitIndex/hit.EnterIndex)
	if !ok {
		return core.Vec3{}
	}

	ray := core.NewRay(hit.UnderPoint, direction)
	return w.RayColor(ray, s, depth-1).Multiply(transparency)
}
