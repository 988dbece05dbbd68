package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Schlick approximates the Fresnel reflectance at a boundary between media
// with exitIndex (the side the ray comes from) and enterIndex. eye and normal
// are unit vectors on the same side of the surface.
func Schlick(eye, normal core.Vec3, exitIndex, enterIndex float64) float64 {
	cos := eye.Dot(normal)

	// Leaving a denser medium: use the transmitted angle, and check for total internal reflection
	if exitIndex > enterIndex {
		ratio := exitIndex / enterIndex
		sin2T := ratio * ratio * (1 - cos*cos)
		if sin2T > 1 {
			return 1
		}
		cos = math.Sqrt(1 - sin2T)
	}

	r0 := (exitIndex - enterIndex) / (exitIndex + enterIndex)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-cos, 5)
}
