package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/df07/go-whitted-raytracer/pkg/transform"
)

// Camera generates primary rays through an image plane one unit in front of the eye
type Camera struct {
	view       transform.Transform // World to camera space
	halfWidth  float64
	halfHeight float64
	pixelSize  float64
	lensRadius float64
	focusDist  float64
}

// NewCamera creates a camera for an image of width x height pixels. The field of
// view spans the longer image side.
func NewCamera(config scene.CameraConfig, width, height int) (*Camera, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("camera: invalid image size %dx%d", width, height)
	}

	forward := config.LookAt.Subtract(config.LookFrom)
	focusDist := forward.Length()
	if focusDist == 0 {
		return nil, errors.New("camera: look-from and look-at coincide")
	}
	if forward.Cross(config.Up).Length() < 1e-12 {
		return nil, errors.New("camera: up vector is parallel to the view direction")
	}

	view, err := transform.FromMatrix(mgl64.LookAtV(toMgl(config.LookFrom), toMgl(config.LookAt), toMgl(config.Up)))
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	halfView := math.Tan(mgl64.DegToRad(config.VFov) / 2)
	aspect := float64(width) / float64(height)

	halfWidth, halfHeight := halfView, halfView/aspect
	if aspect < 1 {
		halfWidth, halfHeight = halfView*aspect, halfView
	}

	return &Camera{
		view:       view,
		halfWidth:  halfWidth,
		halfHeight: halfHeight,
		pixelSize:  2 * halfWidth / float64(width),
		lensRadius: config.Aperture / 2,
		focusDist:  focusDist,
	}, nil
}

// PixelSize returns the world-space size of one pixel on the image plane
func (c *Camera) PixelSize() float64 {
	return c.pixelSize
}

// GetRay returns a unit-direction ray through continuous image coordinates (px, py),
// where (0, 0) is the top-left corner and pixel centres sit at half-integers.
// With a non-zero aperture and a sampler, the origin is jittered across the lens
// and the ray is focused at the look-at distance.
func (c *Camera) GetRay(px, py float64, sampler core.Sampler) core.Ray {
	// Image x grows toward camera-space -X, matching the scene file convention
	x := c.halfWidth - px*c.pixelSize
	y := c.halfHeight - py*c.pixelSize

	focus := core.NewVec3(x, y, -1).Multiply(c.focusDist)
	lens := core.Vec3{}
	if c.lensRadius > 0 && sampler != nil {
		lens = core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
	}

	origin := c.view.InversePoint(lens)
	target := c.view.InversePoint(focus)
	return core.NewRay(origin, target.Subtract(origin).Normalize())
}

func toMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}
