package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func lookDownZ(fov float64) scene.CameraConfig {
	return scene.CameraConfig{
		LookFrom: core.NewVec3(0, 0, 0),
		LookAt:   core.NewVec3(0, 0, -1),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     fov,
	}
}

func TestNewCamera_PixelSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"landscape", 200, 125},
		{"portrait", 125, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			camera, err := NewCamera(lookDownZ(90), tt.width, tt.height)
			if err != nil {
				t.Fatalf("NewCamera() error: %v", err)
			}
			if !core.ApproxEqual(camera.PixelSize(), 0.01, 1e-9) {
				t.Errorf("Expected pixel size 0.01, got %f", camera.PixelSize())
			}
		})
	}
}

func TestCamera_GetRay(t *testing.T) {
	camera, err := NewCamera(lookDownZ(90), 201, 101)
	if err != nil {
		t.Fatalf("NewCamera() error: %v", err)
	}

	tests := []struct {
		name      string
		px, py    float64
		direction core.Vec3
	}{
		{"centre of canvas", 100.5, 50.5, core.NewVec3(0, 0, -1)},
		{"first pixel", 0.5, 0.5, core.NewVec3(0.66519, 0.33259, -0.66851)},
		{"last pixel", 200.5, 100.5, core.NewVec3(-0.66519, -0.33259, -0.66851)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.px, tt.py, nil)
			if !ray.Origin.ApproxEqual(core.Vec3{}, 1e-9) {
				t.Errorf("Expected origin at the eye, got %v", ray.Origin)
			}
			if !ray.Direction.ApproxEqual(tt.direction, 1e-5) {
				t.Errorf("Expected direction %v, got %v", tt.direction, ray.Direction)
			}
		})
	}
}

func TestCamera_GetRay_ImageXRunsTowardNegativeX(t *testing.T) {
	camera, err := NewCamera(lookDownZ(90), 201, 101)
	if err != nil {
		t.Fatalf("NewCamera() error: %v", err)
	}
	first := camera.GetRay(0.5, 50.5, nil).Direction
	last := camera.GetRay(200.5, 50.5, nil).Direction
	if first.X <= 0 || last.X >= 0 {
		t.Errorf("Expected columns to sweep from +X to -X, got %v then %v", first, last)
	}
}

func TestCamera_GetRay_Transformed(t *testing.T) {
	s2 := math.Sqrt2 / 2
	config := scene.CameraConfig{
		LookFrom: core.NewVec3(0, 2, -5),
		LookAt:   core.NewVec3(1, 2, -6),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     90,
	}
	camera, err := NewCamera(config, 201, 101)
	if err != nil {
		t.Fatalf("NewCamera() error: %v", err)
	}

	ray := camera.GetRay(100.5, 50.5, nil)
	if !ray.Origin.ApproxEqual(config.LookFrom, 1e-9) {
		t.Errorf("Expected origin %v, got %v", config.LookFrom, ray.Origin)
	}
	if !ray.Direction.ApproxEqual(core.NewVec3(s2, 0, -s2), 1e-9) {
		t.Errorf("Expected direction (%f, 0, %f), got %v", s2, -s2, ray.Direction)
	}
}

func TestCamera_ThinLens(t *testing.T) {
	config := lookDownZ(60)
	config.LookAt = core.NewVec3(0, 0, -4)
	config.Aperture = 0.5
	camera, err := NewCamera(config, 100, 100)
	if err != nil {
		t.Fatalf("NewCamera() error: %v", err)
	}

	pinhole := camera.GetRay(30.5, 70.5, nil)
	focus := pinhole.At(4 / -pinhole.Direction.Z)

	sampler := core.NewSeededSampler(7)
	for i := 0; i < 50; i++ {
		ray := camera.GetRay(30.5, 70.5, sampler)
		if ray.Origin.Length() > 0.25+1e-9 || math.Abs(ray.Origin.Z) > 1e-12 {
			t.Fatalf("Lens origin %v outside the aperture", ray.Origin)
		}
		// Every lens sample converges on the same point of the focal plane
		hit := ray.At((4 + ray.Origin.Z) / -ray.Direction.Z)
		if !hit.ApproxEqual(focus, 1e-9) {
			t.Fatalf("Sample %d focused at %v, expected %v", i, hit, focus)
		}
	}
}

func TestNewCamera_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		config scene.CameraConfig
		width  int
		height int
	}{
		{"zero width", lookDownZ(90), 0, 10},
		{"coincident eye and target", scene.CameraConfig{Up: core.NewVec3(0, 1, 0), VFov: 90}, 10, 10},
		{"up along view", scene.CameraConfig{LookAt: core.NewVec3(0, 5, 0), Up: core.NewVec3(0, 1, 0), VFov: 90}, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCamera(tt.config, tt.width, tt.height); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}
