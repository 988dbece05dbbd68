package renderer

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestToRGB(t *testing.T) {
	tests := []struct {
		name     string
		sum      core.Vec3
		samples  int
		expected [3]byte
	}{
		{"black", core.Vec3{}, 1, [3]byte{0, 0, 0}},
		{"white clamps below 256", core.NewVec3(1, 1, 1), 1, [3]byte{255, 255, 255}},
		{"overexposed", core.NewVec3(4, 2, 1.5), 1, [3]byte{255, 255, 255}},
		{"gamma 2", core.NewVec3(0.25, 0.0625, 0.01), 1, [3]byte{128, 64, 25}},
		{"averaged", core.NewVec3(1, 0.25, 0), 4, [3]byte{128, 64, 0}},
		{"negative clamps to zero", core.NewVec3(-1, -0.5, 0), 1, [3]byte{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toRGB(tt.sum, tt.samples); got != tt.expected {
				t.Errorf("toRGB(%v, %d) = %v, want %v", tt.sum, tt.samples, got, tt.expected)
			}
		})
	}
}

func TestImage_ToRGBA(t *testing.T) {
	img := NewImage(3, 2)
	copy(img.Rows[1][3:], []byte{10, 20, 30})

	rgba := img.ToRGBA()
	if rgba.Bounds().Dx() != 3 || rgba.Bounds().Dy() != 2 {
		t.Fatalf("Unexpected bounds %v", rgba.Bounds())
	}

	c := rgba.RGBAAt(1, 1)
	if c.R != 10 || c.G != 20 || c.B != 30 || c.A != 255 {
		t.Errorf("Pixel (1,1) = %v, want {10 20 30 255}", c)
	}
	if r, g, b := img.RGB(1, 1); r != 10 || g != 20 || b != 30 {
		t.Errorf("RGB(1,1) = %d %d %d", r, g, b)
	}
	if c := rgba.RGBAAt(0, 0); c.R != 0 || c.A != 255 {
		t.Errorf("Pixel (0,0) should be opaque black, got %v", c)
	}
}
