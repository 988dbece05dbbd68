package transform

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

const tolerance = 1e-9

func TestTransform_ZeroValueIsIdentity(t *testing.T) {
	var tr Transform
	p := core.NewVec3(1, 2, 3)
	if got := tr.Point(p); got != p {
		t.Errorf("Zero transform moved point: %v", got)
	}
	if !tr.Matrix().ApproxEqualThreshold(mgl64.Ident4(), tolerance) {
		t.Errorf("Zero transform matrix should be identity, got %v", tr.Matrix())
	}
}

func TestTransform_Translate(t *testing.T) {
	tr := Identity()
	tr.Translate(5, -3, 2)

	got := tr.Point(core.NewVec3(-3, 4, 5))
	if !got.ApproxEqual(core.NewVec3(2, 1, 7), tolerance) {
		t.Errorf("Expected (2,1,7), got %v", got)
	}

	// Directions ignore translation
	dir := tr.Vector(core.NewVec3(-3, 4, 5))
	if !dir.ApproxEqual(core.NewVec3(-3, 4, 5), tolerance) {
		t.Errorf("Translation should not move vectors, got %v", dir)
	}
}

func TestTransform_Rotate(t *testing.T) {
	tests := []struct {
		name     string
		axis     Axis
		point    core.Vec3
		expected core.Vec3
	}{
		{"quarter turn about x", AxisX, core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1)},
		{"quarter turn about y", AxisY, core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 0)},
		{"quarter turn about z", AxisZ, core.NewVec3(0, 1, 0), core.NewVec3(-1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Identity()
			tr.Rotate(tt.axis, math.Pi/2)
			got := tr.Point(tt.point)
			if !got.ApproxEqual(tt.expected, tolerance) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestTransform_ScaleRejectsZero(t *testing.T) {
	tr := Identity()
	tr.Translate(1, 0, 0)
	before := tr.Matrix()

	err := tr.Scale(1, 0, 1)
	if !errors.Is(err, ErrNotInvertible) {
		t.Fatalf("Expected ErrNotInvertible, got %v", err)
	}
	if tr.Matrix() != before {
		t.Error("Failed scale must leave the transform unchanged")
	}

	if err := tr.ScaleUniform(0); !errors.Is(err, ErrNotInvertible) {
		t.Errorf("Expected ErrNotInvertible for uniform zero scale, got %v", err)
	}
}

func TestTransform_Shear(t *testing.T) {
	tr := Identity()
	if err := tr.Shear(1, 0, 0, 0, 0, 0); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	got := tr.Point(core.NewVec3(2, 3, 4))
	if !got.ApproxEqual(core.NewVec3(5, 3, 4), tolerance) {
		t.Errorf("Expected x moved in proportion to y, got %v", got)
	}

	singular := Identity()
	if err := singular.Shear(1, 0, 1, 0, 0, 0); !errors.Is(err, ErrNotInvertible) {
		t.Errorf("Expected singular shear to fail, got %v", err)
	}
}

func TestTransform_InverseRoundTrip(t *testing.T) {
	random := rand.New(rand.NewSource(1))

	for trial := 0; trial < 50; trial++ {
		tr := Identity()
		for op := 0; op < 6; op++ {
			switch random.Intn(4) {
			case 0:
				tr.Translate(random.Float64()*10-5, random.Float64()*10-5, random.Float64()*10-5)
			case 1:
				tr.Rotate(Axis(random.Intn(3)), random.Float64()*2*math.Pi)
			case 2:
				if err := tr.Scale(0.1+random.Float64()*3, 0.1+random.Float64()*3, 0.1+random.Float64()*3); err != nil {
					t.Fatal(err)
				}
			case 3:
				if err := tr.Shear(random.Float64()*0.5, 0, 0, random.Float64()*0.5, 0, 0); err != nil {
					t.Fatal(err)
				}
			}
		}

		if !tr.Inverse().Mul4(tr.Matrix()).ApproxEqualThreshold(mgl64.Ident4(), 1e-8) {
			t.Fatalf("trial %d: inverse*matrix is not identity", trial)
		}

		p := core.NewVec3(random.Float64()*4-2, random.Float64()*4-2, random.Float64()*4-2)
		back := tr.InversePoint(tr.Point(p))
		if !back.ApproxEqual(p, 1e-8) {
			t.Fatalf("trial %d: round trip %v -> %v", trial, p, back)
		}
	}
}

func TestTransform_OrderIsRightMultiplied(t *testing.T) {
	// translate then scale: the scale applies first to object points
	tr := Identity()
	tr.Translate(10, 0, 0)
	if err := tr.ScaleUniform(2); err != nil {
		t.Fatal(err)
	}
	got := tr.Point(core.NewVec3(1, 0, 0))
	if !got.ApproxEqual(core.NewVec3(12, 0, 0), tolerance) {
		t.Errorf("Expected (12,0,0), got %v", got)
	}
}

func TestTransform_NormalToWorld(t *testing.T) {
	tr := Identity()
	tr.Translate(0, 7, 0)
	if err := tr.Scale(2, 1, 1); err != nil {
		t.Fatal(err)
	}

	// Stretching along x flattens the normal toward y
	n := tr.NormalToWorld(core.NewVec3(math.Sqrt2/2, math.Sqrt2/2, 0))
	expected := core.NewVec3(1/math.Sqrt(5), 2/math.Sqrt(5), 0)
	if !n.ApproxEqual(expected, 1e-5) {
		t.Errorf("Expected %v, got %v", expected, n)
	}
	if !core.ApproxEqual(n.Length(), 1, tolerance) {
		t.Errorf("Normal should be unit length, got %f", n.Length())
	}
}

func TestFromMatrix(t *testing.T) {
	if _, err := FromMatrix(mgl64.Mat4{}); !errors.Is(err, ErrNotInvertible) {
		t.Errorf("Expected zero matrix to be rejected, got %v", err)
	}

	tr, err := FromMatrix(mgl64.Translate3D(1, 2, 3))
	if err != nil {
		t.Fatal(err)
	}
	got := tr.InversePoint(core.NewVec3(1, 2, 3))
	if !got.ApproxEqual(core.NewVec3(0, 0, 0), tolerance) {
		t.Errorf("Expected origin, got %v", got)
	}
}
