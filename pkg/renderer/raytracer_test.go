package renderer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/df07/go-whitted-raytracer/pkg/transform"
)

type recordingLogger struct {
	lines int
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines++
}

func smallConfig(workers, samples int) Config {
	return Config{
		Width:   24,
		Height:  16,
		Workers: workers,
		Seed:    3,
		Sampling: SamplingConfig{
			SamplesPerPixel: samples,
			MaxDepth:        5,
		},
	}
}

func render(t *testing.T, s *scene.Scene, config Config) (*Image, RenderStats) {
	t.Helper()
	rt, err := NewRaytracer(s, config)
	if err != nil {
		t.Fatalf("NewRaytracer() error: %v", err)
	}
	return rt.Render(nil)
}

func TestRaytracer_Render_DeterministicAcrossWorkers(t *testing.T) {
	for _, samples := range []int{1, 4} {
		single, _ := render(t, scene.NewShapesScene(), smallConfig(1, samples))
		parallel, _ := render(t, scene.NewShapesScene(), smallConfig(4, samples))

		for y := range single.Rows {
			if !bytes.Equal(single.Rows[y], parallel.Rows[y]) {
				t.Fatalf("samples=%d: row %d differs between 1 and 4 workers", samples, y)
			}
		}
	}
}

func TestRaytracer_Render_Stats(t *testing.T) {
	config := smallConfig(3, 2)
	img, stats := render(t, scene.NewSpheresScene(), config)

	if img.Width != config.Width || img.Height != config.Height || len(img.Rows) != config.Height {
		t.Fatalf("Unexpected image size %dx%d with %d rows", img.Width, img.Height, len(img.Rows))
	}
	for y, row := range img.Rows {
		if len(row) != config.Width*3 {
			t.Errorf("Row %d has %d bytes, want %d", y, len(row), config.Width*3)
		}
	}

	if stats.Rows != config.Height {
		t.Errorf("Rows = %d, want %d", stats.Rows, config.Height)
	}
	if stats.TotalPixels != config.Width*config.Height {
		t.Errorf("TotalPixels = %d, want %d", stats.TotalPixels, config.Width*config.Height)
	}
	if stats.TotalSamples != config.Width*config.Height*2 {
		t.Errorf("TotalSamples = %d, want %d", stats.TotalSamples, config.Width*config.Height*2)
	}
	if stats.Workers != 3 {
		t.Errorf("Workers = %d, want 3", stats.Workers)
	}
}

func TestRaytracer_Render_Progress(t *testing.T) {
	config := smallConfig(4, 1)
	rt, err := NewRaytracer(scene.NewSpheresScene(), config)
	if err != nil {
		t.Fatal(err)
	}
	logger := &recordingLogger{}
	rt.SetLogger(logger)

	var calls []int
	rt.Render(func(done, total int) {
		if total != config.Height {
			t.Errorf("total = %d, want %d", total, config.Height)
		}
		calls = append(calls, done)
	})

	if len(calls) != config.Height {
		t.Fatalf("Expected %d progress callbacks, got %d", config.Height, len(calls))
	}
	for i, done := range calls {
		if done != i+1 {
			t.Errorf("Callback %d reported %d rows done", i, done)
		}
	}
	if done, total := rt.Progress(); done != total {
		t.Errorf("Progress() = %d/%d after render", done, total)
	}
	if logger.lines == 0 {
		t.Error("Expected render to log")
	}
}

func TestRaytracer_Render_RowsInImageOrder(t *testing.T) {
	// A wall striped along Y: every row is uniform and stripes alternate down the image
	s := scene.New()
	s.Camera = scene.CameraConfig{
		LookFrom: core.NewVec3(0, 0, -5),
		LookAt:   core.NewVec3(0, 0, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     90,
	}
	wall := material.NewMaterial()
	wall.Ambient = 1
	wall.Diffuse = 0
	wall.Specular = 0
	stripes := material.NewStripes(core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0))
	// Standing the plane up maps world Y onto object Z; turn the stripes to vary along it
	turn := transform.Identity()
	turn.Rotate(transform.AxisY, 1.5707963267948966)
	stripes.SetTransform(turn)
	wall.Pattern = stripes

	wallT := transform.Identity()
	wallT.Rotate(transform.AxisX, -1.5707963267948966)
	s.Add(geometry.NewPlane(), wallT, wall)
	s.AddLight(core.NewVec3(0, 0, -10), core.NewVec3(1, 1, 1))

	img, _ := render(t, s, Config{Width: 8, Height: 40, Workers: 8, Sampling: SamplingConfig{SamplesPerPixel: 1}})

	for y, row := range img.Rows {
		for x := 1; x < img.Width; x++ {
			if row[x*3] != row[0] {
				t.Fatalf("Row %d is not uniform", y)
			}
		}
	}
	if img.Rows[0][0] == img.Rows[img.Height-1][0] && img.Rows[0][0] == img.Rows[img.Height/2][0] {
		t.Error("Expected rows to alternate between stripes")
	}
}

func TestRaytracer_SingleSampleHasNoJitter(t *testing.T) {
	config := smallConfig(1, 1)
	rt, err := NewRaytracer(scene.NewSpheresScene(), config)
	if err != nil {
		t.Fatal(err)
	}

	a := rt.RenderRow(5)
	config.Seed = 999
	rt2, _ := NewRaytracer(scene.NewSpheresScene(), config)
	b := rt2.RenderRow(5)
	if !bytes.Equal(a.RGB, b.RGB) {
		t.Error("Single-sample rows should not depend on the seed")
	}
}

func TestRaytracer_EmptyScene(t *testing.T) {
	s := scene.New()
	s.Background = core.NewVec3(0.25, 0.25, 0.25)
	img, _ := render(t, s, smallConfig(2, 1))

	for y, row := range img.Rows {
		for i, v := range row {
			if v != 128 {
				t.Fatalf("Pixel byte %d of row %d = %d, want background 128", i, y, v)
			}
		}
	}
}

func TestNewRaytracer_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"zero width", Config{Width: 0, Height: 10, Sampling: DefaultSamplingConfig()}},
		{"zero samples", Config{Width: 10, Height: 10, Sampling: SamplingConfig{SamplesPerPixel: 0, MaxDepth: 5}}},
		{"negative depth", Config{Width: 10, Height: 10, Sampling: SamplingConfig{SamplesPerPixel: 1, MaxDepth: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRaytracer(scene.New(), tt.config)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestWorkerPool(t *testing.T) {
	rt, err := NewRaytracer(scene.NewSpheresScene(), smallConfig(0, 1))
	if err != nil {
		t.Fatal(err)
	}

	pool := NewWorkerPool(rt, 3)
	if pool.GetNumWorkers() != 3 {
		t.Errorf("GetNumWorkers() = %d, want 3", pool.GetNumWorkers())
	}
	pool.Start()
	for _, row := range []int{7, 2, 11} {
		pool.SubmitTask(RowTask{Row: row})
	}

	seen := map[int]bool{}
	for i := 0; i < 3; i++ {
		result, ok := pool.GetResult()
		if !ok {
			t.Fatal("Result queue closed early")
		}
		seen[result.Row] = true
		if len(result.RGB) != rt.config.Width*3 {
			t.Errorf("Row %d has %d bytes", result.Row, len(result.RGB))
		}
	}
	pool.Stop()

	if !seen[7] || !seen[2] || !seen[11] {
		t.Errorf("Missing rows in results: %v", seen)
	}
	if _, ok := pool.GetResult(); ok {
		t.Error("Result queue should be closed after Stop")
	}
}

func TestConfig_WorkerCount(t *testing.T) {
	c := Config{Width: 10, Height: 3, Workers: 16}
	if n := c.workerCount(); n != 3 {
		t.Errorf("workerCount() = %d, want capped at 3 rows", n)
	}
	c.Workers = 0
	if n := c.workerCount(); n < 1 {
		t.Errorf("workerCount() = %d, want at least 1", n)
	}
}
