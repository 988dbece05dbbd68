package renderer

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ProgressFunc is called on the rendering goroutine after each completed row
type ProgressFunc func(rowsDone, totalRows int)

// Raytracer renders a scene into an Image. The scene is shared read-only by
// every worker.
type Raytracer struct {
	scene      *scene.Scene
	camera     *Camera
	config     Config
	integrator integrator.Integrator
	logger     core.Logger
	rowsDone   atomic.Int64
}

// NewRaytracer validates the config, builds the camera and preprocesses the scene
func NewRaytracer(s *scene.Scene, config Config) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	camera, err := NewCamera(s.Camera, config.Width, config.Height)
	if err != nil {
		return nil, err
	}
	if err := s.Preprocess(); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	return &Raytracer{
		scene:      s,
		camera:     camera,
		config:     config,
		integrator: integrator.NewWhittedIntegrator(),
		logger:     core.NopLogger{},
	}, nil
}

// SetLogger sets the logger used for render progress messages
func (rt *Raytracer) SetLogger(logger core.Logger) {
	if logger == nil {
		logger = core.NopLogger{}
	}
	rt.logger = logger
}

// Camera returns the camera rays are generated from
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// Progress returns the number of finished rows. Safe to call from any goroutine.
func (rt *Raytracer) Progress() (rowsDone, totalRows int) {
	return int(rt.rowsDone.Load()), rt.config.Height
}

// Render traces every pixel and blocks until the image is complete. Rows are
// spread across workers; onProgress, if set, is called from this goroutine.
func (rt *Raytracer) Render(onProgress ProgressFunc) (*Image, RenderStats) {
	start := time.Now()
	rt.rowsDone.Store(0)

	width, height := rt.config.Width, rt.config.Height
	pool := NewWorkerPool(rt, rt.config.workerCount())

	rt.logger.Printf("Rendering %dx%d at %d samples/pixel, max depth %d, %d workers\n",
		width, height, rt.config.Sampling.SamplesPerPixel, rt.config.Sampling.MaxDepth, pool.GetNumWorkers())

	pool.Start()
	for row := 0; row < height; row++ {
		pool.SubmitTask(RowTask{Row: row})
	}

	img := NewImage(width, height)
	stats := RenderStats{Workers: pool.GetNumWorkers()}
	for done := 1; done <= height; done++ {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		img.Rows[result.Row] = result.RGB
		stats.add(result)
		rt.rowsDone.Store(int64(done))
		if onProgress != nil {
			onProgress(done, height)
		}
	}
	pool.Stop()

	stats.Elapsed = time.Since(start)
	rt.logger.Printf("Finished rendering in %v (%.0f samples/sec)\n", stats.Elapsed, stats.SamplesPerSecond())
	return img, stats
}

// RenderRow traces one scanline. Jitter comes from a generator seeded with
// Seed+row, so the result does not depend on which worker runs it.
func (rt *Raytracer) RenderRow(row int) RowResult {
	width := rt.config.Width
	samples := rt.config.Sampling.SamplesPerPixel

	var sampler core.Sampler
	if samples > 1 {
		sampler = core.NewSeededSampler(rt.config.Seed + int64(row))
	}

	rgb := make([]byte, width*3)
	for x := 0; x < width; x++ {
		px := rt.PixelColor(x, row, sampler)
		copy(rgb[x*3:], px[:])
	}

	return RowResult{
		Row:     row,
		RGB:     rgb,
		Pixels:  width,
		Samples: width * samples,
	}
}

// PixelColor accumulates the configured number of samples for pixel (x, y).
// A nil sampler traces a single ray through the pixel centre.
func (rt *Raytracer) PixelColor(x, y int, sampler core.Sampler) [3]byte {
	samples := rt.config.Sampling.SamplesPerPixel
	depth := rt.config.Sampling.MaxDepth

	if sampler == nil {
		ray := rt.camera.GetRay(float64(x)+0.5, float64(y)+0.5, nil)
		return toRGB(rt.integrator.RayColor(ray, rt.scene, depth), 1)
	}

	sum := core.Vec3{}
	for i := 0; i < samples; i++ {
		dx, dy := sampler.Get2D()
		ray := rt.camera.GetRay(float64(x)+dx, float64(y)+dy, sampler)
		sum = sum.Add(rt.integrator.RayColor(ray, rt.scene, depth))
	}
	return toRGB(sum, samples)
}

// String describes the render settings
func (rt *Raytracer) String() string {
	return fmt.Sprintf("%dx%d, %d spp, depth %d", rt.config.Width, rt.config.Height,
		rt.config.Sampling.SamplesPerPixel, rt.config.Sampling.MaxDepth)
}
