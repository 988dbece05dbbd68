package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Rows         int           // Scanlines rendered
	TotalPixels  int           // Total number of pixels rendered
	TotalSamples int           // Total number of camera rays traced
	Workers      int           // Number of parallel workers used
	Elapsed      time.Duration // Wall-clock render time
}

// SamplesPerSecond returns the camera-ray throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Elapsed.Seconds()
}

// add folds a row result into the totals
func (s *RenderStats) add(r RowResult) {
	s.Rows++
	s.TotalPixels += r.Pixels
	s.TotalSamples += r.Samples
}
