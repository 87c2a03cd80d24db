package renderer

import (
	"time"

	"github.com/df07/go-band-raytracer/pkg/integrator"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels       int           // Width * Height
	PixelsRendered    int64         // Final value of the shared progress counter
	Workers           int           // Number of bands rendered in parallel
	RowsPerBand       int           // Rows owned by each worker
	TotalBounces      int64         // Sum of shading steps over all pixels
	MaxBounces        int           // Deepest reflection chain of any pixel
	EscapedPixels     int           // Pixels whose primary ray hit nothing
	BounceLimitPixels int           // Pixels cut off by the bounce cap
	Duration          time.Duration // Wall time from first worker start to last join
}

// AverageBounces returns the mean number of shading steps per pixel
func (s RenderStats) AverageBounces() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalBounces) / float64(s.TotalPixels)
}

// BandStats tracks what one worker saw while rendering its band
type BandStats struct {
	Band              Band
	Pixels            int
	TotalBounces      int64
	MaxBounces        int
	EscapedPixels     int
	BounceLimitPixels int
}

// add records the trace of a single pixel
func (bs *BandStats) add(result integrator.TraceResult) {
	bs.Pixels++
	bs.TotalBounces += int64(result.Bounces)
	bs.MaxBounces = max(bs.MaxBounces, result.Bounces)
	if result.FirstHit == -1 {
		bs.EscapedPixels++
	}
	if result.Reason == integrator.BounceLimit {
		bs.BounceLimitPixels++
	}
}

// merge folds a finished band into the render totals
func (s *RenderStats) merge(bs BandStats) {
	s.TotalBounces += bs.TotalBounces
	s.MaxBounces = max(s.MaxBounces, bs.MaxBounces)
	s.EscapedPixels += bs.EscapedPixels
	s.BounceLimitPixels += bs.BounceLimitPixels
}
