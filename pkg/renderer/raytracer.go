package renderer

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/df07/go-band-raytracer/pkg/core"
	"github.com/df07/go-band-raytracer/pkg/integrator"
	"github.com/df07/go-band-raytracer/pkg/scene"
)

// Raytracer renders a scene by splitting the image into horizontal bands and
// shading each band on its own goroutine.
type Raytracer struct {
	scene    *scene.Scene
	config   Config
	logger   core.Logger
	progress atomic.Pointer[Progress] // Counter of the render in flight
}

// NewRaytracer creates a new raytracer. A nil logger discards output.
func NewRaytracer(s *scene.Scene, config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NopLogger{}
	}
	rt := &Raytracer{
		scene:  s,
		config: config,
		logger: logger,
	}
	rt.progress.Store(&Progress{})
	return rt
}

// Progress returns the pixel counter of the current (or last) render.
// It may be polled from another goroutine while Render runs.
func (rt *Raytracer) Progress() *Progress {
	return rt.progress.Load()
}

// Render validates the config and scene, renders every band in parallel and
// returns the finished framebuffer once all workers have joined. A render
// either completes fully or returns an error and no framebuffer.
func (rt *Raytracer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}
	if rt.scene == nil {
		return nil, RenderStats{}, fmt.Errorf("%w: no scene", scene.ErrInvalidScene)
	}
	if err := rt.scene.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	workers := rt.config.ResolveWorkers()
	bands, err := NewBandGrid(rt.config.Height, workers)
	if err != nil {
		return nil, RenderStats{}, err
	}

	fb := NewFramebuffer(rt.config.Width, rt.config.Height)
	progress := &Progress{}
	rt.progress.Store(progress)

	tasks := make([]BandTask, len(bands))
	for i, band := range bands {
		tasks[i] = BandTask{
			Band:  band,
			Width: fb.Width,
			Pix:   fb.Rows(band.Start, band.End),
		}
	}

	rt.logger.Printf("Rendering %dx%d with %d workers (%d rows per band)...\n",
		fb.Width, fb.Height, len(bands), bands[0].Rows())

	br := NewBandRenderer(integrator.NewWhitted(rt.scene), progress)
	startTime := time.Now()
	bandStats, err := runBands(ctx, br, tasks)
	if err != nil {
		rt.logger.Printf("Render failed: %v\n", err)
		return nil, RenderStats{}, err
	}

	stats := RenderStats{
		TotalPixels:    fb.Width * fb.Height,
		PixelsRendered: progress.Load(),
		Workers:        len(bands),
		RowsPerBand:    bands[0].Rows(),
		Duration:       time.Since(startTime),
	}
	for _, bs := range bandStats {
		stats.merge(bs)
	}

	rt.logger.Printf("Render completed in %v (%d pixels, %.2f bounces/pixel)\n",
		stats.Duration, stats.PixelsRendered, stats.AverageBounces())

	return fb, stats, nil
}
