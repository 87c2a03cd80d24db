package renderer

import (
	"context"

	"github.com/df07/go-band-raytracer/pkg/integrator"
)

// BandTask is handed to a worker at spawn time. Pix is the worker's own
// slice of the shared framebuffer; no other worker can reach those bytes.
type BandTask struct {
	Band  Band
	Width int
	Pix   []byte // Rows [Band.Start, Band.End) of the framebuffer
}

// BandRenderer renders whole bands with an integrator
type BandRenderer struct {
	integrator *integrator.Whitted
	progress   *Progress
}

// NewBandRenderer creates a band renderer reporting finished pixels to progress
func NewBandRenderer(integ *integrator.Whitted, progress *Progress) *BandRenderer {
	return &BandRenderer{
		integrator: integ,
		progress:   progress,
	}
}

// RenderBand shades every pixel of the task's band into task.Pix.
// Cancellation is only observed between rows.
func (br *BandRenderer) RenderBand(ctx context.Context, task BandTask) (BandStats, error) {
	stats := BandStats{Band: task.Band}
	stride := task.Width * 3

	for y := task.Band.Start; y < task.Band.End; y++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		row := task.Pix[(y-task.Band.Start)*stride : (y-task.Band.Start+1)*stride]
		for x := 0; x < task.Width; x++ {
			color, result := br.integrator.PixelColor(x, y)
			row[x*3], row[x*3+1], row[x*3+2] = color.Bytes()

			stats.add(result)
			br.progress.Increment()
		}
	}

	return stats, nil
}
