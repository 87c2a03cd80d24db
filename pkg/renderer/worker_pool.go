package renderer

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ErrWorkerFailed is returned when a band worker dies. The whole render fails
// with it; no partially rendered framebuffer is ever returned.
var ErrWorkerFailed = errors.New("render worker failed")

// runBands starts one goroutine per task and joins all of them. Stats are
// returned in task order. If any worker fails the remaining workers are
// cancelled at their next row boundary and the first error is returned.
func runBands(ctx context.Context, br *BandRenderer, tasks []BandTask) ([]BandStats, error) {
	results := make([]BandStats, len(tasks))
	g, gctx := errgroup.WithContext(ctx)

	for i, task := range tasks {
		i, task := i, task
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: band %d (rows %d-%d): %v", ErrWorkerFailed, task.Band.ID, task.Band.Start, task.Band.End, r)
				}
			}()

			stats, err := br.RenderBand(gctx, task)
			if err != nil {
				return err
			}
			results[i] = stats
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
