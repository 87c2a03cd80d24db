package renderer

import (
	"bytes"
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/df07/go-band-raytracer/pkg/integrator"
	"github.com/df07/go-band-raytracer/pkg/scene"
)

func renderReference(t *testing.T, width, height, workers int) (*Framebuffer, RenderStats) {
	t.Helper()
	rt := NewRaytracer(scene.NewReferenceScene(), Config{Width: width, Height: height, Workers: workers}, nil)
	fb, stats, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render with %d workers failed: %v", workers, err)
	}
	return fb, stats
}

func TestRender_ProgressMatchesPixelCount(t *testing.T) {
	for _, workers := range []int{1, 2, 5, 30, 60} {
		fb, stats := renderReference(t, 80, 60, workers)
		if stats.PixelsRendered != 80*60 {
			t.Errorf("%d workers: expected %d pixels counted, got %d", workers, 80*60, stats.PixelsRendered)
		}
		if stats.TotalPixels != 80*60 || stats.Workers != workers || stats.RowsPerBand != 60/workers {
			t.Errorf("%d workers: unexpected stats %+v", workers, stats)
		}
		if len(fb.Pix) != 80*60*3 {
			t.Errorf("%d workers: expected %d bytes, got %d", workers, 80*60*3, len(fb.Pix))
		}
	}
}

func TestRender_ProgressPolledDuringRender(t *testing.T) {
	const width, height = 400, 300
	rt := NewRaytracer(scene.NewReferenceScene(), Config{Width: width, Height: height, Workers: 3}, nil)

	done := make(chan error, 1)
	go func() {
		_, _, err := rt.Render(context.Background())
		done <- err
	}()

	var last int64
	var renderErr error
	polling := true
	for polling {
		select {
		case renderErr = <-done:
			polling = false
		default:
		}

		current := rt.Progress().Load()
		if current < last {
			t.Fatalf("Progress went backwards: %d after %d", current, last)
		}
		if current > width*height {
			t.Fatalf("Progress %d exceeds %d pixels", current, width*height)
		}
		last = current
		runtime.Gosched()
	}

	if renderErr != nil {
		t.Fatalf("Render failed: %v", renderErr)
	}
	if last != width*height {
		t.Errorf("Expected final progress %d, got %d", width*height, last)
	}
}

func TestRender_DeterministicAcrossPartitions(t *testing.T) {
	// A window over the spheres, small enough to render quickly many times
	baseline, baseStats := renderReference(t, 600, 120, 1)

	for _, workers := range []int{1, 2, 3, 8, 24, 120} {
		fb, stats := renderReference(t, 600, 120, workers)
		if !bytes.Equal(fb.Pix, baseline.Pix) {
			t.Errorf("%d workers: framebuffer differs from the single-worker render", workers)
		}
		if stats.TotalBounces != baseStats.TotalBounces || stats.EscapedPixels != baseStats.EscapedPixels {
			t.Errorf("%d workers: trace statistics differ from the single-worker render", workers)
		}
	}
}

func TestRender_ReferenceImageOneVsAllWorkers(t *testing.T) {
	if testing.Short() {
		t.Skip("full-size render skipped in short mode")
	}

	single, _ := renderReference(t, 800, 600, 1)
	perRow, stats := renderReference(t, 800, 600, 600)
	again, _ := renderReference(t, 800, 600, 600)

	if !bytes.Equal(single.Pix, perRow.Pix) {
		t.Error("1-worker and 600-worker renders differ")
	}
	if !bytes.Equal(perRow.Pix, again.Pix) {
		t.Error("repeated 600-worker renders differ")
	}
	if stats.PixelsRendered != 800*600 {
		t.Errorf("Expected %d pixels counted, got %d", 800*600, stats.PixelsRendered)
	}
}

func TestRender_MatchesSequentialTrace(t *testing.T) {
	s := scene.NewReferenceScene()
	fb, _ := renderReference(t, 160, 120, 4)

	w := integrator.NewWhitted(s)
	for y := 0; y < 120; y += 7 {
		for x := 0; x < 160; x += 5 {
			color, _ := w.PixelColor(x, y)
			r, g, b := color.Bytes()
			fr, fg, fbb := fb.At(x, y)
			if r != fr || g != fg || b != fbb {
				t.Fatalf("pixel (%d,%d): expected (%d,%d,%d), got (%d,%d,%d)", x, y, r, g, b, fr, fg, fbb)
			}
		}
	}
}

func TestRender_ReferenceSceneContent(t *testing.T) {
	fb, stats := renderReference(t, 800, 600, 8)

	r, g, b := fb.At(0, 0)
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("Expected empty corner to be black, got (%d,%d,%d)", r, g, b)
	}
	r, g, b = fb.At(200, 300)
	if r == 0 || r < g || r < b {
		t.Errorf("Expected red sphere center to be red, got (%d,%d,%d)", r, g, b)
	}
	if stats.EscapedPixels == 0 || stats.EscapedPixels == stats.TotalPixels {
		t.Errorf("Expected some but not all pixels to miss, got %d escaped", stats.EscapedPixels)
	}
	if stats.MaxBounces < 2 || stats.MaxBounces > integrator.MaxBounces {
		t.Errorf("Expected inter-reflections within the cap, got max %d bounces", stats.MaxBounces)
	}
}

func TestRender_InvalidConfigFailsFast(t *testing.T) {
	rt := NewRaytracer(scene.NewReferenceScene(), Config{Width: 800, Height: 600, Workers: 7}, nil)
	fb, _, err := rt.Render(context.Background())
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Expected ErrInvalidConfig, got %v", err)
	}
	if fb != nil {
		t.Error("Expected no framebuffer on error")
	}
	if got := rt.Progress().Load(); got != 0 {
		t.Errorf("Expected no pixels rendered, got %d", got)
	}
}

func TestRender_NilScene(t *testing.T) {
	rt := NewRaytracer(nil, Config{Width: 8, Height: 8, Workers: 1}, nil)
	if _, _, err := rt.Render(context.Background()); !errors.Is(err, scene.ErrInvalidScene) {
		t.Errorf("Expected ErrInvalidScene, got %v", err)
	}
}

func TestRender_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rt := NewRaytracer(scene.NewReferenceScene(), Config{Width: 80, Height: 60, Workers: 6}, nil)
	fb, _, err := rt.Render(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if fb != nil {
		t.Error("Expected no framebuffer from a cancelled render")
	}
}

func TestRender_AutoWorkers(t *testing.T) {
	rt := NewRaytracer(scene.NewReferenceScene(), Config{Width: 40, Height: 30}, nil)
	_, stats, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if stats.Workers < 1 || 30%stats.Workers != 0 {
		t.Errorf("Auto worker count %d does not divide 30", stats.Workers)
	}
	if stats.PixelsRendered != 40*30 {
		t.Errorf("Expected %d pixels, got %d", 40*30, stats.PixelsRendered)
	}
}

func TestRunBands_WorkerPanicFailsRender(t *testing.T) {
	progress := &Progress{}
	br := NewBandRenderer(integrator.NewWhitted(scene.NewReferenceScene()), progress)

	fb := NewFramebuffer(10, 4)
	tasks := []BandTask{
		{Band: Band{ID: 0, Start: 0, End: 2}, Width: 10, Pix: fb.Rows(0, 2)},
		// Buffer too short for the band: the worker panics writing past it
		{Band: Band{ID: 1, Start: 2, End: 4}, Width: 10, Pix: fb.Rows(2, 3)},
	}

	stats, err := runBands(context.Background(), br, tasks)
	if !errors.Is(err, ErrWorkerFailed) {
		t.Fatalf("Expected ErrWorkerFailed, got %v", err)
	}
	if stats != nil {
		t.Error("Expected no stats from a failed render")
	}
}
