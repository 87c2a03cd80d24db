package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/df07/go-band-raytracer/pkg/core"
	"github.com/df07/go-band-raytracer/pkg/imageio"
	"github.com/df07/go-band-raytracer/pkg/renderer"
	"github.com/df07/go-band-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneName string
	output    string
	config    renderer.Config
	watch     bool
	quiet     bool
}

func main() {
	fs, opts, help := newFlagSet()
	fs.Parse(os.Args[1:])

	if *help {
		fmt.Println("Band Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		fs.PrintDefaults()
		fmt.Println()
		fmt.Println("Scenes:")
		fmt.Println("  default     - Three reflective spheres lit by three point lights")
		fmt.Println("  <file.json> - JSON scene file")
		return
	}

	var logger core.Logger = renderer.NewDefaultLogger()
	if opts.quiet {
		logger = renderer.NopLogger{}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, *opts, logger); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newFlagSet registers the command line flags, filling opts on Parse
func newFlagSet() (*flag.FlagSet, *options, *bool) {
	defaults := renderer.DefaultConfig()
	fs := flag.NewFlagSet("raytracer", flag.ExitOnError)

	opts := &options{}
	fs.StringVar(&opts.sceneName, "scene", "default", "Scene: 'default' or path to a JSON scene file")
	fs.StringVar(&opts.output, "output", "image.ppm", "Output file (.ppm, .ppm.zst or .png)")
	fs.IntVar(&opts.config.Width, "width", defaults.Width, "Image width in pixels")
	fs.IntVar(&opts.config.Height, "height", defaults.Height, "Image height in pixels")
	fs.IntVar(&opts.config.Workers, "workers", defaults.Workers, "Number of worker bands; must divide height (0 = auto)")
	fs.BoolVar(&opts.watch, "watch", false, "Re-render whenever the scene file changes")
	fs.BoolVar(&opts.quiet, "quiet", false, "Only report errors")
	help := fs.Bool("help", false, "Show help information")

	return fs, opts, help
}

// run renders once, then keeps re-rendering on scene changes in watch mode
func run(ctx context.Context, opts options, logger core.Logger) error {
	if opts.watch && opts.sceneName == "default" {
		return fmt.Errorf("-watch needs a scene file")
	}

	s, err := createScene(opts.sceneName)
	if err != nil {
		return err
	}
	if err := renderToFile(ctx, s, opts, logger); err != nil {
		return err
	}

	if !opts.watch {
		return nil
	}

	logger.Printf("Watching %s for changes (Ctrl-C to stop)...\n", opts.sceneName)
	return scene.Watch(ctx, opts.sceneName,
		func(s *scene.Scene) {
			logger.Printf("Scene changed, re-rendering...\n")
			if err := renderToFile(ctx, s, opts, logger); err != nil {
				logger.Printf("Render failed: %v\n", err)
			}
		},
		func(err error) {
			logger.Printf("Scene reload failed: %v\n", err)
		},
	)
}

// createScene returns the built-in scene or loads a JSON scene file
func createScene(name string) (*scene.Scene, error) {
	switch {
	case name == "default":
		return scene.NewReferenceScene(), nil
	case strings.HasSuffix(strings.ToLower(name), ".json"):
		return scene.LoadFile(name)
	default:
		return nil, fmt.Errorf("unknown scene %q", name)
	}
}

func renderToFile(ctx context.Context, s *scene.Scene, opts options, logger core.Logger) error {
	raytracer := renderer.NewRaytracer(s, opts.config, logger)

	fb, stats, err := raytracer.Render(ctx)
	if err != nil {
		return err
	}

	if err := imageio.WriteFile(opts.output, fb); err != nil {
		return fmt.Errorf("error saving %s: %w", opts.output, err)
	}

	logger.Printf("Render saved as %s\n", opts.output)
	logger.Printf("Total pixels rendered by workers: %d\n", stats.PixelsRendered)
	return nil
}
