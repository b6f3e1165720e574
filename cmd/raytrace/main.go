// Command raytrace renders a scene JSON file to an image.
package main

import (
	"fmt"
	"image"
	"image/draw"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	pathtracer "github.com/swordkee/pathtracer"
	"github.com/swordkee/pathtracer/imageio"
	"github.com/swordkee/pathtracer/sceneio"
)

// defaultSeed is used whenever --seed is not given, so two runs of the
// same scene without --seed still produce identical output.
const defaultSeed = 1

var (
	app = kingpin.New("raytrace", "Monte Carlo path tracer")

	sceneFile  = app.Arg("scene", "scene JSON file").Required().String()
	output     = app.Flag("output", "output image path (.png, .jpg, .webp); omit for window mode").Short('o').String()
	spp        = app.Flag("spp", "samples per pixel").Default("16").Int()
	workers    = app.Flag("workers", "render worker count (default: all CPUs)").Int()
	seed       = app.Flag("seed", "deterministic RNG seed").Default(fmt.Sprint(defaultSeed)).Int64()
	noProgress = app.Flag("no-progress", "suppress progress logging").Bool()
	verbose    = app.Flag("verbose", "enable development-mode (verbose) logging").Bool()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger, err := pathtracer.NewLogger(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger init:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	scene, err := sceneio.Load(*sceneFile)
	if err != nil {
		logExit(logger, err)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, scene.Width, scene.Height))
	windowed := *output == ""

	opts := pathtracer.RenderOptions{
		SamplesPerPixel: *spp,
		Seed:            *seed,
		Workers:         *workers,
	}
	start := time.Now()
	lastRefresh := start
	opts.OnProgress = func(done, total int) {
		if !*noProgress && (done%(total/20+1) == 0 || done == total) {
			logger.Info("rendering", zap.Int("done", done), zap.Int("total", total), zap.Duration("elapsed", time.Since(start)))
		}
		if windowed && time.Since(lastRefresh) > 500*time.Millisecond {
			lastRefresh = time.Now()
			refreshWindow(canvas)
		}
	}

	img := pathtracer.Render(scene, opts, logger)
	draw.Draw(canvas, canvas.Bounds(), img, img.Bounds().Min, draw.Src)

	out := *output
	if windowed {
		refreshWindow(canvas)
		out = "raytrace_preview.png"
		logger.Info("window mode: no -o given, writing final frame", zap.String("path", out))
	}

	if err := imageio.Save(out, canvas); err != nil {
		logExit(logger, err)
	}
	logger.Info("wrote output", zap.String("path", out))
}

// refreshWindow writes canvas to a fixed preview path, without pulling in
// a full GUI toolkit for one mutable canvas (see DESIGN.md). Render fills
// its own image and canvas receives those pixels only after Render
// returns, so the previews written during the render show an empty
// frame; only the final write shows the rendered image.
func refreshWindow(canvas *image.RGBA) {
	_ = imageio.Save("raytrace_preview.png", canvas)
}

func logExit(logger *zap.Logger, err error) {
	switch err.(type) {
	case *pathtracer.ConfigError:
		logger.Error("configuration error", zap.Error(err))
		os.Exit(2)
	case *pathtracer.AssetError:
		logger.Error("asset error", zap.Error(err))
		os.Exit(3)
	case *pathtracer.RenderError:
		logger.Error("render error", zap.Error(err))
		os.Exit(4)
	case *pathtracer.OutputError:
		logger.Error("output error", zap.Error(err))
		os.Exit(5)
	default:
		logger.Error("unexpected error", zap.Error(err))
		os.Exit(1)
	}
	panic("unreachable")
}
