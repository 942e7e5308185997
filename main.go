package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/loaders"
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/pkg/scene"
)

// UsageError reports malformed command line arguments
type UsageError struct{ Err error }

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// InputError reports an unreadable or invalid scene
type InputError struct{ Err error }

func (e *InputError) Error() string { return "input: " + e.Err.Error() }
func (e *InputError) Unwrap() error { return e.Err }

// OutputError reports a failure to write the rendered image
type OutputError struct{ Err error }

func (e *OutputError) Error() string { return "output: " + e.Err.Error() }
func (e *OutputError) Unwrap() error { return e.Err }

const usageLine = "Usage: raycast [options] <width> <height> <input-scene> <output-image>"

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		var usageErr *UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprintln(os.Stderr, usageLine)
		}
		os.Exit(1)
	}
}

// run parses args, renders the scene and writes the output image
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("raycast", flag.ContinueOnError)
	flags.SetOutput(stderr)

	renderConfig := renderer.DefaultRenderConfig()
	sceneConfig := loaders.DefaultSceneFileConfig()

	workers := flags.Int("workers", renderConfig.NumWorkers, "Number of parallel workers (0 = auto-detect CPU count)")
	tileSize := flags.Int("tile", renderConfig.TileSize, "Tile size in pixels (0 = whole image)")
	specular := flags.Bool("specular", renderConfig.Shading.IncludeSpecular, "Add the Phong specular term to shading")
	maxObjects := flags.Int("max-objects", sceneConfig.MaxObjects, "Maximum objects per scene (0 = unlimited)")
	verbose := flags.Bool("v", false, "Print the scene inventory and render progress")

	flags.Usage = func() {
		fmt.Fprintln(stderr, "Raycaster")
		fmt.Fprintln(stderr, usageLine)
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Options:")
		flags.PrintDefaults()
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "<input-scene> is a scene file path or a built-in scene name:")
		for _, info := range scene.ListBuiltinScenes() {
			fmt.Fprintf(stderr, "  %-12s %s\n", info.ID, info.Description)
		}
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Output is PNG for a .png extension and PPM (P3) otherwise.")
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return &UsageError{Err: err}
	}

	if flags.NArg() != 4 {
		return &UsageError{Err: fmt.Errorf("expected 4 arguments, got %d", flags.NArg())}
	}

	width, err := parseDimension("width", flags.Arg(0))
	if err != nil {
		return &UsageError{Err: err}
	}
	height, err := parseDimension("height", flags.Arg(1))
	if err != nil {
		return &UsageError{Err: err}
	}
	inputPath, outputPath := flags.Arg(2), flags.Arg(3)

	if *workers < 0 || *tileSize < 0 || *maxObjects < 0 {
		return &UsageError{Err: fmt.Errorf("-workers, -tile and -max-objects must not be negative")}
	}
	renderConfig.NumWorkers = *workers
	renderConfig.TileSize = *tileSize
	renderConfig.Shading.IncludeSpecular = *specular
	sceneConfig.MaxObjects = *maxObjects

	var logger core.Logger = renderer.NewNopLogger()
	if *verbose {
		logger = renderer.NewWriterLogger(stdout)
	}

	selectedScene, err := createScene(inputPath, sceneConfig)
	if err != nil {
		return &InputError{Err: err}
	}

	if *verbose {
		if err := selectedScene.Describe(stdout); err != nil {
			return &OutputError{Err: err}
		}
	}

	raycaster, err := renderer.NewRaycaster(selectedScene, width, height, renderConfig, logger)
	if err != nil {
		return &InputError{Err: err}
	}

	raster, stats, err := raycaster.Render(ctx)
	if err != nil {
		return err
	}

	if err := loaders.SaveRaster(outputPath, raster); err != nil {
		return &OutputError{Err: err}
	}

	logger.Printf("Hit %.1f%% of pixels, average luminance %.3f\n",
		100*stats.HitRatio(), renderer.CalculateAverageLuminance(raster))
	logger.Printf("Render saved as %s\n", outputPath)
	return nil
}

// createScene loads a scene file, falling back to a built-in scene of the
// same name when no such file exists
func createScene(input string, config loaders.SceneFileConfig) (*scene.Scene, error) {
	if input == "" {
		return nil, fmt.Errorf("scene name cannot be empty")
	}

	if _, err := os.Stat(input); err != nil {
		if builtin, builtinErr := scene.NewBuiltinScene(input); builtinErr == nil {
			return builtin, nil
		}
	}

	return loaders.LoadSceneFile(input, config)
}

// parseDimension parses a positive image dimension
func parseDimension(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, value)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return n, nil
}
