package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// cliOptions holds the parsed command line
type cliOptions struct {
	Scene      string
	Width      int
	Height     int
	MeshPath   string
	MeshScale  float64
	MeshOffset core.Vec3
	MeshColor  string
	MaxDepth   int
	Bands      int
	Workers    int
	Zoom       int
	Output     string
	ModelsDir  string
	ListModels bool
	Help       bool
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	if opts.Help {
		printHelp(os.Stdout)
		return
	}

	logger := renderer.NewDefaultLogger()
	if opts.ListModels {
		if err := listModels(opts.ModelsDir, os.Stdout); err != nil {
			fmt.Printf("Error listing models: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(opts, logger); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// newFlagSet binds every command line flag to opts
func newFlagSet(opts *cliOptions, errOutput io.Writer) *flag.FlagSet {
	defaults := renderer.DefaultConfig()
	opts.MeshOffset = scene.DefaultSceneOptions().Transform.Offset

	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(errOutput)
	fs.StringVar(&opts.Scene, "scene", "room", "Scene name: "+strings.Join(scene.BuiltinSceneNames(), ", "))
	fs.IntVar(&opts.Width, "width", 500, "Image width in pixels")
	fs.IntVar(&opts.Height, "height", 500, "Image height in pixels")
	fs.StringVar(&opts.MeshPath, "mesh", "", "Model file (.obj, .ply, .stl) for the mesh scene")
	fs.Float64Var(&opts.MeshScale, "mesh-scale", 1, "Scale applied to model vertices")
	fs.Func("mesh-offset", "Offset added to model vertices as \"x,y,z\" (default \"0,0,10\")", func(s string) error {
		v, err := parseVec3(s)
		if err != nil {
			return err
		}
		opts.MeshOffset = v
		return nil
	})
	fs.StringVar(&opts.MeshColor, "mesh-color", "silver", "Model color: a name or #rrggbb")
	fs.IntVar(&opts.MaxDepth, "max-depth", defaults.MaxDepth, "Maximum reflection/refraction depth")
	fs.IntVar(&opts.Bands, "bands", defaults.NumBands, "Number of row bands rendered in parallel")
	fs.IntVar(&opts.Workers, "workers", defaults.NumWorkers, "Number of workers (0 = one per band)")
	fs.IntVar(&opts.Zoom, "zoom", 1, "Integer zoom factor applied to the saved image")
	fs.StringVar(&opts.Output, "output", "", "Output file; the extension picks png, bmp or tiff (default output/<scene>/render_<timestamp>.png)")
	fs.StringVar(&opts.ModelsDir, "models-dir", "models", "Directory scanned by -list-models")
	fs.BoolVar(&opts.ListModels, "list-models", false, "List available models and exit")
	fs.BoolVar(&opts.Help, "help", false, "Show help information")
	return fs
}

// parseFlags parses args into options. Passing -mesh without -scene selects the mesh scene.
func parseFlags(args []string, errOutput io.Writer) (cliOptions, error) {
	var opts cliOptions
	fs := newFlagSet(&opts, errOutput)

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	sceneSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "scene" {
			sceneSet = true
		}
	})
	if opts.MeshPath != "" && !sceneSet {
		opts.Scene = "mesh"
	}

	return opts, nil
}

// parseVec3 parses "x,y,z"
func parseVec3(s string) (core.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}

	var coords [3]float64
	for i, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("invalid coordinate %q: %w", part, err)
		}
		coords[i] = value
	}
	return core.NewVec3(coords[0], coords[1], coords[2]), nil
}

// createScene builds the scene selected on the command line
func createScene(opts cliOptions) (*scene.Scene, error) {
	sceneOptions := scene.DefaultSceneOptions()
	sceneOptions.MeshPath = opts.MeshPath
	sceneOptions.Transform = loaders.Transform{Scale: opts.MeshScale, Offset: opts.MeshOffset}

	color, err := material.ParseColor(opts.MeshColor)
	if err != nil {
		return nil, err
	}
	sceneOptions.Material.Color = color

	return scene.Create(opts.Scene, sceneOptions)
}

// renderConfig applies the command line overrides to the default configuration
func renderConfig(opts cliOptions) renderer.Config {
	config := renderer.DefaultConfig()
	config.MaxDepth = opts.MaxDepth
	config.NumBands = opts.Bands
	config.NumWorkers = opts.Workers
	return config
}

// outputPath returns the file the render is written to
func outputPath(opts cliOptions, now time.Time) string {
	if opts.Output != "" {
		return opts.Output
	}
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", opts.Scene, fmt.Sprintf("render_%s.png", timestamp))
}

func run(opts cliOptions, logger core.Logger) error {
	logger.Printf("Starting Whitted Raytracer...\n")

	selectedScene, err := createScene(opts)
	if err != nil {
		return err
	}
	logger.Printf("Using %s scene (%d primitives, %d lights)\n",
		opts.Scene, selectedScene.GetPrimitiveCount(), len(selectedScene.GetLights()))

	r, err := renderer.NewRenderer(selectedScene, opts.Width, opts.Height, renderConfig(opts), logger)
	if err != nil {
		return err
	}

	img, stats := r.RenderImage()
	logger.Printf("Rays: %d camera, %d shadow, %d reflection, %d refraction\n",
		stats.CameraRays, stats.ShadowRays, stats.ReflectionRays, stats.RefractionRays)
	for i, d := range stats.BandDurations {
		logger.Printf("  band %d: %v\n", i, d)
	}

	filename := outputPath(opts, time.Now())
	if err := output.Save(filename, output.Zoom(img, opts.Zoom)); err != nil {
		return fmt.Errorf("failed to save render: %w", err)
	}

	logger.Printf("Render saved as %s\n", filename)
	return nil
}

func listModels(dir string, w io.Writer) error {
	models, err := scene.ListModels(dir)
	if err != nil {
		return err
	}
	if len(models) == 0 {
		fmt.Fprintf(w, "No models found in %s\n", dir)
		return nil
	}
	for _, model := range models {
		fmt.Fprintf(w, "  %-30s %s\n", model.FilePath, model.DisplayName)
		if model.Description != "" {
			fmt.Fprintf(w, "  %-30s %s\n", "", model.Description)
		}
	}
	return nil
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Whitted Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	var opts cliOptions
	newFlagSet(&opts, w).PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListBuiltinScenes() {
		fmt.Fprintf(w, "  %-7s - %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output will be saved to output/<scene>/render_<timestamp>.png unless -output is given")
}
