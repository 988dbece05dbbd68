package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	scene  string
	out    string
	config renderer.Config
}

func main() {
	logger := log.New(os.Stderr, "", log.LstdFlags)
	if err := run(os.Args[1:], os.Stdout, logger); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger.Printf("Error: %v", err)
		os.Exit(1)
	}
}

// run renders one scene as described by args
func run(args []string, stdout io.Writer, logger *log.Logger) error {
	opts, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}

	selectedScene, err := createScene(opts.scene)
	if err != nil {
		return err
	}

	raytracer, err := renderer.NewRaytracer(selectedScene, opts.config)
	if err != nil {
		return err
	}
	raytracer.SetLogger(logger)

	img, stats := raytracer.Render(progressLogger(logger))
	logger.Printf("Rendered %d pixels, %d samples (%d workers)", stats.TotalPixels, stats.TotalSamples, stats.Workers)

	filename := opts.out
	if filename == "" {
		// Create timestamped filename under output/<scene>
		name := strings.TrimSuffix(filepath.Base(opts.scene), filepath.Ext(opts.scene))
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join("output", name, fmt.Sprintf("render_%s.png", timestamp))
	}
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	if err := output.Write(filename, img); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Render saved as %s\n", filename)
	return nil
}

// progressLogger reports finished rows each time another tenth of the image is done
func progressLogger(logger core.Logger) renderer.ProgressFunc {
	lastTenth := 0
	return func(rowsDone, totalRows int) {
		tenth := rowsDone * 10 / totalRows
		if tenth <= lastTenth {
			return
		}
		lastTenth = tenth
		logger.Printf("Progress: %d/%d rows (%d%%)", rowsDone, totalRows, rowsDone*100/totalRows)
	}
}

func parseFlags(args []string, stdout io.Writer) (options, error) {
	defaults := renderer.DefaultConfig()
	opts := options{}

	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stdout)
	fs.StringVar(&opts.scene, "scene", "spheres", "Preset name ("+strings.Join(scene.PresetNames(), ", ")+") or path to a .yaml scene")
	fs.IntVar(&opts.config.Width, "width", defaults.Width, "Image width in pixels")
	fs.IntVar(&opts.config.Height, "height", defaults.Height, "Image height in pixels")
	fs.IntVar(&opts.config.Sampling.SamplesPerPixel, "samples", defaults.Sampling.SamplesPerPixel, "Samples per pixel")
	fs.IntVar(&opts.config.Sampling.MaxDepth, "depth", defaults.Sampling.MaxDepth, "Maximum reflection/refraction depth")
	fs.IntVar(&opts.config.Workers, "workers", 0, "Number of parallel workers (0 = use CPU count)")
	fs.Int64Var(&opts.config.Seed, "seed", defaults.Seed, "Base seed for sub-pixel jitter")
	fs.StringVar(&opts.out, "out", "", "Output file (.png, .ppm, .ppm.gz, .ppm.zst, .ppm.sz); default output/<scene>/render_<timestamp>.png")
	help := fs.Bool("help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if *help {
		printHelp(fs, stdout)
		return opts, flag.ErrHelp
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.out != "" {
		if _, err := output.FormatFromPath(opts.out); err != nil {
			return opts, err
		}
	}
	return opts, opts.config.Validate()
}

func printHelp(fs *flag.FlagSet, stdout io.Writer) {
	fmt.Fprintln(stdout, "Whitted Raytracer")
	fmt.Fprintln(stdout, "Usage: raytracer [options]")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Available scenes:")
	for _, name := range scene.PresetNames() {
		info, _ := scene.Preset(name)
		fmt.Fprintf(stdout, "  %-14s %s\n", name, info.Description)
	}
	fmt.Fprintln(stdout, "  <file>.yaml    Scene description file")
}

// createScene resolves a preset name or loads a YAML scene file
func createScene(name string) (*scene.Scene, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".yaml" || ext == ".yml" {
		return loaders.LoadYAMLScene(name)
	}
	return scene.NewPreset(name)
}
