package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Config holds the command line options for a single render
type Config struct {
	Scene      string
	Width      int
	Samples    int
	Depth      int
	Workers    int
	TileSize   int
	Seed       int64
	OutputRoot string
	Texture    string
	Flat       bool
	Sequential bool
}

func main() {
	config := Config{}
	flag.StringVar(&config.Scene, "scene", "default", "Scene to render (see -list)")
	flag.IntVar(&config.Width, "width", 0, "Image width in pixels (0 = scene default)")
	flag.IntVar(&config.Samples, "spp", 0, "Samples per pixel (0 = scene default)")
	flag.IntVar(&config.Depth, "depth", 0, "Maximum bounce depth (0 = scene default)")
	flag.IntVar(&config.Workers, "workers", 0, "Number of parallel workers (0 = one per CPU)")
	flag.IntVar(&config.TileSize, "tile", 0, "Tile size in pixels (0 = scene default)")
	flag.Int64Var(&config.Seed, "seed", 42, "Seed for scene layout, BVH construction and sampling")
	flag.StringVar(&config.OutputRoot, "output", "output", "Root directory for rendered images")
	flag.StringVar(&config.Texture, "texture", "", "Image texture for textured scenes (required by -scene earth)")
	flag.BoolVar(&config.Flat, "flat", false, "Intersect objects with a linear scan instead of a BVH")
	flag.BoolVar(&config.Sequential, "sequential", false, "Render on a single goroutine without tiles")
	list := flag.Bool("list", false, "List available scenes")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Path Tracer")
		fmt.Println("Usage: pathtracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		printScenes()
		fmt.Println()
		fmt.Println("Output will be saved to <output>/<scene>/render_<timestamp>.png")
		return
	}

	if *list {
		printScenes()
		return
	}

	filename, err := run(context.Background(), config, renderer.NewDefaultLogger())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Render saved as %s\n", filename)
}

func printScenes() {
	fmt.Println("Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Printf("  %-12s - %s\n", info.ID, info.Description)
	}
}

// createScene builds the named scene and applies the command line overrides
func createScene(config Config) (*scene.Scene, error) {
	s, err := scene.Create(config.Scene, scene.Options{
		Seed:        config.Seed,
		TexturePath: config.Texture,
		Camera:      renderer.CameraConfig{Width: config.Width},
	})
	if err != nil {
		return nil, err
	}

	if config.Samples > 0 {
		s.SamplingConfig.SamplesPerPixel = config.Samples
	}
	if config.Depth > 0 {
		s.SamplingConfig.MaxDepth = config.Depth
	}
	if config.TileSize > 0 {
		s.SamplingConfig.TileSize = config.TileSize
	}
	s.SamplingConfig.NumWorkers = config.Workers
	s.SamplingConfig.Seed = config.Seed
	s.UseBVH = !config.Flat

	return s, nil
}

// createOutputDir returns the directory renders of sceneType are written to
func createOutputDir(root, sceneType string) string {
	return filepath.Join(root, sceneType)
}

// run renders the configured scene and writes it as a timestamped PNG,
// returning the file name
func run(ctx context.Context, config Config, logger core.Logger) (string, error) {
	s, err := createScene(config)
	if err != nil {
		return "", err
	}

	if err := s.Preprocess(); err != nil {
		return "", fmt.Errorf("failed to prepare scene: %w", err)
	}
	if stats, ok := s.BVHStats(); ok {
		logger.Printf("Built BVH over %d objects: %d nodes, depth %d\n", s.Objects.Len(), stats.Nodes, stats.MaxDepth)
	}

	outputDir := createOutputDir(config.OutputRoot, config.Scene)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	raytracer := s.NewRaytracer(logger)

	var buffer *renderer.PixelBuffer
	if config.Sequential {
		buffer, _ = raytracer.Render()
	} else {
		buffer, _, err = raytracer.RenderParallel(ctx)
		if err != nil {
			return "", fmt.Errorf("render failed: %w", err)
		}
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, buffer.ToRGBA()); err != nil {
		return "", fmt.Errorf("failed to save PNG: %w", err)
	}

	return filename, nil
}
