package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	NumWorkers      int   // Number of parallel workers (0 = use CPU count)
	TileSize        int   // Edge length of the square tiles handed to workers
	Seed            int64 // Base seed; worker k samples with Seed+k
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
		NumWorkers:      0,
		TileSize:        32,
		Seed:            42,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetWorld() geometry.Hittable
	GetBackground() integrator.Background
}

// Raytracer turns a scene seen through a camera into a pixel buffer.
// The scene is only read, so one Raytracer can serve many workers.
type Raytracer struct {
	scene      Scene
	camera     RayGenerator
	integrator integrator.Integrator
	config     SamplingConfig
	logger     core.Logger
}

// NewRaytracer creates a new raytracer using unidirectional path tracing
func NewRaytracer(scene Scene, camera RayGenerator, config SamplingConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		scene:      scene,
		camera:     camera,
		integrator: integrator.NewPathTracingIntegrator(config.MaxDepth),
		config:     config,
		logger:     logger,
	}
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// Config returns the sampling configuration
func (rt *Raytracer) Config() SamplingConfig {
	return rt.config
}

// Render renders the whole image on the calling goroutine with a single
// sampler seeded from the config
func (rt *Raytracer) Render() (*PixelBuffer, RenderStats) {
	start := time.Now()
	width, height := rt.camera.ImageSize()
	buffer := NewPixelBuffer(width, height)
	sampler := core.NewSeededSampler(rt.config.Seed)

	rt.logger.Printf("Rendering %dx%d at %d samples per pixel...\n", width, height, rt.config.SamplesPerPixel)

	stats := RenderStats{Workers: 1}
	reported := 0
	for j := 0; j < height; j++ {
		row := image.Rect(0, j, width, j+1)
		stats.add(rt.RenderTile(row, buffer, sampler))

		if percent := (j + 1) * 100 / height; percent >= reported+10 {
			reported = percent - percent%10
			rt.logger.Printf("Rendering... %d%%\n", reported)
		}
	}
	stats.Tiles = 1

	stats.finalize(start)
	rt.logStats(stats)
	return buffer, stats
}

// RenderParallel renders the image with a pool of workers, one tile at a time.
// Cancelling ctx stops workers from starting new tiles; the partially
// rendered buffer is returned together with the context's error.
func (rt *Raytracer) RenderParallel(ctx context.Context) (*PixelBuffer, RenderStats, error) {
	start := time.Now()
	width, height := rt.camera.ImageSize()
	buffer := NewPixelBuffer(width, height)
	tiles := NewTileGrid(width, height, rt.config.TileSize)

	pool := NewWorkerPool(rt, len(tiles), rt.config.NumWorkers, rt.config.Seed)
	rt.logger.Printf("Rendering %dx%d at %d samples per pixel (%d tiles, %d workers)...\n",
		width, height, rt.config.SamplesPerPixel, len(tiles), pool.GetNumWorkers())

	pool.Start(ctx)
	for taskID, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: taskID, Buffer: buffer})
	}

	stats := RenderStats{Workers: pool.GetNumWorkers()}
	var renderErr error
	for i := 0; i < len(tiles); i++ {
		result, ok := pool.GetResult()
		if !ok {
			renderErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}
		stats.add(result.Stats)
	}
	pool.Stop()

	stats.finalize(start)
	if renderErr != nil {
		rt.logger.Printf("Render stopped after %d of %d tiles: %v\n", stats.Tiles, len(tiles), renderErr)
		return buffer, stats, renderErr
	}

	rt.logStats(stats)
	return buffer, stats, nil
}

// RenderTile renders the pixels inside bounds into buffer using sampler
func (rt *Raytracer) RenderTile(bounds image.Rectangle, buffer *PixelBuffer, sampler core.Sampler) RenderStats {
	world := rt.scene.GetWorld()
	background := rt.scene.GetBackground()
	samples := max(1, rt.config.SamplesPerPixel)

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			colorAccum := core.Vec3{}
			for s := 0; s < samples; s++ {
				ray := rt.camera.GetRay(i, j, sampler)
				colorAccum = colorAccum.Add(rt.integrator.Trace(ray, world, background, sampler))
			}
			buffer.Set(i, j, colorAccum.Multiply(1.0/float64(samples)))
		}
	}

	pixels := bounds.Dx() * bounds.Dy()
	return RenderStats{
		TotalPixels:  pixels,
		TotalSamples: pixels * samples,
		Tiles:        1,
	}
}

func (rt *Raytracer) logStats(stats RenderStats) {
	rt.logger.Printf("Rendered %d pixels, %d samples in %v (%.0f samples/s)\n",
		stats.TotalPixels, stats.TotalSamples, stats.Duration.Round(time.Millisecond), stats.SamplesPerSecond())
}
