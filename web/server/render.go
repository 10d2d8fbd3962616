package server

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Request limits enforced by parseRenderRequest
const (
	minWidth    = 8
	maxWidth    = 2000
	maxSamples  = 10000
	maxDepth    = 200
	maxWorkers  = 256
	minTileSize = 4
	maxTileSize = 512
	maxSeed     = 1<<31 - 1
)

// RenderRequest represents a render request from the client.
// Zero numeric fields keep the scene's own defaults.
type RenderRequest struct {
	Scene    string  `json:"scene"`    // Scene id from the registry
	Width    int     `json:"width"`    // Image width; height follows the scene aspect ratio
	VFov     float64 `json:"vfov"`     // Vertical field of view override in degrees
	Samples  int     `json:"samples"`  // Samples per pixel
	Depth    int     `json:"depth"`    // Maximum bounce depth
	Workers  int     `json:"workers"`  // Worker goroutines (0 = one per CPU)
	TileSize int     `json:"tileSize"` // Tile edge in pixels
	Seed     int     `json:"seed"`     // Scene layout and sampling seed
	Flat     bool    `json:"flat"`     // Scan objects linearly instead of building a BVH
	Format   string  `json:"format"`   // "png" or "json"
}

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int64   `json:"totalSamples"`
	AverageSamples   float64 `json:"averageSamples"`
	Tiles            int     `json:"tiles"`
	Workers          int     `json:"workers"`
	ElapsedMs        int64   `json:"elapsedMs"`
	SamplesPerSecond float64 `json:"samplesPerSecond"`
	Luminance        float64 `json:"luminance"`
}

// RenderResponse is the JSON form of a finished render
type RenderResponse struct {
	Scene     string           `json:"scene"`
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
}

// handleRender renders a scene and answers with a PNG or, with format=json,
// the PNG base64 encoded alongside statistics and the render log
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req.Scene, scene.Options{
		Seed:   int64(req.Seed),
		Camera: renderer.CameraConfig{Width: req.Width, VFov: req.VFov},
	})
	if err != nil {
		s.writeSceneError(w, req.Scene, err)
		return
	}

	applyRenderRequest(sceneObj, req)
	if err := sceneObj.Preprocess(); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to prepare scene: %v", err))
		return
	}

	renderID := strconv.FormatInt(time.Now().UnixNano(), 36)
	consoleChan := make(chan ConsoleMessage, consoleBufferSize)
	logger := NewWebLogger(renderID, consoleChan)
	logger.Printf("Rendering %s with %d primitives\n", req.Scene, sceneObj.GetPrimitiveCount())

	// The request context stops dispatching tiles when the client disconnects
	ctx := r.Context()
	startTime := time.Now()
	buffer, renderStats, err := sceneObj.NewRaytracer(logger).RenderParallel(ctx)
	if err != nil {
		if errors.Is(err, ctx.Err()) {
			log.Printf("Render %s cancelled: %v", renderID, err)
			return
		}
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		return
	}

	img := buffer.ToRGBA()
	if req.Format == "png" {
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("X-Render-Samples", strconv.Itoa(renderStats.TotalSamples))
		w.Header().Set("X-Render-Duration-Ms", strconv.FormatInt(renderStats.Duration.Milliseconds(), 10))
		if err := png.Encode(w, img); err != nil {
			log.Printf("Failed to encode PNG for render %s: %v", renderID, err)
		}
		return
	}

	imageData, err := s.imageToBase64PNG(img)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, RenderResponse{
		Scene:     req.Scene,
		Width:     buffer.Width,
		Height:    buffer.Height,
		ImageData: imageData,
		Stats: Stats{
			TotalPixels:      renderStats.TotalPixels,
			TotalSamples:     int64(renderStats.TotalSamples),
			AverageSamples:   renderStats.AverageSamples,
			Tiles:            renderStats.Tiles,
			Workers:          renderStats.Workers,
			ElapsedMs:        time.Since(startTime).Milliseconds(),
			SamplesPerSecond: renderStats.SamplesPerSecond(),
			Luminance:        renderer.CalculateAverageLuminance(buffer),
		},
		Console: drainConsole(consoleChan),
	})
}

// applyRenderRequest copies the sampling overrides onto the scene
func applyRenderRequest(sceneObj *scene.Scene, req *RenderRequest) {
	if req.Samples > 0 {
		sceneObj.SamplingConfig.SamplesPerPixel = req.Samples
	}
	if req.Depth > 0 {
		sceneObj.SamplingConfig.MaxDepth = req.Depth
	}
	if req.TileSize > 0 {
		sceneObj.SamplingConfig.TileSize = req.TileSize
	}
	sceneObj.SamplingConfig.NumWorkers = req.Workers
	sceneObj.SamplingConfig.Seed = int64(req.Seed)
	sceneObj.UseBVH = !req.Flat
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: "default", Format: "png"}

	if sceneID := query.Get("scene"); sceneID != "" {
		req.Scene = sceneID
	}
	if format := query.Get("format"); format != "" {
		if format != "png" && format != "json" {
			return nil, fmt.Errorf("format must be png or json, got: %s", format)
		}
		req.Format = format
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, minWidth, maxWidth); err != nil {
		return nil, err
	}
	if req.VFov, err = parseFloatParam(query, "vfov", 0, 1, 179); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", 0, 1, maxDepth); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(query, "workers", 0, 0, maxWorkers); err != nil {
		return nil, err
	}
	if req.TileSize, err = parseIntParam(query, "tileSize", 0, minTileSize, maxTileSize); err != nil {
		return nil, err
	}
	if req.Seed, err = parseIntParam(query, "seed", 42, 0, maxSeed); err != nil {
		return nil, err
	}
	if req.Flat, err = parseBoolParam(query, "flat", false); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width > 800 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
