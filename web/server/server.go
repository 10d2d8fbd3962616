package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/df07/go-pathtracer/pkg/scene"
)

// Config contains the settings for the preview server
type Config struct {
	Port           int
	TexturePath    string   // Image used by textured scenes; the earth scene fails without one
	AllowedOrigins []string // CORS origins allowed to call the API
}

// DefaultConfig returns a server on port 8080 that accepts requests from any origin
func DefaultConfig() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: []string{"*"},
	}
}

// Server handles web requests for the path tracer
type Server struct {
	config Config
	router *mux.Router
}

// NewServer creates a new web server
func NewServer(config Config) *Server {
	s := &Server{config: config, router: mux.NewRouter()}
	s.routes()
	return s
}

// routes registers every endpoint on the root router with its full path;
// method mismatches answer 405
func (s *Server) routes() {
	s.router.HandleFunc("/api/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/api/scenes", s.handleScenes).Methods("GET")
	s.router.HandleFunc("/api/scenes/{id}", s.handleSceneConfig).Methods("GET")
	s.router.HandleFunc("/api/render", s.handleRender).Methods("GET")
	s.router.HandleFunc("/api/inspect", s.handleInspect).Methods("GET")

	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, fmt.Sprintf("Method %s not allowed for %s", r.Method, r.URL.Path))
	})
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found: "+r.URL.Path)
	})
}

// Handler returns the router wrapped in the CORS middleware
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(s.router)
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"scenes": scene.ListScenes()})
}

// handleSceneConfig returns the default camera and sampling configuration for a scene
// along with the limits the render endpoint enforces
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneID := mux.Vars(r)["id"]

	sceneObj, err := s.createScene(sceneID, scene.Options{})
	if err != nil {
		s.writeSceneError(w, sceneID, err)
		return
	}

	sampling := sceneObj.SamplingConfig
	camera := sceneObj.CameraConfig
	response := map[string]interface{}{
		"scene": sceneID,
		"defaults": map[string]interface{}{
			"width":           camera.Width,
			"aspectRatio":     camera.AspectRatio,
			"vfov":            camera.VFov,
			"samplesPerPixel": sampling.SamplesPerPixel,
			"maxDepth":        sampling.MaxDepth,
			"tileSize":        sampling.TileSize,
			"seed":            sampling.Seed,
		},
		"limits": map[string]interface{}{
			"width":    map[string]int{"min": minWidth, "max": maxWidth},
			"samples":  map[string]int{"min": 1, "max": maxSamples},
			"depth":    map[string]int{"min": 1, "max": maxDepth},
			"workers":  map[string]int{"min": 0, "max": maxWorkers},
			"tileSize": map[string]int{"min": minTileSize, "max": maxTileSize},
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// createScene builds a scene from the registry with the server's texture path
func (s *Server) createScene(id string, opts scene.Options) (*scene.Scene, error) {
	if opts.TexturePath == "" {
		opts.TexturePath = s.config.TexturePath
	}
	return scene.Create(id, opts)
}

// writeSceneError answers 404 for unknown scenes and 500 for scenes that failed to build
func (s *Server) writeSceneError(w http.ResponseWriter, sceneID string, err error) {
	if errors.Is(err, scene.ErrUnknownScene) {
		writeError(w, http.StatusNotFound, "Unknown scene: "+sceneID)
		return
	}
	log.Printf("Scene %s failed to build: %v", sceneID, err)
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseBoolParam parses a boolean parameter from URL query
func parseBoolParam(values url.Values, key string, defaultValue bool) (bool, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
