package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Limits applied to every render and inspect request
const (
	minDimension = 1
	maxDimension = 2000
	maxSamples   = 1000
	maxDepth     = 100
)

// Server handles web requests for the raytracer
type Server struct {
	port      int
	scenesDir string
}

// NewServer creates a new web server. YAML scenes are discovered in scenesDir.
func NewServer(port int, scenesDir string) *Server {
	return &Server{port: port, scenesDir: scenesDir}
}

// RenderRequest is the first message a client sends on the render socket
type RenderRequest struct {
	Scene   string `json:"scene"`   // Preset name or YAML scene ID
	Width   int    `json:"width"`   // Image width
	Height  int    `json:"height"`  // Image height
	Samples int    `json:"samples"` // Samples per pixel
	Depth   *int   `json:"depth"`   // Maximum reflection/refraction depth; absent means the default, 0 is allowed
	Seed    int64  `json:"seed"`    // Base seed for sub-pixel jitter
}

// Handler returns the routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in presets followed by the discovered YAML scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// createScene resolves a preset name, or the ID or name of a discovered YAML scene.
// Arbitrary file paths are not accepted.
func (s *Server) createScene(name string) (*scene.Scene, error) {
	if _, ok := scene.Preset(name); ok {
		return scene.NewPreset(name)
	}

	yamlScenes, err := scene.ListYAMLScenes(s.scenesDir)
	if err != nil {
		return nil, err
	}
	for _, info := range yamlScenes {
		if info.ID == name || info.Name == name {
			return loaders.LoadYAMLScene(info.FilePath)
		}
	}
	return nil, fmt.Errorf("unknown scene: %s", name)
}

// applyDefaults fills zero fields and checks the rest against the server limits
func (req *RenderRequest) applyDefaults() error {
	defaults := renderer.DefaultConfig()
	if req.Scene == "" {
		req.Scene = "spheres"
	}
	if req.Width == 0 {
		req.Width = defaults.Width
	}
	if req.Height == 0 {
		req.Height = defaults.Height
	}
	if req.Samples == 0 {
		req.Samples = defaults.Sampling.SamplesPerPixel
	}
	if req.Depth == nil {
		depth := defaults.Sampling.MaxDepth
		req.Depth = &depth
	}

	if err := checkRange("width", req.Width, minDimension, maxDimension); err != nil {
		return err
	}
	if err := checkRange("height", req.Height, minDimension, maxDimension); err != nil {
		return err
	}
	if err := checkRange("samples", req.Samples, 1, maxSamples); err != nil {
		return err
	}
	return checkRange("depth", *req.Depth, 0, maxDepth)
}

// config converts the request into a render configuration
func (req *RenderRequest) config() renderer.Config {
	return renderer.Config{
		Width:  req.Width,
		Height: req.Height,
		Seed:   req.Seed,
		Sampling: renderer.SamplingConfig{
			SamplesPerPixel: req.Samples,
			MaxDepth:        *req.Depth,
		},
	}
}

func checkRange(key string, value, min, max int) error {
	if value < min || value > max {
		return fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, value)
	}
	return nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if err := checkRange(key, parsed, min, max); err != nil {
			return 0, err
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
