package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/df07/go-raycaster/pkg/loaders"
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/pkg/scene"
)

const (
	DefaultWidth   = 400
	DefaultHeight  = 300
	MaxDimension   = 2000
	MaxSceneBytes  = 1 << 20 // Upper bound on uploaded scene text
	DefaultSceneID = "default"
)

// Server handles web requests for the raycaster
type Server struct {
	port        int
	scenesDir   string // Directory scanned for scene files
	sceneConfig loaders.SceneFileConfig
}

// NewServer creates a new web server serving built-in scenes and the
// scene files found in scenesDir
func NewServer(port int, scenesDir string) *Server {
	return &Server{
		port:        port,
		scenesDir:   scenesDir,
		sceneConfig: loaders.DefaultSceneFileConfig(),
	}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene      string // Built-in scene ID, empty when SceneText is set
	SceneText  string // Scene file contents posted in the request body
	Width      int    // Image width
	Height     int    // Image height
	Specular   bool   // Include the Phong specular term
	TileSize   int    // Tile size in pixels
	NumWorkers int    // Parallel workers (0 = auto)
}

// Stats represents render statistics
type Stats struct {
	TotalPixels int     `json:"totalPixels"`
	HitPixels   int     `json:"hitPixels"`
	Tiles       int     `json:"tiles"`
	Workers     int     `json:"workers"`
	ElapsedMs   int64   `json:"elapsedMs"`
	Luminance   float64 `json:"averageLuminance"`
}

// Handler returns the HTTP routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// API endpoints
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render/stream", s.handleRenderStream)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/health", s.handleHealth)

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
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes followed by discovered scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	files, err := scene.ListSceneFiles(s.scenesDir)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(append(scene.ListBuiltinScenes(), files...))
}

// writeJSONError writes an error response as JSON
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// parseRenderRequest parses request parameters. POST bodies carry scene
// text; otherwise the scene query parameter names a built-in scene.
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	defaults := renderer.DefaultRenderConfig()
	req := &RenderRequest{}

	switch r.Method {
	case http.MethodPost:
		body, err := io.ReadAll(io.LimitReader(r.Body, MaxSceneBytes+1))
		if err != nil {
			return nil, fmt.Errorf("failed to read scene: %v", err)
		}
		if len(body) > MaxSceneBytes {
			return nil, fmt.Errorf("scene exceeds %d bytes", MaxSceneBytes)
		}
		req.SceneText = string(body)
	case http.MethodGet:
		req.Scene = query.Get("scene")
		if req.Scene == "" {
			req.Scene = DefaultSceneID
		}
	default:
		return nil, fmt.Errorf("method %s not allowed", r.Method)
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", DefaultWidth, 1, MaxDimension); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", DefaultHeight, 1, MaxDimension); err != nil {
		return nil, err
	}
	if req.TileSize, err = parseIntParam(query, "tileSize", defaults.TileSize, 0, MaxDimension); err != nil {
		return nil, err
	}
	if req.NumWorkers, err = parseIntParam(query, "workers", defaults.NumWorkers, 0, 256); err != nil {
		return nil, err
	}
	if req.Specular, err = parseBoolParam(query, "specular", defaults.Shading.IncludeSpecular); err != nil {
		return nil, err
	}

	return req, nil
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

// createScene builds the scene named or uploaded in the request
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	switch {
	case req.Scene == "":
		return loaders.ParseSceneFile(strings.NewReader(req.SceneText), s.sceneConfig)
	case strings.HasPrefix(req.Scene, "file:"):
		return s.loadDiscoveredScene(req.Scene)
	default:
		return scene.NewBuiltinScene(req.Scene)
	}
}

// loadDiscoveredScene loads a scene file by ID. Only files returned by
// discovery are reachable, so IDs cannot name arbitrary paths.
func (s *Server) loadDiscoveredScene(id string) (*scene.Scene, error) {
	files, err := scene.ListSceneFiles(s.scenesDir)
	if err != nil {
		return nil, err
	}
	for _, info := range files {
		if info.ID == id {
			return loaders.LoadSceneFile(info.FilePath, s.sceneConfig)
		}
	}
	return nil, fmt.Errorf("unknown scene: %q", id)
}

// renderConfig converts request options into a render configuration
func (req *RenderRequest) renderConfig() renderer.RenderConfig {
	config := renderer.DefaultRenderConfig()
	config.TileSize = req.TileSize
	config.NumWorkers = req.NumWorkers
	config.Shading.IncludeSpecular = req.Specular
	return config
}
