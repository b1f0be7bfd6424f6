package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Server handles web requests for the raytracer
type Server struct {
	port      int
	modelsDir string
	staticDir string
	console   *Console
	renderSeq atomic.Uint64
}

// NewServer creates a new web server. Models offered by the mesh scene are
// discovered in modelsDir.
func NewServer(port int, modelsDir, staticDir string) *Server {
	return &Server{
		port:      port,
		modelsDir: modelsDir,
		staticDir: staticDir,
		console:   NewConsole(200),
	}
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))

	// API endpoints
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/console", s.handleConsole)
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

// handleScenes lists the built-in scenes and the discovered models
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.modelsDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleConsole returns the recent render log messages
func (s *Server) handleConsole(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.console.Recent())
}

// SceneRequest holds the parameters shared by render and inspect requests
type SceneRequest struct {
	Scene  string // Built-in scene name
	Model  string // Model file name inside the models directory (mesh scene)
	Width  int
	Height int
}

// parseCommonSceneParams parses the scene parameters shared by all scene endpoints
func (s *Server) parseCommonSceneParams(r *http.Request, req *SceneRequest) error {
	query := r.URL.Query()

	req.Scene = query.Get("scene")
	req.Model = query.Get("model")
	if req.Scene == "" {
		req.Scene = "room"
		if req.Model != "" {
			req.Scene = "mesh"
		}
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 500, 16, 2000); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", 500, 16, 2000); err != nil {
		return err
	}
	return nil
}

// createScene builds the requested scene. The model name is resolved against
// the discovered models so requests cannot reach arbitrary files.
func (s *Server) createScene(req *SceneRequest) (*scene.Scene, error) {
	options := scene.DefaultSceneOptions()

	if req.Model != "" {
		models, err := scene.ListModels(s.modelsDir)
		if err != nil {
			return nil, err
		}
		for _, model := range models {
			if model.ID == req.Model {
				options.MeshPath = model.FilePath
				break
			}
		}
		if options.MeshPath == "" {
			return nil, fmt.Errorf("unknown model %q", req.Model)
		}
	}

	return scene.Create(req.Scene, options)
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

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
