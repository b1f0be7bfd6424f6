package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// RenderRequest represents the parameters for a render request
type RenderRequest struct {
	SceneRequest
	Zoom     int
	Format   string
	MaxDepth int
}

// handleRender renders a scene and responds with the encoded image.
// Render statistics are reported in X-Render-* headers.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	selectedScene, err := s.createScene(&req.SceneRequest)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	config := renderer.DefaultConfig()
	config.MaxDepth = req.MaxDepth

	renderID := fmt.Sprintf("render-%d", s.renderSeq.Add(1))
	consoleChan := make(chan ConsoleMessage, 64)
	logger := NewWebLogger(renderID, consoleChan)
	defer s.console.Collect(consoleChan)

	logger.Printf("Rendering %s scene at %dx%d\n", req.Scene, req.Width, req.Height)
	rt, err := renderer.NewRenderer(selectedScene, req.Width, req.Height, config, logger)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	img, stats := rt.RenderImage()

	var buf bytes.Buffer
	if err := output.Encode(&buf, output.Zoom(img, req.Zoom), req.Format); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	header := w.Header()
	header.Set("Content-Type", output.ContentType(req.Format))
	header.Set("Access-Control-Allow-Origin", "*")
	header.Set("Cache-Control", "no-cache")
	header.Set("X-Render-Id", renderID)
	header.Set("X-Render-Duration-Ms", strconv.FormatInt(stats.TotalDuration.Milliseconds(), 10))
	header.Set("X-Render-Rays", strconv.Itoa(stats.TotalRays()))
	header.Set("X-Render-Max-Depth", strconv.Itoa(stats.MaxDepthReached))
	header.Set("X-Render-Primitives", strconv.Itoa(selectedScene.GetPrimitiveCount()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// parseRenderRequest parses and validates render parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, &req.SceneRequest); err != nil {
		return nil, err
	}

	query := r.URL.Query()
	var err error
	if req.Zoom, err = parseIntParam(query, "zoom", 1, 1, 8); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", renderer.DefaultConfig().MaxDepth, 0, 50); err != nil {
		return nil, err
	}

	req.Format = output.FormatPNG
	if format := query.Get("format"); format != "" {
		if req.Format, err = output.ParseFormat(format); err != nil {
			return nil, err
		}
	}

	return req, nil
}
