package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/loaders"
	"github.com/df07/go-raycaster/pkg/renderer"
)

// CompleteEvent is the final SSE event of a streamed render
type CompleteEvent struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
}

// renderOutcome carries a finished render back to the request goroutine
type renderOutcome struct {
	raster *renderer.Raster
	stats  renderer.RenderStats
	err    error
}

// handleRender renders a scene and responds with a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, statusFor(r), fmt.Sprintf("Invalid request: %v", err))
		return
	}

	raycaster, err := s.setupRaycaster(req, nil)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	raster, stats, err := raycaster.Render(r.Context())
	if err != nil {
		log.Printf("Render failed: %v", err)
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	var buf bytes.Buffer
	if err := loaders.WritePNG(&buf, raster); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Hit-Pixels", strconv.Itoa(stats.HitPixels))
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleRenderStream renders a scene while streaming log lines via SSE,
// then sends the finished image as a complete event
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendSSEEvent(w, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()

	raycaster, err := s.setupRaycaster(req, webLogger)
	if err != nil {
		s.sendSSEEvent(w, "error", err.Error())
		return
	}

	// Buffered so the render goroutine never blocks after a disconnect
	resultChan := make(chan renderOutcome, 1)
	go func() {
		raster, stats, err := raycaster.Render(ctx)
		resultChan <- renderOutcome{raster: raster, stats: stats, err: err}
	}()

	for {
		select {
		case msg := <-consoleChan:
			if err := s.sendConsoleMessage(w, msg); err != nil {
				return
			}

		case outcome := <-resultChan:
			s.flushConsole(w, consoleChan)
			if outcome.err != nil {
				s.sendSSEEvent(w, "error", fmt.Sprintf("Rendering failed: %v", outcome.err))
				return
			}
			s.sendComplete(w, outcome)
			return

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}

// setupRaycaster builds the scene and raycaster for a request
func (s *Server) setupRaycaster(req *RenderRequest, logger core.Logger) (*renderer.Raycaster, error) {
	sceneObj, err := s.createScene(req)
	if err != nil {
		return nil, fmt.Errorf("Invalid scene: %v", err)
	}
	return renderer.NewRaycaster(sceneObj, req.Width, req.Height, req.renderConfig(), logger)
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// sendConsoleMessage sends a console message as an SSE event
func (s *Server) sendConsoleMessage(w http.ResponseWriter, msg ConsoleMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling console message: %v", err)
		return nil
	}
	return s.sendSSEEvent(w, "console", string(data))
}

// flushConsole sends any console messages still queued
func (s *Server) flushConsole(w http.ResponseWriter, consoleChan chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			if err := s.sendConsoleMessage(w, msg); err != nil {
				return
			}
		default:
			return
		}
	}
}

// sendComplete encodes the finished image and sends the complete event
func (s *Server) sendComplete(w http.ResponseWriter, outcome renderOutcome) {
	var buf bytes.Buffer
	if err := loaders.WritePNG(&buf, outcome.raster); err != nil {
		s.sendSSEEvent(w, "error", fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	event := CompleteEvent{
		Width:     outcome.raster.Width,
		Height:    outcome.raster.Height,
		ImageData: base64.StdEncoding.EncodeToString(buf.Bytes()),
		Stats: Stats{
			TotalPixels: outcome.stats.TotalPixels,
			HitPixels:   outcome.stats.HitPixels,
			Tiles:       outcome.stats.Tiles,
			Workers:     outcome.stats.Workers,
			ElapsedMs:   outcome.stats.Elapsed.Milliseconds(),
			Luminance:   renderer.CalculateAverageLuminance(outcome.raster),
		},
	}

	data, err := json.Marshal(event)
	if err != nil {
		s.sendSSEEvent(w, "error", fmt.Sprintf("Failed to encode event: %v", err))
		return
	}
	s.sendSSEEvent(w, "complete", string(data))
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}

// statusFor picks the status code for a rejected request
func statusFor(r *http.Request) int {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		return http.StatusMethodNotAllowed
	}
	return http.StatusBadRequest
}

