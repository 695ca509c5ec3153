package server

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteStage announces that an export stage started.
func (s *SSEWriter) WriteStage(stage string) {
	s.WriteEvent("stage", map[string]string{"stage": stage}) //nolint:errcheck
}

// WriteError sends an error event
func (s *SSEWriter) WriteError(status int, body map[string]any) {
	body["status"] = status
	s.WriteEvent("error", body) //nolint:errcheck
}

// WriteComplete sends the completion event with the export summary.
func (s *SSEWriter) WriteComplete(summary exportSummary) {
	s.WriteEvent("complete", summary) //nolint:errcheck
}
