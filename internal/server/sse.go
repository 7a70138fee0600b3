package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jonathan/resume-tailor/internal/workflow"
)

// Event names sent on a phase stream.
const (
	EventState    = "state"
	EventSnapshot = "snapshot"
	EventError    = "error"
)

// wantsStream reports whether the client asked for Server-Sent Events.
func wantsStream(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/event-stream")
}

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
	w.WriteHeader(http.StatusOK)

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

// WriteState announces the state a phase call is running in.
func (s *SSEWriter) WriteState(state workflow.State) {
	s.WriteEvent(EventState, map[string]workflow.State{"state": state}) //nolint:errcheck
}

// WriteError sends the error envelope
func (s *SSEWriter) WriteError(resp ErrorResponse) {
	s.WriteEvent(EventError, resp) //nolint:errcheck
}

// WriteSnapshot sends the session after a completed phase
func (s *SSEWriter) WriteSnapshot(snapshot workflow.Snapshot) {
	s.WriteEvent(EventSnapshot, snapshot) //nolint:errcheck
}
