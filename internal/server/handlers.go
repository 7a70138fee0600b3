package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/jonathan/resume-tailor/internal/intake"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/jonathan/resume-tailor/internal/workflow"
)

// maxBodyBytes bounds intake bodies; resumes are plain text.
const maxBodyBytes = 2 << 20

// JobPostingRequest is the body of POST /intake/job-posting
type JobPostingRequest struct {
	URL string `json:"url"`
}

// JobPostingResponse is the fetched job description
type JobPostingResponse struct {
	Text     string `json:"text"`
	Platform string `json:"platform"`
	Cached   bool   `json:"cached"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSession returns the current session snapshot
func (s *Server) handleSession(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.workflow.Snapshot())
}

// handleConnect links a credential through the configured selector
func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	if err := s.workflow.Connect(r.Context()); err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.workflow.Snapshot())
}

// handleDisconnect drops the credential
func (s *Server) handleDisconnect(w http.ResponseWriter, _ *http.Request) {
	s.transition(w, s.workflow.Disconnect)
}

// handleReset drops analysis, edits and result
func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	s.transition(w, s.workflow.Reset)
}

// handleBackToIntake returns from review to intake
func (s *Server) handleBackToIntake(w http.ResponseWriter, _ *http.Request) {
	s.transition(w, s.workflow.BackToIntake)
}

// handleBackToReview returns from result to review
func (s *Server) handleBackToReview(w http.ResponseWriter, _ *http.Request) {
	s.transition(w, s.workflow.BackToReview)
}

func (s *Server) transition(w http.ResponseWriter, fn func() error) {
	if err := fn(); err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.workflow.Snapshot())
}

// handleIntake submits the intake form and runs the analysis phase
func (s *Server) handleIntake(w http.ResponseWriter, r *http.Request) {
	var form intake.Form
	if err := decodeBody(r, &form, false); err != nil {
		s.errorResponse(w, err)
		return
	}
	req := form.Normalize()

	s.runPhase(w, r, workflow.StateAnalyzing, func() error {
		_, err := s.workflow.Submit(r.Context(), req)
		return err
	})
}

// handleSaveEdits stores review edits without generating
func (s *Server) handleSaveEdits(w http.ResponseWriter, r *http.Request) {
	var edits types.UserEdits
	if err := decodeBody(r, &edits, false); err != nil {
		s.errorResponse(w, err)
		return
	}
	s.transition(w, func() error { return s.workflow.SaveEdits(edits) })
}

// handleConfirm runs the generation phase. An empty body confirms the
// edits already saved.
func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	var edits *types.UserEdits
	if err := decodeBody(r, &edits, true); err != nil {
		s.errorResponse(w, err)
		return
	}
	if edits == nil {
		edits = s.workflow.Snapshot().Edits
	}
	if edits == nil {
		// Not in review yet; let the workflow report the transition.
		edits = &types.UserEdits{}
	}

	s.runPhase(w, r, workflow.StateGenerating, func() error {
		_, err := s.workflow.Confirm(r.Context(), *edits)
		return err
	})
}

// runPhase runs a model-backed transition. With Accept: text/event-stream
// the client gets a state event right away and a snapshot or error event
// when the call ends.
func (s *Server) runPhase(w http.ResponseWriter, r *http.Request, running workflow.State, call func() error) {
	if !wantsStream(r) {
		if err := call(); err != nil {
			s.errorResponse(w, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, s.workflow.Snapshot())
		return
	}

	stream, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, &ErrBadRequest{Message: err.Error()})
		return
	}
	stream.WriteState(running)
	if err := call(); err != nil {
		_, code := HTTPStatus(err)
		stream.WriteError(s.envelope(err, code))
		return
	}
	stream.WriteSnapshot(s.workflow.Snapshot())
}

// handleJobPosting fetches a job description for the intake form
func (s *Server) handleJobPosting(w http.ResponseWriter, r *http.Request) {
	var body JobPostingRequest
	if err := decodeBody(r, &body, false); err != nil {
		s.errorResponse(w, err)
		return
	}
	if body.URL == "" {
		s.errorResponse(w, &ErrBadRequest{Message: "url is required"})
		return
	}

	posting, err := intake.LoadJobPosting(r.Context(), body.URL, s.postings)
	if err != nil {
		log.Printf("[server] job posting %s: %v", body.URL, err)
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, JobPostingResponse{
		Text:     posting.Text,
		Platform: posting.Metadata.Platform,
		Cached:   posting.Metadata.FromCache,
	})
}

// decodeBody decodes a JSON body into v. Unknown fields are rejected.
func decodeBody(r *http.Request, v any, allowEmpty bool) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return &ErrBadRequest{Message: "failed to read body", Cause: err}
	}
	if len(data) > maxBodyBytes {
		return &ErrBadRequest{Message: "body too large"}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		if allowEmpty {
			return nil
		}
		return &ErrBadRequest{Message: "body is required"}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &ErrBadRequest{Message: "invalid JSON body", Cause: err}
	}
	return nil
}
