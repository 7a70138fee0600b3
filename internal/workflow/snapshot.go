package workflow

import (
	"github.com/jonathan/resume-tailor/internal/tailoring"
	"github.com/jonathan/resume-tailor/internal/types"
)

// Snapshot is a read-only copy of the session for rendering layers.
type Snapshot struct {
	ID          string                  `json:"id"`
	State       State                   `json:"state"`
	Connected   bool                    `json:"connected"`
	Request     *types.TailoringRequest `json:"request,omitempty"`
	Analysis    *types.AnalysisResult   `json:"analysis,omitempty"`
	ParseStatus tailoring.ParseStatus   `json:"parseStatus,omitempty"`
	Warnings    []string                `json:"warnings,omitempty"`
	Edits       *types.UserEdits        `json:"edits,omitempty"`
	Result      *types.TailoringResult  `json:"result,omitempty"`
	Notice      *Notice                 `json:"notice,omitempty"`
}

// Snapshot copies the current session. Later transitions do not affect it.
func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := Snapshot{
		ID:        w.id,
		State:     w.state,
		Connected: w.sess.Connected(),
	}
	if w.request != nil {
		req := w.request.Clone()
		s.Request = &req
	}
	if w.analysis != nil {
		a := w.analysis.Result.Clone()
		s.Analysis = &a
		s.ParseStatus = w.analysis.Status
		s.Warnings = append([]string(nil), w.analysis.Warnings...)
	}
	if w.edits != nil {
		e := w.edits.Clone()
		s.Edits = &e
	}
	if w.result != nil {
		r := w.result.Clone()
		s.Result = &r
	}
	if w.notice != nil {
		n := *w.notice
		s.Notice = &n
	}
	return s
}
