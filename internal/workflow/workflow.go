package workflow

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/jonathan/resume-tailor/internal/session"
	"github.com/jonathan/resume-tailor/internal/tailoring"
	"github.com/jonathan/resume-tailor/internal/types"
)

// Analyzer runs the analysis phase.
type Analyzer interface {
	Analyze(ctx context.Context, sess *session.Context, req types.TailoringRequest) (*tailoring.Analysis, error)
}

// Generator runs the generation phase.
type Generator interface {
	Generate(ctx context.Context, sess *session.Context, req types.TailoringRequest, analysis types.AnalysisResult, confirmed []string) (*types.TailoringResult, error)
}

// RequestValidator checks a request before analysis starts.
type RequestValidator interface {
	Validate(req types.TailoringRequest) error
}

// Options configures a Workflow. Analyzer, Generator and Selector are required.
type Options struct {
	Analyzer  Analyzer
	Generator Generator
	Selector  session.Selector
	Validator RequestValidator
	// Session defaults to an empty, unlinked context.
	Session *session.Context
	// CallTimeout bounds each phase call when positive.
	CallTimeout time.Duration
}

// Workflow is the single-session state machine. It is safe for concurrent
// use; at most one phase call runs at a time.
type Workflow struct {
	id   string
	opts Options
	sess *session.Context
	call *semaphore.Weighted

	mu       sync.Mutex
	state    State
	request  *types.TailoringRequest
	analysis *tailoring.Analysis
	edits    *types.UserEdits
	result   *types.TailoringResult
	notice   *Notice
}

// New returns a Workflow in the credential-link state, or in intake when the
// supplied session already holds a credential.
func New(opts Options) (*Workflow, error) {
	if opts.Analyzer == nil || opts.Generator == nil {
		return nil, fmt.Errorf("workflow requires an analyzer and a generator")
	}
	if opts.Selector == nil {
		return nil, fmt.Errorf("workflow requires a credential selector")
	}
	sess := opts.Session
	if sess == nil {
		sess = &session.Context{}
	}

	w := &Workflow{
		id:    uuid.NewString(),
		opts:  opts,
		sess:  sess,
		call:  semaphore.NewWeighted(1),
		state: StateCredentialLink,
	}
	if sess.Connected() {
		w.state = StateIntake
	}
	return w, nil
}

// ID identifies the session for logs.
func (w *Workflow) ID() string {
	return w.id
}

// State returns the current state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Connect acquires a credential through the selector and moves to intake.
// The move only happens when a non-empty credential was obtained.
func (w *Workflow) Connect(ctx context.Context) error {
	if !w.call.TryAcquire(1) {
		return ErrCallInFlight
	}
	defer w.call.Release(1)

	w.mu.Lock()
	if w.state != StateCredentialLink {
		state := w.state
		w.mu.Unlock()
		return fmt.Errorf("connect from %s: %w", state, ErrInvalidTransition)
	}
	w.mu.Unlock()

	err := w.sess.Acquire(ctx, w.opts.Selector)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.notice = &Notice{Message: "Could not link a project credential.", Detail: err.Error()}
		return err
	}
	w.state = StateIntake
	w.notice = nil
	log.Printf("[workflow %s] credential linked", w.short())
	return nil
}

// Disconnect drops the credential and returns to credential-link. The last
// request is kept so the form can be restored after re-linking.
func (w *Workflow) Disconnect() error {
	if !w.call.TryAcquire(1) {
		return ErrCallInFlight
	}
	defer w.call.Release(1)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.sess.Clear()
	w.state = StateCredentialLink
	return nil
}

// Submit stores req, runs the analysis phase and moves to review. On failure
// the workflow falls back according to Route and the error is returned.
func (w *Workflow) Submit(ctx context.Context, req types.TailoringRequest) (*tailoring.Analysis, error) {
	if !w.call.TryAcquire(1) {
		return nil, ErrCallInFlight
	}
	defer w.call.Release(1)

	w.mu.Lock()
	if w.state != StateIntake {
		state := w.state
		w.mu.Unlock()
		return nil, fmt.Errorf("submit from %s: %w", state, ErrInvalidTransition)
	}
	if w.opts.Validator != nil {
		if err := w.opts.Validator.Validate(req); err != nil {
			w.mu.Unlock()
			return nil, err
		}
	}
	snapshot := req.Clone()
	w.request = &snapshot
	w.state = StateAnalyzing
	w.notice = nil
	w.mu.Unlock()

	callCtx, cancel := w.callContext(ctx)
	defer cancel()
	start := time.Now()
	analysis, err := w.opts.Analyzer.Analyze(callCtx, w.sess, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.fail(StateAnalyzing, err)
		return nil, err
	}

	edits := types.NewUserEdits(analysis.Result, req)
	w.analysis = analysis
	w.edits = &edits
	w.result = nil
	w.state = StateReview
	log.Printf("[workflow %s] analysis %s in %v (score %d)", w.short(), analysis.Status, time.Since(start).Round(time.Millisecond), analysis.Result.MatchScore)
	return analysis, nil
}

// SaveEdits replaces the review-stage edits without generating.
func (w *Workflow) SaveEdits(edits types.UserEdits) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateReview {
		return fmt.Errorf("save edits from %s: %w", w.state, ErrInvalidTransition)
	}
	stored := edits.Clone()
	w.edits = &stored
	return nil
}

// Confirm stores edits, overlays them onto the request and analysis, runs the
// generation phase and moves to result.
func (w *Workflow) Confirm(ctx context.Context, edits types.UserEdits) (*types.TailoringResult, error) {
	if !w.call.TryAcquire(1) {
		return nil, ErrCallInFlight
	}
	defer w.call.Release(1)

	w.mu.Lock()
	if w.state != StateReview || w.request == nil || w.analysis == nil {
		state := w.state
		w.mu.Unlock()
		return nil, fmt.Errorf("confirm from %s: %w", state, ErrInvalidTransition)
	}
	stored := edits.Clone()
	w.edits = &stored
	req, analysis, confirmed := tailoring.ApplyEdits(*w.request, w.analysis.Result, stored)
	w.state = StateGenerating
	w.notice = nil
	w.mu.Unlock()

	callCtx, cancel := w.callContext(ctx)
	defer cancel()
	start := time.Now()
	result, err := w.opts.Generator.Generate(callCtx, w.sess, req, analysis, confirmed)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.fail(StateGenerating, err)
		return nil, err
	}
	w.result = result
	w.state = StateResult
	log.Printf("[workflow %s] generation done in %v (cover letter: %t)", w.short(), time.Since(start).Round(time.Millisecond), result.HasCoverLetter())
	return result, nil
}

// BackToIntake returns from review to intake keeping the submitted request.
func (w *Workflow) BackToIntake() error {
	return w.back(StateReview, StateIntake)
}

// BackToReview returns from result to review keeping the edits.
func (w *Workflow) BackToReview() error {
	return w.back(StateResult, StateReview)
}

// Reset drops the analysis, edits and result and returns to intake. The
// credential and the last request are kept.
func (w *Workflow) Reset() error {
	if !w.call.TryAcquire(1) {
		return ErrCallInFlight
	}
	defer w.call.Release(1)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.analysis = nil
	w.edits = nil
	w.result = nil
	w.notice = nil
	if w.sess.Connected() {
		w.state = StateIntake
	} else {
		w.state = StateCredentialLink
	}
	return nil
}

func (w *Workflow) back(from, to State) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != from {
		return fmt.Errorf("back to %s from %s: %w", to, w.state, ErrInvalidTransition)
	}
	w.state = to
	w.notice = nil
	return nil
}

// fail routes a failure raised in phase. Callers hold mu.
func (w *Workflow) fail(phase State, err error) {
	target, message := routeFrom(phase, err)
	if target == StateCredentialLink {
		w.sess.Clear()
	}
	w.state = target
	w.notice = noticeFor(err, message)
	log.Printf("[workflow %s] %v -> %s", w.short(), err, target)
}

func (w *Workflow) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if w.opts.CallTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, w.opts.CallTimeout)
}

func (w *Workflow) short() string {
	if len(w.id) > 8 {
		return w.id[:8]
	}
	return w.id
}
