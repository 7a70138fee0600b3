// Package workflow drives a single tailoring session through its states:
// credential-link, intake, analyzing, review, generating and result.
package workflow

import (
	"errors"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/tailoring"
)

// State is a step of the workflow.
type State string

// Workflow states in forward order.
const (
	StateCredentialLink State = "credential-link"
	StateIntake         State = "intake"
	StateAnalyzing      State = "analyzing"
	StateReview         State = "review"
	StateGenerating     State = "generating"
	StateResult         State = "result"
)

var (
	// ErrInvalidTransition is returned when an operation is not allowed in the current state.
	ErrInvalidTransition = errors.New("operation not allowed in current state")
	// ErrCallInFlight is returned when a phase call is already pending.
	ErrCallInFlight = errors.New("a model call is already in progress")
)

// User-facing failure messages.
const (
	MsgCredentialExpired = "Your project connection has expired. Please re-link your project."
	MsgAnalysisFailed    = "Analysis failed. Ensure your Google Cloud Project has billing and Gemini API enabled."
	MsgGenerationFailed  = "Generation failed. Verify your project has credits for the selected model."
)

// Notice is the last failure shown to the user. It is cleared by the next
// successful transition.
type Notice struct {
	Message string        `json:"message"`
	Kind    llm.ErrorKind `json:"kind,omitempty"`
	Detail  string        `json:"detail,omitempty"`
}

// Route maps a phase failure to the state the workflow falls back to and the
// message to show. Credential failures always go back to credential-link;
// generation failures return to review and anything else to intake.
func Route(err error) (State, string) {
	var generationErr *tailoring.GenerationError
	if errors.As(err, &generationErr) {
		return routeFrom(StateGenerating, err)
	}
	return routeFrom(StateAnalyzing, err)
}

// routeFrom routes a failure raised while in phase.
func routeFrom(phase State, err error) (State, string) {
	switch {
	case tailoring.IsCredentialError(err):
		return StateCredentialLink, MsgCredentialExpired
	case phase == StateGenerating:
		return StateReview, MsgGenerationFailed
	default:
		return StateIntake, MsgAnalysisFailed
	}
}

func noticeFor(err error, message string) *Notice {
	n := &Notice{Message: message, Detail: err.Error()}
	if kind := llm.KindOf(err); kind != llm.KindUnknown {
		n.Kind = kind
	}
	return n
}
