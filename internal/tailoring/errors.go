package tailoring

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/session"
)

// ConfigurationError means a phase was invoked without a usable credential.
// No client is created and no call is attempted.
type ConfigurationError struct {
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// AnalysisError wraps a failed analysis call.
type AnalysisError struct {
	Message string
	Cause   error
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analysis failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("analysis failed: %s", e.Message)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// Kind returns the adapter error kind behind the failure.
func (e *AnalysisError) Kind() llm.ErrorKind {
	return llm.KindOf(e.Cause)
}

// Stage identifies which generation call failed.
type Stage string

// Generation stages, in call order.
const (
	StageResume      Stage = "resume"
	StageCoverLetter Stage = "cover-letter"
)

// GenerationError wraps a failed resume or cover-letter call.
type GenerationError struct {
	Stage   Stage
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation failed (%s): %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("generation failed (%s): %s", e.Stage, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Kind returns the adapter error kind behind the failure.
func (e *GenerationError) Kind() llm.ErrorKind {
	return llm.KindOf(e.Cause)
}

// IsCredentialError reports whether err means the user must re-link a
// credential: a ConfigurationError, or an adapter error whose kind says the
// key was rejected or the project behind it is gone.
func IsCredentialError(err error) bool {
	if err == nil {
		return false
	}
	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) || errors.Is(err, session.ErrNoCredential) {
		return true
	}
	var llmErr *llm.Error
	return errors.As(err, &llmErr) && llm.IsCredentialKind(llmErr.Kind)
}

// credential fetches the key from sess or returns a ConfigurationError.
func credential(sess *session.Context) (string, error) {
	key, err := sess.Credential()
	if err != nil {
		return "", &ConfigurationError{Message: "API key is missing, no project connected", Cause: err}
	}
	return key, nil
}
