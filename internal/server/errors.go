package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/intake"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/tailoring"
	"github.com/jonathan/resume-tailor/internal/workflow"
)

// ErrBadRequest indicates a malformed request body or parameter
type ErrBadRequest struct {
	Message string
	Cause   error
}

func (e *ErrBadRequest) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("bad request: %s: %v", e.Message, e.Cause)
	}
	return "bad request: " + e.Message
}

func (e *ErrBadRequest) Unwrap() error {
	return e.Cause
}

// ErrNoResult indicates a download was requested before a document exists
type ErrNoResult struct {
	Document string
}

func (e *ErrNoResult) Error() string {
	return fmt.Sprintf("no %s available", e.Document)
}

// Error codes carried in the error envelope.
const (
	CodeBadRequest        = "bad_request"
	CodeValidation        = "validation_failed"
	CodeCallInFlight      = "call_in_flight"
	CodeInvalidTransition = "invalid_transition"
	CodeCredential        = "credential_required"
	CodeAnalysisFailed    = "analysis_failed"
	CodeGenerationFailed  = "generation_failed"
	CodeTimeout           = "timeout"
	CodeJobPosting        = "job_posting_unavailable"
	CodeNoResult          = "no_result"
	CodeInternal          = "internal"
	CodeRateLimitExceeded = "rate_limit_exceeded"
)

// ErrorResponse is the JSON envelope of every failed request. Route is the
// workflow state after the failure, so a client knows which screen to show.
type ErrorResponse struct {
	Error  string              `json:"error"`
	Code   string              `json:"code"`
	Route  workflow.State      `json:"route,omitempty"`
	Notice *workflow.Notice    `json:"notice,omitempty"`
	Fields []intake.FieldError `json:"fields,omitempty"`
}

// HTTPStatus returns the HTTP status code and envelope code for an error
func HTTPStatus(err error) (int, string) {
	var (
		badRequest    *ErrBadRequest
		validationErr *intake.ValidationError
		noResult      *ErrNoResult
		analysisErr   *tailoring.AnalysisError
		generationErr *tailoring.GenerationError
	)
	switch {
	case errors.As(err, &badRequest):
		return http.StatusBadRequest, CodeBadRequest
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, CodeValidation
	case errors.Is(err, workflow.ErrCallInFlight):
		return http.StatusConflict, CodeCallInFlight
	case errors.Is(err, workflow.ErrInvalidTransition):
		return http.StatusConflict, CodeInvalidTransition
	case errors.As(err, &noResult):
		return http.StatusNotFound, CodeNoResult
	case tailoring.IsCredentialError(err):
		return http.StatusUnauthorized, CodeCredential
	case llm.KindOf(err) == llm.KindTimeout:
		return http.StatusGatewayTimeout, CodeTimeout
	case errors.As(err, &analysisErr):
		return http.StatusBadGateway, CodeAnalysisFailed
	case errors.As(err, &generationErr):
		return http.StatusBadGateway, CodeGenerationFailed
	case errors.Is(err, ingestion.ErrHTTPRequestFailed),
		errors.Is(err, ingestion.ErrContentExtractionFailed),
		errors.Is(err, ingestion.ErrEmptyPosting):
		return http.StatusUnprocessableEntity, CodeJobPosting
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// newErrorResponse builds the envelope for err.
func newErrorResponse(err error, code string) ErrorResponse {
	resp := ErrorResponse{Error: err.Error(), Code: code}
	var validationErr *intake.ValidationError
	if errors.As(err, &validationErr) {
		resp.Fields = validationErr.Fields
	}
	return resp
}
