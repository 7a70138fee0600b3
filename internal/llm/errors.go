package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorKind is the closed set of failure categories reported by adapters.
type ErrorKind string

// Error kinds. Callers route on these instead of matching message text.
const (
	KindAuth           ErrorKind = "auth"
	KindNotFound       ErrorKind = "not_found"
	KindRateLimited    ErrorKind = "rate_limited"
	KindUnavailable    ErrorKind = "unavailable"
	KindInvalidRequest ErrorKind = "invalid_request"
	KindTimeout        ErrorKind = "timeout"
	KindCanceled       ErrorKind = "canceled"
	KindEmpty          ErrorKind = "empty_response"
	KindUnknown        ErrorKind = "unknown"
)

// Error is returned by every adapter.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("llm %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("llm %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf returns the kind of the first *Error in err's chain, KindUnknown otherwise.
func KindOf(err error) ErrorKind {
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr.Kind
	}
	return KindUnknown
}

// IsCredentialKind reports whether kind means the credential is missing,
// rejected, or points at a project that no longer exists.
func IsCredentialKind(kind ErrorKind) bool {
	return kind == KindAuth || kind == KindNotFound
}

// classify builds an *Error from an HTTP status code and/or canonical status
// string. Either may be zero/empty.
func classify(code int, status, message string, cause error) *Error {
	kind := kindFromContext(cause)
	if kind == "" {
		kind = kindFromStatus(code, status, message)
	}
	return &Error{Kind: kind, StatusCode: code, Message: message, Cause: cause}
}

func kindFromContext(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, context.Canceled):
		return KindCanceled
	}
	return ""
}

func kindFromStatus(code int, status, message string) ErrorKind {
	status = strings.ToUpper(status)
	switch {
	case code == 401 || code == 403 || status == "UNAUTHENTICATED" || status == "PERMISSION_DENIED":
		return KindAuth
	case (code == 400 || status == "INVALID_ARGUMENT") && strings.Contains(strings.ToLower(message), "api key"):
		// Gemini reports an invalid key as INVALID_ARGUMENT.
		return KindAuth
	case code == 404 || status == "NOT_FOUND":
		return KindNotFound
	case code == 429 || status == "RESOURCE_EXHAUSTED":
		return KindRateLimited
	case code == 408 || code == 504 || status == "DEADLINE_EXCEEDED":
		return KindTimeout
	case code >= 500 || status == "UNAVAILABLE" || status == "INTERNAL":
		return KindUnavailable
	case code == 400 || status == "INVALID_ARGUMENT" || status == "FAILED_PRECONDITION":
		return KindInvalidRequest
	}
	return KindUnknown
}
