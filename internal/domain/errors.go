package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Upstream errors
	ErrMsgNetworkFailure = "upstream data source unreachable"

	// Dataset errors
	ErrMsgValidationFailure = "dataset validation failed"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
// Absence (no match for a lookup, filter or random pick) is never an error.
var (
	ErrNetworkFailure    = errors.New(ErrMsgNetworkFailure)
	ErrValidationFailure = errors.New(ErrMsgValidationFailure)
	ErrInvalidInput      = errors.New(ErrMsgInvalidInput)
)

// NetworkError reports an unreachable upstream or a non-2xx response.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: GET %s returned status %d", ErrMsgNetworkFailure, e.URL, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: GET %s: %v", ErrMsgNetworkFailure, e.URL, e.Err)
	default:
		return fmt.Sprintf("%s: GET %s", ErrMsgNetworkFailure, e.URL)
	}
}

// Unwrap exposes both the sentinel and the transport cause.
func (e *NetworkError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNetworkFailure}
	}
	return []error{ErrNetworkFailure, e.Err}
}

// ValidationIssue is one violation found in an upstream payload.
type ValidationIssue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (i ValidationIssue) String() string {
	return fmt.Sprintf("at %s: %s", i.Path, i.Message)
}

// ValidationError enumerates every path of a payload that failed validation.
type ValidationError struct {
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return ErrMsgValidationFailure
	}
	lines := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		lines = append(lines, "  - "+issue.String())
	}
	return fmt.Sprintf("%s (%d issues):\n%s", ErrMsgValidationFailure, len(e.Issues), strings.Join(lines, "\n"))
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailure }

// Paths returns the violating paths in report order.
func (e *ValidationError) Paths() []string {
	out := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		out = append(out, issue.Path)
	}
	return out
}
