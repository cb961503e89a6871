package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions that carry no extra context. Callers match
// them with errors.Is.
var (
	// ErrUnknownTool marks a directive naming a tool outside the dispatch table.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrMissingRecipient marks a CEO alias that could not be resolved from
	// configuration.
	ErrMissingRecipient = errors.New("no CEO email configured")
)

// UpstreamError wraps a failure of the completion service. It is always
// absorbed by the orchestrator and shown to the user as an apology string.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completion service unavailable: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ParseError wraps a directive extraction failure after all repair tiers.
// Logged, never surfaced to the user.
type ParseError struct {
	Span string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("directive parse failed: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// InvalidParametersError marks a dispatch whose directive lacked a required
// parameter. The orchestrator logs it and falls back to the cleaned text.
type InvalidParametersError struct {
	Tool  string
	Param string
}

func (e *InvalidParametersError) Error() string {
	return fmt.Sprintf("tool %s: missing required parameter %q", e.Tool, e.Param)
}

// MailError wraps an SMTP transport failure. Surfaced to the user as error
// text including the cause; never retried.
type MailError struct {
	Recipient string
	Err       error
}

func (e *MailError) Error() string {
	return fmt.Sprintf("failed to send email to %s: %v", e.Recipient, e.Err)
}

func (e *MailError) Unwrap() error { return e.Err }

// RenderError wraps a document build failure. Propagated: a flyer request
// that silently does nothing is worse than a visible failure.
type RenderError struct {
	Filename string
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to render %s: %v", e.Filename, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// IsInvalidParameters reports whether err originates from a missing directive
// parameter.
func IsInvalidParameters(err error) bool {
	var ipe *InvalidParametersError
	return errors.As(err, &ipe)
}
