package models

import "fmt"

const (
	MsgIDNotInteger   = "id must be an integer"
	MsgIDOutOfRange   = "id must be between 1 and 6 inclusive"
	MsgWeightNotFloat = "weight must be a float"
	MsgNoSignals      = "at least one signal is required"
)

// ValidationError reports a malformed request value. It maps to HTTP 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError creates a ValidationError with a fixed message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// NewValidationErrorf creates a ValidationError with formatting.
func NewValidationErrorf(format string, a ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, a...)}
}

// MissingWeightError is returned when a signal has to be loaded but no weight names it.
func MissingWeightError(id SignalID) *ValidationError {
	return NewValidationErrorf("no weight supplied for signal %d", id)
}

// UpstreamError reports a failed or malformed response from the signal service.
type UpstreamError struct {
	SignalID SignalID
	Status   int // HTTP status, 0 when no response was received
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream signal %d: status %d: %v", e.SignalID, e.Status, e.Err)
	}
	return fmt.Sprintf("upstream signal %d: %v", e.SignalID, e.Err)
}

// Unwrap returns underlying error.
func (e *UpstreamError) Unwrap() error { return e.Err }
