package domain

import "fmt"

// ErrorCode classifies engine failures so the caller can render a specific
// message instead of a generic one.
type ErrorCode string

const (
	ErrCodeInvalidConfiguration ErrorCode = "InvalidConfiguration"
	ErrCodeEmptyDataset         ErrorCode = "EmptyDataset"
	ErrCodeInsufficientData     ErrorCode = "InsufficientData"
	ErrCodeCorrelationInput     ErrorCode = "CorrelationInputError"
	ErrCodeCanceled             ErrorCode = "Canceled"
)

// EngineError is the structured error carried in stage results. It also
// satisfies the error interface for the construction-time cases
// (invalid configuration) that are surfaced as plain Go errors.
type EngineError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func NewEngineError(code ErrorCode, message string) *EngineError {
	return &EngineError{Code: code, Message: message}
}

func NewEngineErrorf(code ErrorCode, format string, args ...any) *EngineError {
	return &EngineError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is allows errors.Is matching on the code alone.
func (e *EngineError) Is(target error) bool {
	t, ok := target.(*EngineError)
	return ok && t.Code == e.Code
}
