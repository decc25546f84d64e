package geometry

import "fmt"

type ErrorCode string

const (
	ErrorMissingParameter ErrorCode = "MISSING_PARAMETER"
	ErrorInvalidParameter ErrorCode = "INVALID_PARAMETER"
)

// ValidationError reports a geometric input that cannot be drawn.
type ValidationError struct {
	Code   ErrorCode
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("geometry: %s %s: %s", e.Code, e.Param, e.Reason)
}

func newValidationError(code ErrorCode, param, reason string) *ValidationError {
	return &ValidationError{Code: code, Param: param, Reason: reason}
}
