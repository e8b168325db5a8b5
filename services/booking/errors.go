package booking

import (
	"errors"
	"fmt"
)

// Lifecycle error codes, surfaced verbatim to the caller.
const (
	CodeNotFound     = "notFound"
	CodeConflict     = "conflict"
	CodeForbidden    = "forbidden"
	CodeInvalidState = "invalidState"
)

// LifecycleError is a business-rule rejection from the lifecycle manager or
// the conflict resolver. Anything else coming out of the service is a system
// error.
type LifecycleError struct {
	Code    string
	Message string
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewNotFoundError(format string, args ...any) error {
	return &LifecycleError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...any) error {
	return &LifecycleError{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

func NewForbiddenError(format string, args ...any) error {
	return &LifecycleError{Code: CodeForbidden, Message: fmt.Sprintf(format, args...)}
}

func NewInvalidStateError(format string, args ...any) error {
	return &LifecycleError{Code: CodeInvalidState, Message: fmt.Sprintf(format, args...)}
}

func codeOf(err error) string {
	var le *LifecycleError
	if errors.As(err, &le) {
		return le.Code
	}
	return ""
}

func IsNotFound(err error) bool     { return codeOf(err) == CodeNotFound }
func IsConflict(err error) bool     { return codeOf(err) == CodeConflict }
func IsForbidden(err error) bool    { return codeOf(err) == CodeForbidden }
func IsInvalidState(err error) bool { return codeOf(err) == CodeInvalidState }
