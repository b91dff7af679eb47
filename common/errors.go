package common

import "fmt"

// DependencyError signals that the driver binary is missing, reports an
// unparseable version, or is too old to use. It is always returned before
// any process is spawned.
type DependencyError struct {
	Reason string
}

// Error satisfies the builtin error interface.
func (e *DependencyError) Error() string {
	return "dependency error: " + e.Reason
}

// NewDependencyError creates a DependencyError with a formatted reason.
func NewDependencyError(format string, args ...any) *DependencyError {
	return &DependencyError{Reason: fmt.Sprintf(format, args...)}
}

// ProcessError signals a failure managing the driver subprocess: a spawn
// failure, a readiness timeout, or an operation against a stopped
// supervisor.
type ProcessError struct {
	Op  string
	Err error
}

// Error satisfies the builtin error interface.
func (e *ProcessError) Error() string {
	if e.Err == nil {
		return "process error: " + e.Op
	}
	return fmt.Sprintf("process error: %s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying cause, if any.
func (e *ProcessError) Unwrap() error { return e.Err }
