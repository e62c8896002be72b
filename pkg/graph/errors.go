package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrNodeNotFound  = errors.New("node not found")
	ErrDuplicateNode = errors.New("duplicate node id")
	ErrDanglingLink  = errors.New("link references unknown node")
	ErrSelfLink      = errors.New("link endpoints are the same node")
)

// ModelError provides structured error information for model operations.
type ModelError struct {
	Op    string // Operation that failed (e.g., "AddNode", "AddLink")
	ID    string // Node id involved, if applicable
	Cause error  // Underlying error
}

// Error implements the error interface.
func (e *ModelError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %q: %v", e.Op, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *ModelError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *ModelError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}
