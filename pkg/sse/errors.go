package sse

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrStreamUnavailable means the response carried no readable body.
	// Fatal for the operation that opened the stream.
	ErrStreamUnavailable = errors.New("stream unavailable: response has no readable body")

	// ErrRequestFailed means the request never produced a stream (network or
	// HTTP-level failure). Surfaced as a single terminal message by callers.
	ErrRequestFailed = errors.New("request failed")
)

// StreamError provides structured error information for stream operations.
type StreamError struct {
	Op       string // Operation that failed (e.g., "open", "read")
	Endpoint string // Request URL
	Status   int    // HTTP status, if a response was received
	Cause    error  // Underlying error
}

// Error implements the error interface.
func (e *StreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("sse %s %s: status %d: %v", e.Op, e.Endpoint, e.Status, e.Cause)
	}
	return fmt.Sprintf("sse %s %s: %v", e.Op, e.Endpoint, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *StreamError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *StreamError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}
