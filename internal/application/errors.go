package application

import (
	"errors"
	"fmt"

	"labelboard/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNotFound            = domain.ErrNotFound
	ErrRemoteUnavailable   = errors.New("remote store unavailable")
	ErrInvalidResponse     = errors.New("invalid response from remote store")
	ErrApplicationRejected = errors.New("rejected by remote store")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RemoteError describes a failed call to the remote store.
// Kind is one of ErrRemoteUnavailable, ErrInvalidResponse or
// ErrApplicationRejected.
type RemoteError struct {
	Op      string // e.g. "fetch tickets"
	Kind    error
	Status  int    // HTTP status, 0 when no response arrived
	Message string // Store-provided message for rejections
	Err     error  // Underlying cause, may be nil
}

func (e *RemoteError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s: %v (HTTP %d)", e.Op, e.Kind, e.Status)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
}

func (e *RemoteError) Is(target error) bool {
	return target == e.Kind
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// IsDegradable reports whether err should leave the dashboard running on an
// empty local state rather than abort startup
func IsDegradable(err error) bool {
	return errors.Is(err, ErrRemoteUnavailable) || errors.Is(err, ErrInvalidResponse)
}
