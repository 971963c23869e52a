package vehicle

import (
	"errors"
	"fmt"
)

// FailureKind is the normalized reason a lookup failed.
type FailureKind string

const (
	// FailureNotFound: the service answered with a client error (4xx).
	FailureNotFound FailureKind = "not_found"

	// FailureServiceUnavailable: the service answered with a server error (5xx).
	FailureServiceUnavailable FailureKind = "service_unavailable"

	// FailureOther covers transport errors, timeouts, cancellation and
	// payloads that could not be decoded.
	FailureOther FailureKind = "other"
)

var (
	ErrNotFound           = errors.New("vehicle not found")
	ErrServiceUnavailable = errors.New("vehicle service unavailable")
	ErrOther              = errors.New("vehicle lookup failed")
)

// LookupError wraps a failed lookup with its normalized kind.
type LookupError struct {
	Kind               FailureKind
	RegistrationNumber string
	StatusCode         int // zero when no response was received
	Err                error
}

func (e *LookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("vehicle lookup %s [%s]: %v", e.RegistrationNumber, e.Kind, e.Err)
	}
	return fmt.Sprintf("vehicle lookup %s [%s]", e.RegistrationNumber, e.Kind)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the sentinel for the failure kind.
func (e *LookupError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == FailureNotFound
	case ErrServiceUnavailable:
		return e.Kind == FailureServiceUnavailable
	case ErrOther:
		return e.Kind == FailureOther
	}
	return false
}

func newLookupError(kind FailureKind, reg string, status int, err error) *LookupError {
	return &LookupError{Kind: kind, RegistrationNumber: reg, StatusCode: status, Err: err}
}

// KindOf classifies any error. Errors that are not a LookupError count as
// FailureOther; nil has no kind.
func KindOf(err error) FailureKind {
	if err == nil {
		return ""
	}
	var le *LookupError
	if errors.As(err, &le) {
		return le.Kind
	}
	return FailureOther
}
