package backend

import (
	"errors"
	"fmt"
)

// ValidationError reports input rejected locally, before any backend call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// BackendError reports a transport-level failure reaching the AI backend.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %s failed: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// InvalidResponseError reports a reachable backend whose payload failed
// shape validation.
type InvalidResponseError struct {
	Reason string
	Err    error
}

func (e *InvalidResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid backend response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid backend response: %s", e.Reason)
}

func (e *InvalidResponseError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a local input validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsBackend reports whether err is a transport failure.
func IsBackend(err error) bool {
	var be *BackendError
	return errors.As(err, &be)
}

// IsInvalidResponse reports whether err is a payload shape failure.
func IsInvalidResponse(err error) bool {
	var ie *InvalidResponseError
	return errors.As(err, &ie)
}
