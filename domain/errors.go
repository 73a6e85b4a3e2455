package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation matches any ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrRejected matches any RejectionError.
	ErrRejected = errors.New("rejected by backend")

	// ErrTransport matches any TransportError.
	ErrTransport = errors.New("transport failure")
)

// ValidationError is raised locally, before any request is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Invalid builds a ValidationError.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// RejectionError is a non-2xx response. Detail is the backend's reason, if
// it sent one as a plain string.
type RejectionError struct {
	Op     string
	Status int
	Detail string
}

func (e *RejectionError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: backend returned %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.Status, e.Detail)
}

func (e *RejectionError) Is(target error) bool { return target == ErrRejected }

// TransportError means the request could not complete or its body could not
// be decoded.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// RejectionDetail returns the backend-provided reason carried by err, if any.
func RejectionDetail(err error) (string, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) && rej.Detail != "" {
		return rej.Detail, true
	}
	return "", false
}

// ValidationMessage returns the user-facing message of a ValidationError.
func ValidationMessage(err error) (string, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Message, true
	}
	return "", false
}
