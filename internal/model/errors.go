package model

import (
	"errors"
	"fmt"
	"time"
)

// The workflow classifies every failure into one of the error kinds below.
// Stages wrap causes with %w so both the kind and the underlying provider or
// apiserver error stay inspectable; nothing is swallowed on the way up.

// ValidationError reports input rejected locally, before any provider call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ProviderError reports a cloud API call that failed or was rejected.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider: %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// AuthError reports credentials rejected by the provider or the apiserver.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("unauthorized: %s: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// TimeoutError reports a bounded wait that exhausted its time limit.
type TimeoutError struct {
	Op    string
	Limit time.Duration
	Err   error
}

func (e *TimeoutError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s did not complete within %s: %v", e.Op, e.Limit, e.Err)
	}
	return fmt.Sprintf("%s did not complete within %s", e.Op, e.Limit)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// ConflictError reports a resource that already exists with a conflicting
// definition. For namespaces the workflow treats it as benign and proceeds.
type ConflictError struct {
	Resource string
	Name     string
	Err      error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q already exists: %v", e.Resource, e.Name, e.Err)
}

func (e *ConflictError) Unwrap() error { return e.Err }

// DecodeError reports a malformed provider payload, such as a kubeconfig
// blob that is not valid base64.
type DecodeError struct {
	What string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.What, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IOError reports a filesystem failure while handling a local artifact.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var t *ValidationError
	return errors.As(err, &t)
}

// IsProvider reports whether err is a ProviderError.
func IsProvider(err error) bool {
	var t *ProviderError
	return errors.As(err, &t)
}

// IsAuth reports whether err is an AuthError.
func IsAuth(err error) bool {
	var t *AuthError
	return errors.As(err, &t)
}

// IsTimeout reports whether err is a TimeoutError.
func IsTimeout(err error) bool {
	var t *TimeoutError
	return errors.As(err, &t)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var t *ConflictError
	return errors.As(err, &t)
}

// IsDecode reports whether err is a DecodeError.
func IsDecode(err error) bool {
	var t *DecodeError
	return errors.As(err, &t)
}

// IsIO reports whether err is an IOError.
func IsIO(err error) bool {
	var t *IOError
	return errors.As(err, &t)
}
