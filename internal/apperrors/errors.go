// Package apperrors defines the error taxonomy shared by the service
// layer. Services return these; the HTTP layer maps Kind to a status
// code so the services stay transport-agnostic.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error into one of a closed set of variants.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindDatabase
)

// Error is a typed error with a client-safe detail message. Err, when
// set, carries the underlying cause and is never sent to clients.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Detail, e.Err)
	}
	return e.Detail
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports structurally invalid or conflicting client data.
func Validation(detail string) *Error {
	return &Error{Kind: KindValidation, Detail: detail}
}

// Authentication reports that an identity could not be established.
func Authentication(detail string) *Error {
	return &Error{Kind: KindAuthentication, Detail: detail}
}

// Authorization reports a permitted identity lacking access.
func Authorization(detail string) *Error {
	return &Error{Kind: KindAuthorization, Detail: detail}
}

// NotFound reports an absent entity.
func NotFound(detail string) *Error {
	return &Error{Kind: KindNotFound, Detail: detail}
}

// Database wraps a storage-layer failure.
func Database(detail string, err error) *Error {
	return &Error{Kind: KindDatabase, Detail: detail, Err: err}
}

// KindOf extracts the Kind from err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// DetailOf returns the client-safe detail of err, or a generic message
// for untyped errors so internals never leak.
func DetailOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Detail
	}
	return "internal server error"
}
