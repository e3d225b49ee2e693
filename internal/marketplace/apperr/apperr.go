// Package apperr is the closed set of error kinds the HTTP layer knows how
// to render. Services return these (or wrap them); handlers never pick
// status codes themselves.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindRateLimited
	KindAuth
	KindAuthInput
	KindForbidden
	KindNotFound
	KindConflict
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindRateLimited:
		return "rate_limited"
	case KindAuth:
		return "auth"
	case KindAuthInput:
		return "auth_input"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

// Status is the HTTP status for k. OTP input problems and duplicates are
// 400 because existing clients branch on that. Upstream failures share 500
// with internal ones and differ only in the message.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindAuthInput, KindConflict:
		return http.StatusBadRequest
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure. Message is safe to show to clients; Err
// is for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by kind and message, so package level
// sentinels work with errors.Is even after Wrap.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

// New builds a sentinel-style error.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap attaches cause to a copy of e.
func Wrap(e *Error, cause error) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, Err: cause}
}

func Validation(msg string) *Error { return New(KindValidation, msg) }
func NotFound(msg string) *Error   { return New(KindNotFound, msg) }
func Forbidden(msg string) *Error  { return New(KindForbidden, msg) }

// Upstream reports a third-party failure. msg goes to the client, cause
// only to the logs.
func Upstream(msg string, cause error) *Error {
	return &Error{Kind: KindUpstream, Message: msg, Err: cause}
}

// Internal hides cause behind a generic message.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "Something went wrong", Err: cause}
}

// As extracts the *Error from err's chain. Unclassified errors come back
// as KindInternal.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}
