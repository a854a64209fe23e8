// Package apierr defines the closed set of error kinds used across the
// CSuite and HubSpot integrations. Callers classify failures by kind (and
// the optional machine code) instead of sniffing message text.
package apierr

import (
	"errors"
	"fmt"
)

// Kind partitions every integration failure into one of four buckets.
type Kind string

const (
	// Transport covers network failures, timeouts, and non-JSON responses.
	Transport Kind = "transport"
	// Domain covers logical failures reported by the remote system.
	Domain Kind = "domain"
	// Config covers missing or invalid credentials, detected before any call.
	Config Kind = "config"
	// Malformed covers unparseable fields in otherwise valid responses.
	Malformed Kind = "malformed"
)

// CodeNotFound marks Domain errors where the remote record does not exist.
const CodeNotFound = "not_found"

// Error is a classified integration error. Op names the operation that
// failed ("hubspot.SearchContactByEmail" etc.).
type Error struct {
	Kind Kind
	Op   string
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a classified error from a format string.
func New(kind Kind, op, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// Wrap classifies an underlying error without reformatting it.
func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// NotFound builds a Domain error carrying the not_found code. The message
// keeps the literal "not found" marker because downstream systems written
// against the old string convention still grep for it.
func NotFound(op, format string, args ...interface{}) *Error {
	return &Error{Kind: Domain, Op: op, Code: CodeNotFound, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of err, or the empty string when err is not a
// classified error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsNotFound reports whether err is a Domain error for a missing record.
func IsNotFound(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == CodeNotFound
	}
	return false
}

// IsConfig reports whether err is a configuration error.
func IsConfig(err error) bool { return KindOf(err) == Config }
