// Package coreerr provides a structured error type with wrapping and a
// machine-readable code, used across the assembly and storage layers so internal/api can map any error to an HTTP status without
// string-matching.
package coreerr

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// Code classifies an error for HTTP-status and client-handling purposes.
type Code uint8

const (
	CodeUnknown Code = iota
	CodePreconditionUnmet
	CodeUnknownUser
	CodeUnknownWord
	CodeConflict
	CodeStorage
)

// Reason is the machine-readable precondition code carried by a
// PreconditionUnmet error. The session endpoints hand this back verbatim
// in an available=false response instead of surfacing it as an HTTP error.
type Reason string

// The admission preconditions Learn, Practice, and Review can fail.
const (
	ReasonDailyLimitReached Reason = "daily_limit_reached"
	ReasonP1PoolFull        Reason = "p1_pool_full"
	ReasonNoWordsInP0       Reason = "no_words_in_p0"
	ReasonNotEnoughWords    Reason = "not_enough_words"
	ReasonPlacementRequired Reason = "placement_required"
)

// HTTPStatus maps a Code to the status the API layer should respond with.
func HTTPStatus(c Code) int {
	switch c {
	case CodePreconditionUnmet:
		// Only reached if a PreconditionUnmet leaks past the session
		// handlers' available=false translation into plain respondError.
		return http.StatusUnprocessableEntity
	case CodeUnknownUser, CodeUnknownWord:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeStorage, CodeUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Error is the structured error type returned by internal/assembler and
// internal/database.
type Error struct {
	code   Code
	reason Reason
	msg    string
	orig   error
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.orig }

// Code returns the error's code.
func (e *Error) Code() Code { return e.code }

// Reason returns the machine-readable precondition code. Empty for every
// Code other than CodePreconditionUnmet.
func (e *Error) Reason() Reason { return e.reason }

// As unwraps err and returns (*Error, true) if it is one of ours.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf extracts a Code from any error, defaulting to CodeUnknown.
func CodeOf(err error) Code {
	if e, ok := As(err); ok {
		return e.code
	}
	return CodeUnknown
}

// ReasonOf extracts the Reason from any error, defaulting to "".
func ReasonOf(err error) Reason {
	if e, ok := As(err); ok {
		return e.reason
	}
	return ""
}

// StatusOf returns the HTTP status internal/api should use for err.
func StatusOf(err error) int {
	return HTTPStatus(CodeOf(err))
}

func newf(code Code, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// PreconditionUnmet reports that an operation's admission rule is not
// currently satisfied. reason is the machine-readable code the session
// endpoints return verbatim; format/a build the human-readable message
// used in logs and for any caller that surfaces it as a plain error.
func PreconditionUnmet(reason Reason, format string, a ...any) error {
	return &Error{code: CodePreconditionUnmet, reason: reason, msg: fmt.Sprintf(format, a...)}
}

// UnknownUser reports that a user id has no row in storage.
func UnknownUser(userID string) error {
	return newf(CodeUnknownUser, "unknown user %s", userID)
}

// UnknownWord reports that a word id has no row in the catalog.
func UnknownWord(wordID string) error {
	return newf(CodeUnknownWord, "unknown word %s", wordID)
}

// Conflictf reports that a submitted answer or completion no longer
// matches the stored progress row, most often because a concurrent
// request already consumed the same session.
func Conflictf(format string, a ...any) error {
	return newf(CodeConflict, format, a...)
}

// Storage wraps an underlying storage error (database, cache) so callers
// can distinguish infrastructure failure from a domain error.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{code: CodeStorage, msg: fmt.Sprintf("storage failure during %s", op), orig: err}
}
