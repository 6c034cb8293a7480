package fetch

import (
	"fmt"
	"net/http"
)

// Kind classifies a fetch failure. The classification drives both the
// retry policy and the copy shown on the page-level error screen.
type Kind string

const (
	KindNetwork    Kind = "NETWORK"
	KindTimeout    Kind = "TIMEOUT"
	KindServer     Kind = "SERVER"
	KindNotFound   Kind = "NOT_FOUND"
	KindRateLimit  Kind = "RATE_LIMIT"
	KindParse      Kind = "PARSE"
	KindValidation Kind = "VALIDATION"
	KindUnknown    Kind = "UNKNOWN"
)

// retryableByKind is the default retry policy per kind. Only transient
// conditions get a retry budget; everything else fails on the first
// occurrence.
var retryableByKind = map[Kind]bool{
	KindNetwork: true,
	KindTimeout: true,
	KindServer:  true,
}

// UserMessage is display copy for the page-level error screen.
type UserMessage struct {
	Title   string
	Message string
	Action  string
}

var userMessages = map[Kind]UserMessage{
	KindNetwork: {
		Title:   "TRANSMISSION FAULT",
		Message: "The signal could not reach the remote service.",
		Action:  "Check your connection and press R to retry.",
	},
	KindTimeout: {
		Title:   "NO RESPONSE",
		Message: "The remote service took too long to answer.",
		Action:  "Press R to retry.",
	},
	KindServer: {
		Title:   "SERVICE FAULT",
		Message: "The remote service reported an internal error.",
		Action:  "Try again in a few minutes.",
	},
	KindNotFound: {
		Title:   "PAGE DATA MISSING",
		Message: "The requested resource does not exist.",
		Action:  "Check the request and try another page.",
	},
	KindRateLimit: {
		Title:   "TOO MANY REQUESTS",
		Message: "The remote service is limiting this portal.",
		Action:  "Wait a minute before refreshing.",
	},
	KindParse: {
		Title:   "GARBLED TRANSMISSION",
		Message: "The response could not be decoded.",
		Action:  "Press R to retry; report if it persists.",
	},
	KindValidation: {
		Title:   "BAD REQUEST",
		Message: "The request parameters were rejected before sending.",
		Action:  "Check your settings and try again.",
	},
	KindUnknown: {
		Title:   "UNKNOWN FAULT",
		Message: "Something went wrong fetching this page.",
		Action:  "Press R to retry.",
	},
}

// Error is a classified fetch failure.
type Error struct {
	Kind      Kind
	Status    int  // HTTP status when one was received, else 0
	Retryable bool // defaulted per Kind, overridable by callers
	cause     error
}

// NewError creates an Error of the given kind with the kind's default
// retryability.
func NewError(kind Kind, cause error) *Error {
	return &Error{
		Kind:      kind,
		Retryable: retryableByKind[kind],
		cause:     cause,
	}
}

// statusError classifies a non-OK HTTP status.
func statusError(status int) *Error {
	var kind Kind
	switch {
	case status == http.StatusNotFound:
		kind = KindNotFound
	case status == http.StatusTooManyRequests:
		kind = KindRateLimit
	case status >= 500:
		kind = KindServer
	case status >= 400:
		kind = KindValidation
	default:
		kind = KindUnknown
	}
	e := NewError(kind, nil)
	e.Status = status
	return e
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("fetch %s: %v", e.Kind, e.cause)
	}
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: http status %d", e.Kind, e.Status)
	}
	return fmt.Sprintf("fetch %s", e.Kind)
}

func (e *Error) Unwrap() error { return e.cause }

// User returns the display copy for this error's kind.
func (e *Error) User() UserMessage {
	if m, ok := userMessages[e.Kind]; ok {
		return m
	}
	return userMessages[KindUnknown]
}

// Validation creates a non-retryable VALIDATION error. Service clients
// use it to reject bad parameters before any network attempt.
func Validation(format string, args ...any) *Error {
	return NewError(KindValidation, fmt.Errorf(format, args...))
}
