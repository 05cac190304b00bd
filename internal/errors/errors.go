// Package errors defines typed errors with categories for user-friendly reporting.
// Every exchange with the tablepad backend that does not succeed ends in exactly one
// of three kinds: the exchange never completed, it completed with a non-success
// status, or it completed with a body that does not have the expected shape.
//
// Callers branch on the kind (via KindOf or Is) instead of matching message text.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// NetworkFailure indicates the exchange itself did not complete.
	NetworkFailure Kind = "network_failure"
	// ServerFailure indicates the exchange completed with a non-success status.
	ServerFailure Kind = "server_failure"
	// MalformedResponse indicates the response body did not match the expected shape.
	MalformedResponse Kind = "malformed_response"
)

// E wraps an error with kind and human-friendly message.
// Status is the HTTP status code for ServerFailure, zero otherwise.
type E struct {
	Kind    Kind
	Message string
	Status  int
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// Status builds a ServerFailure for a response with the given status code.
func Status(code int, msg string) *E {
	return &E{Kind: ServerFailure, Message: msg, Status: code}
}

// KindOf reports the kind of the first *E in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
