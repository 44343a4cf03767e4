// Package apperr defines the error kinds shared by the stores, the services and the
// HTTP boundary. Callers classify with errors.Is against the Err* sentinels or with KindOf.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the closed set of failure categories the API reports.
type Kind int

const (
	Internal Kind = iota
	NotFound
	Validation
	Conflict
	Authentication
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case Validation:
		return "validation"
	case Conflict:
		return "conflict"
	case Authentication:
		return "authentication"
	default:
		return "internal"
	}
}

// HTTPStatus maps a kind to the status code written at the API boundary.
func (k Kind) HTTPStatus() int {
	switch k {
	case NotFound:
		return http.StatusNotFound
	case Validation:
		return http.StatusBadRequest
	case Conflict:
		return http.StatusConflict
	case Authentication:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

var (
	ErrNotFound       = &Error{Kind: NotFound, Message: "not found"}
	ErrValidation     = &Error{Kind: Validation, Message: "validation error"}
	ErrConflict       = &Error{Kind: Conflict, Message: "already exists"}
	ErrUnauthorized   = &Error{Kind: Authentication, Message: "unauthorized"}
	ErrInternal       = &Error{Kind: Internal, Message: "internal server error"}
	ErrInvalidToken   = &Error{Kind: Authentication, Message: "invalid token"}
	ErrSessionExpired = &Error{Kind: Authentication, Message: "session expired"}
)

// Error is a classified error. Message is safe to show to clients; Err carries the
// underlying cause for logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so a wrapped NotFound still satisfies
// errors.Is(err, ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New builds a classified error with a client-facing message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap classifies cause under kind. A nil cause yields nil.
func Wrap(cause error, kind Kind, message string) error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// PublicMessage returns the message that may be sent to a client. Internal errors
// never expose their cause.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Internal {
		return e.Message
	}
	return ErrInternal.Message
}
