package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/desertthunder/hrvxo-music/internal/shared"
)

// Kind classifies a service failure.
type Kind int

const (
	Validation Kind = iota + 1
	Credential
	Upstream
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Credential:
		return "credential"
	case Upstream:
		return "upstream"
	default:
		return "unknown"
	}
}

// StatusCode maps k onto its HTTP status.
func (k Kind) StatusCode() int {
	switch k {
	case Validation:
		return http.StatusBadRequest
	case Credential:
		return http.StatusServiceUnavailable
	case Upstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// kindForStatus is the inverse of [Kind.StatusCode] for responses from a remote server.
func kindForStatus(code int) Kind {
	switch code {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return Validation
	case http.StatusServiceUnavailable:
		return Credential
	default:
		return Upstream
	}
}

// Error is a classified service failure. Message is safe to show to callers.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the [Kind] of err, or 0 when err is not an [*Error].
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return 0
}

func validationError(message string) *Error {
	return &Error{Kind: Validation, Message: message, Err: fmt.Errorf("%w: %s", shared.ErrInvalidInput, message)}
}

func credentialError(err error) *Error {
	return &Error{Kind: Credential, Message: err.Error(), Err: err}
}

func upstreamError(err error) *Error {
	return &Error{Kind: Upstream, Message: "YouTube Music API error: " + err.Error(), Err: err}
}
