package credentials

import (
	"fmt"

	"github.com/desertthunder/hrvxo-music/internal/shared"
)

// Reason names why credential resolution failed.
type Reason string

const (
	ReasonDecodeFailed  Reason = "decode_failed"
	ReasonInvalidJSON   Reason = "invalid_json"
	ReasonNoCredentials Reason = "no_credentials"
	ReasonClientInit    Reason = "client_init"
	ReasonTempFile      Reason = "temp_file"
)

// Error is a credential resolution failure.
type Error struct {
	Reason Reason
	Err    error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func newError(reason Reason, sentinel error, format string, args ...any) *Error {
	return &Error{Reason: reason, Err: fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)}
}

func missing(format string, args ...any) *Error {
	return newError(ReasonNoCredentials, shared.ErrMissingCredentials, format, args...)
}
