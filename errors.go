package hipchat

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a resource operation that is not a
// transport or codec failure wraps exactly one of these, so callers test with
// errors.Is:
//
//	if errors.Is(err, hipchat.ErrUnknownRoom) { ... }
var (
	ErrUnknownRoom    = errors.New("unknown room")
	ErrUnknownUser    = errors.New("unknown user")
	ErrUnknownWebhook = errors.New("unknown webhook")
	ErrUnauthorized   = errors.New("unauthorized")

	// Raised locally, before any request is sent.
	ErrNameTooLong  = errors.New("name too long")
	ErrInvalidURL   = errors.New("invalid url")
	ErrInvalidEvent = errors.New("invalid event")
)

// Error carries the kind plus whatever context produced it. StatusCode and
// Body are set when the error came from a response and are zero for
// validation failures. Extract it with errors.As:
//
//	var apiErr *hipchat.Error
//	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden { ... }
type Error struct {
	Kind       error
	StatusCode int
	Body       []byte
	Message    string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("hipchat: %s (%d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("hipchat: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Kind }

func validationError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
