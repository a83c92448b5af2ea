package hipchat

import (
	"fmt"
	"net/http"
)

// Resource selects which "not found" kind a 404 maps to.
type Resource int

const (
	ResourceRoom Resource = iota
	ResourceUser
	ResourceWebhook
)

func (r Resource) String() string {
	switch r {
	case ResourceRoom:
		return "room"
	case ResourceUser:
		return "user"
	case ResourceWebhook:
		return "webhook"
	default:
		return fmt.Sprintf("resource(%d)", int(r))
	}
}

func (r Resource) notFound() error {
	switch r {
	case ResourceUser:
		return ErrUnknownUser
	case ResourceWebhook:
		return ErrUnknownWebhook
	default:
		return ErrUnknownRoom
	}
}

// Response is what the transport hands back: the status code and the raw body.
type Response struct {
	StatusCode int
	Body       []byte
}

// Success reports whether the status is one the service answers a
// successful call with: 200, 201 or 204.
func (r Response) Success() bool {
	switch r.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return true
	default:
		return false
	}
}

// Classify maps a response to nil (200, 201, 204) or a *Error. 404 becomes the
// resource's unknown kind; 401, 403 and every other status become
// ErrUnauthorized. The body is attached for diagnostics but never decides
// the kind.
func Classify(resource Resource, response Response) error {
	if response.Success() {
		return nil
	}

	apiErr := &Error{
		Kind:       ErrUnauthorized,
		StatusCode: response.StatusCode,
		Body:       response.Body,
		Message:    http.StatusText(response.StatusCode),
	}
	if response.StatusCode == http.StatusNotFound {
		apiErr.Kind = resource.notFound()
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("unexpected status for %s", resource)
	}
	return apiErr
}
