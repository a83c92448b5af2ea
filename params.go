package hipchat

import (
	"fmt"
	"net/url"
	"unicode/utf8"

	"github.com/idnildas/hipchat/models"
)

// Params holds optional request parameters. Unless an operation documents
// an allow-list, every entry is forwarded to the service as-is.
type Params map[string]any

// Name length caps enforced before sending.
const (
	MaxSenderNameLength = 15
	MaxRoomNameLength   = 50
	MaxUserNameLength   = 50
)

var (
	roomHistoryParams = []string{"timezone", "date", "max-results", "start-index", "end-date"}
	userHistoryParams = []string{"max-results", "timezone", "not-before"}
)

func checkName(field, name string, limit int) error {
	if n := utf8.RuneCountInString(name); n > limit {
		return validationError(ErrNameTooLong, "%s %q is %d characters, limit is %d", field, name, n, limit)
	}
	return nil
}

// filterParams returns a new map holding only the allowed keys of params.
func filterParams(params Params, allowed []string) Params {
	filtered := make(Params, len(allowed))
	for _, key := range allowed {
		if value, ok := params[key]; ok {
			filtered[key] = value
		}
	}
	return filtered
}

func checkWebhookURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return validationError(ErrInvalidURL, "%q does not parse: %v", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return validationError(ErrInvalidURL, "%q must use http or https", raw)
	}
	if parsed.Host == "" {
		return validationError(ErrInvalidURL, "%q has no host", raw)
	}
	return nil
}

func checkWebhookEvent(event string) error {
	if !models.IsWebhookEvent(event) {
		return validationError(ErrInvalidEvent, "%q is not one of %v", event, models.WebhookEvents)
	}
	return nil
}

// body merges params over the required fields into a fresh request body.
// Required fields win over params with the same key.
func body(params Params, required map[string]any) map[string]any {
	out := make(map[string]any, len(params)+len(required))
	for key, value := range params {
		out[key] = value
	}
	for key, value := range required {
		out[key] = value
	}
	return out
}

// withDefaults fills keys missing from params without touching params.
func withDefaults(params Params, defaults map[string]any) Params {
	out := make(Params, len(params)+len(defaults))
	for key, value := range defaults {
		out[key] = value
	}
	for key, value := range params {
		out[key] = value
	}
	return out
}

func query(params Params) url.Values {
	if len(params) == 0 {
		return nil
	}
	values := make(url.Values, len(params))
	for key, value := range params {
		values.Set(key, fmt.Sprint(value))
	}
	return values
}
