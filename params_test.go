package hipchat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idnildas/hipchat/models"
)

func TestCheckName(t *testing.T) {
	assert.NoError(t, checkName("sender name", "", MaxSenderNameLength))
	assert.NoError(t, checkName("sender name", strings.Repeat("a", 15), MaxSenderNameLength))
	assert.ErrorIs(t, checkName("sender name", strings.Repeat("a", 16), MaxSenderNameLength), ErrNameTooLong)

	// Length is counted in characters, not bytes.
	assert.NoError(t, checkName("sender name", strings.Repeat("é", 15), MaxSenderNameLength))
	assert.ErrorIs(t, checkName("room name", strings.Repeat("ü", 51), MaxRoomNameLength), ErrNameTooLong)
}

func TestFilterParams(t *testing.T) {
	params := Params{"timezone": "CET", "bogus": "x", "max-results": 10}

	filtered := filterParams(params, roomHistoryParams)
	assert.Equal(t, Params{"timezone": "CET", "max-results": 10}, filtered)
	assert.Len(t, params, 3, "input must not be mutated")

	assert.Empty(t, filterParams(nil, roomHistoryParams))
	assert.Equal(t, Params{"not-before": "id"}, filterParams(Params{"not-before": "id", "date": "x"}, userHistoryParams))
}

func TestCheckWebhookURL(t *testing.T) {
	for _, valid := range []string{
		"http://example.com/hook",
		"https://example.com:8443/hook?x=1",
	} {
		assert.NoError(t, checkWebhookURL(valid), valid)
	}
	for _, invalid := range []string{
		"",
		"foo",
		"ftp://example.com/hook",
		"http://",
		"https:///path",
		"://missing-scheme",
		"http://exa mple.com",
	} {
		assert.ErrorIs(t, checkWebhookURL(invalid), ErrInvalidURL, invalid)
	}
}

func TestCheckWebhookEvent(t *testing.T) {
	for _, event := range models.WebhookEvents {
		assert.NoError(t, checkWebhookEvent(event), event)
	}
	for _, event := range []string{"", "foo", "ROOM_MESSAGE", "room_message "} {
		assert.ErrorIs(t, checkWebhookEvent(event), ErrInvalidEvent, event)
	}
}

func TestBodyAndDefaults(t *testing.T) {
	params := Params{"color": "red", "message": "ignored"}

	merged := body(withDefaults(params, map[string]any{"color": "yellow", "notify": false}), map[string]any{"message": "hi"})
	assert.Equal(t, map[string]any{"color": "red", "notify": false, "message": "hi"}, merged)
	assert.Equal(t, Params{"color": "red", "message": "ignored"}, params, "input must not be mutated")
}

func TestQuery(t *testing.T) {
	assert.Nil(t, query(nil))
	values := query(Params{"max-results": 5, "include-archived": true})
	assert.Equal(t, "5", values.Get("max-results"))
	assert.Equal(t, "true", values.Get("include-archived"))
}
