package models

import "slices"

// WebhookEvents is the closed set of event types a room webhook can subscribe to.
var WebhookEvents = []string{
	"room_archived",
	"room_created",
	"room_deleted",
	"room_enter",
	"room_exit",
	"room_file_upload",
	"room_message",
	"room_notification",
	"room_topic_change",
	"room_unarchived",
}

// IsWebhookEvent reports whether event is in WebhookEvents.
func IsWebhookEvent(event string) bool {
	return slices.Contains(WebhookEvents, event)
}

type Webhook struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name,omitempty"`
	URL     string   `json:"url"`
	Event   string   `json:"event"`
	Pattern string   `json:"pattern,omitempty"`
	Room    *RoomRef `json:"room,omitempty"`
	Links   Links    `json:"links,omitempty"`
}

// WebhookRef is returned when a webhook is created.
type WebhookRef struct {
	ID    int64 `json:"id"`
	Links Links `json:"links,omitempty"`
}

// WebhookList is the paged response of GET /room/{id}/webhook.
type WebhookList struct {
	Items      []Webhook `json:"items"`
	StartIndex int       `json:"startIndex"`
	MaxResults int       `json:"maxResults"`
	Links      Links     `json:"links,omitempty"`
}
