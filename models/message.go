package models

import (
	"encoding/json"
	"time"
)

// Message formats.
const (
	FormatText = "text"
	FormatHTML = "html"
)

// Notification colors.
const (
	ColorYellow = "yellow"
	ColorGreen  = "green"
	ColorRed    = "red"
	ColorPurple = "purple"
	ColorGray   = "gray"
	ColorRandom = "random"
)

// Message is one history item. From is either a plain sender name
// (notifications) or a user object (chat messages), so it stays raw.
type Message struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	From          json.RawMessage `json:"from,omitempty"`
	Message       string          `json:"message"`
	MessageFormat string          `json:"message_format,omitempty"`
	Color         string          `json:"color,omitempty"`
	Type          string          `json:"type,omitempty"`
	Card          Card            `json:"card,omitempty"`
	File          *File           `json:"file,omitempty"`
}

// Sender decodes From as a plain name when the message was a notification.
func (m Message) Sender() string {
	var name string
	if err := json.Unmarshal(m.From, &name); err == nil {
		return name
	}
	var user UserRef
	if err := json.Unmarshal(m.From, &user); err == nil {
		return user.Name
	}
	return ""
}

// File describes an attachment shared into a room or a private chat.
type File struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	URL  string `json:"url,omitempty"`
}

// MessageRef is returned when a room message is posted.
type MessageRef struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// History is the paged response of the room and user history endpoints.
type History struct {
	Items      []Message `json:"items"`
	StartIndex int       `json:"startIndex"`
	MaxResults int       `json:"maxResults"`
	Links      Links     `json:"links,omitempty"`
}

// Card is the structured notification payload. Only style, title and id
// are interpreted; every other key is forwarded verbatim.
type Card map[string]any

// NewCard builds a card with the three fields every card style requires.
func NewCard(style, title string, id any) Card {
	return Card{"style": style, "title": title, "id": id}
}
