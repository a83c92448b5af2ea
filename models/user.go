package models

import "time"

// Presence show values.
const (
	ShowAway = "away"
	ShowChat = "chat"
	ShowDND  = "dnd"
	ShowXA   = "xa"
)

type Presence struct {
	Status   string `json:"status,omitempty"`
	Show     string `json:"show,omitempty"`
	IsOnline bool   `json:"is_online"`
}

// User is the full user record returned by GET /user/{id}.
type User struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email,omitempty"`
	MentionName  string     `json:"mention_name"`
	Title        string     `json:"title,omitempty"`
	IsGroupAdmin bool       `json:"is_group_admin"`
	IsGuest      bool       `json:"is_guest"`
	Presence     *Presence  `json:"presence,omitempty"`
	Timezone     string     `json:"timezone,omitempty"`
	Roles        []string   `json:"roles,omitempty"`
	Created      *time.Time `json:"created,omitempty"`
	LastActive   string     `json:"last_active,omitempty"`
	Links        Links      `json:"links,omitempty"`
}

// UserRef is the short user form used for owners, senders and creation results.
type UserRef struct {
	ID          int64  `json:"id"`
	Name        string `json:"name,omitempty"`
	MentionName string `json:"mention_name,omitempty"`
	Links       Links  `json:"links,omitempty"`
}

// UserList is the paged response of GET /user.
type UserList struct {
	Items      []UserRef `json:"items"`
	StartIndex int       `json:"startIndex"`
	MaxResults int       `json:"maxResults"`
	Links      Links     `json:"links,omitempty"`
}
