package models

import "time"

// Privacy values accepted by the service for rooms.
const (
	PrivacyPublic  = "public"
	PrivacyPrivate = "private"
)

// Room is the full room record returned by GET /room/{id}.
type Room struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Topic             string     `json:"topic"`
	Privacy           string     `json:"privacy"`
	IsArchived        bool       `json:"is_archived"`
	IsGuestAccessible bool       `json:"is_guest_accessible"`
	GuestAccessURL    string     `json:"guest_access_url,omitempty"`
	XMPPJID           string     `json:"xmpp_jid,omitempty"`
	Owner             *UserRef   `json:"owner,omitempty"`
	Created           *time.Time `json:"created,omitempty"`
	Links             Links      `json:"links,omitempty"`
}

// RoomSummary is one entry of the room listing.
type RoomSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Links Links  `json:"links,omitempty"`
}

// RoomRef is returned when a room is created.
type RoomRef struct {
	ID    int64 `json:"id"`
	Links Links `json:"links,omitempty"`
}

// RoomList is the paged response of GET /room.
type RoomList struct {
	Items      []RoomSummary `json:"items"`
	StartIndex int           `json:"startIndex"`
	MaxResults int           `json:"maxResults"`
	Links      Links         `json:"links,omitempty"`
}

// Statistics is returned by GET /room/{id}/statistics.
type Statistics struct {
	MessagesSent int        `json:"messages_sent"`
	LastActive   *time.Time `json:"last_active,omitempty"`
	Links        Links      `json:"links,omitempty"`
}

// Links holds the hypermedia links the service attaches to most resources.
type Links map[string]string

// Room roles granted through PUT /room/{id}/member/{user}.
const (
	RoleRoomAdmin  = "room_admin"
	RoleRoomMember = "room_member"
)

// RoomMember is a membership as tracked by the service.
type RoomMember struct {
	RoomID int64    `json:"room_id"`
	UserID int64    `json:"user_id"`
	Roles  []string `json:"room_roles"`
}
