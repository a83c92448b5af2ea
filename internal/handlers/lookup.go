package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/idnildas/hipchat/internal/database"
	"github.com/idnildas/hipchat/internal/middleware"
	"github.com/idnildas/hipchat/internal/utils"
	"github.com/idnildas/hipchat/models"
)

// Param returns the unescaped chi URL parameter key.
func Param(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// LookupRoom resolves the {room} parameter, writing 404 when it is unknown.
func LookupRoom(w http.ResponseWriter, r *http.Request, db *database.Store) (models.Room, bool) {
	room, err := db.FindRoom(Param(r, "room"))
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Room not found")
		return models.Room{}, false
	}
	return room, true
}

// LookupUser resolves the {user} parameter, writing 404 when it is unknown.
func LookupUser(w http.ResponseWriter, r *http.Request, db *database.Store) (database.UserRecord, bool) {
	user, err := db.FindUser(Param(r, "user"))
	if err != nil {
		utils.Error(w, http.StatusNotFound, "User not found")
		return database.UserRecord{}, false
	}
	return user, true
}

// Caller returns the token owner, or a zero UserRef named after the
// integration when the token is not tied to a user.
func Caller(r *http.Request, db *database.Store) models.UserRef {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok || claims.UserID() == 0 {
		return models.UserRef{Name: "integration"}
	}
	user, err := db.FindUser(claims.Subject)
	if err != nil {
		return models.UserRef{ID: claims.UserID()}
	}
	return models.UserRef{ID: user.ID, Name: user.Name, MentionName: user.MentionName}
}

// CallerFrom is Caller encoded for a Message.From field.
func CallerFrom(r *http.Request, db *database.Store) json.RawMessage {
	b, _ := json.Marshal(Caller(r, db))
	return b
}

// Link builds an absolute link to path on the serving host.
func Link(r *http.Request, path string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + path
}

// Self is a Links value holding only the self link.
func Self(r *http.Request, path string) models.Links {
	return models.Links{"self": Link(r, path)}
}

// NameFrom encodes a plain sender name for a Message.From field.
func NameFrom(name string) json.RawMessage {
	b, _ := json.Marshal(name)
	return b
}

// NewMessageID returns a fresh message id.
func NewMessageID() string {
	return uuid.NewString()
}
