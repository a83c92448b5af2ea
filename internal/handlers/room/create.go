package room

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/idnildas/hipchat/internal/database"
	"github.com/idnildas/hipchat/internal/handlers"
	"github.com/idnildas/hipchat/internal/utils"
	"github.com/idnildas/hipchat/models"
)

const maxNameLength = 50

type CreateRoomHandler struct {
	DB *database.Store
}

type CreateRoomRequest struct {
	Name        string `json:"name"`
	Topic       string `json:"topic"`
	Privacy     string `json:"privacy"`
	GuestAccess bool   `json:"guest_access"`
	OwnerUserID any    `json:"owner_user_id"`
}

// ServeHTTP handles POST /room
func (h *CreateRoomHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if err := utils.Decode(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" || utf8.RuneCountInString(req.Name) > maxNameLength {
		utils.Error(w, http.StatusBadRequest, fmt.Sprintf("name must be between 1 and %d characters", maxNameLength))
		return
	}
	if req.Privacy == "" {
		req.Privacy = models.PrivacyPublic
	}
	if req.Privacy != models.PrivacyPublic && req.Privacy != models.PrivacyPrivate {
		utils.Error(w, http.StatusBadRequest, "privacy must be public or private")
		return
	}

	owner := handlers.Caller(r, h.DB)
	if req.OwnerUserID != nil {
		user, err := h.DB.FindUser(fmt.Sprint(req.OwnerUserID))
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "owner_user_id does not match a user")
			return
		}
		owner = models.UserRef{ID: user.ID, Name: user.Name, MentionName: user.MentionName}
	}

	room := models.Room{
		Name:              req.Name,
		Topic:             req.Topic,
		Privacy:           req.Privacy,
		IsGuestAccessible: req.GuestAccess,
		Owner:             &owner,
	}
	if req.GuestAccess {
		path, err := utils.GuestAccessPath()
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "failed to create guest access url")
			return
		}
		room.GuestAccessURL = handlers.Link(r, path)
	}

	created, err := h.DB.CreateRoom(room)
	if errors.Is(err, database.ErrConflict) {
		utils.Error(w, http.StatusBadRequest, "Another room exists with that name")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if owner.ID != 0 {
		_ = h.DB.SetMember(created.ID, owner.ID, []string{models.RoleRoomAdmin, models.RoleRoomMember})
	}

	utils.JSON(w, http.StatusCreated, models.RoomRef{
		ID:    created.ID,
		Links: handlers.Self(r, fmt.Sprintf("/v2/room/%d", created.ID)),
	})
}
