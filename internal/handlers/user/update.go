package user

import (
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/idnildas/hipchat/internal/database"
	"github.com/idnildas/hipchat/internal/handlers"
	"github.com/idnildas/hipchat/internal/utils"
	"github.com/idnildas/hipchat/models"
)

type UpdateUserHandler struct {
	DB *database.Store
}

type UpdateUserRequest struct {
	Name         *string          `json:"name"`
	Email        *string          `json:"email"`
	MentionName  *string          `json:"mention_name"`
	Title        *string          `json:"title"`
	Timezone     *string          `json:"timezone"`
	IsGroupAdmin *flexBool        `json:"is_group_admin"`
	Roles        []string         `json:"roles"`
	Presence     *models.Presence `json:"presence"`
	// Flattened presence fields are accepted too.
	Status *string `json:"status"`
	Show   *string `json:"show"`
}

// flexBool accepts true/false as well as 1/0.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true", "1":
		*b = true
	case "false", "0", "null":
		*b = false
	default:
		return fmt.Errorf("invalid boolean %s", data)
	}
	return nil
}

// ServeHTTP handles PUT /user/{user}
func (h *UpdateUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, ok := handlers.LookupUser(w, r, h.DB)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := utils.Decode(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name != nil && (*req.Name == "" || utf8.RuneCountInString(*req.Name) > maxNameLength) {
		utils.Error(w, http.StatusBadRequest, fmt.Sprintf("name must be between 1 and %d characters", maxNameLength))
		return
	}

	err := h.DB.UpdateUser(user.ID, func(u *database.UserRecord) {
		if req.Name != nil {
			u.Name = *req.Name
		}
		if req.Email != nil {
			u.Email = *req.Email
		}
		if req.MentionName != nil {
			u.MentionName = *req.MentionName
		}
		if req.Title != nil {
			u.Title = *req.Title
		}
		if req.Timezone != nil {
			u.Timezone = *req.Timezone
		}
		if req.IsGroupAdmin != nil {
			u.IsGroupAdmin = bool(*req.IsGroupAdmin)
		}
		if req.Roles != nil {
			u.Roles = req.Roles
		}
		if u.Presence == nil {
			u.Presence = &models.Presence{}
		}
		if req.Presence != nil {
			u.Presence.Status = req.Presence.Status
			u.Presence.Show = req.Presence.Show
		}
		if req.Status != nil {
			u.Presence.Status = *req.Status
		}
		if req.Show != nil {
			u.Presence.Show = *req.Show
		}
	})
	if err != nil {
		utils.Error(w, http.StatusNotFound, "User not found")
		return
	}
	utils.NoContent(w)
}

type DeleteUserHandler struct {
	DB *database.Store
}

// ServeHTTP handles DELETE /user/{user}
func (h *DeleteUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, ok := handlers.LookupUser(w, r, h.DB)
	if !ok {
		return
	}
	if err := h.DB.DeleteUser(user.ID); err != nil {
		utils.Error(w, http.StatusNotFound, "User not found")
		return
	}
	utils.NoContent(w)
}
