package user

import (
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/idnildas/hipchat/internal/database"
	"github.com/idnildas/hipchat/internal/handlers"
	"github.com/idnildas/hipchat/internal/utils"
	"github.com/idnildas/hipchat/models"
)

const maxNameLength = 50

type CreateUserHandler struct {
	DB *database.Store
}

type CreateUserRequest struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Title        string   `json:"title"`
	MentionName  string   `json:"mention_name"`
	IsGroupAdmin bool     `json:"is_group_admin"`
	Timezone     string   `json:"timezone"`
	Password     string   `json:"password"`
	Roles        []string `json:"roles"`
}

// ServeHTTP handles POST /user
func (h *CreateUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := utils.Decode(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" || utf8.RuneCountInString(req.Name) > maxNameLength {
		utils.Error(w, http.StatusBadRequest, fmt.Sprintf("name must be between 1 and %d characters", maxNameLength))
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		utils.Error(w, http.StatusBadRequest, "email is not a valid address")
		return
	}
	if req.MentionName == "" {
		req.MentionName = strings.Join(strings.Fields(req.Name), "")
	}
	if req.Timezone == "" {
		req.Timezone = "UTC"
	}

	record := database.UserRecord{User: models.User{
		Name:         req.Name,
		Email:        req.Email,
		MentionName:  req.MentionName,
		Title:        req.Title,
		IsGroupAdmin: req.IsGroupAdmin,
		Timezone:     req.Timezone,
		Roles:        req.Roles,
		Presence:     &models.Presence{},
	}}
	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "failed to hash password")
			return
		}
		record.PasswordHash = hash
	}

	created, err := h.DB.CreateUser(record)
	if errors.Is(err, database.ErrConflict) {
		utils.Error(w, http.StatusBadRequest, "A user with that email or mention name already exists")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusCreated, models.UserRef{
		ID:          created.ID,
		Name:        created.Name,
		MentionName: created.MentionName,
		Links:       handlers.Self(r, fmt.Sprintf("/v2/user/%d", created.ID)),
	})
}
