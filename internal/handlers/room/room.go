package room

import (
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/idnildas/hipchat/internal/database"
	"github.com/idnildas/hipchat/internal/handlers"
	"github.com/idnildas/hipchat/internal/utils"
	"github.com/idnildas/hipchat/models"
)

const maxTopicLength = 250

type GetRoomHandler struct {
	DB *database.Store
}

// ServeHTTP handles GET /room/{room}
func (h *GetRoomHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	room, ok := handlers.LookupRoom(w, r, h.DB)
	if !ok {
		return
	}
	room.Links = handlers.Self(r, fmt.Sprintf("/v2/room/%d", room.ID))
	utils.JSON(w, http.StatusOK, room)
}

type UpdateRoomHandler struct {
	DB *database.Store
}

type UpdateRoomRequest struct {
	Name              *string `json:"name"`
	Topic             *string `json:"topic"`
	Privacy           *string `json:"privacy"`
	IsArchived        *bool   `json:"is_archived"`
	IsGuestAccessible *bool   `json:"is_guest_accessible"`
	Owner             *struct {
		ID any `json:"id"`
	} `json:"owner"`
}

// ServeHTTP handles PUT /room/{room}
func (h *UpdateRoomHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	room, ok := handlers.LookupRoom(w, r, h.DB)
	if !ok {
		return
	}
	var req UpdateRoomRequest
	if err := utils.Decode(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name != nil && (*req.Name == "" || utf8.RuneCountInString(*req.Name) > maxNameLength) {
		utils.Error(w, http.StatusBadRequest, fmt.Sprintf("name must be between 1 and %d characters", maxNameLength))
		return
	}
	if req.Privacy != nil && *req.Privacy != models.PrivacyPublic && *req.Privacy != models.PrivacyPrivate {
		utils.Error(w, http.StatusBadRequest, "privacy must be public or private")
		return
	}
	var owner *models.UserRef
	if req.Owner != nil {
		user, err := h.DB.FindUser(fmt.Sprint(req.Owner.ID))
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "owner does not match a user")
			return
		}
		owner = &models.UserRef{ID: user.ID, Name: user.Name, MentionName: user.MentionName}
	}

	var guestURL string
	if req.IsGuestAccessible != nil && *req.IsGuestAccessible && room.GuestAccessURL == "" {
		path, err := utils.GuestAccessPath()
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "failed to create guest access url")
			return
		}
		guestURL = handlers.Link(r, path)
	}

	err := h.DB.UpdateRoom(room.ID, func(room *models.Room) {
		if req.Name != nil {
			room.Name = *req.Name
		}
		if req.Topic != nil {
			room.Topic = *req.Topic
		}
		if req.Privacy != nil {
			room.Privacy = *req.Privacy
		}
		if req.IsArchived != nil {
			room.IsArchived = *req.IsArchived
		}
		if req.IsGuestAccessible != nil {
			room.IsGuestAccessible = *req.IsGuestAccessible
			switch {
			case !room.IsGuestAccessible:
				room.GuestAccessURL = ""
			case guestURL != "":
				room.GuestAccessURL = guestURL
			}
		}
		if owner != nil {
			room.Owner = owner
		}
	})
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Room not found")
		return
	}
	utils.NoContent(w)
}

type DeleteRoomHandler struct {
	DB *database.Store
}

// ServeHTTP handles DELETE /room/{room}
func (h *DeleteRoomHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	room, ok := handlers.LookupRoom(w, r, h.DB)
	if !ok {
		return
	}
	if err := h.DB.DeleteRoom(room.ID); err != nil {
		utils.Error(w, http.StatusNotFound, "Room not found")
		return
	}
	utils.NoContent(w)
}

type TopicHandler struct {
	DB *database.Store
}

type TopicRequest struct {
	Topic string `json:"topic"`
	From  string `json:"from"`
}

// ServeHTTP handles PUT /room/{room}/topic
func (h *TopicHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	room, ok := handlers.LookupRoom(w, r, h.DB)
	if !ok {
		return
	}
	var req TopicRequest
	if err := utils.Decode(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if utf8.RuneCountInString(req.Topic) > maxTopicLength {
		utils.Error(w, http.StatusBadRequest, fmt.Sprintf("topic must be at most %d characters", maxTopicLength))
		return
	}

	_ = h.DB.UpdateRoom(room.ID, func(room *models.Room) { room.Topic = req.Topic })

	from := handlers.CallerFrom(r, h.DB)
	if req.From != "" {
		from = handlers.NameFrom(req.From)
	}
	_, _ = h.DB.AppendMessage(room.ID, models.Message{
		ID:      handlers.NewMessageID(),
		From:    from,
		Message: req.Topic,
		Type:    "topic",
	})
	utils.NoContent(w)
}
