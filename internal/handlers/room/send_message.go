package room

import (
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"unicode/utf8"

	"github.com/idnildas/hipchat/internal/database"
	"github.com/idnildas/hipchat/internal/handlers"
	"github.com/idnildas/hipchat/internal/utils"
	"github.com/idnildas/hipchat/models"
)

const (
	maxMessageLength = 10000
	maxFromLength    = 64
)

var colors = []string{
	models.ColorYellow,
	models.ColorGreen,
	models.ColorRed,
	models.ColorPurple,
	models.ColorGray,
	models.ColorRandom,
}

func checkMessage(w http.ResponseWriter, message string) bool {
	if message == "" || utf8.RuneCountInString(message) > maxMessageLength {
		utils.Error(w, http.StatusBadRequest, fmt.Sprintf("message must be between 1 and %d characters", maxMessageLength))
		return false
	}
	return true
}

type SendMessageHandler struct {
	DB *database.Store
}

type SendMessageRequest struct {
	Message string `json:"message"`
}

// ServeHTTP handles POST /room/{room}/message
func (h *SendMessageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	room, ok := handlers.LookupRoom(w, r, h.DB)
	if !ok {
		return
	}
	var req SendMessageRequest
	if err := utils.Decode(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if !checkMessage(w, req.Message) {
		return
	}

	message, err := h.DB.AppendMessage(room.ID, models.Message{
		ID:            handlers.NewMessageID(),
		From:          handlers.CallerFrom(r, h.DB),
		Message:       req.Message,
		MessageFormat: models.FormatText,
		Type:          "message",
	})
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Room not found")
		return
	}
	utils.JSON(w, http.StatusCreated, models.MessageRef{ID: message.ID, Timestamp: message.Date})
}

type ReplyHandler struct {
	DB *database.Store
}

type ReplyRequest struct {
	ParentMessageID string `json:"parentMessageId"`
	Message         string `json:"message"`
}

// ServeHTTP handles POST /room/{room}/reply
func (h *ReplyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	room, ok := handlers.LookupRoom(w, r, h.DB)
	if !ok {
		return
	}
	var req ReplyRequest
	if err := utils.Decode(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if !checkMessage(w, req.Message) {
		return
	}
	if _, err := h.DB.FindMessage(room.ID, req.ParentMessageID); err != nil {
		utils.Error(w, http.StatusNotFound, "Parent message not found")
		return
	}

	_, _ = h.DB.AppendMessage(room.ID, models.Message{
		ID:            handlers.NewMessageID(),
		From:          handlers.CallerFrom(r, h.DB),
		Message:       req.Message,
		MessageFormat: models.FormatText,
		Type:          "message",
	})
	utils.NoContent(w)
}

type NotificationHandler struct {
	DB *database.Store
}

type NotificationRequest struct {
	From          string      `json:"from"`
	Message       string      `json:"message"`
	MessageFormat string      `json:"message_format"`
	Color         string      `json:"color"`
	Notify        bool        `json:"notify"`
	Card          models.Card `json:"card"`
}

// ServeHTTP handles POST /room/{room}/notification
func (h *NotificationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	room, ok := handlers.LookupRoom(w, r, h.DB)
	if !ok {
		return
	}
	var req NotificationRequest
	if err := utils.Decode(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if !checkMessage(w, req.Message) {
		return
	}
	if utf8.RuneCountInString(req.From) > maxFromLength {
		utils.Error(w, http.StatusBadRequest, fmt.Sprintf("from must be at most %d characters", maxFromLength))
		return
	}
	if req.MessageFormat == "" {
		req.MessageFormat = models.FormatHTML
	}
	if req.MessageFormat != models.FormatHTML && req.MessageFormat != models.FormatText {
		utils.Error(w, http.StatusBadRequest, "message_format must be html or text")
		return
	}
	if req.Color == "" {
		req.Color = models.ColorYellow
	}
	if !slices.Contains(colors, req.Color) {
		utils.Error(w, http.StatusBadRequest, fmt.Sprintf("color must be one of %v", colors))
		return
	}
	if req.Card != nil {
		for _, key := range []string{"style", "title", "id"} {
			if _, ok := req.Card[key]; !ok {
				utils.Error(w, http.StatusBadRequest, "card."+key+" is required")
				return
			}
		}
	}

	_, _ = h.DB.AppendMessage(room.ID, models.Message{
		ID:            handlers.NewMessageID(),
		From:          handlers.NameFrom(req.From),
		Message:       req.Message,
		MessageFormat: req.MessageFormat,
		Color:         req.Color,
		Card:          req.Card,
		Type:          "notification",
	})
	utils.NoContent(w)
}

type ShareLinkHandler struct {
	DB *database.Store
}

type ShareLinkRequest struct {
	From    string `json:"from"`
	Message string `json:"message"`
	Link    string `json:"link"`
}

// ServeHTTP handles POST /room/{room}/share/link
func (h *ShareLinkHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	room, ok := handlers.LookupRoom(w, r, h.DB)
	if !ok {
		return
	}
	var req ShareLinkRequest
	if err := utils.Decode(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if link, err := url.Parse(req.Link); err != nil || link.Scheme == "" || link.Host == "" {
		utils.Error(w, http.StatusBadRequest, "link must be an absolute url")
		return
	}

	from := handlers.CallerFrom(r, h.DB)
	if req.From != "" {
		from = handlers.NameFrom(req.From)
	}
	_, _ = h.DB.AppendMessage(room.ID, models.Message{
		ID:      handlers.NewMessageID(),
		From:    from,
		Message: req.Message + " " + req.Link,
		Type:    "message",
	})
	utils.NoContent(w)
}
