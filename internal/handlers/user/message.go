package user

import (
	"fmt"
	"net/http"

	"github.com/idnildas/hipchat/internal/database"
	"github.com/idnildas/hipchat/internal/handlers"
	"github.com/idnildas/hipchat/internal/utils"
	"github.com/idnildas/hipchat/models"
)

type PrivateMessageHandler struct {
	DB *database.Store
}

type PrivateMessageRequest struct {
	Message       string `json:"message"`
	MessageFormat string `json:"message_format"`
	Notify        bool   `json:"notify"`
}

// ServeHTTP handles POST /user/{user}/message
func (h *PrivateMessageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, ok := handlers.LookupUser(w, r, h.DB)
	if !ok {
		return
	}
	var req PrivateMessageRequest
	if err := utils.Decode(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Message == "" {
		utils.Error(w, http.StatusBadRequest, "message is required")
		return
	}
	if req.MessageFormat == "" {
		req.MessageFormat = models.FormatText
	}
	if req.MessageFormat != models.FormatText && req.MessageFormat != models.FormatHTML {
		utils.Error(w, http.StatusBadRequest, "message_format must be html or text")
		return
	}

	caller := handlers.Caller(r, h.DB)
	_, err := h.DB.AppendPrivate(caller.ID, user.ID, models.Message{
		ID:            handlers.NewMessageID(),
		From:          handlers.CallerFrom(r, h.DB),
		Message:       req.Message,
		MessageFormat: req.MessageFormat,
		Type:          "message",
	})
	if err != nil {
		utils.Error(w, http.StatusNotFound, "User not found")
		return
	}
	utils.NoContent(w)
}

type ShareFileHandler struct {
	DB *database.Store
}

// ServeHTTP handles POST /user/{user}/share/file
func (h *ShareFileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, ok := handlers.LookupUser(w, r, h.DB)
	if !ok {
		return
	}
	share, err := utils.ReadFileShare(w, r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	caller := handlers.Caller(r, h.DB)
	_, err = h.DB.AppendPrivate(caller.ID, user.ID, models.Message{
		ID:      handlers.NewMessageID(),
		From:    handlers.CallerFrom(r, h.DB),
		Message: share.Message(),
		Type:    "message",
		File:    &models.File{Name: share.Filename, Size: int64(len(share.Content))},
	})
	if err != nil {
		utils.Error(w, http.StatusNotFound, "User not found")
		return
	}
	utils.NoContent(w)
}

type HistoryHandler struct {
	DB *database.Store
}

// ServeHTTP handles GET /user/{user}/history/latest
func (h *HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, ok := handlers.LookupUser(w, r, h.DB)
	if !ok {
		return
	}
	limit, err := utils.QueryInt(r, "max-results", 75)
	if err != nil || limit < 1 || limit > 1000 {
		utils.Error(w, http.StatusBadRequest, "max-results must be between 1 and 1000")
		return
	}

	caller := handlers.Caller(r, h.DB)
	items := h.DB.PrivateHistory(caller.ID, user.ID, limit)
	if notBefore := r.URL.Query().Get("not-before"); notBefore != "" {
		for i, message := range items {
			if message.ID == notBefore {
				items = items[i:]
				break
			}
		}
	}
	utils.JSON(w, http.StatusOK, models.History{
		Items:      items,
		MaxResults: limit,
		Links:      handlers.Self(r, fmt.Sprintf("/v2/user/%d/history/latest", user.ID)),
	})
}
