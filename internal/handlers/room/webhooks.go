package room

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/idnildas/hipchat/internal/database"
	"github.com/idnildas/hipchat/internal/handlers"
	"github.com/idnildas/hipchat/internal/utils"
	"github.com/idnildas/hipchat/models"
)

func webhookPath(roomID, hookID int64) string {
	return fmt.Sprintf("/v2/room/%d/webhook/%d", roomID, hookID)
}

func lookupWebhook(w http.ResponseWriter, r *http.Request, db *database.Store, room models.Room) (models.Webhook, bool) {
	id, err := strconv.ParseInt(handlers.Param(r, "webhook"), 10, 64)
	if err == nil {
		if hook, err := db.Webhook(room.ID, id); err == nil {
			return hook, true
		}
	}
	utils.Error(w, http.StatusNotFound, "Webhook not found")
	return models.Webhook{}, false
}

type CreateWebhookHandler struct {
	DB *database.Store
}

type CreateWebhookRequest struct {
	URL     string `json:"url"`
	Event   string `json:"event"`
	Pattern string `json:"pattern"`
	Name    string `json:"name"`
}

// ServeHTTP handles POST /room/{room}/webhook
func (h *CreateWebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	room, ok := handlers.LookupRoom(w, r, h.DB)
	if !ok {
		return
	}
	var req CreateWebhookRequest
	if err := utils.Decode(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if target, err := url.Parse(req.URL); err != nil || (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		utils.Error(w, http.StatusBadRequest, "url must be an http or https url")
		return
	}
	if !models.IsWebhookEvent(req.Event) {
		utils.Error(w, http.StatusBadRequest, fmt.Sprintf("event must be one of %v", models.WebhookEvents))
		return
	}
	if req.Pattern != "" && req.Event != "room_message" {
		utils.Error(w, http.StatusBadRequest, "pattern is only valid for room_message")
		return
	}

	hook, err := h.DB.CreateWebhook(room.ID, models.Webhook{
		Name:    req.Name,
		URL:     req.URL,
		Event:   req.Event,
		Pattern: req.Pattern,
		Room:    &models.RoomRef{ID: room.ID},
	})
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Room not found")
		return
	}
	utils.JSON(w, http.StatusCreated, models.WebhookRef{
		ID:    hook.ID,
		Links: handlers.Self(r, webhookPath(room.ID, hook.ID)),
	})
}

type ListWebhooksHandler struct {
	DB *database.Store
}

// ServeHTTP handles GET /room/{room}/webhook
func (h *ListWebhooksHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	room, ok := handlers.LookupRoom(w, r, h.DB)
	if !ok {
		return
	}
	start, err := utils.QueryInt(r, "start-index", 0)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := utils.QueryInt(r, "max-results", 100)
	if err != nil || limit < 1 || limit > 1000 {
		utils.Error(w, http.StatusBadRequest, "max-results must be between 1 and 1000")
		return
	}

	hooks := h.DB.Webhooks(room.ID, start, limit)
	for i := range hooks {
		hooks[i].Links = handlers.Self(r, webhookPath(room.ID, hooks[i].ID))
	}
	utils.JSON(w, http.StatusOK, models.WebhookList{
		Items:      hooks,
		StartIndex: start,
		MaxResults: limit,
		Links:      handlers.Self(r, fmt.Sprintf("/v2/room/%d/webhook", room.ID)),
	})
}

type GetWebhookHandler struct {
	DB *database.Store
}

// ServeHTTP handles GET /room/{room}/webhook/{webhook}
func (h *GetWebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	room, ok := handlers.LookupRoom(w, r, h.DB)
	if !ok {
		return
	}
	hook, ok := lookupWebhook(w, r, h.DB, room)
	if !ok {
		return
	}
	hook.Links = handlers.Self(r, webhookPath(room.ID, hook.ID))
	utils.JSON(w, http.StatusOK, hook)
}

type DeleteWebhookHandler struct {
	DB *database.Store
}

// ServeHTTP handles DELETE /room/{room}/webhook/{webhook}
func (h *DeleteWebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	room, ok := handlers.LookupRoom(w, r, h.DB)
	if !ok {
		return
	}
	hook, ok := lookupWebhook(w, r, h.DB, room)
	if !ok {
		return
	}
	if err := h.DB.DeleteWebhook(room.ID, hook.ID); err != nil {
		utils.Error(w, http.StatusNotFound, "Webhook not found")
		return
	}
	utils.NoContent(w)
}
