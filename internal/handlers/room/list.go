package room

import (
	"fmt"
	"net/http"

	"github.com/idnildas/hipchat/internal/database"
	"github.com/idnildas/hipchat/internal/handlers"
	"github.com/idnildas/hipchat/internal/utils"
	"github.com/idnildas/hipchat/models"
)

type RoomListHandler struct {
	DB *database.Store
}

// ServeHTTP handles GET /room
func (h *RoomListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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
	includeArchived := r.URL.Query().Get("include-archived") == "true"

	rooms := h.DB.ListRooms(start, limit, includeArchived)
	list := models.RoomList{
		Items:      make([]models.RoomSummary, 0, len(rooms)),
		StartIndex: start,
		MaxResults: limit,
		Links:      handlers.Self(r, "/v2/room"),
	}
	for _, room := range rooms {
		list.Items = append(list.Items, models.RoomSummary{
			ID:    room.ID,
			Name:  room.Name,
			Links: handlers.Self(r, fmt.Sprintf("/v2/room/%d", room.ID)),
		})
	}
	utils.JSON(w, http.StatusOK, list)
}
