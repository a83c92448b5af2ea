package room

import (
	"fmt"
	"net/http"
	"time"

	"github.com/idnildas/hipchat/internal/database"
	"github.com/idnildas/hipchat/internal/handlers"
	"github.com/idnildas/hipchat/internal/utils"
	"github.com/idnildas/hipchat/models"
)

type HistoryHandler struct {
	DB *database.Store
}

// ServeHTTP handles GET /room/{room}/history
//
// date bounds the newest message (inclusive, whole day) and end-date the
// oldest; "recent" or no date means now.
func (h *HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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
	newest, err := parseDay(r.URL.Query().Get("date"), true)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	oldest, err := parseDay(r.URL.Query().Get("end-date"), false)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	items := make([]models.Message, 0)
	for _, message := range h.DB.History(room.ID, 0, 0) {
		if !newest.IsZero() && message.Date.After(newest) {
			continue
		}
		if !oldest.IsZero() && message.Date.Before(oldest) {
			continue
		}
		items = append(items, message)
	}
	if start >= len(items) {
		items = items[:0]
	} else {
		items = items[start:]
	}
	if len(items) > limit {
		items = items[:limit]
	}

	utils.JSON(w, http.StatusOK, models.History{
		Items:      items,
		StartIndex: start,
		MaxResults: limit,
		Links:      handlers.Self(r, fmt.Sprintf("/v2/room/%d/history", room.ID)),
	})
}

func parseDay(raw string, endOfDay bool) (time.Time, error) {
	if raw == "" || raw == "recent" {
		return time.Time{}, nil
	}
	day, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		if t, rfcErr := time.Parse(time.RFC3339, raw); rfcErr == nil {
			return t, nil
		}
		return time.Time{}, fmt.Errorf("invalid date %q", raw)
	}
	if endOfDay {
		return day.Add(24*time.Hour - time.Nanosecond), nil
	}
	return day, nil
}

type StatisticsHandler struct {
	DB *database.Store
}

// ServeHTTP handles GET /room/{room}/statistics
func (h *StatisticsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	room, ok := handlers.LookupRoom(w, r, h.DB)
	if !ok {
		return
	}
	stats := h.DB.Statistics(room.ID)
	stats.Links = handlers.Self(r, fmt.Sprintf("/v2/room/%d/statistics", room.ID))
	utils.JSON(w, http.StatusOK, stats)
}
