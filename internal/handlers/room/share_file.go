package room

import (
	"net/http"

	"github.com/idnildas/hipchat/internal/database"
	"github.com/idnildas/hipchat/internal/handlers"
	"github.com/idnildas/hipchat/internal/utils"
	"github.com/idnildas/hipchat/models"
)

type ShareFileHandler struct {
	DB *database.Store
}

// ServeHTTP handles POST /room/{room}/share/file
func (h *ShareFileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	room, ok := handlers.LookupRoom(w, r, h.DB)
	if !ok {
		return
	}
	share, err := utils.ReadFileShare(w, r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	from := handlers.CallerFrom(r, h.DB)
	if name, _ := share.Fields["from"].(string); name != "" {
		from = handlers.NameFrom(name)
	}
	_, _ = h.DB.AppendMessage(room.ID, models.Message{
		ID:      handlers.NewMessageID(),
		From:    from,
		Message: share.Message(),
		Type:    "message",
		File:    &models.File{Name: share.Filename, Size: int64(len(share.Content))},
	})
	utils.NoContent(w)
}
