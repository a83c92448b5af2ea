package room

import (
	"net/http"
	"slices"

	"github.com/idnildas/hipchat/internal/database"
	"github.com/idnildas/hipchat/internal/handlers"
	"github.com/idnildas/hipchat/internal/utils"
	"github.com/idnildas/hipchat/models"
)

type AddMemberHandler struct {
	DB *database.Store
}

type AddMemberRequest struct {
	RoomRoles []string `json:"room_roles"`
}

// ServeHTTP handles PUT /room/{room}/member/{user}
func (h *AddMemberHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	room, ok := handlers.LookupRoom(w, r, h.DB)
	if !ok {
		return
	}
	user, ok := handlers.LookupUser(w, r, h.DB)
	if !ok {
		return
	}
	var req AddMemberRequest
	if err := utils.Decode(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.RoomRoles) == 0 {
		req.RoomRoles = []string{models.RoleRoomMember}
	}
	for _, role := range req.RoomRoles {
		if !slices.Contains([]string{models.RoleRoomAdmin, models.RoleRoomMember}, role) {
			utils.Error(w, http.StatusBadRequest, "unknown room role "+role)
			return
		}
	}

	if err := h.DB.SetMember(room.ID, user.ID, req.RoomRoles); err != nil {
		utils.Error(w, http.StatusNotFound, "Room not found")
		return
	}
	utils.NoContent(w)
}

type InviteHandler struct {
	DB *database.Store
}

type InviteRequest struct {
	Reason string `json:"reason"`
}

// ServeHTTP handles POST /room/{room}/invite/{user}
func (h *InviteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	room, ok := handlers.LookupRoom(w, r, h.DB)
	if !ok {
		return
	}
	user, ok := handlers.LookupUser(w, r, h.DB)
	if !ok {
		return
	}
	var req InviteRequest
	if err := utils.Decode(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.DB.Invite(room.ID, user.ID, req.Reason); err != nil {
		utils.Error(w, http.StatusNotFound, "Room not found")
		return
	}
	utils.NoContent(w)
}
