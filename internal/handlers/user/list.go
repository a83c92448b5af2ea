package user

import (
	"fmt"
	"net/http"

	"github.com/idnildas/hipchat/internal/database"
	"github.com/idnildas/hipchat/internal/handlers"
	"github.com/idnildas/hipchat/internal/utils"
	"github.com/idnildas/hipchat/models"
)

type UserListHandler struct {
	DB *database.Store
}

// ServeHTTP handles GET /user
func (h *UserListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	users := h.DB.ListUsers(start, limit)
	list := models.UserList{
		Items:      make([]models.UserRef, 0, len(users)),
		StartIndex: start,
		MaxResults: limit,
		Links:      handlers.Self(r, "/v2/user"),
	}
	for _, user := range users {
		list.Items = append(list.Items, models.UserRef{
			ID:          user.ID,
			Name:        user.Name,
			MentionName: user.MentionName,
			Links:       handlers.Self(r, fmt.Sprintf("/v2/user/%d", user.ID)),
		})
	}
	utils.JSON(w, http.StatusOK, list)
}
