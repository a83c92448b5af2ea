package user

import (
	"fmt"
	"net/http"

	"github.com/idnildas/hipchat/internal/database"
	"github.com/idnildas/hipchat/internal/handlers"
	"github.com/idnildas/hipchat/internal/utils"
)

type ViewUserHandler struct {
	DB *database.Store
}

// ServeHTTP handles GET /user/{user}
func (h *ViewUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, ok := handlers.LookupUser(w, r, h.DB)
	if !ok {
		return
	}
	view := user.User
	view.Links = handlers.Self(r, fmt.Sprintf("/v2/user/%d", user.ID))
	utils.JSON(w, http.StatusOK, view)
}
