package handlers

import (
	"net/http"

	"github.com/idnildas/hipchat/internal/utils"
)

// HealthCheck reports that the service is up.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
