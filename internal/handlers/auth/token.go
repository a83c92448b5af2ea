package auth

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/idnildas/hipchat/internal/database"
	"github.com/idnildas/hipchat/internal/utils"
)

type TokenHandler struct {
	DB        *database.Store
	JWTSecret string
	JWTTTL    time.Duration
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	Scope       string `json:"scope"`
	TokenType   string `json:"token_type"`
}

// ServeHTTP handles POST /oauth/token with the password grant.
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid form body")
		return
	}
	if grant := r.PostForm.Get("grant_type"); grant != "password" {
		utils.Error(w, http.StatusBadRequest, "unsupported grant_type "+grant)
		return
	}

	username := strings.TrimSpace(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")
	if username == "" || password == "" {
		utils.Error(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.DB.FindUser(username)
	if err != nil || user.PasswordHash == "" || !utils.CheckPassword(password, user.PasswordHash) {
		utils.Error(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	scopes := strings.Fields(r.PostForm.Get("scope"))
	if len(scopes) == 0 {
		scopes = []string{utils.ScopeSendNotification}
	}
	for _, scope := range scopes {
		if !slices.Contains(utils.AllScopes, scope) {
			utils.Error(w, http.StatusBadRequest, "unknown scope "+scope)
			return
		}
	}

	token, err := utils.GenerateJWT(user.ID, scopes, h.JWTSecret, h.JWTTTL)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	utils.JSON(w, http.StatusOK, TokenResponse{
		AccessToken: token,
		ExpiresIn:   int64(h.JWTTTL / time.Second),
		Scope:       strings.Join(scopes, " "),
		TokenType:   "bearer",
	})
}
