package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idnildas/hipchat/internal/utils"
)

func TestAuthJWT(t *testing.T) {
	const secret = "secret"

	handler := AuthJWT(secret)(RequireScope(utils.ScopeViewRoom)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFrom(r.Context())
		require.True(t, ok)
		assert.Equal(t, int64(7), claims.UserID())
		w.WriteHeader(http.StatusOK)
	})))

	token := func(scopes ...string) string {
		tok, err := utils.GenerateJWT(7, scopes, secret, time.Hour)
		require.NoError(t, err)
		return tok
	}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "no header", header: "", want: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer blah", want: http.StatusUnauthorized},
		{name: "missing scope", header: "Bearer " + token(utils.ScopeSendMessage), want: http.StatusForbidden},
		{name: "ok", header: "Bearer " + token(utils.ScopeViewRoom), want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v2/room", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
