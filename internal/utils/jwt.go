package utils

import (
	"errors"
	"slices"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// API scopes a token can carry.
const (
	ScopeAdminGroup       = "admin_group"
	ScopeAdminRoom        = "admin_room"
	ScopeManageRooms      = "manage_rooms"
	ScopeSendMessage      = "send_message"
	ScopeSendNotification = "send_notification"
	ScopeViewGroup        = "view_group"
	ScopeViewMessages     = "view_messages"
	ScopeViewRoom         = "view_room"
)

// AllScopes is every scope the service knows.
var AllScopes = []string{
	ScopeAdminGroup,
	ScopeAdminRoom,
	ScopeManageRooms,
	ScopeSendMessage,
	ScopeSendNotification,
	ScopeViewGroup,
	ScopeViewMessages,
	ScopeViewRoom,
}

var ErrInvalidToken = errors.New("invalid token")

// Claims identifies the token owner (0 for integration tokens not tied to a
// user) and the scopes granted.
type Claims struct {
	Scopes []string `json:"scopes"`
	jwt.RegisteredClaims
}

// UserID returns the owner's user id, 0 when the token has no owner.
func (c *Claims) UserID() int64 {
	id, _ := strconv.ParseInt(c.Subject, 10, 64)
	return id
}

func (c *Claims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}

// GenerateJWT signs an HS256 token for userID with scopes.
func GenerateJWT(userID int64, scopes []string, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Scopes: scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseJWT verifies tokenStr and returns its claims.
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
