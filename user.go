package hipchat

import (
	"context"
	"net/http"
	"net/url"

	"github.com/idnildas/hipchat/models"
)

// User operates on a single user, addressed by id, email or @mention name.
type User struct {
	api *api
	id  string

	// Summary is filled in when the User came from Client.Users.
	Summary models.UserRef
}

// ID returns the identifier the user is addressed by.
func (u *User) ID() string { return u.id }

func (u *User) path(suffix string) string {
	return "/user/" + url.PathEscape(u.id) + suffix
}

func (u *User) call(ctx context.Context, method, suffix string, q url.Values, payload, out any) error {
	return u.api.call(ctx, ResourceUser, method, u.path(suffix), q, payload, out)
}

// View fetches the full user record.
func (u *User) View(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := u.call(ctx, http.MethodGet, "", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update replaces user settings. params (name, presence, mention_name,
// timezone, email, title, is_group_admin, roles) are forwarded as-is.
func (u *User) Update(ctx context.Context, params Params) error {
	return u.call(ctx, http.MethodPut, "", nil, body(params, nil), nil)
}

// Delete removes the user.
func (u *User) Delete(ctx context.Context) error {
	return u.call(ctx, http.MethodDelete, "", nil, nil, nil)
}

// Send posts a private message. params (message_format, notify) are
// forwarded as-is; message_format defaults to text and notify to false.
func (u *User) Send(ctx context.Context, message string, params Params) error {
	params = withDefaults(params, map[string]any{
		"message_format": models.FormatText,
		"notify":         false,
	})
	return u.call(ctx, http.MethodPost, "/message", nil, body(params, map[string]any{"message": message}), nil)
}

// SendFile shares file in a private chat with a message.
func (u *User) SendFile(ctx context.Context, message string, file Attachment) error {
	return u.api.callFile(ctx, ResourceUser, u.path("/share/file"), map[string]any{"message": message}, file)
}

// History fetches the latest private chat history. Only max-results,
// timezone and not-before are sent; other keys are dropped.
func (u *User) History(ctx context.Context, params Params) (*models.History, error) {
	var history models.History
	if err := u.call(ctx, http.MethodGet, "/history/latest", query(filterParams(params, userHistoryParams)), nil, &history); err != nil {
		return nil, err
	}
	return &history, nil
}
