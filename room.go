package hipchat

import (
	"context"
	"net/http"
	"net/url"

	"github.com/idnildas/hipchat/models"
)

// Room operates on a single room, addressed by id or name.
type Room struct {
	api *api
	id  string

	// Summary is filled in when the Room came from Client.Rooms.
	Summary models.RoomSummary
}

// ID returns the identifier the room is addressed by.
func (r *Room) ID() string { return r.id }

func (r *Room) path(suffix string) string {
	return "/room/" + url.PathEscape(r.id) + suffix
}

func (r *Room) call(ctx context.Context, method, suffix string, q url.Values, payload, out any) error {
	return r.api.call(ctx, ResourceRoom, method, r.path(suffix), q, payload, out)
}

// Get fetches the full room record.
func (r *Room) Get(ctx context.Context) (*models.Room, error) {
	var room models.Room
	if err := r.call(ctx, http.MethodGet, "", nil, nil, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// Update replaces room settings. params (name, topic, privacy, is_archived,
// is_guest_accessible, owner) are forwarded as-is.
func (r *Room) Update(ctx context.Context, params Params) error {
	return r.call(ctx, http.MethodPut, "", nil, body(params, nil), nil)
}

// Delete removes the room.
func (r *Room) Delete(ctx context.Context) error {
	return r.call(ctx, http.MethodDelete, "", nil, nil, nil)
}

// Topic sets the room topic. params may carry "from".
func (r *Room) Topic(ctx context.Context, topic string, params Params) error {
	return r.call(ctx, http.MethodPut, "/topic", nil, body(params, map[string]any{"topic": topic}), nil)
}

// History fetches room history. Only timezone, date, max-results,
// start-index and end-date are sent; other keys are dropped.
func (r *Room) History(ctx context.Context, params Params) (*models.History, error) {
	var history models.History
	if err := r.call(ctx, http.MethodGet, "/history", query(filterParams(params, roomHistoryParams)), nil, &history); err != nil {
		return nil, err
	}
	return &history, nil
}

// Statistics fetches message counts and last activity.
func (r *Room) Statistics(ctx context.Context) (*models.Statistics, error) {
	var stats models.Statistics
	if err := r.call(ctx, http.MethodGet, "/statistics", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// SendMessage posts a chat message as the token's owner.
func (r *Room) SendMessage(ctx context.Context, message string) (*models.MessageRef, error) {
	var ref models.MessageRef
	if err := r.call(ctx, http.MethodPost, "/message", nil, map[string]any{"message": message}, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

// Reply posts message as a reply to the message with parentID.
func (r *Room) Reply(ctx context.Context, parentID, message string) error {
	payload := map[string]any{"parentMessageId": parentID, "message": message}
	return r.call(ctx, http.MethodPost, "/reply", nil, payload, nil)
}

// Send posts a notification shown as coming from from, which is limited to
// MaxSenderNameLength characters. params (notify, color, message_format,
// card) are forwarded as-is; message_format defaults to html, color to
// yellow and notify to false.
func (r *Room) Send(ctx context.Context, from, message string, params Params) error {
	if err := checkName("sender name", from, MaxSenderNameLength); err != nil {
		return r.api.rejected("send", err)
	}
	params = withDefaults(params, map[string]any{
		"message_format": models.FormatHTML,
		"color":          models.ColorYellow,
		"notify":         false,
	})
	payload := body(params, map[string]any{"from": from, "message": message})
	return r.call(ctx, http.MethodPost, "/notification", nil, payload, nil)
}

// ShareLink posts link with a message. from is limited to
// MaxSenderNameLength characters.
func (r *Room) ShareLink(ctx context.Context, from, message, link string) error {
	if err := checkName("sender name", from, MaxSenderNameLength); err != nil {
		return r.api.rejected("share link", err)
	}
	payload := map[string]any{"from": from, "message": message, "link": link}
	return r.call(ctx, http.MethodPost, "/share/link", nil, payload, nil)
}

// SendFile uploads file with a message. from is limited to
// MaxSenderNameLength characters.
func (r *Room) SendFile(ctx context.Context, from, message string, file Attachment) error {
	if err := checkName("sender name", from, MaxSenderNameLength); err != nil {
		return r.api.rejected("send file", err)
	}
	fields := map[string]any{"from": from, "message": message}
	return r.api.callFile(ctx, ResourceRoom, r.path("/share/file"), fields, file)
}

// Invite invites userID to the room, with an optional reason.
func (r *Room) Invite(ctx context.Context, userID, reason string) error {
	return r.call(ctx, http.MethodPost, "/invite/"+url.PathEscape(userID), nil, map[string]any{"reason": reason}, nil)
}

// AddMember adds userID to a private room. roles defaults to room_member.
func (r *Room) AddMember(ctx context.Context, userID string, roles ...string) error {
	if len(roles) == 0 {
		roles = []string{models.RoleRoomMember}
	}
	return r.call(ctx, http.MethodPut, "/member/"+url.PathEscape(userID), nil, map[string]any{"room_roles": roles}, nil)
}
