package hipchat

import (
	"context"
	"net/http"
	"net/url"

	"github.com/idnildas/hipchat/models"
)

// CreateWebhook subscribes target to event in this room. target must be an
// http or https URL and event one of models.WebhookEvents. params (name,
// pattern) are forwarded as-is.
func (r *Room) CreateWebhook(ctx context.Context, target, event string, params Params) (*models.WebhookRef, error) {
	if err := checkWebhookURL(target); err != nil {
		return nil, r.api.rejected("create webhook", err)
	}
	if err := checkWebhookEvent(event); err != nil {
		return nil, r.api.rejected("create webhook", err)
	}

	var ref models.WebhookRef
	payload := body(params, map[string]any{"url": target, "event": event})
	if err := r.call(ctx, http.MethodPost, "/webhook", nil, payload, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

// Webhooks lists the room's webhooks. params (start-index, max-results) are
// sent as the query string.
func (r *Room) Webhooks(ctx context.Context, params Params) (*models.WebhookList, error) {
	var list models.WebhookList
	if err := r.call(ctx, http.MethodGet, "/webhook", query(params), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Webhook fetches one webhook. A 404 yields ErrUnknownWebhook.
func (r *Room) Webhook(ctx context.Context, id string) (*models.Webhook, error) {
	var hook models.Webhook
	err := r.api.call(ctx, ResourceWebhook, http.MethodGet, r.path("/webhook/"+url.PathEscape(id)), nil, nil, &hook)
	if err != nil {
		return nil, err
	}
	return &hook, nil
}

// DeleteWebhook removes one webhook. A 404 yields ErrUnknownWebhook.
func (r *Room) DeleteWebhook(ctx context.Context, id string) error {
	return r.api.call(ctx, ResourceWebhook, http.MethodDelete, r.path("/webhook/"+url.PathEscape(id)), nil, nil, nil)
}
