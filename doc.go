// Package hipchat is a client for the HipChat v2 REST API: rooms, users,
// messages and room webhooks.
//
// A [Client] holds the token, server URL and API version. [Client.Room] and
// [Client.User] return lightweight handles that share that configuration;
// every operation on them issues exactly one blocking request. The client
// never retries, caches or rate-limits.
//
// Arguments are checked before anything is sent: sender names over 15
// characters, room and user names over 50, webhook URLs that are not http or
// https and unknown webhook events all fail locally. History operations only
// forward their documented query parameters and drop the rest.
//
// Responses are classified by status code alone. 404 maps to
// [ErrUnknownRoom], [ErrUnknownUser] or [ErrUnknownWebhook] depending on the
// operation; only 200, 201 and 204 count as success, and every other
// status, 401 and 403 included, maps to [ErrUnauthorized]. Use errors.Is to test the kind and errors.As with
// [*Error] for the status code and body.
package hipchat
