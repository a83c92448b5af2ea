package hipchat

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/idnildas/hipchat/internal/config"
	"github.com/idnildas/hipchat/models"
)

const (
	DefaultServerURL  = "https://api.hipchat.com"
	DefaultAPIVersion = "v2"
)

// Config holds everything needed to build a Client.
type Config struct {
	// Token is the bearer token sent with every request. Required.
	Token string
	// ServerURL defaults to DefaultServerURL.
	ServerURL string
	// APIVersion defaults to DefaultAPIVersion, the only version supported.
	APIVersion string
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient Doer
	// Logger defaults to the logrus standard logger.
	Logger logrus.FieldLogger
}

// Client is the entry point to the API. It is immutable once built and
// hands its configuration to every Room and User it creates.
type Client struct {
	api *api
}

// NewClient validates config and builds a Client.
func NewClient(config Config) (*Client, error) {
	if config.Token == "" {
		return nil, fmt.Errorf("hipchat: Token is required")
	}

	serverURL := config.ServerURL
	if serverURL == "" {
		serverURL = DefaultServerURL
	}
	parsed, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("hipchat: invalid ServerURL %q: %w", serverURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("hipchat: ServerURL %q must use http or https", serverURL)
	}

	version := config.APIVersion
	if version == "" {
		version = DefaultAPIVersion
	}
	if version != DefaultAPIVersion {
		return nil, fmt.Errorf("hipchat: unsupported API version %q", version)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := config.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Client{api: &api{
		baseURL:    strings.TrimRight(serverURL, "/") + "/" + version,
		token:      config.Token,
		httpClient: httpClient,
		logger:     logger.WithField("component", "hipchat"),
	}}, nil
}

// NewFromEnv builds a Client from HIPCHAT_TOKEN, HIPCHAT_SERVER_URL,
// HIPCHAT_API_VERSION and HIPCHAT_LOG_LEVEL, reading .env first if present.
func NewFromEnv() (*Client, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, fmt.Errorf("hipchat: %w", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("hipchat: HIPCHAT_LOG_LEVEL: %w", err)
	}
	logger := logrus.New()
	logger.SetLevel(level)

	return NewClient(Config{
		Token:      cfg.Token,
		ServerURL:  cfg.ServerURL,
		APIVersion: cfg.APIVersion,
		Logger:     logger,
	})
}

// Room returns a handle for the room with the given id or name. No request
// is made.
func (c *Client) Room(id string) *Room {
	return &Room{api: c.api, id: id}
}

// User returns a handle for the user with the given id, email or @mention.
// No request is made.
func (c *Client) User(id string) *User {
	return &User{api: c.api, id: id}
}

// Rooms lists rooms. params (start-index, max-results, include-private,
// include-archived) are sent as the query string.
func (c *Client) Rooms(ctx context.Context, params Params) ([]*Room, error) {
	var list models.RoomList
	if err := c.api.call(ctx, ResourceRoom, http.MethodGet, "/room", query(params), nil, &list); err != nil {
		return nil, err
	}
	rooms := make([]*Room, 0, len(list.Items))
	for _, item := range list.Items {
		room := c.Room(fmt.Sprint(item.ID))
		room.Summary = item
		rooms = append(rooms, room)
	}
	return rooms, nil
}

// Users lists users. params (start-index, max-results, include-guests,
// include-deleted) are sent as the query string.
func (c *Client) Users(ctx context.Context, params Params) ([]*User, error) {
	var list models.UserList
	if err := c.api.call(ctx, ResourceUser, http.MethodGet, "/user", query(params), nil, &list); err != nil {
		return nil, err
	}
	users := make([]*User, 0, len(list.Items))
	for _, item := range list.Items {
		user := c.User(fmt.Sprint(item.ID))
		user.Summary = item
		users = append(users, user)
	}
	return users, nil
}

// CreateRoom creates a room. name is limited to MaxRoomNameLength
// characters; params (owner_user_id, privacy, guest_access, topic) are
// forwarded as-is.
func (c *Client) CreateRoom(ctx context.Context, name string, params Params) (*models.RoomRef, error) {
	if err := checkName("room name", name, MaxRoomNameLength); err != nil {
		return nil, c.api.rejected("create room", err)
	}

	var ref models.RoomRef
	payload := body(params, map[string]any{"name": name})
	if err := c.api.call(ctx, ResourceRoom, http.MethodPost, "/room", nil, payload, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

// CreateUser creates a user. name is limited to MaxUserNameLength
// characters; params (title, mention_name, is_group_admin, timezone,
// password) are forwarded as-is.
func (c *Client) CreateUser(ctx context.Context, name, email string, params Params) (*models.UserRef, error) {
	if err := checkName("user name", name, MaxUserNameLength); err != nil {
		return nil, c.api.rejected("create user", err)
	}

	var ref models.UserRef
	payload := body(params, map[string]any{"name": name, "email": email})
	if err := c.api.call(ctx, ResourceUser, http.MethodPost, "/user", nil, payload, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}
