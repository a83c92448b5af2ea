package hipchat

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDoer records every request and answers each with the same status.
type stubDoer struct {
	mu       sync.Mutex
	status   int
	body     string
	requests []*http.Request
	bodies   []string
}

func (d *stubDoer) Do(request *http.Request) (*http.Response, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var payload []byte
	if request.Body != nil {
		payload, _ = io.ReadAll(request.Body)
	}
	d.requests = append(d.requests, request)
	d.bodies = append(d.bodies, string(payload))

	status := d.status
	if status == 0 {
		status = http.StatusNoContent
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(d.body)),
		Request:    request,
	}, nil
}

func (d *stubDoer) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.requests)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newStubClient(t *testing.T, doer *stubDoer) *Client {
	t.Helper()
	client, err := NewClient(Config{
		Token:      "token",
		ServerURL:  "https://chat.example.com/",
		HTTPClient: doer,
		Logger:     quietLogger(),
	})
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err, "token is required")

	_, err = NewClient(Config{Token: "t", ServerURL: "ftp://example.com"})
	assert.Error(t, err)

	_, err = NewClient(Config{Token: "t", APIVersion: "v1"})
	assert.Error(t, err)

	client, err := NewClient(Config{Token: "t"})
	require.NoError(t, err)
	assert.Equal(t, "https://api.hipchat.com/v2", client.api.baseURL)
	assert.Equal(t, http.DefaultClient, client.api.httpClient)

	client, err = NewClient(Config{Token: "t", ServerURL: "http://localhost:8080/", APIVersion: "v2"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/v2", client.api.baseURL)
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("HIPCHAT_TOKEN", "")
	_, err := NewFromEnv()
	assert.Error(t, err)

	t.Setenv("HIPCHAT_TOKEN", "abc")
	t.Setenv("HIPCHAT_SERVER_URL", "https://chat.example.com")
	t.Setenv("HIPCHAT_LOG_LEVEL", "warn")
	client, err := NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://chat.example.com/v2", client.api.baseURL)
	assert.Equal(t, "abc", client.api.token)

	t.Setenv("HIPCHAT_LOG_LEVEL", "loud")
	_, err = NewFromEnv()
	assert.Error(t, err)
}

func TestRequestShape(t *testing.T) {
	doer := &stubDoer{}
	client := newStubClient(t, doer)

	require.NoError(t, client.Room("A room").Send(context.Background(), "bot", "hello", Params{"color": "red"}))
	require.Equal(t, 1, doer.count())

	request := doer.requests[0]
	assert.Equal(t, http.MethodPost, request.Method)
	assert.Equal(t, "/v2/room/A%20room/notification", request.URL.EscapedPath())
	assert.Equal(t, "Bearer token", request.Header.Get("Authorization"))
	assert.Equal(t, "application/json", request.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"from":"bot","message":"hello","color":"red","message_format":"html","notify":false}`, doer.bodies[0])
}

func TestUserSendDefaults(t *testing.T) {
	doer := &stubDoer{}
	client := newStubClient(t, doer)

	require.NoError(t, client.User("@ada").Send(context.Background(), "hi", nil))
	assert.Equal(t, "/v2/user/@ada/message", doer.requests[0].URL.Path)
	assert.JSONEq(t, `{"message":"hi","message_format":"text","notify":false}`, doer.bodies[0])
}

func TestAddMemberDefaultRole(t *testing.T) {
	doer := &stubDoer{}
	client := newStubClient(t, doer)

	require.NoError(t, client.Room("1").AddMember(context.Background(), "2"))
	assert.Equal(t, http.MethodPut, doer.requests[0].Method)
	assert.Equal(t, "/v2/room/1/member/2", doer.requests[0].URL.Path)
	assert.JSONEq(t, `{"room_roles":["room_member"]}`, doer.bodies[0])
}

func TestReplyBody(t *testing.T) {
	doer := &stubDoer{}
	client := newStubClient(t, doer)

	require.NoError(t, client.Room("1").Reply(context.Background(), "parent-id", "me too"))
	assert.JSONEq(t, `{"parentMessageId":"parent-id","message":"me too"}`, doer.bodies[0])
}

func TestHistoryQueryIsFiltered(t *testing.T) {
	doer := &stubDoer{status: http.StatusOK, body: `{"items":[]}`}
	client := newStubClient(t, doer)
	params := Params{"timezone": "CET", "bogus": "x"}

	_, err := client.Room("1").History(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, "timezone=CET", doer.requests[0].URL.RawQuery)
	assert.Contains(t, params, "bogus", "caller params must not be mutated")

	_, err = client.User("1").History(context.Background(), Params{"max-results": 5, "date": "2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, "/v2/user/1/history/latest", doer.requests[1].URL.Path)
	assert.Equal(t, "max-results=5", doer.requests[1].URL.RawQuery)
}

func TestSendFileMultipart(t *testing.T) {
	doer := &stubDoer{}
	client := newStubClient(t, doer)

	err := client.Room("1").SendFile(context.Background(), "bot", "see attached", Attachment{
		Name:    "notes.txt",
		Content: strings.NewReader("file body"),
	})
	require.NoError(t, err)

	request := doer.requests[0]
	assert.Equal(t, "/v2/room/1/share/file", request.URL.Path)
	assert.True(t, strings.HasPrefix(request.Header.Get("Content-Type"), "multipart/related; boundary="))
	assert.Contains(t, doer.bodies[0], `"from":"bot"`)
	assert.Contains(t, doer.bodies[0], `Content-Disposition: attachment; name="metadata"`)
	assert.Contains(t, doer.bodies[0], `Content-Disposition: attachment; name="file"; filename="notes.txt"`)
	assert.Contains(t, doer.bodies[0], "file body")
}

func TestSendFileParts(t *testing.T) {
	doer := &stubDoer{}
	client := newStubClient(t, doer)

	err := client.User("@ada").SendFile(context.Background(), "minutes", Attachment{
		Name:        `q3 "final" notes.txt`,
		ContentType: "text/plain",
		Content:     strings.NewReader("file body"),
	})
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(doer.requests[0].Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/related", mediaType)

	reader := multipart.NewReader(strings.NewReader(doer.bodies[0]), params["boundary"])

	metadata, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "metadata", metadata.FormName())
	assert.Equal(t, "application/json; charset=UTF-8", metadata.Header.Get("Content-Type"))
	fields, err := io.ReadAll(metadata)
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"minutes"}`, string(fields))

	file, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "file", file.FormName())
	assert.Equal(t, `q3 "final" notes.txt`, file.FileName())
	assert.Equal(t, "text/plain", file.Header.Get("Content-Type"))
	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "file body", string(content))

	_, err = reader.NextPart()
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, `a\\b\"c`, quoteEscaper.Replace(`a\b"c`))
}

// Validation failures must never reach the transport.
func TestValidationSendsNothing(t *testing.T) {
	ctx := context.Background()
	long := strings.Repeat("x", 16)
	tooLongName := strings.Repeat("n", 51)

	tests := []struct {
		name string
		call func(*Client) error
		want error
	}{
		{"room send", func(c *Client) error { return c.Room("1").Send(ctx, long, "m", nil) }, ErrNameTooLong},
		{"share link", func(c *Client) error { return c.Room("1").ShareLink(ctx, long, "m", "https://example.com") }, ErrNameTooLong},
		{"send file", func(c *Client) error {
			return c.Room("1").SendFile(ctx, long, "m", Attachment{Name: "f", Content: strings.NewReader("x")})
		}, ErrNameTooLong},
		{"create room", func(c *Client) error { _, err := c.CreateRoom(ctx, tooLongName, nil); return err }, ErrNameTooLong},
		{"create user", func(c *Client) error { _, err := c.CreateUser(ctx, tooLongName, "a@example.com", nil); return err }, ErrNameTooLong},
		{"webhook url", func(c *Client) error { _, err := c.Room("1").CreateWebhook(ctx, "foo", "room_message", nil); return err }, ErrInvalidURL},
		{"webhook scheme", func(c *Client) error {
			_, err := c.Room("1").CreateWebhook(ctx, "ftp://example.com", "room_message", nil)
			return err
		}, ErrInvalidURL},
		{"webhook unknown scheme", func(c *Client) error {
			_, err := c.Room("1").CreateWebhook(ctx, "this://is.invalid/", "room_message", nil)
			return err
		}, ErrInvalidURL},
		{"webhook unknown event", func(c *Client) error {
			_, err := c.Room("1").CreateWebhook(ctx, "https://example.com/hook", "room_vandalize", nil)
			return err
		}, ErrInvalidEvent},
		{"webhook event", func(c *Client) error {
			_, err := c.Room("1").CreateWebhook(ctx, "https://example.com", "foo", nil)
			return err
		}, ErrInvalidEvent},
		{"webhook url before event", func(c *Client) error { _, err := c.Room("1").CreateWebhook(ctx, "foo", "foo", nil); return err }, ErrInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doer := &stubDoer{}
			err := tt.call(newStubClient(t, doer))
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, doer.count())

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Zero(t, apiErr.StatusCode)
		})
	}
}

func TestLimitsAreInclusive(t *testing.T) {
	doer := &stubDoer{status: http.StatusCreated, body: `{"id":1}`}
	client := newStubClient(t, doer)
	ctx := context.Background()

	require.NoError(t, client.Room("1").Send(ctx, strings.Repeat("x", 15), "m", nil))
	_, err := client.CreateRoom(ctx, strings.Repeat("r", 50), nil)
	require.NoError(t, err)
	_, err = client.CreateUser(ctx, strings.Repeat("u", 50), "u@example.com", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, doer.count())
}

// Every operation maps 404 to its resource's unknown kind and 401/403/500 to
// ErrUnauthorized.
func TestOperationStatusMapping(t *testing.T) {
	ctx := context.Background()
	file := func() Attachment { return Attachment{Name: "f.txt", Content: strings.NewReader("x")} }

	operations := []struct {
		name     string
		notFound error
		call     func(*Client) error
	}{
		{"rooms", ErrUnknownRoom, func(c *Client) error { _, err := c.Rooms(ctx, nil); return err }},
		{"create room", ErrUnknownRoom, func(c *Client) error { _, err := c.CreateRoom(ctx, "A room", nil); return err }},
		{"get room", ErrUnknownRoom, func(c *Client) error { _, err := c.Room("1").Get(ctx); return err }},
		{"update room", ErrUnknownRoom, func(c *Client) error { return c.Room("1").Update(ctx, Params{"name": "x"}) }},
		{"delete room", ErrUnknownRoom, func(c *Client) error { return c.Room("1").Delete(ctx) }},
		{"topic", ErrUnknownRoom, func(c *Client) error { return c.Room("1").Topic(ctx, "t", nil) }},
		{"room history", ErrUnknownRoom, func(c *Client) error { _, err := c.Room("1").History(ctx, nil); return err }},
		{"statistics", ErrUnknownRoom, func(c *Client) error { _, err := c.Room("1").Statistics(ctx); return err }},
		{"send message", ErrUnknownRoom, func(c *Client) error { _, err := c.Room("1").SendMessage(ctx, "m"); return err }},
		{"reply", ErrUnknownRoom, func(c *Client) error { return c.Room("1").Reply(ctx, "p", "m") }},
		{"send", ErrUnknownRoom, func(c *Client) error { return c.Room("1").Send(ctx, "bot", "m", nil) }},
		{"share link", ErrUnknownRoom, func(c *Client) error { return c.Room("1").ShareLink(ctx, "bot", "m", "https://x.io") }},
		{"room send file", ErrUnknownRoom, func(c *Client) error { return c.Room("1").SendFile(ctx, "bot", "m", file()) }},
		{"invite", ErrUnknownRoom, func(c *Client) error { return c.Room("1").Invite(ctx, "2", "why") }},
		{"add member", ErrUnknownRoom, func(c *Client) error { return c.Room("1").AddMember(ctx, "2") }},
		{"create webhook", ErrUnknownRoom, func(c *Client) error {
			_, err := c.Room("1").CreateWebhook(ctx, "https://x.io", "room_message", nil)
			return err
		}},
		{"webhooks", ErrUnknownRoom, func(c *Client) error { _, err := c.Room("1").Webhooks(ctx, nil); return err }},
		{"webhook", ErrUnknownWebhook, func(c *Client) error { _, err := c.Room("1").Webhook(ctx, "3"); return err }},
		{"delete webhook", ErrUnknownWebhook, func(c *Client) error { return c.Room("1").DeleteWebhook(ctx, "3") }},
		{"users", ErrUnknownUser, func(c *Client) error { _, err := c.Users(ctx, nil); return err }},
		{"create user", ErrUnknownUser, func(c *Client) error { _, err := c.CreateUser(ctx, "Ada", "a@x.io", nil); return err }},
		{"view user", ErrUnknownUser, func(c *Client) error { _, err := c.User("1").View(ctx); return err }},
		{"update user", ErrUnknownUser, func(c *Client) error { return c.User("1").Update(ctx, Params{"name": "x"}) }},
		{"delete user", ErrUnknownUser, func(c *Client) error { return c.User("1").Delete(ctx) }},
		{"user send", ErrUnknownUser, func(c *Client) error { return c.User("1").Send(ctx, "m", nil) }},
		{"user send file", ErrUnknownUser, func(c *Client) error { return c.User("1").SendFile(ctx, "m", file()) }},
		{"user history", ErrUnknownUser, func(c *Client) error { _, err := c.User("1").History(ctx, nil); return err }},
	}

	statuses := []struct {
		status int
		want   func(notFound error) error
	}{
		{http.StatusNotFound, func(notFound error) error { return notFound }},
		{http.StatusUnauthorized, func(error) error { return ErrUnauthorized }},
		{http.StatusForbidden, func(error) error { return ErrUnauthorized }},
		{http.StatusInternalServerError, func(error) error { return ErrUnauthorized }},
	}

	for _, op := range operations {
		for _, st := range statuses {
			t.Run(op.name+"/"+http.StatusText(st.status), func(t *testing.T) {
				doer := &stubDoer{status: st.status, body: `{"error":{"code":1}}`}
				err := op.call(newStubClient(t, doer))
				assert.ErrorIs(t, err, st.want(op.notFound))
				assert.Equal(t, 1, doer.count(), "exactly one request per call")
			})
		}
	}
}

type failingDoer struct{}

func (failingDoer) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestTransportFailureIsNotClassified(t *testing.T) {
	client, err := NewClient(Config{Token: "t", HTTPClient: failingDoer{}, Logger: quietLogger()})
	require.NoError(t, err)

	_, err = client.Room("1").Get(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr))
}

func TestDecodeFailure(t *testing.T) {
	doer := &stubDoer{status: http.StatusOK, body: `not json`}
	client := newStubClient(t, doer)

	_, err := client.Room("1").Get(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding GET /room/1 response")
}
