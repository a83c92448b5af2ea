package hipchat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
)

// maxResponseBytes bounds how much of a response body is buffered.
const maxResponseBytes = 8 << 20

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Doer is the HTTP capability the client needs. *http.Client satisfies it.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Attachment is a file shared through SendFile.
type Attachment struct {
	Name string
	// ContentType defaults to application/octet-stream.
	ContentType string
	Content     io.Reader
}

// api is the immutable request context shared by the root client and every
// resource client derived from it.
type api struct {
	baseURL    string
	token      string
	httpClient Doer
	logger     logrus.FieldLogger
}

// call sends one request, classifies the response against resource and, on
// success, decodes the body into out when out is non-nil.
func (a *api) call(ctx context.Context, resource Resource, method, path string, q url.Values, payload, out any) error {
	var (
		reader      io.Reader
		contentType string
	)
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("hipchat: encoding %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
		contentType = "application/json"
	}
	response, err := a.do(ctx, method, path, q, contentType, reader)
	if err != nil {
		return err
	}
	return a.finish(resource, method, path, response, out)
}

// callFile sends fields and the attachment as a multipart/related body: a
// JSON part followed by the file part.
func (a *api) callFile(ctx context.Context, resource Resource, path string, fields map[string]any, file Attachment) error {
	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)

	header := textproto.MIMEHeader{}
	header.Set("Content-Type", "application/json; charset=UTF-8")
	header.Set("Content-Disposition", `attachment; name="metadata"`)
	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("hipchat: creating metadata part: %w", err)
	}
	if err := json.NewEncoder(part).Encode(fields); err != nil {
		return fmt.Errorf("hipchat: encoding metadata part: %w", err)
	}

	fileType := file.ContentType
	if fileType == "" {
		fileType = "application/octet-stream"
	}
	header = textproto.MIMEHeader{}
	header.Set("Content-Type", fileType)
	header.Set("Content-Disposition", `attachment; name="file"; filename="`+quoteEscaper.Replace(file.Name)+`"`)
	part, err = writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("hipchat: creating file part: %w", err)
	}
	if file.Content != nil {
		if _, err := io.Copy(part, file.Content); err != nil {
			return fmt.Errorf("hipchat: reading attachment %q: %w", file.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("hipchat: closing multipart body: %w", err)
	}

	contentType := "multipart/related; boundary=" + writer.Boundary()
	response, err := a.do(ctx, http.MethodPost, path, nil, contentType, &buffer)
	if err != nil {
		return err
	}
	return a.finish(resource, http.MethodPost, path, response, nil)
}

func (a *api) do(ctx context.Context, method, path string, q url.Values, contentType string, body io.Reader) (Response, error) {
	requestURL := a.baseURL + path
	if len(q) > 0 {
		requestURL += "?" + q.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return Response{}, fmt.Errorf("hipchat: creating request: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+a.token)
	request.Header.Set("Accept", "application/json")
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}

	response, err := a.httpClient.Do(request)
	if err != nil {
		return Response{}, fmt.Errorf("hipchat: request to %s %s failed: %w", method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return Response{}, fmt.Errorf("hipchat: reading response body: %w", err)
	}

	a.logger.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
		"status": response.StatusCode,
	}).Debug("hipchat request")

	return Response{StatusCode: response.StatusCode, Body: responseBody}, nil
}

func (a *api) finish(resource Resource, method, path string, response Response, out any) error {
	if err := Classify(resource, response); err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(response.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(response.Body, out); err != nil {
		return fmt.Errorf("hipchat: decoding %s %s response: %w", method, path, err)
	}
	return nil
}

// rejected logs a validation failure and returns it unchanged.
func (a *api) rejected(operation string, err error) error {
	a.logger.WithField("operation", operation).WithError(err).Debug("hipchat request rejected")
	return err
}
