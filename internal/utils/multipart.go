package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// MaxUploadBytes bounds a file share request.
const MaxUploadBytes = 32 << 20

// FileShare is a decoded multipart/related file share: a JSON metadata part
// and a file part.
type FileShare struct {
	Fields   map[string]any
	Filename string
	Content  []byte
}

// Message returns the "message" metadata field, if any.
func (f *FileShare) Message() string {
	message, _ := f.Fields["message"].(string)
	return message
}

// ReadFileShare parses a multipart file share body.
func ReadFileShare(w http.ResponseWriter, r *http.Request) (*FileShare, error) {
	mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return nil, fmt.Errorf("expected a multipart body, got %q", r.Header.Get("Content-Type"))
	}

	reader := multipart.NewReader(http.MaxBytesReader(w, r.Body, MaxUploadBytes), params["boundary"])
	share := &FileShare{Fields: map[string]any{}}
	sawFile := false
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading multipart body: %w", err)
		}

		_, disposition, _ := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
		switch disposition["name"] {
		case "metadata":
			if err := json.NewDecoder(part).Decode(&share.Fields); err != nil {
				return nil, fmt.Errorf("decoding metadata part: %w", err)
			}
		case "file":
			content, err := io.ReadAll(part)
			if err != nil {
				return nil, fmt.Errorf("reading file part: %w", err)
			}
			share.Content = content
			share.Filename = filepath.Base(disposition["filename"])
			sawFile = true
		}
		part.Close()
	}
	if !sawFile {
		return nil, errors.New("file part is required")
	}
	return share, nil
}
