package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Uploader sends a file to an external media host and returns the URL it is
// served from. The backend persists only that reference.
type Uploader interface {
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
}

// AllowedImageTypes are the content types accepted for profile images.
var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

type httpUploader struct {
	endpoint string
	client   *http.Client
}

// NewHTTPUploader creates an uploader posting multipart requests to a media
// host upload endpoint that responds with {"secure_url": "..."}.
func NewHTTPUploader(endpoint string, timeout time.Duration) Uploader {
	return &httpUploader{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (u *httpUploader) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("failed to buffer upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("media host unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("media host returned status %d", resp.StatusCode)
	}

	var uploaded struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return "", fmt.Errorf("failed to decode media host response: %w", err)
	}
	if uploaded.SecureURL == "" {
		return "", fmt.Errorf("media host returned empty URL")
	}
	return uploaded.SecureURL, nil
}
