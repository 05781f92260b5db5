package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"lokapasar/pkg/logger"
)

// FallbackUploader posts an image to a secondary public image host when the
// primary bucket upload fails. The host expects a multipart form with a
// client key parameter.
type FallbackUploader struct {
	endpoint string
	key      string
	httpc    *http.Client
}

func NewFallbackUploader(endpoint, key string) *FallbackUploader {
	return &FallbackUploader{
		endpoint: endpoint,
		key:      key,
		httpc:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (u *FallbackUploader) Enabled() bool {
	return u.endpoint != "" && u.key != ""
}

type fallbackResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
	Success bool `json:"success"`
}

func (u *FallbackUploader) Upload(ctx context.Context, file io.Reader, filename string) (string, error) {
	if !u.Enabled() {
		return "", fmt.Errorf("fallback image host is not configured")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", u.endpoint, u.key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("fallback upload failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var result fallbackResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if !result.Success || result.Data.URL == "" {
		return "", fmt.Errorf("fallback host rejected the upload")
	}

	logger.Info("Image uploaded via fallback host: %s", result.Data.URL)
	return result.Data.URL, nil
}
