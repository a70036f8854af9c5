package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/navatui/nava/internal/domain"
)

// Upload stores data as an object at bucket/path. Buckets are provisioned
// server-side; uploads never create them.
func (c *Client) Upload(ctx context.Context, bucket, path, contentType string, data []byte) error {
	reqURL := fmt.Sprintf("%s%s/object/%s/%s", c.baseURL, storagePath, bucket, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.bearer())
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("uploading object", "bucket", bucket, "path", path, "bytes", len(data))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("upload failed", "bucket", bucket, "error", err)
		return &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		var e struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		_ = json.Unmarshal(body, &e)
		c.logger.Error("upload rejected", "bucket", bucket, "status", resp.StatusCode, "body", string(body))
		if e.Message != "" {
			return fmt.Errorf("upload error %d: %s", resp.StatusCode, e.Message)
		}
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}

// PublicURL returns the public access URL for an object in a public bucket
func (c *Client) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s%s/object/public/%s/%s", c.baseURL, storagePath, bucket, path)
}
