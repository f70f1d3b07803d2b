// Package imagekit is a minimal client for the ImageKit upload and file
// management REST API.
package imagekit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/ak-shop/api/config"
)

const (
	defaultUploadURL = "https://upload.imagekit.io/api/v1/files/upload"
	defaultAPIURL    = "https://api.imagekit.io/v1"
)

type Client struct {
	config     *config.ImageKitConfig
	httpClient *http.Client

	// Overridable for tests.
	UploadURL string
	APIURL    string
}

func NewClient(cfg *config.ImageKitConfig) *Client {
	return &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		UploadURL:  defaultUploadURL,
		APIURL:     defaultAPIURL,
	}
}

type uploadResponse struct {
	FileID string `json:"fileId"`
	URL    string `json:"url"`
	Name   string `json:"name"`
}

// Upload pushes a file into the configured ImageKit folder. Authentication
// is basic auth with the private key as the username.
func (c *Client) Upload(ctx context.Context, fileName string, content []byte) (fileID, url string, err error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return "", "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return "", "", fmt.Errorf("failed to write upload form: %w", err)
	}

	_ = writer.WriteField("fileName", fileName)
	if c.config.Folder != "" {
		_ = writer.WriteField("folder", c.config.Folder)
	}
	_ = writer.WriteField("useUniqueFileName", "true")

	if err := writer.Close(); err != nil {
		return "", "", fmt.Errorf("failed to finish upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.UploadURL, &body)
	if err != nil {
		return "", "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.SetBasicAuth(c.config.PrivateKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", "", fmt.Errorf("upload rejected with status %d: %s", resp.StatusCode, detail)
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", "", fmt.Errorf("failed to decode upload response: %w", err)
	}

	return parsed.FileID, parsed.URL, nil
}

// Delete removes a stored file by its ImageKit file ID.
func (c *Client) Delete(ctx context.Context, fileID string) error {
	endpoint := fmt.Sprintf("%s/files/%s", c.APIURL, fileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}
	req.SetBasicAuth(c.config.PrivateKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("delete rejected with status %d", resp.StatusCode)
	}
	return nil
}
