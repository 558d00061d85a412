package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/zomujo/telemed-api/internal/config"
)

// Service stores uploaded files in an HTTP object store and returns public
// URLs for them.
type Service interface {
	Upload(ctx context.Context, file io.Reader, folder, name string) (string, error)
	Delete(ctx context.Context, fileURL string) error
}

type service struct {
	baseURL string
	bucket  string
	apiKey  string
	client  *http.Client
}

func NewService(cfg config.StorageConfig) Service {
	return &service{
		baseURL: cfg.BaseURL,
		bucket:  cfg.Bucket,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (s *service) Upload(ctx context.Context, file io.Reader, folder, name string) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to copy file contents: %w", err)
	}
	if err := writer.WriteField("folder", folder); err != nil {
		return "", fmt.Errorf("failed to write folder field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload body: %w", err)
	}

	endpoint := fmt.Sprintf("%s/buckets/%s/objects", s.baseURL, s.bucket)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("object store returned %d", resp.StatusCode)
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	return result.URL, nil
}

func (s *service) Delete(ctx context.Context, fileURL string) error {
	parsed, err := url.Parse(fileURL)
	if err != nil {
		return fmt.Errorf("invalid file url: %w", err)
	}

	endpoint := fmt.Sprintf("%s/buckets/%s/objects?path=%s", s.baseURL, s.bucket, url.QueryEscape(parsed.Path))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("object store returned %d", resp.StatusCode)
	}
	return nil
}
