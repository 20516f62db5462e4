package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/desertthunder/hrvxo-music/internal/shared"
)

const defaultAPIBaseURL = "http://localhost:8080"

// APIService calls a running hrvxo-music server.
type APIService struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIService creates a new API service instance for the server at baseURL.
func NewAPIService(baseURL string, client *http.Client) *APIService {
	if baseURL == "" {
		baseURL = defaultAPIBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &APIService{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: client,
	}
}

// BaseURL returns the server address.
func (a *APIService) BaseURL() string {
	return a.baseURL
}

// Health calls GET /health and returns the reported status.
func (a *APIService) Health(ctx context.Context) (string, error) {
	var body struct {
		Status string `json:"status"`
	}
	if err := a.do(ctx, http.MethodGet, "/health", nil, &body); err != nil {
		return "", err
	}
	return body.Status, nil
}

// Search calls POST /search.
func (a *APIService) Search(ctx context.Context, query string) ([]SearchResult, error) {
	var results []SearchResult
	if err := a.do(ctx, http.MethodPost, "/search", map[string]string{"query": query}, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// CreatePlaylist calls POST /create-playlist.
func (a *APIService) CreatePlaylist(ctx context.Context, req CreatePlaylistRequest) (*CreatePlaylistResponse, error) {
	var resp CreatePlaylistResponse
	if err := a.do(ctx, http.MethodPost, "/create-playlist", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do sends a JSON request; non-2xx responses become an [*Error] carrying the server's detail message.
func (a *APIService) do(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Detail string `json:"detail"`
		}
		message := fmt.Sprintf("server returned status %d", resp.StatusCode)
		if err := json.Unmarshal(data, &errResp); err == nil && errResp.Detail != "" {
			message = errResp.Detail
		}
		return &Error{
			Kind:    kindForStatus(resp.StatusCode),
			Message: message,
			Err:     fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode),
		}
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
