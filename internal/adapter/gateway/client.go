// Package gateway provides an HTTP client for the inference gateway API.
// It is the only component that holds the gateway bearer credential.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/eagleai/eaglechat/internal/domain/chat"
)

// API paths on the gateway.
const (
	modelsPath      = "/v1/models"
	completionsPath = "/v1/chat/completions"
)

// APIError is a non-2xx reply from the gateway. It carries the upstream
// status and raw payload so the proxy can preserve both when relaying the
// failure.
type APIError struct {
	Status int
	Body   []byte
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("gateway API error %d: %s", e.Status, string(e.Body))
}

// Client talks to the inference gateway.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a gateway client. The token is read once and immutable
// for the client's lifetime.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListModels returns the gateway's model listing body verbatim.
func (c *Client) ListModels(ctx context.Context) ([]byte, error) {
	return c.doRequest(ctx, http.MethodGet, modelsPath, nil)
}

// CreateChatCompletion forwards a completion request and returns the
// gateway's body verbatim.
func (c *Client) CreateChatCompletion(ctx context.Context, req chat.CompletionRequest) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal completion request: %w", err)
	}
	return c.doRequest(ctx, http.MethodPost, completionsPath, body)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{Status: resp.StatusCode, Body: data}
	}

	return data, nil
}
