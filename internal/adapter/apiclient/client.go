// Package apiclient implements the completion client port against the
// proxy's own HTTP API. It holds no credential; the proxy injects it.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/eagleai/eaglechat/internal/domain/chat"
	"github.com/eagleai/eaglechat/internal/port/llm"
)

// Client talks to the Eagle Chat proxy.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ llm.Client = (*Client)(nil)

// NewClient creates a proxy API client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Models returns the selectable models from GET /api/models.
func (c *Client) Models(ctx context.Context) ([]chat.ModelInfo, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/models", nil)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}

	var list chat.ModelList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("unmarshal models: %w", err)
	}
	return list.Data, nil
}

// Complete posts the full history to POST /api/chat and returns the first
// choice's message. An empty choices list is an error.
func (c *Client) Complete(ctx context.Context, req chat.CompletionRequest) (chat.Message, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return chat.Message{}, fmt.Errorf("marshal completion request: %w", err)
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/api/chat", payload)
	if err != nil {
		return chat.Message{}, err
	}

	var resp chat.CompletionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return chat.Message{}, fmt.Errorf("unmarshal completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return chat.Message{}, errors.New("no response from API")
	}
	return resp.Choices[0].Message, nil
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
		return nil, fmt.Errorf("chat API error %d: %s", resp.StatusCode, failureDetail(data))
	}

	return data, nil
}

// failureDetail digs the most human-readable string out of the proxy's
// {error, details} envelope, falling back to the raw body.
func failureDetail(body []byte) string {
	var envelope struct {
		Error   string          `json:"error"`
		Details json.RawMessage `json:"details"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error == "" {
		return string(body)
	}

	if len(envelope.Details) > 0 {
		var nested struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(envelope.Details, &nested); err == nil && nested.Error != "" {
			return nested.Error
		}
		var s string
		if err := json.Unmarshal(envelope.Details, &s); err == nil && s != "" {
			return s
		}
		return envelope.Error + ": " + string(envelope.Details)
	}
	return envelope.Error
}
