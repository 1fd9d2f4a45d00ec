package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eagleai/eaglechat/internal/adapter/gateway"
	"github.com/eagleai/eaglechat/internal/domain/chat"
)

func TestListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/models" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-token" {
			t.Errorf("unexpected auth: %q", auth)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"supermind-agent-v1"},{"id":"supermind-fast"}]}`))
	}))
	defer srv.Close()

	client := gateway.NewClient(srv.URL, "test-token", 0)
	body, err := client.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels failed: %v", err)
	}

	var list chat.ModelList
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if len(list.Data) != 2 {
		t.Fatalf("expected 2 models, got %d", len(list.Data))
	}
	if list.Data[0].ID != "supermind-agent-v1" {
		t.Fatalf("expected supermind-agent-v1, got %q", list.Data[0].ID)
	}
}

func TestCreateChatCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}

		var req chat.CompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.Model != "supermind-agent-v1" {
			t.Errorf("unexpected model: %q", req.Model)
		}
		if len(req.Messages) != 1 || req.Messages[0].Content != "hello" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}
		if req.Stream {
			t.Error("stream should default to false")
		}

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Hi"}}]}`))
	}))
	defer srv.Close()

	client := gateway.NewClient(srv.URL, "test-token", 0)
	body, err := client.CreateChatCompletion(context.Background(), chat.CompletionRequest{
		Model:    "supermind-agent-v1",
		Messages: []chat.Message{{Role: chat.RoleUser, Content: "hello"}},
	})
	if err != nil {
		t.Fatalf("CreateChatCompletion failed: %v", err)
	}

	var resp chat.CompletionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if len(resp.Choices) != 1 || resp.Choices[0].Message.Content != "Hi" {
		t.Fatalf("unexpected completion: %+v", resp)
	}
}

func TestTemperatureOmittedWhenAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Errorf("decode request: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if _, ok := raw["temperature"]; ok {
			t.Error("temperature should be omitted when not provided")
		}
		if _, ok := raw["max_tokens"]; ok {
			t.Error("max_tokens should be omitted when not provided")
		}
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client := gateway.NewClient(srv.URL, "test-token", 0)
	_, err := client.CreateChatCompletion(context.Background(), chat.CompletionRequest{
		Model:    "supermind-agent-v1",
		Messages: []chat.Message{{Role: chat.RoleUser, Content: "hello"}},
	})
	if err != nil {
		t.Fatalf("CreateChatCompletion failed: %v", err)
	}
}

func TestUpstreamErrorPreserved(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"overloaded"}`))
	}))
	defer srv.Close()

	client := gateway.NewClient(srv.URL, "test-token", 0)
	_, err := client.ListModels(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *gateway.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *gateway.APIError, got %T", err)
	}
	if apiErr.Status != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", apiErr.Status)
	}
	if string(apiErr.Body) != `{"error":"overloaded"}` {
		t.Fatalf("unexpected body: %s", apiErr.Body)
	}
}
