package apiclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/eagleai/eaglechat/internal/adapter/apiclient"
	"github.com/eagleai/eaglechat/internal/domain/chat"
)

func TestModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/models" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data":[{"id":"supermind-agent-v1"},{"id":"supermind-fast"}]}`))
	}))
	defer srv.Close()

	client := apiclient.NewClient(srv.URL, 0)
	models, err := client.Models(context.Background())
	if err != nil {
		t.Fatalf("Models failed: %v", err)
	}
	if len(models) != 2 || models[1].ID != "supermind-fast" {
		t.Fatalf("unexpected models: %+v", models)
	}
}

func TestComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Hi"}}]}`))
	}))
	defer srv.Close()

	client := apiclient.NewClient(srv.URL, 0)
	msg, err := client.Complete(context.Background(), chat.CompletionRequest{
		Model:    "supermind-agent-v1",
		Messages: []chat.Message{{Role: chat.RoleUser, Content: "hello"}},
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if msg.Role != chat.RoleAssistant || msg.Content != "Hi" {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client := apiclient.NewClient(srv.URL, 0)
	_, err := client.Complete(context.Background(), chat.CompletionRequest{
		Messages: []chat.Message{{Role: chat.RoleUser, Content: "hello"}},
	})
	if err == nil || !strings.Contains(err.Error(), "no response") {
		t.Fatalf("expected no-response error, got %v", err)
	}
}

func TestCompleteErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to get chat completion","details":{"error":"boom"}}`))
	}))
	defer srv.Close()

	client := apiclient.NewClient(srv.URL, 0)
	_, err := client.Complete(context.Background(), chat.CompletionRequest{
		Messages: []chat.Message{{Role: chat.RoleUser, Content: "hello"}},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected upstream detail in error, got %v", err)
	}
	if !strings.Contains(err.Error(), "500") {
		t.Fatalf("expected status in error, got %v", err)
	}
}
