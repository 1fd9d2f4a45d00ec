// Package llm defines the completion client port (interface).
package llm

import (
	"context"

	"github.com/eagleai/eaglechat/internal/domain/chat"
)

// Client is the port interface the conversation controller uses to reach a
// completion backend. In production it is the proxy's HTTP API; tests supply
// a fake.
type Client interface {
	// Models lists the selectable models.
	Models(ctx context.Context) ([]chat.ModelInfo, error)
	// Complete sends the full message history and returns the assistant
	// reply. An empty or malformed completion body is an error.
	Complete(ctx context.Context, req chat.CompletionRequest) (chat.Message, error)
}
