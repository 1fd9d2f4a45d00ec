// Package store defines the conversation persistence port (interface).
package store

import (
	"context"

	"github.com/eagleai/eaglechat/internal/domain/chat"
)

// Snapshot is the full persisted client state: every conversation plus the
// id of the active one. It is written whole after each mutation; there are
// no partial writes and no versioning.
type Snapshot struct {
	Conversations []*chat.Conversation
	ActiveID      string
}

// Store is the port interface for durable conversation state.
type Store interface {
	// Load reconstructs the snapshot. Missing persisted state yields an
	// empty snapshot, not an error.
	Load(ctx context.Context) (Snapshot, error)
	// Save serializes the full snapshot. Durability is best effort.
	Save(ctx context.Context, snap Snapshot) error
	Close() error
}
