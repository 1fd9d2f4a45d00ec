// Package pebble implements the conversation store port on a local Pebble
// key-value database. The whole client state lives under two keys: the
// serialized conversation collection and the active conversation id.
package pebble

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"

	"github.com/eagleai/eaglechat/internal/domain/chat"
	"github.com/eagleai/eaglechat/internal/port/store"
)

var (
	keyConversations = []byte("conversations")
	keyActiveID      = []byte("active_conversation")
)

// Store persists the conversation snapshot in a Pebble database.
type Store struct {
	db *pebble.DB
}

var _ store.Store = (*Store)(nil)

// Open opens (or creates) the Pebble database at the given path.
func Open(path string) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble at %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reconstructs the snapshot. Missing keys yield an empty snapshot.
// Conversations persisted without a model field come back with the model
// unset; the ModelRef zero value makes that the natural decode result.
func (s *Store) Load(_ context.Context) (store.Snapshot, error) {
	var snap store.Snapshot

	raw, err := s.get(keyConversations)
	if err != nil {
		return store.Snapshot{}, err
	}
	if raw != nil {
		var convs []*chat.Conversation
		if err := json.Unmarshal(raw, &convs); err != nil {
			return store.Snapshot{}, fmt.Errorf("unmarshal conversations: %w", err)
		}
		snap.Conversations = convs
	}

	active, err := s.get(keyActiveID)
	if err != nil {
		return store.Snapshot{}, err
	}
	snap.ActiveID = string(active)

	return snap, nil
}

// Save serializes the full snapshot. Both keys are written synchronously.
func (s *Store) Save(_ context.Context, snap store.Snapshot) error {
	convs := snap.Conversations
	if convs == nil {
		convs = []*chat.Conversation{}
	}
	data, err := json.Marshal(convs)
	if err != nil {
		return fmt.Errorf("marshal conversations: %w", err)
	}

	if err := s.db.Set(keyConversations, data, pebble.Sync); err != nil {
		return fmt.Errorf("write conversations: %w", err)
	}
	if err := s.db.Set(keyActiveID, []byte(snap.ActiveID), pebble.Sync); err != nil {
		return fmt.Errorf("write active id: %w", err)
	}
	return nil
}

// get reads a key, returning nil with no error when the key is absent.
func (s *Store) get(key []byte) ([]byte, error) {
	val, closer, err := s.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	defer func() { _ = closer.Close() }()

	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}
