// Package service holds the conversation controller: every lifecycle
// transition and message dispatch goes through ConversationService.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/eagleai/eaglechat/internal/domain/chat"
	"github.com/eagleai/eaglechat/internal/port/llm"
	"github.com/eagleai/eaglechat/internal/port/store"
)

// samplingTemperature is sent with every completion request.
const samplingTemperature = 0.7

// ConversationService owns the in-memory conversation state and mediates all
// mutations. The state is explicit (no package-level globals): a conversation
// list, the active id, and a per-conversation in-flight flag that allows at
// most one outstanding send per conversation.
type ConversationService struct {
	store        store.Store
	llm          llm.Client
	defaultModel string

	mu            sync.Mutex
	conversations []*chat.Conversation
	activeID      string
	inFlight      map[string]bool
}

// NewConversationService creates a ConversationService. defaultModel is the
// fallback used when a send happens with no selector value and when a
// persisted conversation is missing its lock.
func NewConversationService(st store.Store, client llm.Client, defaultModel string) *ConversationService {
	if defaultModel == "" {
		defaultModel = "supermind-agent-v1"
	}
	return &ConversationService{
		store:        st,
		llm:          client,
		defaultModel: defaultModel,
		inFlight:     make(map[string]bool),
	}
}

// Load hydrates the service from the store. An empty persisted collection
// yields one fresh conversation; a dangling active id falls back to the
// first conversation.
func (s *ConversationService) Load(ctx context.Context) error {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load conversations: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.conversations = snap.Conversations
	s.activeID = snap.ActiveID

	if s.findLocked(s.activeID) == nil {
		s.activeID = ""
		if len(s.conversations) > 0 {
			s.activeID = s.conversations[0].ID
		}
	}

	if len(s.conversations) == 0 {
		conv := chat.NewConversation()
		s.conversations = []*chat.Conversation{conv}
		s.activeID = conv.ID
	}

	s.persistLocked(ctx)
	return nil
}

// NewConversation inserts a fresh empty conversation at the front of the
// collection and makes it active.
func (s *ConversationService) NewConversation(ctx context.Context) *chat.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := chat.NewConversation()
	s.conversations = append([]*chat.Conversation{conv}, s.conversations...)
	s.activeID = conv.ID
	s.persistLocked(ctx)
	return conv
}

// Switch makes the given conversation active.
func (s *ConversationService) Switch(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findLocked(id) == nil {
		return chat.ErrNotFound
	}
	s.activeID = id
	s.persistLocked(ctx)
	return nil
}

// Send appends a user message to the active conversation, locks the model on
// the first send, and issues a completion request carrying the full history.
// The returned message is the appended assistant reply; upstream failures are
// converted into an assistant-role error message so the transcript stays
// coherent, never into a returned error.
//
// Empty input (after trimming) returns chat.ErrEmptyMessage with no state
// change and no request. A second Send while one is outstanding on the same
// conversation returns chat.ErrBusy.
func (s *ConversationService) Send(ctx context.Context, text, selected string) (*chat.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, chat.ErrEmptyMessage
	}

	s.mu.Lock()

	conv := s.findLocked(s.activeID)
	if conv == nil {
		// No active conversation: create one and send against it.
		conv = chat.NewConversation()
		s.conversations = append([]*chat.Conversation{conv}, s.conversations...)
		s.activeID = conv.ID
	}

	if s.inFlight[conv.ID] {
		s.mu.Unlock()
		return nil, chat.ErrBusy
	}

	// Model resolution: a locked conversation keeps its model no matter what
	// the selector says. An empty one locks to the selector value, or the
	// default when no selector value exists. A conversation with messages
	// but no lock is corrupted state; it recovers onto the default.
	var model string
	switch {
	case conv.Model.IsSet():
		model = conv.Model.ID()
	case conv.Empty():
		model = selected
		if model == "" {
			model = s.defaultModel
		}
		conv.Model = chat.LockedModel(model)
	default:
		model = s.defaultModel
		conv.Model = chat.LockedModel(model)
	}

	conv.Append(chat.RoleUser, text)
	if len(conv.Messages) == 1 {
		conv.Title = chat.TitleFrom(text)
	}

	history := make([]chat.Message, len(conv.Messages))
	copy(history, conv.Messages)

	// Title and lock are persisted before the request goes out: a failed
	// first turn still consumes the first-message slot.
	s.inFlight[conv.ID] = true
	s.persistLocked(ctx)
	s.mu.Unlock()

	temp := samplingTemperature
	reply, err := s.llm.Complete(ctx, chat.CompletionRequest{
		Model:       model,
		Messages:    history,
		Temperature: &temp,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, conv.ID)

	var msg chat.Message
	if err != nil {
		slog.Error("chat completion failed", "conversation_id", conv.ID, "model", model, "error", err)
		msg = conv.Append(chat.RoleAssistant, fmt.Sprintf("Error: %v. Please try again.", err))
	} else {
		msg = conv.Append(chat.RoleAssistant, reply.Content)
	}

	s.persistLocked(ctx)
	return &msg, nil
}

// Conversations returns the collection, most recent first.
func (s *ConversationService) Conversations() []*chat.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*chat.Conversation, len(s.conversations))
	copy(out, s.conversations)
	return out
}

// Active returns the active conversation, or nil when none exists.
func (s *ConversationService) Active() *chat.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(s.activeID)
}

// InFlight reports whether the conversation has an outstanding send. This is
// the headless equivalent of the disabled send control.
func (s *ConversationService) InFlight(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight[id]
}

// findLocked returns the conversation with the given id. Callers hold s.mu.
func (s *ConversationService) findLocked(id string) *chat.Conversation {
	if id == "" {
		return nil
	}
	for _, c := range s.conversations {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// persistLocked flushes the snapshot. Durability is best effort: failures
// are logged, never propagated. Callers hold s.mu.
func (s *ConversationService) persistLocked(ctx context.Context) {
	snap := store.Snapshot{
		Conversations: s.conversations,
		ActiveID:      s.activeID,
	}
	if err := s.store.Save(ctx, snap); err != nil {
		slog.Warn("persist conversations failed", "error", err)
	}
}
