// Package chat holds the conversation domain model: conversations, messages
// and the model-lock state machine shared by the proxy and the client.
package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message roles. No system role originates client-side.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DefaultTitle is the title of a conversation before any message exists.
const DefaultTitle = "New Chat"

// titleMaxRunes bounds the derived conversation title.
const titleMaxRunes = 50

// Message is a single entry in a conversation transcript. Content is plain
// text for user messages and markdown for assistant messages.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation is a chat thread. Model is unset exactly while Messages is
// empty; the first send locks it for the lifetime of the conversation.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Model     ModelRef  `json:"model"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
}

// NewConversation returns an empty conversation with a fresh time-sortable ID.
func NewConversation() *Conversation {
	return &Conversation{
		ID:        newConversationID(),
		Title:     DefaultTitle,
		Messages:  []Message{},
		CreatedAt: time.Now().UTC(),
	}
}

// newConversationID returns a UUIDv7, which sorts by creation time.
func newConversationID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the entropy source does; fall back to v4.
		return uuid.NewString()
	}
	return id.String()
}

// Empty reports whether the conversation has no messages yet.
func (c *Conversation) Empty() bool {
	return len(c.Messages) == 0
}

// Append adds a message to the end of the transcript.
func (c *Conversation) Append(role, content string) Message {
	m := Message{Role: role, Content: content}
	c.Messages = append(c.Messages, m)
	return m
}

// TitleFrom derives a conversation title from the first user message:
// the first 50 characters, rune-safe.
func TitleFrom(text string) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) > titleMaxRunes {
		runes = runes[:titleMaxRunes]
	}
	return string(runes)
}
