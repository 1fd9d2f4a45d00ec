// Package render formats assistant markdown for terminal display.
package render

import (
	"github.com/charmbracelet/glamour"
)

// Markdown wraps a glamour renderer with a plain-text fallback.
type Markdown struct {
	renderer *glamour.TermRenderer
}

// NewMarkdown builds a terminal markdown renderer with word wrapping.
// When the renderer cannot be initialized, Render falls back to raw text.
func NewMarkdown(wrap int) *Markdown {
	if wrap <= 0 {
		wrap = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return &Markdown{}
	}
	return &Markdown{renderer: r}
}

// Render returns the styled form of content, or the original content
// unchanged when rendering is unavailable or fails.
func (m *Markdown) Render(content string) string {
	if m.renderer == nil {
		return content
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return out
}
