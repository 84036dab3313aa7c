// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/praburajasekaran/zenith-note/internal/model"
	"github.com/praburajasekaran/zenith-note/internal/ui/styles"
)

// StreamCursor trails the provisional reply while it streams.
const StreamCursor = "▍"

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders one message. User messages sit on the right,
// assistant messages on the left.
type MessageBubble struct {
	Message   model.Message
	Width     int
	Streaming bool   // provisional reply, rendered plain with a cursor
	Searching string // indicator shown under a user message, if any
}

// View renders the bubble. md may be nil, in which case assistant content
// is rendered as plain text.
func (b MessageBubble) View(theme *styles.Theme, md *Markdown) string {
	if b.Message.IsUser() {
		return b.renderUser(theme)
	}
	return b.renderAssistant(theme, md)
}

// maxBubbleWidth leaves a quarter of the row free so sides stay distinct.
func (b MessageBubble) maxBubbleWidth() int {
	w := b.Width * 3 / 4
	if w < 20 {
		w = 20
	}
	return w
}

func (b MessageBubble) renderUser(theme *styles.Theme) string {
	content := b.Message.Content
	if content == "" {
		content = "..."
	}

	// Border (2) and padding (2) surround the text.
	textWidth := b.maxBubbleWidth() - 4
	if w := lipgloss.Width(content); w < textWidth {
		textWidth = w
	}
	bubble := theme.UserBubble.Width(textWidth + 2).Render(content)

	header := b.renderTimestamp(theme) + " " + theme.UserLabel.Render(model.RoleUser.DisplayName())
	lines := []string{header, bubble}
	if b.Searching != "" {
		lines = append(lines, theme.Searching.Render(b.Searching))
	}

	block := lipgloss.JoinVertical(lipgloss.Right, lines...)
	return lipgloss.PlaceHorizontal(b.Width, lipgloss.Right, block)
}

func (b MessageBubble) renderAssistant(theme *styles.Theme, md *Markdown) string {
	var body string
	switch {
	case b.Streaming:
		body = wrap(b.Message.Content, b.maxBubbleWidth()-4) + theme.StreamCursor.Render(StreamCursor)
	case md != nil:
		body = md.Render(b.Message.Content)
	default:
		body = wrap(b.Message.Content, b.maxBubbleWidth()-4)
	}
	if strings.TrimSpace(body) == "" {
		body = "..."
	}

	bubble := theme.AssistantBubble.Render(body)

	header := theme.AssistantLabel.Render(model.RoleAssistant.DisplayName())
	if !b.Streaming {
		header += " " + b.renderTimestamp(theme)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, bubble)
}

// renderTimestamp renders "3:04 PM" for today and "Jan 2, 3:04 PM" otherwise.
func (b MessageBubble) renderTimestamp(theme *styles.Theme) string {
	if b.Message.Timestamp == 0 {
		return ""
	}
	ts := b.Message.Time()
	now := time.Now()

	layout := "3:04 PM"
	if ts.Year() != now.Year() || ts.YearDay() != now.YearDay() {
		layout = "Jan 2, 3:04 PM"
	}
	return theme.Timestamp.Render(ts.Format(layout))
}

// wrap soft-wraps plain text to width while keeping explicit newlines.
func wrap(text string, width int) string {
	if width < 10 {
		width = 10
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}

// =============================================================================
// MESSAGE LIST COMPONENT
// =============================================================================

// MessageList renders the transcript followed by the provisional reply.
type MessageList struct {
	Messages  []model.Message
	Streaming string
	Searching string // indicator under each user message while non-empty
	Width     int
}

// View renders all messages separated by a blank line.
func (ml MessageList) View(theme *styles.Theme, md *Markdown) string {
	blocks := make([]string, 0, len(ml.Messages)+1)
	for _, msg := range ml.Messages {
		bubble := MessageBubble{Message: msg, Width: ml.Width}
		if msg.IsUser() {
			bubble.Searching = ml.Searching
		}
		blocks = append(blocks, bubble.View(theme, md))
	}

	if ml.Streaming != "" {
		blocks = append(blocks, MessageBubble{
			Message:   model.Message{Role: model.RoleAssistant, Content: ml.Streaming},
			Width:     ml.Width,
			Streaming: true,
		}.View(theme, md))
	}

	return strings.Join(blocks, "\n\n")
}
