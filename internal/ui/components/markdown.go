// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Markdown renders assistant replies with glamour. Rendered output is cached
// per content, since settled messages are redrawn on every frame.
type Markdown struct {
	renderer *glamour.TermRenderer
	style    string
	width    int
	cache    map[string]string
}

// NewMarkdown creates a renderer for a glamour standard style ("dark" or
// "light") wrapping at width columns.
func NewMarkdown(style string, width int) (*Markdown, error) {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
		// Match the profile lipgloss detected for the rest of the screen.
		glamour.WithColorProfile(lipgloss.ColorProfile()),
	)
	if err != nil {
		return nil, err
	}
	return &Markdown{
		renderer: r,
		style:    style,
		width:    width,
		cache:    make(map[string]string),
	}, nil
}

// Style returns the glamour style name.
func (m *Markdown) Style() string { return m.style }

// Width returns the wrap width.
func (m *Markdown) Width() int { return m.width }

// Render renders content. On error the content is returned unchanged.
func (m *Markdown) Render(content string) string {
	if out, ok := m.cache[content]; ok {
		return out
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	// glamour pads documents with blank lines and a two column margin.
	out = strings.Trim(out, "\n")
	m.cache[content] = out
	return out
}
