// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/praburajasekaran/zenith-note/internal/ui/components"
)

// Layout constants.
const (
	headerHeight    = 2 // title row and bottom border
	inputBorderRows = 2
	inputChromeCols = 6 // border, padding and the send glyph
	helpHeight      = 1

	sendGlyph    = "➤"
	thinkingText = "Zenith is thinking..."
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the chat screen.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var screen string
	if m.state.SettingsOpen() {
		screen = components.SettingsDialog{
			Connected: m.state.VaultConnected(),
			Width:     m.width,
			Height:    m.height,
		}.View(m.theme)
	} else {
		screen = lipgloss.JoinVertical(lipgloss.Left,
			m.header.View(m.theme),
			m.viewport.View(),
			m.renderInput(),
			m.renderHelp(),
		)
	}

	if m.toasts.HasToasts() {
		stack := components.RenderToastStack(m.theme, m.toasts.Toasts(), m.width)
		screen = overlayTop(screen, stack)
	}
	return screen
}

func (m Model) renderInput() string {
	send := m.theme.InputPlaceholder.Render(sendGlyph)
	if m.state.CanSend() {
		send = m.theme.HeaderButton.Render(sendGlyph)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Bottom, m.input.View(), " ", send)
	// Width covers padding; the border adds one column on each side.
	return m.theme.InputContainer.Width(m.width - 2).Render(row)
}

func (m Model) renderHelp() string {
	if m.state.Loading() {
		return m.theme.Help.Render(m.spinner.View() + " " + thinkingText)
	}

	bindings := m.keys.ShortHelp()
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return m.theme.Help.Render(strings.Join(parts, " • "))
}

// overlayTop replaces the first lines of base with overlay.
func overlayTop(base, overlay string) string {
	baseLines := strings.Split(base, "\n")
	for i, line := range strings.Split(overlay, "\n") {
		if i >= len(baseLines) {
			baseLines = append(baseLines, line)
			continue
		}
		baseLines[i] = line
	}
	return strings.Join(baseLines, "\n")
}
