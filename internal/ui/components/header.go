// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/praburajasekaran/zenith-note/internal/ui/styles"
	"github.com/praburajasekaran/zenith-note/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// DefaultTitle is the application title shown in the header.
const DefaultTitle = "Zenith Note"

// Header is the title bar: new chat on the left, the title in the middle,
// settings and the theme toggle on the right.
type Header struct {
	Title  string
	Width  int
	toggle *ThemeToggle
}

// NewHeader creates a header using toggle for the theme glyph.
func NewHeader(toggle *ThemeToggle) *Header {
	return &Header{
		Title:  DefaultTitle,
		Width:  80,
		toggle: toggle,
	}
}

// SetWidth updates the header width
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// View renders the header.
func (h *Header) View(theme *styles.Theme) string {
	width := h.Width
	if width < 24 {
		width = 24
	}
	// Header padding takes one column on each side.
	inner := width - 2

	narrow := width < 60
	hint := func(s string) string {
		if narrow {
			return ""
		}
		return " " + theme.HeaderHint.Render(s)
	}

	left := theme.HeaderButton.Render("+") + hint("^N new")
	right := theme.HeaderButton.Render("⚙") + hint("^S") + "  " +
		h.toggle.View(theme) + hint("^T")
	title := theme.HeaderTitle.Render(util.TruncateWidth(h.Title, inner/2))

	lw, rw, tw := lipgloss.Width(left), lipgloss.Width(right), lipgloss.Width(title)

	// Keep the title centred on the full width, as long as it fits.
	titleStart := (inner - tw) / 2
	if titleStart < lw+1 {
		titleStart = lw + 1
	}
	gapRight := inner - titleStart - tw - rw
	if gapRight < 1 {
		gapRight = 1
	}

	line := left + strings.Repeat(" ", titleStart-lw) + title + strings.Repeat(" ", gapRight) + right
	return theme.Header.Width(width).Render(line)
}
