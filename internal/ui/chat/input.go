// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"

	"github.com/praburajasekaran/zenith-note/internal/ui/styles"
	"github.com/praburajasekaran/zenith-note/internal/util"
)

// MaxInputLength caps the input in runes.
const MaxInputLength = 8000

// =============================================================================
// INPUT SETUP
// =============================================================================

func newInput(theme *styles.Theme) textarea.Model {
	ta := textarea.New()
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = MaxInputLength
	ta.SetHeight(1)

	// Enter sends; only the explicit bindings break lines.
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))

	styleInput(&ta, theme)
	return ta
}

func styleInput(ta *textarea.Model, theme *styles.Theme) {
	focused := textarea.Style{
		Text:        theme.InputText,
		Placeholder: theme.InputPlaceholder,
		CursorLine:  theme.InputText,
	}
	ta.FocusedStyle = focused
	ta.BlurredStyle = textarea.Style{
		Text:        theme.InputPlaceholder,
		Placeholder: theme.InputPlaceholder,
		CursorLine:  theme.InputPlaceholder,
	}
}

// =============================================================================
// AUTO-GROW
// =============================================================================

// inputLines returns how many rows value occupies at width, soft wraps
// included.
func inputLines(value string, width int) int {
	if width < 1 {
		width = 1
	}
	lines := 0
	for _, line := range strings.Split(value, "\n") {
		w := util.StringWidth(line)
		// The cursor needs a cell past the last character.
		lines += w/width + 1
	}
	return lines
}

// growInput sizes the input to its content, between one line and max.
func (m *Model) growInput() {
	h := inputLines(m.input.Value(), m.input.Width())
	if h > m.maxInputLines {
		h = m.maxInputLines
	}
	if h < 1 {
		h = 1
	}
	if h != m.input.Height() {
		m.input.SetHeight(h)
		m.layout()
	}
}
