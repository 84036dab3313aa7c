// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import "github.com/praburajasekaran/zenith-note/internal/ui/styles"

// Theme toggle glyphs. The glyph shows the active mode.
const (
	GlyphMoon = "☾"
	GlyphSun  = "☀"
)

// ThemeSource is the theme collaborator the toggle reads and flips.
type ThemeSource interface {
	IsDark() bool
	Toggle() bool
}

// ThemeToggle reflects and flips the light/dark preference. It keeps no
// state of its own.
type ThemeToggle struct {
	source ThemeSource
}

// NewThemeToggle creates a toggle over source.
func NewThemeToggle(source ThemeSource) *ThemeToggle {
	return &ThemeToggle{source: source}
}

// Glyph returns the moon in dark mode and the sun in light mode.
func (t *ThemeToggle) Glyph() string {
	if t.source.IsDark() {
		return GlyphMoon
	}
	return GlyphSun
}

// Toggle flips the preference and returns the new dark flag.
func (t *ThemeToggle) Toggle() bool {
	return t.source.Toggle()
}

// View renders the glyph.
func (t *ThemeToggle) View(theme *styles.Theme) string {
	return theme.ThemeToggle.Render(t.Glyph())
}
