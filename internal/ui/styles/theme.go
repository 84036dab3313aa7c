// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for one light/dark mode.
type Theme struct {
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION AND HEADER
	// ==========================================================================

	App          lipgloss.Style
	Header       lipgloss.Style
	HeaderTitle  lipgloss.Style
	HeaderButton lipgloss.Style
	HeaderHint   lipgloss.Style
	ThemeToggle  lipgloss.Style

	// ==========================================================================
	// MESSAGES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	UserLabel       lipgloss.Style
	AssistantLabel  lipgloss.Style
	Timestamp       lipgloss.Style
	Searching       lipgloss.Style
	StreamCursor    lipgloss.Style
	Spinner         lipgloss.Style

	// ==========================================================================
	// INPUT
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPlaceholder lipgloss.Style
	InputText        lipgloss.Style
	Help             lipgloss.Style

	// ==========================================================================
	// SETTINGS DIALOG
	// ==========================================================================

	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style
	DialogText  lipgloss.Style
	DialogKey   lipgloss.Style
	VaultOn     lipgloss.Style
	VaultOff    lipgloss.Style

	// ==========================================================================
	// TOASTS
	// ==========================================================================

	Toast            lipgloss.Style
	ToastTitle       lipgloss.Style
	ToastDescription lipgloss.Style
	ToastSuccess     lipgloss.Color
	ToastInfo        lipgloss.Color
	ToastError       lipgloss.Color
}

// NewTheme creates a theme for the given mode.
func NewTheme(isDark bool) *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// c resolves a color pair for this theme.
func (t *Theme) c(pair lipgloss.AdaptiveColor) lipgloss.Color {
	return Pick(pair, t.IsDark)
}

func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle().
		Foreground(t.c(TextPrimary))

	// Header
	t.Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(t.c(Overlay)).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.c(Indigo))

	t.HeaderButton = lipgloss.NewStyle().
		Foreground(t.c(TextSecondary)).
		Bold(true)

	t.HeaderHint = lipgloss.NewStyle().
		Foreground(t.c(TextMuted))

	moon, sun := t.c(Moon), t.c(Sun)
	toggle := lipgloss.NewStyle().Bold(true)
	if t.IsDark {
		t.ThemeToggle = toggle.Foreground(moon)
	} else {
		t.ThemeToggle = toggle.Foreground(sun)
	}

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(t.c(UserBubbleFg)).
		Background(t.c(UserBubbleBg)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.c(UserBubbleBorder)).
		Padding(0, 1)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(t.c(AssistantBubbleFg)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.c(AssistantBubbleBorder)).
		Padding(0, 1)

	t.UserLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.c(Indigo))

	t.AssistantLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.c(Teal))

	t.Timestamp = lipgloss.NewStyle().
		Foreground(t.c(TextMuted))

	t.Searching = lipgloss.NewStyle().
		Foreground(t.c(Teal)).
		Italic(true)

	t.StreamCursor = lipgloss.NewStyle().
		Foreground(t.c(Indigo)).
		Bold(true)

	t.Spinner = lipgloss.NewStyle().
		Foreground(t.c(Indigo))

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.c(Indigo)).
		Padding(0, 1)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(t.c(TextMuted)).
		Italic(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(t.c(TextPrimary))

	t.Help = lipgloss.NewStyle().
		Foreground(t.c(TextMuted)).
		Padding(0, 1)

	// Settings dialog
	t.Dialog = lipgloss.NewStyle().
		Background(t.c(SurfaceDim)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.c(Indigo)).
		Padding(1, 3)

	t.DialogTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.c(TextPrimary)).
		MarginBottom(1)

	t.DialogText = lipgloss.NewStyle().
		Foreground(t.c(TextSecondary))

	t.DialogKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.c(Indigo))

	t.VaultOn = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.c(Success))

	t.VaultOff = lipgloss.NewStyle().
		Foreground(t.c(TextMuted))

	// Toasts
	t.Toast = lipgloss.NewStyle().
		Background(t.c(SurfaceDim)).
		BorderStyle(lipgloss.RoundedBorder()).
		Padding(0, 2)

	t.ToastTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.c(TextPrimary))

	t.ToastDescription = lipgloss.NewStyle().
		Foreground(t.c(TextSecondary))

	t.ToastSuccess = t.c(Success)
	t.ToastInfo = t.c(Info)
	t.ToastError = t.c(Danger)
}

// GlamourStyle names the glamour standard style matching the theme.
func (t *Theme) GlamourStyle() string {
	if t.IsDark {
		return glamourstyles.DarkStyle
	}
	return glamourstyles.LightStyle
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns, header hints hidden
	LayoutWide
)
