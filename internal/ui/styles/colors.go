// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// ACCENT COLORS
// =============================================================================

// Indigo - Brand color, title, focus ring
var Indigo = lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#818CF8"}

// Teal - Vault indicator, knowledge-base search
var Teal = lipgloss.AdaptiveColor{Light: "#0D9488", Dark: "#2DD4BF"}

// Sun - Theme toggle glyph in light mode
var Sun = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// Moon - Theme toggle glyph in dark mode
var Moon = lipgloss.AdaptiveColor{Light: "#6366F1", Dark: "#C7D2FE"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

var Success = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#22C55E"}
var Info = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}
var Danger = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#111827"}

// SurfaceDim - Header, dialogs, toasts
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#1F2937"}

// Overlay - Borders and separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"}

// =============================================================================
// TEXT COLORS
// =============================================================================

var TextPrimary = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F9FAFB"}
var TextSecondary = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#D1D5DB"}
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}

// =============================================================================
// MESSAGE BUBBLE COLORS
// =============================================================================

// User message bubble - Indigo tones
var UserBubbleBg = lipgloss.AdaptiveColor{Light: "#E0E7FF", Dark: "#312E81"}
var UserBubbleFg = lipgloss.AdaptiveColor{Light: "#1E1B4B", Dark: "#E0E7FF"}
var UserBubbleBorder = lipgloss.AdaptiveColor{Light: "#818CF8", Dark: "#6366F1"}

// Assistant message bubble - Neutral grey tones
var AssistantBubbleBg = lipgloss.AdaptiveColor{Light: "#F9FAFB", Dark: "#1F2937"}
var AssistantBubbleFg = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#F3F4F6"}
var AssistantBubbleBorder = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}

// =============================================================================
// STATUS INDICATORS
// =============================================================================

// StatusIndicatorSet contains text indicators shown next to colored status
// so the meaning survives without color.
type StatusIndicatorSet struct {
	Success string
	Error   string
	Info    string
}

// StatusIndicators are ASCII-only for maximum terminal compatibility.
var StatusIndicators = StatusIndicatorSet{
	Success: "[OK]",
	Error:   "[X]",
	Info:    "[i]",
}

// Pick returns the side of c matching dark.
func Pick(c lipgloss.AdaptiveColor, dark bool) lipgloss.Color {
	if dark {
		return lipgloss.Color(c.Dark)
	}
	return lipgloss.Color(c.Light)
}
