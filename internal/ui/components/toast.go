// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/praburajasekaran/zenith-note/internal/ui/styles"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// ToastKind selects the color and indicator of a toast.
type ToastKind int

const (
	// ToastInfo is a neutral notice (blue)
	ToastInfo ToastKind = iota
	// ToastSuccess confirms an action (green)
	ToastSuccess
	// ToastError reports a failure (red)
	ToastError
)

// DefaultToastDuration is how long success and info toasts stay visible.
const DefaultToastDuration = 4 * time.Second

// ErrorToastDuration is longer so errors can be read.
const ErrorToastDuration = 8 * time.Second

// MaxToasts is the number of toasts shown at once.
const MaxToasts = 3

// Toast is a transient notification shown at the top of the screen.
type Toast struct {
	ID          int
	Title       string
	Description string
	Kind        ToastKind
	CreatedAt   time.Time
	Duration    time.Duration
}

// NewToast creates a toast with the default duration for kind.
func NewToast(kind ToastKind, title, description string) Toast {
	d := DefaultToastDuration
	if kind == ToastError {
		d = ErrorToastDuration
	}
	return Toast{
		Title:       title,
		Description: description,
		Kind:        kind,
		CreatedAt:   time.Now(),
		Duration:    d,
	}
}

// ExpiredAt reports whether the toast should be gone at now.
func (t Toast) ExpiredAt(now time.Time) bool {
	return now.Sub(t.CreatedAt) >= t.Duration
}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// ToastManager keeps the visible toasts, newest first.
type ToastManager struct {
	toasts []Toast
	nextID int
	mutex  sync.Mutex
}

// NewToastManager creates an empty manager.
func NewToastManager() *ToastManager {
	return &ToastManager{nextID: 1}
}

// Add shows toast and returns its id. The oldest toast is dropped beyond
// MaxToasts.
func (m *ToastManager) Add(toast Toast) int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	toast.ID = m.nextID
	m.nextID++

	m.toasts = append([]Toast{toast}, m.toasts...)
	if len(m.toasts) > MaxToasts {
		m.toasts = m.toasts[:MaxToasts]
	}
	return toast.ID
}

// Dismiss removes a toast by id.
func (m *ToastManager) Dismiss(id int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for i, toast := range m.toasts {
		if toast.ID == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}

// Tick drops toasts expired at now and reports whether any remain.
func (m *ToastManager) Tick(now time.Time) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	active := m.toasts[:0]
	for _, toast := range m.toasts {
		if !toast.ExpiredAt(now) {
			active = append(active, toast)
		}
	}
	m.toasts = active
	return len(m.toasts) > 0
}

// Toasts returns a copy of the visible toasts, newest first.
func (m *ToastManager) Toasts() []Toast {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	result := make([]Toast, len(m.toasts))
	copy(result, m.toasts)
	return result
}

// HasToasts reports whether any toast is visible.
func (m *ToastManager) HasToasts() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.toasts) > 0
}

// =============================================================================
// TOAST MESSAGES
// =============================================================================

// ToastTickMsg is sent periodically while toasts are visible.
type ToastTickMsg struct {
	Time time.Time
}

// ToastTickCmd schedules the next toast tick.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return ToastTickMsg{Time: t}
	})
}

// =============================================================================
// TOAST RENDERING
// =============================================================================

// RenderToast renders a single toast no wider than width.
func RenderToast(theme *styles.Theme, toast Toast, width int) string {
	maxWidth := 56
	if width > 0 && width-4 < maxWidth {
		maxWidth = width - 4
	}
	if maxWidth < 24 {
		maxWidth = 24
	}

	var color lipgloss.Color
	var icon string
	switch toast.Kind {
	case ToastSuccess:
		color, icon = theme.ToastSuccess, styles.StatusIndicators.Success
	case ToastError:
		color, icon = theme.ToastError, styles.StatusIndicators.Error
	default:
		color, icon = theme.ToastInfo, styles.StatusIndicators.Info
	}

	// Border (2) and padding (4) come out of maxWidth.
	textWidth := maxWidth - 6
	iconStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	content := iconStyle.Render(icon+" ") + theme.ToastTitle.Render(toast.Title)
	if toast.Description != "" {
		content += "\n" + theme.ToastDescription.Width(textWidth).Render(toast.Description)
	}

	return theme.Toast.
		BorderForeground(color).
		MaxWidth(maxWidth).
		Render(content)
}

// RenderToastStack renders toasts centred in width, newest on top.
func RenderToastStack(theme *styles.Theme, toasts []Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, toast := range toasts {
		rendered = append(rendered, RenderToast(theme, toast, width))
	}
	stack := lipgloss.JoinVertical(lipgloss.Center, rendered...)

	if width > 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, stack)
	}
	return stack
}
