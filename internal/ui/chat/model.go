// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/praburajasekaran/zenith-note/internal/config"
	"github.com/praburajasekaran/zenith-note/internal/session"
	"github.com/praburajasekaran/zenith-note/internal/ui/components"
	"github.com/praburajasekaran/zenith-note/internal/ui/styles"
)

// ThemeSource is the theme collaborator: the toggle's source plus change
// notifications. *theme.Manager implements it.
type ThemeSource interface {
	components.ThemeSource
	Subscribe(fn func(dark bool)) (unsubscribe func())
}

// Options are the explicit dependencies of the chat screen.
type Options struct {
	Service session.Service
	Theme   ThemeSource
	Logger  *zap.Logger // nil discards diagnostics
	Config  *config.Config
	// Context bounds collaborator calls; nil means context.Background.
	Context context.Context
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	ctx    context.Context
	svc    session.Service
	state  *session.State
	logger *zap.Logger

	// Theme
	themeSrc    ThemeSource
	theme       *styles.Theme
	themeCh     chan bool
	unsubscribe func()
	md          *components.Markdown

	// Components
	keys     KeyMap
	header   *components.Header
	toggle   *components.ThemeToggle
	toasts   *components.ToastManager
	input    textarea.Model
	viewport viewport.Model
	spinner  spinner.Model

	// In-flight send, nil when idle
	stream *stream

	maxInputLines int
	width         int
	height        int
	ready         bool
	toastTicking  bool
}

// New creates the chat model. History loading starts on Init.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	theme := styles.NewTheme(opts.Theme.IsDark())

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	sp.Style = theme.Spinner

	toggle := components.NewThemeToggle(opts.Theme)

	m := Model{
		ctx:           ctx,
		svc:           opts.Service,
		state:         session.NewState(logger),
		logger:        logger,
		themeSrc:      opts.Theme,
		theme:         theme,
		themeCh:       make(chan bool, 1),
		keys:          DefaultKeyMap(),
		header:        components.NewHeader(toggle),
		toggle:        toggle,
		toasts:        components.NewToastManager(),
		input:         newInput(theme),
		viewport:      viewport.New(80, 20),
		spinner:       sp,
		maxInputLines: cfg.UI.MaxInputLines,
	}
	if m.maxInputLines < 1 {
		m.maxInputLines = 1
	}

	ch := m.themeCh
	m.unsubscribe = opts.Theme.Subscribe(func(dark bool) {
		// Never block the notifier; the handler re-reads IsDark.
		select {
		case ch <- dark:
		default:
		}
	})

	m.state.BeginLoad()
	m.input.Blur()
	m.input.Placeholder = m.state.Placeholder()
	return m
}

// Init starts the history fetch and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadHistoryCmd(m.ctx, m.svc),
		m.spinner.Tick,
		textarea.Blink,
		waitForTheme(m.themeCh),
	)
}

// State exposes the session state for inspection.
func (m Model) State() *session.State {
	return m.state
}

// Toasts returns the visible toasts, newest first.
func (m Model) Toasts() []components.Toast {
	return m.toasts.Toasts()
}

// IsDark reports the theme the screen is currently rendered with.
func (m Model) IsDark() bool {
	return m.theme.IsDark
}

// Close drops the theme subscription.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}
