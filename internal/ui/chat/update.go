// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/praburajasekaran/zenith-note/internal/session"
	"github.com/praburajasekaran/zenith-note/internal/ui/components"
	"github.com/praburajasekaran/zenith-note/internal/ui/styles"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and returns the updated model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case HistoryLoadedMsg:
		note := m.state.FinishLoad(msg.Messages, msg.Err)
		if note != nil {
			cmds = append(cmds, m.notify(*note))
		}
		cmds = append(cmds, m.enableInput())
		m.refresh()
		return m, tea.Batch(cmds...)

	case ChunkMsg:
		m.state.AppendChunk(msg.Chunk)
		m.refresh()
		if m.stream == nil {
			return m, nil
		}
		return m, waitForChunk(m.stream)

	case SendFailedMsg:
		m.state.FailSend(msg.Err)
		m.refresh()
		if m.stream == nil {
			return m, nil
		}
		return m, waitForChunk(m.stream)

	case SendDoneMsg:
		m.state.Settle(msg.Messages, msg.FetchErr)
		m.stream = nil
		m.refresh()
		return m, m.enableInput()

	case NewChatDoneMsg:
		if msg.Err != nil {
			cmds = append(cmds, m.notify(m.state.NewSessionFailed(msg.Err)))
		}
		cmds = append(cmds, m.notify(m.state.ResetToWelcome()))
		m.refresh()
		return m, tea.Batch(cmds...)

	case ThemeChangedMsg:
		// The channel may hold a stale value; the source is authoritative.
		m.applyTheme(m.themeSrc.IsDark())
		return m, waitForTheme(m.themeCh)

	case components.ToastTickMsg:
		if m.toasts.Tick(msg.Time) {
			return m, components.ToastTickCmd()
		}
		m.toastTicking = false
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.ToggleTheme):
		m.applyTheme(m.toggle.Toggle())
		return m, nil
	}

	if m.state.SettingsOpen() {
		return m.handleSettingsKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.NewChat):
		m.logger.Debug("new chat requested")
		return m, newChatCmd(m.ctx, m.svc)

	case key.Matches(msg, m.keys.Settings):
		m.state.OpenSettings()
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}

	if m.state.Loading() {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.state.SetInput(m.input.Value())
	m.growInput()
	return m, cmd
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.state.CloseSettings()
		return m, nil

	case key.Matches(msg, m.keys.Connect):
		if m.state.VaultConnected() {
			return m, nil
		}
		cmd := m.notify(m.state.ConnectVault())
		m.input.Placeholder = m.state.Placeholder()
		m.refresh()
		return m, cmd

	case key.Matches(msg, m.keys.Disconnect):
		if !m.state.VaultConnected() {
			return m, nil
		}
		cmd := m.notify(m.state.DisconnectVault())
		m.input.Placeholder = m.state.Placeholder()
		m.refresh()
		return m, cmd
	}
	return m, nil
}

// submit starts a send cycle for the current input.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text, ok := m.state.BeginSend(m.input.Value())
	if !ok {
		return m, nil
	}
	m.logger.Debug("sending message", zap.Int("length", len(text)))

	m.input.Reset()
	m.input.Blur()
	m.growInput()

	m.stream = newStream()
	m.refresh()
	return m, tea.Batch(
		sendCmd(m.ctx, m.svc, text, m.stream),
		waitForChunk(m.stream),
	)
}

// =============================================================================
// HELPERS
// =============================================================================

// enableInput focuses the input once the screen is idle.
func (m *Model) enableInput() tea.Cmd {
	if m.state.Loading() {
		return nil
	}
	m.input.Placeholder = m.state.Placeholder()
	return m.input.Focus()
}

// notify shows n as a toast and starts the expiry ticker if needed.
func (m *Model) notify(n session.Notification) tea.Cmd {
	m.toasts.Add(components.NewToast(toastKind(n.Kind), n.Title, n.Description))
	if m.toastTicking {
		return nil
	}
	m.toastTicking = true
	return components.ToastTickCmd()
}

func toastKind(k session.NotificationKind) components.ToastKind {
	switch k {
	case session.NotifySuccess:
		return components.ToastSuccess
	case session.NotifyError:
		return components.ToastError
	default:
		return components.ToastInfo
	}
}

// applyTheme rebuilds styles and the markdown renderer for dark.
func (m *Model) applyTheme(dark bool) {
	if m.theme.IsDark == dark {
		return
	}
	theme := styles.NewTheme(dark)
	theme.SetSize(m.width, m.height)
	m.theme = theme
	m.spinner.Style = theme.Spinner
	styleInput(&m.input, theme)
	m.refresh()
}

// resize lays the screen out for a new terminal size.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)
	m.header.SetWidth(width)
	m.input.SetWidth(width - inputChromeCols)
	m.ready = true
	m.layout()
	m.growInput()
	m.refresh()
}

// layout gives the viewport whatever the header and input leave.
func (m *Model) layout() {
	if !m.ready {
		return
	}
	m.viewport.Width = m.width
	h := m.height - headerHeight - m.input.Height() - inputBorderRows - helpHeight
	if h < 1 {
		h = 1
	}
	m.viewport.Height = h
}

// markdown returns a renderer matching the current theme and width,
// building one on first use.
func (m *Model) markdown() *components.Markdown {
	// Matches the assistant bubble's text area.
	width := m.viewport.Width*3/4 - 4
	if m.md != nil && m.md.Width() == width && m.md.Style() == m.theme.GlamourStyle() {
		return m.md
	}
	md, err := components.NewMarkdown(m.theme.GlamourStyle(), width)
	if err != nil {
		m.logger.Warn("markdown renderer unavailable", zap.Error(err))
		return nil
	}
	m.md = md
	return md
}

// refresh re-renders the transcript and scrolls to the newest content.
func (m *Model) refresh() {
	list := components.MessageList{
		Messages:  m.state.Messages(),
		Streaming: m.state.Streaming(),
		Width:     m.viewport.Width,
	}
	if m.state.Searching() {
		list.Searching = session.SearchingText
	}
	m.viewport.SetContent(list.View(m.theme, m.markdown()))
	m.viewport.GotoBottom()
}
