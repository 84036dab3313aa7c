// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/praburajasekaran/zenith-note/internal/model"
)

// Notification texts.
const (
	NewChatTitle = "New chat started."

	VaultConnectedTitle = "Vault Connected"
	VaultConnectedDesc  = "Zenith is now connected to your knowledge base."

	VaultDisconnectedTitle = "Vault Disconnected"
	VaultDisconnectedDesc  = "Zenith is no longer connected to your knowledge base."

	HistoryFailedTitle = "Couldn't load history"
	HistoryFailedDesc  = "Showing a fresh conversation instead."

	NewSessionFailedTitle = "Couldn't start a new session"
	NewSessionFailedDesc  = "The assistant may still remember the previous chat."
)

// Input placeholders and indicators.
const (
	PlaceholderVault   = "Ask about your notes..."
	PlaceholderNoVault = "Create a new note about..."
	SearchingText      = "Searching knowledge base..."
)

// =============================================================================
// STATE
// =============================================================================

// State is the transient state of one chat view.
type State struct {
	messages       []model.Message
	input          string
	loading        bool
	streaming      strings.Builder
	vaultConnected bool
	settingsOpen   bool
	sendFailed     bool

	logger *zap.Logger
}

// NewState creates an empty state. A nil logger discards diagnostics.
func NewState(logger *zap.Logger) *State {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &State{logger: logger}
}

// Messages returns a copy of the current message list.
func (s *State) Messages() []model.Message {
	out := make([]model.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages.
func (s *State) Len() int { return len(s.messages) }

// Input returns the current input text.
func (s *State) Input() string { return s.input }

// SetInput replaces the input text.
func (s *State) SetInput(text string) { s.input = text }

// Loading reports whether a load or send is in flight.
func (s *State) Loading() bool { return s.loading }

// Streaming returns the provisional assistant reply.
func (s *State) Streaming() string { return s.streaming.String() }

// VaultConnected reports the mock vault flag.
func (s *State) VaultConnected() bool { return s.vaultConnected }

// SettingsOpen reports whether the settings dialog is visible.
func (s *State) SettingsOpen() bool { return s.settingsOpen }

// CanSend reports whether the current input would start a send.
func (s *State) CanSend() bool {
	return !s.loading && strings.TrimSpace(s.input) != ""
}

// Placeholder returns the input hint for the current vault state.
func (s *State) Placeholder() string {
	if s.vaultConnected {
		return PlaceholderVault
	}
	return PlaceholderNoVault
}

// Searching reports whether the knowledge-base indicator should show under
// user messages.
func (s *State) Searching() bool {
	return s.loading && s.vaultConnected
}

// =============================================================================
// HISTORY
// =============================================================================

// BeginLoad marks the start of a history fetch.
func (s *State) BeginLoad() {
	s.loading = true
}

// FinishLoad adopts a successful, non-empty history and otherwise seeds the
// welcome message. A failed fetch also yields an info notification.
func (s *State) FinishLoad(msgs []model.Message, err error) *Notification {
	defer func() { s.loading = false }()

	if err == nil && len(msgs) > 0 {
		s.messages = append([]model.Message(nil), msgs...)
		return nil
	}

	s.messages = []model.Message{model.Welcome()}
	if err != nil {
		s.logger.Warn("history fetch failed", zap.Error(err))
		return &Notification{Kind: NotifyInfo, Title: HistoryFailedTitle, Description: HistoryFailedDesc}
	}
	return nil
}

// =============================================================================
// SEND CYCLE
// =============================================================================

// BeginSend starts a send cycle for text. It returns false and leaves the
// state untouched when text is blank or a send is already in flight.
// Otherwise it clears the input, records the user message as typed, sets
// loading, resets the streaming buffer and returns the NFC form of text to
// hand to the service.
func (s *State) BeginSend(text string) (string, bool) {
	if strings.TrimSpace(text) == "" || s.loading {
		return "", false
	}

	s.input = ""
	s.sendFailed = false

	userMsg := model.NewUserMessage(text)
	if model.OnlySentinel(s.messages) {
		s.messages = []model.Message{userMsg}
	} else {
		s.messages = append(s.messages, userMsg)
	}

	s.loading = true
	s.streaming.Reset()
	return norm.NFC.String(text), true
}

// AppendChunk appends a reply fragment to the streaming buffer.
func (s *State) AppendChunk(chunk string) {
	s.streaming.WriteString(chunk)
}

// FailSend records a failed send with the fixed fallback reply.
func (s *State) FailSend(err error) {
	s.logger.Error("error sending message", zap.Error(err))
	s.messages = append(s.messages, model.NewFallbackMessage())
	s.sendFailed = true
}

// Settle ends a send cycle. A successful fetch replaces the message list
// wholesale, except after a failed send when the fetched list holds no
// reply: the local list ending in the fallback is kept then. Either way
// the streaming buffer and loading flag are cleared.
func (s *State) Settle(msgs []model.Message, err error) {
	switch {
	case err != nil:
		s.logger.Warn("history refresh failed", zap.Error(err))
	case s.sendFailed && !endsWithReply(msgs):
		s.logger.Debug("keeping fallback after failed send", zap.Int("fetched", len(msgs)))
	default:
		s.messages = append(make([]model.Message, 0, len(msgs)), msgs...)
	}
	s.sendFailed = false
	s.streaming.Reset()
	s.loading = false
}

func endsWithReply(msgs []model.Message) bool {
	n := len(msgs)
	return n > 0 && msgs[n-1].Role == model.RoleAssistant
}

// =============================================================================
// NEW CHAT AND VAULT
// =============================================================================

// ResetToWelcome performs the local half of "new chat".
func (s *State) ResetToWelcome() Notification {
	s.messages = []model.Message{model.Welcome()}
	s.streaming.Reset()
	return Notification{Kind: NotifySuccess, Title: NewChatTitle}
}

// NewSessionFailed converts a collaborator failure during "new chat" into a
// notification.
func (s *State) NewSessionFailed(err error) Notification {
	s.logger.Warn("new session failed", zap.Error(err))
	return Notification{Kind: NotifyError, Title: NewSessionFailedTitle, Description: NewSessionFailedDesc}
}

// ConnectVault flips the mock vault on and closes the settings dialog.
func (s *State) ConnectVault() Notification {
	s.vaultConnected = true
	s.settingsOpen = false
	return Notification{Kind: NotifySuccess, Title: VaultConnectedTitle, Description: VaultConnectedDesc}
}

// DisconnectVault flips the mock vault off.
func (s *State) DisconnectVault() Notification {
	s.vaultConnected = false
	return Notification{Kind: NotifyInfo, Title: VaultDisconnectedTitle, Description: VaultDisconnectedDesc}
}

// OpenSettings shows the settings dialog.
func (s *State) OpenSettings() { s.settingsOpen = true }

// CloseSettings hides the settings dialog.
func (s *State) CloseSettings() { s.settingsOpen = false }
