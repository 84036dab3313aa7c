// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/praburajasekaran/zenith-note/internal/model"
)

// =============================================================================
// HISTORY MESSAGES
// =============================================================================

// HistoryLoadedMsg carries the result of the initial history fetch.
type HistoryLoadedMsg struct {
	Messages []model.Message
	Err      error
}

// =============================================================================
// STREAMING MESSAGES
// =============================================================================

// ChunkMsg delivers one reply fragment.
type ChunkMsg struct {
	Chunk string
}

// SendFailedMsg reports a failed send. It arrives after every fragment and
// before the follow-up fetch completes.
type SendFailedMsg struct {
	Err error
}

// SendDoneMsg ends a send cycle. It is delivered last.
type SendDoneMsg struct {
	Messages []model.Message // authoritative list fetched afterwards
	FetchErr error
}

// =============================================================================
// SESSION MESSAGES
// =============================================================================

// NewChatDoneMsg reports the collaborator's answer to a new session request.
type NewChatDoneMsg struct {
	Err error
}

// ThemeChangedMsg reports a theme change made through the theme collaborator.
type ThemeChangedMsg struct {
	Dark bool
}
