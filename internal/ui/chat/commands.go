// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/praburajasekaran/zenith-note/internal/session"
)

// chunkBuffer bounds how far the sender may run ahead of rendering.
const chunkBuffer = 64

// =============================================================================
// HISTORY
// =============================================================================

func loadHistoryCmd(ctx context.Context, svc session.Service) tea.Cmd {
	return func() tea.Msg {
		msgs, err := svc.GetMessages(ctx)
		return HistoryLoadedMsg{Messages: msgs, Err: err}
	}
}

// =============================================================================
// SEND CYCLE
// =============================================================================

// stream connects one in-flight send to the update loop. results carries
// an optional SendFailedMsg followed by the SendDoneMsg.
type stream struct {
	chunks  chan string
	results chan tea.Msg
}

func newStream() *stream {
	return &stream{
		chunks:  make(chan string, chunkBuffer),
		results: make(chan tea.Msg, 2),
	}
}

// sendCmd runs the send and the follow-up fetch. Its own result is nil;
// the outcome reaches the model through waitForChunk once every fragment
// has been consumed. A failure is reported before the fetch starts.
func sendCmd(ctx context.Context, svc session.Service, text string, s *stream) tea.Cmd {
	return func() tea.Msg {
		err := svc.SendMessage(ctx, text, "", func(chunk string) {
			s.chunks <- chunk
		})
		close(s.chunks)
		if err != nil {
			s.results <- SendFailedMsg{Err: err}
		}

		msgs, fetchErr := svc.GetMessages(ctx)
		s.results <- SendDoneMsg{Messages: msgs, FetchErr: fetchErr}
		return nil
	}
}

// waitForChunk returns the next fragment, or the next send result once the
// fragment channel is closed.
func waitForChunk(s *stream) tea.Cmd {
	return func() tea.Msg {
		if chunk, ok := <-s.chunks; ok {
			return ChunkMsg{Chunk: chunk}
		}
		return <-s.results
	}
}

// =============================================================================
// NEW CHAT
// =============================================================================

func newChatCmd(ctx context.Context, svc session.Service) tea.Cmd {
	return func() tea.Msg {
		return NewChatDoneMsg{Err: svc.NewSession(ctx)}
	}
}

// =============================================================================
// THEME
// =============================================================================

func waitForTheme(ch <-chan bool) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		dark, ok := <-ch
		if !ok {
			return nil
		}
		return ThemeChangedMsg{Dark: dark}
	}
}
