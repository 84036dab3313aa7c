// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session implements the chat session and streaming-update lifecycle.
//
// The package is UI-agnostic: State holds the transient view state and
// exposes the transitions (load, send, stream, settle, new chat, vault
// toggle); the Bubble Tea view and the line REPL both drive it. All real
// work is delegated to a Service, the external chat collaborator.
//
// # Key Types
//
//   - Service: the collaborator contract (history, send with chunks, new session)
//   - State: messages, input, loading flag, streaming buffer, vault and dialog flags
//   - Driver: runs whole cycles synchronously against a Service
//   - Notification: user-facing toast produced by a transition
//
// # Send Cycle
//
//	text, ok := st.BeginSend(st.Input())
//	if !ok {
//	    return // blank input or a send already in flight
//	}
//	err := svc.SendMessage(ctx, text, "", st.AppendChunk)
//	if err != nil {
//	    st.FailSend(err)
//	}
//	msgs, fetchErr := svc.GetMessages(ctx)
//	st.Settle(msgs, fetchErr)
//
// State is not safe for concurrent use. Every transition must run on the
// goroutine that owns the view; the loading flag is the only guard against
// overlapping sends.
package session
