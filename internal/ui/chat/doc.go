// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Zenith chat screen as a Bubble Tea model.
//
// The model drives a session.State through the same transitions as the line
// REPL, but asynchronously:
//   - History is fetched by a command on Init.
//   - A send runs in a command goroutine that pushes reply fragments into a
//     buffered channel; the model pulls one fragment per message, so
//     fragments are applied in delivery order and the final refresh is only
//     delivered once the channel is drained.
//   - Theme changes from the theme collaborator arrive as ThemeChangedMsg.
//
// # Key Bindings
//
//   - Enter: send
//   - Alt+Enter / Ctrl+J: newline
//   - Ctrl+N: new chat
//   - Ctrl+S: data sources dialog
//   - Ctrl+T: toggle light/dark theme
//   - PgUp/PgDn: scroll the transcript
//   - Ctrl+C: quit
package chat
