// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual building blocks of the chat screen.
//
// Components are plain values rendered with a *styles.Theme passed at View
// time, so a theme switch only needs a new Theme.
//
// # Components
//
//   - Header: new chat, title, settings and theme toggle
//   - ThemeToggle: moon/sun glyph over a ThemeSource
//   - MessageBubble, MessageList: transcript and streaming reply
//   - Markdown: glamour renderer for assistant replies
//   - SettingsDialog: mock vault connect/disconnect
//   - Toast, ToastManager: transient notifications at the top
package components
