// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the message type shared by the chat session, the
// HTTP client and the development backend.
//
// # Key Types
//
//   - Message: a single chat message with role, content and epoch-ms timestamp
//   - Role: message role enumeration (user, assistant)
//
// # The Welcome Sentinel
//
// Before any real conversation exists the session shows a fixed welcome
// message. It is marked with the Sentinel flag rather than recognised by
// its id, so a backend message that reuses the id is still a real message:
//
//	msgs := []model.Message{model.Welcome()}
//	model.OnlySentinel(msgs) // true
package model
