// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the config and UI packages.
//
//   - AtomicWriteFile: crash-safe file writing with fsync and rename
//   - TruncateWidth, StringWidth, Center: display-width aware string helpers
package util
