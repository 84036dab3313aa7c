// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the zenith command tree.
//
// # Commands Overview
//
//   - zenith: full-screen chat (default)
//   - zenith chat: line REPL with history and slash commands
//   - zenith devserver: local development backend
//   - zenith config show|path: inspect configuration
//   - zenith version: print the version
//
// # Usage
//
//	os.Exit(cli.Execute())
package cli
