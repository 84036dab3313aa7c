// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for Zenith Note.
//
// Colors are declared once as light/dark pairs in colors.go. A Theme picks
// one side of every pair from an explicit dark flag rather than letting the
// terminal decide, so the theme toggle always wins over background
// detection.
//
// # Usage
//
//	t := styles.NewTheme(manager.IsDark())
//	header := t.Header.Width(width).Render(title)
//
// Rebuild the Theme when the dark flag changes; styles are values and are
// cheap to copy.
package styles
