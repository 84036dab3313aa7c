// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/praburajasekaran/zenith-note/internal/ui/styles"
)

// Settings dialog copy.
const (
	SettingsTitle       = "Data Sources"
	SettingsDescription = "Connect Zenith to your knowledge base to enable intelligent, context-aware answers."
	VaultName           = "Google Drive Vault"
	VaultSynced         = "Connected and synchronized."
	VaultNone           = "No vault connected."
)

// SettingsDialog is the modal for the mock vault connection.
type SettingsDialog struct {
	Connected bool
	Width     int
	Height    int
}

// View renders the dialog centred in Width x Height.
func (d SettingsDialog) View(theme *styles.Theme) string {
	boxWidth := 56
	if d.Width > 0 && d.Width-4 < boxWidth {
		boxWidth = d.Width - 4
	}
	if boxWidth < 30 {
		boxWidth = 30
	}
	// Border (2) and padding (6) come out of the box.
	textWidth := boxWidth - 8

	text := theme.DialogText.Width(textWidth)

	var status, actions string
	if d.Connected {
		status = theme.VaultOn.Render(VaultName) + "\n" + text.Render(VaultSynced)
		actions = theme.DialogKey.Render("d") + text.UnsetWidth().Render(" disconnect")
	} else {
		status = theme.VaultOff.Render(VaultNone)
		actions = theme.DialogKey.Render("enter") + text.UnsetWidth().Render(" connect Google Drive")
	}
	actions += text.UnsetWidth().Render("   ") + theme.DialogKey.Render("esc") + text.UnsetWidth().Render(" close")

	body := lipgloss.JoinVertical(lipgloss.Left,
		theme.DialogTitle.Render(SettingsTitle),
		text.Render(SettingsDescription),
		"",
		status,
		"",
		actions,
	)
	box := theme.Dialog.Width(boxWidth - 2).Render(body)

	if d.Width > 0 && d.Height > 0 {
		return lipgloss.Place(d.Width, d.Height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
