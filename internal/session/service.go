// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"

	"github.com/praburajasekaran/zenith-note/internal/model"
)

// Service is the external chat collaborator. It owns assistant logic,
// message persistence and transport.
type Service interface {
	// GetMessages returns the authoritative message list. A non-nil error
	// means the collaborator reported failure.
	GetMessages(ctx context.Context) ([]model.Message, error)

	// SendMessage sends text and calls onChunk for each reply fragment, in
	// delivery order, before returning. An empty sessionID means the
	// collaborator's current session.
	SendMessage(ctx context.Context, text, sessionID string, onChunk func(string)) error

	// NewSession resets the server-side conversation context.
	NewSession(ctx context.Context) error
}

// =============================================================================
// NOTIFICATIONS
// =============================================================================

// NotificationKind classifies a notification for rendering.
type NotificationKind int

const (
	NotifySuccess NotificationKind = iota
	NotifyInfo
	NotifyError
)

// String returns the kind name.
func (k NotificationKind) String() string {
	switch k {
	case NotifySuccess:
		return "success"
	case NotifyInfo:
		return "info"
	case NotifyError:
		return "error"
	default:
		return "unknown"
	}
}

// Notification is a user-facing message raised by a transition.
type Notification struct {
	Kind        NotificationKind
	Title       string
	Description string
}

// Text joins the title and description for single-line surfaces.
func (n Notification) Text() string {
	if n.Description == "" {
		return n.Title
	}
	return n.Title + ": " + n.Description
}
