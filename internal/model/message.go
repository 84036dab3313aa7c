// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the message type shared across the application.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Zenith"
	default:
		return string(r)
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// WelcomeID is the id carried by the welcome message.
const WelcomeID = "zenith-welcome"

// WelcomeText is the greeting shown before any conversation exists.
const WelcomeText = "Hello! I'm Zenith, your personal knowledge assistant. " +
	"How can I help you manage your notes today? " +
	"You can ask me to create, find, or link notes."

// FallbackText replaces the assistant reply when a send fails.
const FallbackText = "Sorry, I couldn't connect to the assistant. Please try again later."

// Message is a single chat message. Messages are treated as immutable once
// created; list order is insertion order and Timestamp is informational.
type Message struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"` // epoch milliseconds

	// Sentinel marks the local welcome placeholder. Never serialised.
	Sentinel bool `json:"-"`
}

// NewMessage creates a message with a fresh id and the current time.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: NowMillis(),
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates a new assistant message.
func NewAssistantMessage(content string) Message {
	return NewMessage(RoleAssistant, content)
}

// NewFallbackMessage creates the assistant message shown after a failed send.
func NewFallbackMessage() Message {
	return NewAssistantMessage(FallbackText)
}

// Welcome returns the welcome sentinel.
func Welcome() Message {
	return Message{
		ID:        WelcomeID,
		Role:      RoleAssistant,
		Content:   WelcomeText,
		Timestamp: NowMillis(),
		Sentinel:  true,
	}
}

// Time returns the timestamp as a time.Time.
func (m Message) Time() time.Time {
	return time.UnixMilli(m.Timestamp)
}

// IsUser reports whether the message was sent by the user.
func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

// OnlySentinel reports whether msgs is exactly the welcome placeholder.
func OnlySentinel(msgs []Message) bool {
	return len(msgs) == 1 && msgs[0].Sentinel
}

// NowMillis returns the current time in epoch milliseconds.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
