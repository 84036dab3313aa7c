// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chatapi

import (
	"errors"
	"fmt"

	"github.com/praburajasekaran/zenith-note/internal/model"
)

// Error variables for common backend failures.
var (
	// ErrRequestFailed wraps any non-success answer from the backend.
	ErrRequestFailed = errors.New("chat request failed")

	// ErrRateLimited is returned for HTTP 429.
	ErrRateLimited = errors.New("rate limited")
)

// APIResponse is the envelope every JSON endpoint answers with.
type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ChatState is the payload of GET /messages.
type ChatState struct {
	Messages         []model.Message `json:"messages"`
	SessionID        string          `json:"sessionId"`
	IsProcessing     bool            `json:"isProcessing"`
	Model            string          `json:"model"`
	StreamingMessage string          `json:"streamingMessage,omitempty"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message string `json:"message"`
	Model   string `json:"model,omitempty"`
	Stream  bool   `json:"stream"`
}

// ModelRequest is the body of POST /model.
type ModelRequest struct {
	Model string `json:"model"`
}

// StatusError describes an unexpected HTTP status.
type StatusError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.Status)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

// Is lets errors.Is match the sentinel for the status class.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrRateLimited:
		return e.Status == 429
	case ErrRequestFailed:
		return true
	}
	return false
}
