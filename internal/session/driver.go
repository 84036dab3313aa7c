// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"

	"go.uber.org/zap"
)

// Driver runs complete session cycles synchronously against a Service.
// It is used by the line REPL; the TUI runs the same transitions through
// Bubble Tea commands.
type Driver struct {
	svc    Service
	state  *State
	logger *zap.Logger
}

// NewDriver creates a driver over svc with a fresh State.
func NewDriver(svc Service, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		svc:    svc,
		state:  NewState(logger),
		logger: logger,
	}
}

// State returns the driven state.
func (d *Driver) State() *State {
	return d.state
}

// Load fetches history into the state.
func (d *Driver) Load(ctx context.Context) *Notification {
	d.state.BeginLoad()
	msgs, err := d.svc.GetMessages(ctx)
	return d.state.FinishLoad(msgs, err)
}

// Send runs one send cycle for text. onChunk, when non-nil, observes each
// fragment after it has been appended to the streaming buffer. It returns
// false if the send did not start.
func (d *Driver) Send(ctx context.Context, text string, onChunk func(string)) bool {
	outgoing, ok := d.state.BeginSend(text)
	if !ok {
		return false
	}

	d.logger.Debug("sending message", zap.Int("length", len(outgoing)))
	err := d.svc.SendMessage(ctx, outgoing, "", func(chunk string) {
		d.state.AppendChunk(chunk)
		if onChunk != nil {
			onChunk(chunk)
		}
	})
	if err != nil {
		d.state.FailSend(err)
	}

	msgs, fetchErr := d.svc.GetMessages(ctx)
	d.state.Settle(msgs, fetchErr)
	return true
}

// NewChat asks the service for a new session and resets the local list.
func (d *Driver) NewChat(ctx context.Context) []Notification {
	var notes []Notification
	if err := d.svc.NewSession(ctx); err != nil {
		notes = append(notes, d.state.NewSessionFailed(err))
	}
	return append(notes, d.state.ResetToWelcome())
}
