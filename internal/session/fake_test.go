// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"

	"github.com/praburajasekaran/zenith-note/internal/model"
)

var errTransport = errors.New("transport down")

// fakeService is an in-memory Service that records calls.
type fakeService struct {
	history    []model.Message
	historyErr error
	chunks     []string
	sendErr    error
	newErr     error

	// observe runs inside SendMessage before any chunk is delivered.
	observe  func()
	sent     []string
	newCalls int
	getCalls int
}

func (f *fakeService) GetMessages(ctx context.Context) ([]model.Message, error) {
	f.getCalls++
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return append([]model.Message(nil), f.history...), nil
}

func (f *fakeService) SendMessage(ctx context.Context, text, sessionID string, onChunk func(string)) error {
	f.sent = append(f.sent, text)
	if f.observe != nil {
		f.observe()
	}
	for _, c := range f.chunks {
		onChunk(c)
	}
	if f.sendErr != nil {
		return f.sendErr
	}
	f.history = append(f.history,
		model.NewUserMessage(text),
		model.NewAssistantMessage(joinChunks(f.chunks)))
	return nil
}

func (f *fakeService) NewSession(ctx context.Context) error {
	f.newCalls++
	if f.newErr != nil {
		return f.newErr
	}
	f.history = nil
	return nil
}

func joinChunks(chunks []string) string {
	out := ""
	for _, c := range chunks {
		out += c
	}
	return out
}
