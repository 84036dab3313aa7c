// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/praburajasekaran/zenith-note/internal/ui/chat"
)

// runTUI runs the full-screen chat until the user quits.
func (a *app) runTUI(ctx context.Context) error {
	if !IsTTY() || !IsStdoutTTY() {
		return fmt.Errorf("the full-screen chat needs a terminal; use \"zenith chat\" instead")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	client := a.newClient()
	defer client.Close()

	themes := a.newThemeManager()
	if err := themes.Watch(ctx); err != nil {
		a.logger.Warn("theme watch unavailable", zap.Error(err))
	}

	m := chat.New(chat.Options{
		Service: client,
		Theme:   themes,
		Logger:  a.logger,
		Config:  a.cfg,
		Context: ctx,
	})
	defer m.Close()

	a.logger.Info("starting chat",
		zap.String("server", a.cfg.Server.URL),
		zap.String("session", client.SessionID()))

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat screen failed: %w", err)
	}
	return nil
}
