// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/praburajasekaran/zenith-note/internal/devserver"
)

// shutdownTimeout bounds the graceful stop of the development backend.
const shutdownTimeout = 5 * time.Second

func (a *app) newDevServerCmd() *cobra.Command {
	var (
		addr   string
		dbPath string
		memory bool
	)

	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Run a local development backend",
		Long: `Serves the chat API on a local address with sqlite storage and a canned
reply streamed word by word. It answers every message the same way and is
meant for trying the client without a real assistant.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.DevServer
			if addr != "" {
				cfg.Addr = addr
			}
			if dbPath != "" {
				cfg.DatabasePath = dbPath
			}
			if memory {
				cfg.DatabasePath = devserver.MemoryPath
			}

			store, err := devserver.OpenStore(cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer store.Close()

			srv := devserver.New(cfg, store, a.logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			fmt.Fprintf(cmd.OutOrStdout(), "Zenith dev server listening on http://%s (Ctrl+C to stop)\n", srv.Addr())

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("dev server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.logger.Warn("dev server shutdown", zap.Error(err))
				return fmt.Errorf("shutdown failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Stopped.")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVar(&dbPath, "db", "", "sqlite database path (default from config)")
	cmd.Flags().BoolVar(&memory, "memory", false, "keep messages in memory only")
	return cmd
}
