// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/praburajasekaran/zenith-note/internal/chatapi"
	"github.com/praburajasekaran/zenith-note/internal/config"
	"github.com/praburajasekaran/zenith-note/internal/logging"
	"github.com/praburajasekaran/zenith-note/internal/theme"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// app carries flags and the objects built from them for one invocation.
type app struct {
	configPath string
	serverURL  string
	model      string
	themeName  string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	if err := NewRootCmd(os.Stdout, os.Stderr).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// NewRootCmd builds the command tree writing to out and errOut.
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "zenith",
		Short: "Zenith Note - a chat companion for your personal knowledge base",
		Long: `Zenith Note is a terminal chat client for a knowledge assistant.

Run without arguments to start the full-screen chat. Use "zenith chat" for a
line-based session and "zenith devserver" to run a local backend.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ~/.zenith/config.toml)")
	flags.StringVar(&a.serverURL, "server", "", "assistant backend URL")
	flags.StringVar(&a.model, "model", "", "model requested from the backend")
	flags.StringVar(&a.themeName, "theme", "", "theme: dark, light or auto")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		a.newChatCmd(),
		a.newDevServerCmd(),
		a.newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration, applies flag overrides and builds the logger.
func (a *app) setup() error {
	if a.configPath == "" {
		p, err := config.Path()
		if err != nil {
			return err
		}
		a.configPath = p
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.serverURL != "" {
		cfg.Server.URL = a.serverURL
	}
	if a.model != "" {
		cfg.Server.Model = a.model
	}
	if a.themeName != "" {
		cfg.UI.Theme = a.themeName
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	a.logger = logger
	a.logger.Debug("configuration loaded", zap.String("path", a.configPath))
	return nil
}

// newClient builds the HTTP collaborator from configuration.
func (a *app) newClient() *chatapi.Client {
	return chatapi.New(a.cfg.Server.URL,
		chatapi.WithModel(a.cfg.Server.Model),
		chatapi.WithTimeout(a.cfg.Server.Timeout()),
		chatapi.WithLogger(a.logger),
	)
}

// newThemeManager builds the theme collaborator. The preference is only
// written back to, and watched in, the config file when it came from that
// file rather than a flag or ZENITH_THEME.
func (a *app) newThemeManager() *theme.Manager {
	opts := []theme.Option{theme.WithLogger(a.logger)}
	if a.persistTheme() {
		opts = append(opts, theme.WithConfigPath(a.configPath))
	}
	return theme.NewManager(a.cfg.UI.Theme, opts...)
}

func (a *app) persistTheme() bool {
	return a.themeName == "" && !config.ThemeFromEnv()
}
