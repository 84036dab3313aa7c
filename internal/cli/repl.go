// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/praburajasekaran/zenith-note/internal/config"
	"github.com/praburajasekaran/zenith-note/internal/model"
	"github.com/praburajasekaran/zenith-note/internal/session"
	"github.com/praburajasekaran/zenith-note/internal/ui/components"
	"github.com/praburajasekaran/zenith-note/internal/ui/styles"
)

// Prompt is shown before each line of input.
const Prompt = "zenith> "

// errQuit ends the REPL loop.
var errQuit = errors.New("quit")

// Backend is the collaborator the REPL needs: the session service plus the
// management calls behind /clear and /model. *chatapi.Client implements it.
type Backend interface {
	session.Service
	ClearMessages(ctx context.Context) error
	UpdateModel(ctx context.Context, name string) error
	Model() string
	SessionID() string
}

func (a *app) newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat line by line with history and slash commands",
		Long: `Starts a line-based chat session.

Slash commands:
  /new                           start a new chat
  /clear                         delete this session's messages on the server
  /model [NAME]                  show or switch the backend model
  /vault connect|disconnect|status
  /theme                         toggle light/dark rendering
  /help                          list commands
  /quit                          leave`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := a.newClient()
			defer client.Close()

			r := newREPL(client, a.newThemeManager(), cmd.OutOrStdout(), a.logger)

			in := NewLineReader()
			defer in.Close()
			return r.Run(cmd.Context(), in)
		},
	}
}

// =============================================================================
// INPUT HISTORY
// =============================================================================

// LineReader provides line editing and persistent input history.
type LineReader struct {
	line        *liner.State
	historyFile string
}

// NewLineReader creates a reader with history loaded from the config
// directory.
func NewLineReader() *LineReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	dir, err := config.Dir()
	if err != nil {
		dir = os.TempDir()
	}
	r := &LineReader{
		line:        line,
		historyFile: filepath.Join(dir, "chat_history"),
	}
	if f, err := os.Open(r.historyFile); err == nil {
		r.line.ReadHistory(f)
		f.Close()
	}
	return r
}

// ReadLine reads one line. Ctrl+C and Ctrl+D both end input with io.EOF.
func (r *LineReader) ReadLine(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history with owner-only permissions and restores the terminal.
func (r *LineReader) Close() {
	if err := os.MkdirAll(filepath.Dir(r.historyFile), 0700); err == nil {
		if f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			r.line.WriteHistory(f)
			f.Close()
		}
	}
	r.line.Close()
}

// =============================================================================
// REPL
// =============================================================================

// lineSource yields input lines; io.EOF ends the session.
type lineSource interface {
	ReadLine(prompt string) (string, error)
}

// repl is the line-based chat session.
type repl struct {
	backend Backend
	driver  *session.Driver
	theme   components.ThemeSource
	out     io.Writer
	logger  *zap.Logger

	md *components.Markdown
}

func newREPL(backend Backend, theme components.ThemeSource, out io.Writer, logger *zap.Logger) *repl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &repl{
		backend: backend,
		driver:  session.NewDriver(backend, logger),
		theme:   theme,
		out:     out,
		logger:  logger,
	}
}

// Run loads history and then processes lines until EOF or /quit.
func (r *repl) Run(ctx context.Context, in lineSource) error {
	if note := r.driver.Load(ctx); note != nil {
		r.printNotification(*note)
	}
	for _, msg := range r.driver.State().Messages() {
		r.printMessage(msg)
	}

	for {
		line, err := in.ReadLine(Prompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if err := r.handle(ctx, line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintf(r.out, "%s %v\n", styles.StatusIndicators.Error, err)
		}
	}
}

// handle processes one input line. Messages are sent as typed.
func (r *repl) handle(ctx context.Context, line string) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}
	if strings.HasPrefix(trimmed, "/") {
		return r.command(ctx, trimmed)
	}
	r.send(ctx, line)
	return nil
}

// send runs one send cycle, echoing fragments as they arrive.
func (r *repl) send(ctx context.Context, text string) {
	state := r.driver.State()
	if state.VaultConnected() {
		fmt.Fprintln(r.out, r.dim(session.SearchingText))
	}

	streamed := false
	r.driver.Send(ctx, text, func(chunk string) {
		if !streamed {
			fmt.Fprintf(r.out, "%s: ", model.RoleAssistant.DisplayName())
			streamed = true
		}
		fmt.Fprint(r.out, chunk)
	})

	if streamed {
		fmt.Fprintln(r.out)
	}
	// Show what the session settled on when it was not streamed: the reply
	// of a non-streaming backend, or the fallback after a failure.
	msgs := state.Messages()
	n := len(msgs)
	if n == 0 || msgs[n-1].IsUser() {
		return
	}
	if !streamed || msgs[n-1].Content == model.FallbackText {
		r.printMessage(msgs[n-1])
	}
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

func (r *repl) command(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "/quit", "/exit", "/q":
		return errQuit

	case "/help", "/?":
		r.printHelp()

	case "/new":
		for _, note := range r.driver.NewChat(ctx) {
			r.printNotification(note)
		}

	case "/clear":
		if err := r.backend.ClearMessages(ctx); err != nil {
			return fmt.Errorf("clear failed: %w", err)
		}
		if note := r.driver.Load(ctx); note != nil {
			r.printNotification(*note)
		}
		fmt.Fprintf(r.out, "%s Conversation cleared.\n", styles.StatusIndicators.Success)

	case "/model":
		if len(args) == 0 {
			current := r.backend.Model()
			if current == "" {
				current = "(backend default)"
			}
			fmt.Fprintf(r.out, "Model: %s\n", current)
			return nil
		}
		if err := r.backend.UpdateModel(ctx, args[0]); err != nil {
			return fmt.Errorf("model switch failed: %w", err)
		}
		fmt.Fprintf(r.out, "%s Model set to %s\n", styles.StatusIndicators.Success, args[0])

	case "/vault":
		return r.vault(args)

	case "/theme":
		dark := r.theme.Toggle()
		r.md = nil
		mode := config.ThemeLight
		if dark {
			mode = config.ThemeDark
		}
		fmt.Fprintf(r.out, "%s Theme: %s\n", styles.StatusIndicators.Info, mode)

	default:
		return fmt.Errorf("unknown command %s (try /help)", name)
	}
	return nil
}

func (r *repl) vault(args []string) error {
	state := r.driver.State()
	sub := "status"
	if len(args) > 0 {
		sub = strings.ToLower(args[0])
	}

	switch sub {
	case "connect":
		r.printNotification(state.ConnectVault())
	case "disconnect":
		r.printNotification(state.DisconnectVault())
	case "status":
		if state.VaultConnected() {
			fmt.Fprintf(r.out, "%s: %s\n", components.VaultName, components.VaultSynced)
		} else {
			fmt.Fprintln(r.out, components.VaultNone)
		}
	default:
		return fmt.Errorf("usage: /vault connect|disconnect|status")
	}
	return nil
}

// =============================================================================
// OUTPUT
// =============================================================================

func (r *repl) printHelp() {
	fmt.Fprintln(r.out, `Commands:
  /new                              start a new chat
  /clear                            delete this session's messages
  /model [NAME]                     show or switch the model
  /vault connect|disconnect|status  mock knowledge-base connection
  /theme                            toggle light/dark rendering
  /quit                             leave`)
}

func (r *repl) printNotification(n session.Notification) {
	indicator := styles.StatusIndicators.Info
	switch n.Kind {
	case session.NotifySuccess:
		indicator = styles.StatusIndicators.Success
	case session.NotifyError:
		indicator = styles.StatusIndicators.Error
	}
	fmt.Fprintf(r.out, "%s %s\n", indicator, n.Text())
}

func (r *repl) printMessage(msg model.Message) {
	if msg.IsUser() {
		fmt.Fprintf(r.out, "%s: %s\n", msg.Role.DisplayName(), msg.Content)
		return
	}
	fmt.Fprintf(r.out, "%s:\n%s\n", msg.Role.DisplayName(), r.render(msg.Content))
}

// render formats assistant markdown for the current terminal.
func (r *repl) render(content string) string {
	if r.md == nil {
		t := styles.NewTheme(r.theme.IsDark())
		md, err := components.NewMarkdown(t.GlamourStyle(), TerminalWidth()-4)
		if err != nil {
			r.logger.Warn("markdown renderer unavailable", zap.Error(err))
			return content
		}
		r.md = md
	}
	return r.md.Render(content)
}

func (r *repl) dim(s string) string {
	return lipgloss.NewStyle().Faint(true).Render(s)
}
