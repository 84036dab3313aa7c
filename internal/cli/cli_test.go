// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praburajasekaran/zenith-note/internal/chatapi"
	"github.com/praburajasekaran/zenith-note/internal/config"
	"github.com/praburajasekaran/zenith-note/internal/devserver"
	"github.com/praburajasekaran/zenith-note/internal/model"
	"github.com/praburajasekaran/zenith-note/internal/session"
	"github.com/praburajasekaran/zenith-note/internal/ui/components"
)

var _ Backend = (*chatapi.Client)(nil)

// =============================================================================
// COMMAND TREE
// =============================================================================

// runRoot executes the command tree with args in an isolated home.
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("ZENITH_HOME", home)
	for _, k := range []string{"ZENITH_SERVER_URL", "ZENITH_MODEL", "ZENITH_THEME", "ZENITH_LOG_LEVEL", "ZENITH_LOG_PATH"} {
		t.Setenv(k, "")
	}

	var out, errOut bytes.Buffer
	root := NewRootCmd(&out, &errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runRoot(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "zenith "+Version+"\n", out)
}

func TestConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")

	out, err := runRoot(t, "--config", path, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)
}

func TestConfigShow_AppliesFlags(t *testing.T) {
	out, err := runRoot(t, "--server", "http://example.test:9000", "--theme", "light", "config", "show")
	require.NoError(t, err)

	assert.Contains(t, out, `url = "http://example.test:9000"`)
	assert.Contains(t, out, `theme = "light"`)
	assert.Contains(t, out, "[devserver]")
}

func TestRoot_RejectsInvalidFlags(t *testing.T) {
	_, err := runRoot(t, "--theme", "neon", "config", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ui.theme")

	_, err = runRoot(t, "--server", "not a url", "version")
	assert.Error(t, err)
}

func TestPersistTheme_OnlyForFileTheme(t *testing.T) {
	t.Setenv("ZENITH_THEME", "")
	assert.True(t, (&app{}).persistTheme())
	assert.False(t, (&app{themeName: "light"}).persistTheme())

	t.Setenv("ZENITH_THEME", "dark")
	assert.False(t, (&app{}).persistTheme())
}

// =============================================================================
// REPL
// =============================================================================

type scriptedInput struct {
	lines []string
}

func (s *scriptedInput) ReadLine(prompt string) (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

type fakeTheme struct{ dark bool }

func (f *fakeTheme) IsDark() bool { return f.dark }

func (f *fakeTheme) Toggle() bool {
	f.dark = !f.dark
	return f.dark
}

func newTestREPL(t *testing.T) (*repl, *bytes.Buffer, *chatapi.Client) {
	t.Helper()
	store, err := devserver.OpenStore(devserver.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	srv := devserver.New(config.DevServerConfig{RatePerSec: 1000, Burst: 1000}, store, nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	client := chatapi.New(ts.URL)
	t.Cleanup(client.Close)

	var out bytes.Buffer
	return newREPL(client, &fakeTheme{dark: true}, &out, nil), &out, client
}

func TestREPL_WelcomeAndSend(t *testing.T) {
	r, out, _ := newTestREPL(t)

	err := r.Run(context.Background(), &scriptedInput{lines: []string{"hello zenith"}})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "personal knowledge assistant")
	assert.Contains(t, text, "Zenith: "+devserver.Reply("hello zenith"))

	msgs := r.driver.State().Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "hello zenith", msgs[0].Content)
	assert.Equal(t, model.RoleAssistant, msgs[1].Role)
	assert.False(t, r.driver.State().Loading())
}

func TestREPL_FallbackWhenBackendDown(t *testing.T) {
	client := chatapi.New("http://127.0.0.1:1")
	t.Cleanup(client.Close)
	var out bytes.Buffer
	r := newREPL(client, &fakeTheme{}, &out, nil)

	err := r.Run(context.Background(), &scriptedInput{lines: []string{"anyone there?"}})
	require.NoError(t, err)

	assert.Contains(t, out.String(), session.HistoryFailedTitle)
	assert.Contains(t, out.String(), "couldn't connect to the assistant")
}

// sendFailingBackend accepts history reads but refuses every send.
type sendFailingBackend struct {
	sent []string
}

func (b *sendFailingBackend) GetMessages(ctx context.Context) ([]model.Message, error) {
	return nil, nil
}

func (b *sendFailingBackend) SendMessage(ctx context.Context, text, sessionID string, onChunk func(string)) error {
	b.sent = append(b.sent, text)
	return errors.New("connection reset")
}

func (b *sendFailingBackend) NewSession(ctx context.Context) error { return nil }

func (b *sendFailingBackend) ClearMessages(ctx context.Context) error { return nil }

func (b *sendFailingBackend) UpdateModel(ctx context.Context, name string) error { return nil }

func (b *sendFailingBackend) Model() string { return "" }

func (b *sendFailingBackend) SessionID() string { return "local" }

func TestREPL_SendFailurePrintsFallback(t *testing.T) {
	backend := &sendFailingBackend{}
	var out bytes.Buffer
	r := newREPL(backend, &fakeTheme{}, &out, nil)

	err := r.Run(context.Background(), &scriptedInput{lines: []string{"  keep my spacing "}})
	require.NoError(t, err)

	assert.Contains(t, out.String(), model.FallbackText)
	assert.Equal(t, []string{"  keep my spacing "}, backend.sent)

	msgs := r.driver.State().Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "  keep my spacing ", msgs[0].Content)
	assert.Equal(t, model.FallbackText, msgs[1].Content)
}

func TestREPL_VaultCommands(t *testing.T) {
	r, out, _ := newTestREPL(t)

	err := r.Run(context.Background(), &scriptedInput{lines: []string{
		"/vault status",
		"/vault connect",
		"/vault",
		"what do my notes say",
		"/vault disconnect",
		"/vault sideways",
	}})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, components.VaultNone)
	assert.Contains(t, text, session.VaultConnectedTitle)
	assert.Contains(t, text, components.VaultSynced)
	assert.Contains(t, text, session.SearchingText)
	assert.Contains(t, text, session.VaultDisconnectedTitle)
	assert.Contains(t, text, "usage: /vault")
	assert.False(t, r.driver.State().VaultConnected())
}

func TestREPL_NewChatAndClear(t *testing.T) {
	r, out, client := newTestREPL(t)
	first := client.SessionID()

	err := r.Run(context.Background(), &scriptedInput{lines: []string{
		"remember the milk",
		"/new",
	}})
	require.NoError(t, err)

	assert.Contains(t, out.String(), session.NewChatTitle)
	assert.NotEqual(t, first, client.SessionID())
	assert.True(t, model.OnlySentinel(r.driver.State().Messages()))

	out.Reset()
	err = r.Run(context.Background(), &scriptedInput{lines: []string{
		"second session note",
		"/clear",
	}})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Conversation cleared.")
	msgs, err := client.GetMessages(context.Background())
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestREPL_ModelAndTheme(t *testing.T) {
	r, out, client := newTestREPL(t)

	err := r.Run(context.Background(), &scriptedInput{lines: []string{
		"/model",
		"/model notes-large",
		"/theme",
		"/nope",
		"/quit",
		"never read",
	}})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Model: (backend default)")
	assert.Contains(t, text, "Model set to notes-large")
	assert.Equal(t, "notes-large", client.Model())
	assert.Contains(t, text, "Theme: light")
	assert.Contains(t, text, "unknown command /nope")
	assert.NotContains(t, text, "never read")
}

func TestREPL_BlankLinesIgnored(t *testing.T) {
	r, _, _ := newTestREPL(t)

	require.NoError(t, r.handle(context.Background(), "   "))
	require.NoError(t, r.handle(context.Background(), ""))
	assert.Equal(t, 0, r.driver.State().Len())
}
