// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praburajasekaran/zenith-note/internal/model"
)

// =============================================================================
// HISTORY TESTS
// =============================================================================

func TestFinishLoad_EmptyHistorySeedsWelcome(t *testing.T) {
	st := NewState(nil)
	st.BeginLoad()
	assert.True(t, st.Loading())

	note := st.FinishLoad(nil, nil)

	assert.Nil(t, note)
	assert.False(t, st.Loading())
	require.Len(t, st.Messages(), 1)
	assert.True(t, st.Messages()[0].Sentinel)
	assert.Equal(t, model.WelcomeID, st.Messages()[0].ID)
}

func TestFinishLoad_AdoptsHistory(t *testing.T) {
	st := NewState(nil)
	history := []model.Message{model.NewUserMessage("a"), model.NewAssistantMessage("b")}

	st.BeginLoad()
	st.FinishLoad(history, nil)

	assert.Equal(t, history, st.Messages())
}

func TestFinishLoad_FailureFallsBackAndNotifies(t *testing.T) {
	st := NewState(nil)
	st.BeginLoad()

	note := st.FinishLoad([]model.Message{model.NewUserMessage("ignored")}, errTransport)

	require.NotNil(t, note)
	assert.Equal(t, NotifyInfo, note.Kind)
	assert.True(t, model.OnlySentinel(st.Messages()))
	assert.False(t, st.Loading())
}

// =============================================================================
// SEND TESTS
// =============================================================================

func TestBeginSend_AppendsExactlyOneUserMessage(t *testing.T) {
	st := NewState(nil)
	st.FinishLoad([]model.Message{model.NewUserMessage("first"), model.NewAssistantMessage("reply")}, nil)
	st.SetInput("second")

	text, ok := st.BeginSend(st.Input())

	require.True(t, ok)
	assert.Equal(t, "second", text)
	msgs := st.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, model.RoleUser, msgs[2].Role)
	assert.Equal(t, "second", msgs[2].Content)
	assert.Empty(t, st.Input())
	assert.True(t, st.Loading())
	assert.Empty(t, st.Streaming())
}

func TestBeginSend_NoOpCases(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		loading bool
	}{
		{"empty", "", false},
		{"spaces", "   ", false},
		{"newlines and tabs", "\n\t \n", false},
		{"loading", "hello", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := NewState(nil)
			st.FinishLoad([]model.Message{model.NewUserMessage("x")}, nil)
			st.SetInput(tc.input)
			if tc.loading {
				st.BeginLoad()
			}
			before := st.Messages()

			_, ok := st.BeginSend(st.Input())

			assert.False(t, ok)
			assert.Equal(t, before, st.Messages())
			assert.Equal(t, tc.input, st.Input())
		})
	}
}

func TestBeginSend_ReplacesWelcomeSentinel(t *testing.T) {
	st := NewState(nil)
	st.FinishLoad(nil, nil)

	_, ok := st.BeginSend("Hello")

	require.True(t, ok)
	msgs := st.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "Hello", msgs[0].Content)
	assert.False(t, msgs[0].Sentinel)
}

func TestBeginSend_RealMessageWithWelcomeIDIsKept(t *testing.T) {
	st := NewState(nil)
	impostor := model.Message{ID: model.WelcomeID, Role: model.RoleAssistant, Content: "from server"}
	st.FinishLoad([]model.Message{impostor}, nil)

	st.BeginSend("Hello")

	msgs := st.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "from server", msgs[0].Content)
}

func TestBeginSend_NormalisesOnlyOutgoingText(t *testing.T) {
	st := NewState(nil)
	typed := "  cafe\u0301\n"

	text, ok := st.BeginSend(typed)

	require.True(t, ok)
	assert.Equal(t, "  caf\u00e9\n", text)
	assert.Equal(t, typed, st.Messages()[0].Content, "the transcript keeps what was typed")
}

func TestStreamingChunksAccumulateInOrder(t *testing.T) {
	st := NewState(nil)
	st.BeginSend("Hello")

	st.AppendChunk("Hi")
	st.AppendChunk(" there")

	assert.Equal(t, "Hi there", st.Streaming())
}

func TestFailSend_AppendsFallback(t *testing.T) {
	st := NewState(nil)
	st.BeginSend("Hello")

	st.FailSend(errTransport)

	msgs := st.Messages()
	last := msgs[len(msgs)-1]
	assert.Equal(t, model.RoleAssistant, last.Role)
	assert.Equal(t, model.FallbackText, last.Content)
}

func TestSettle_ClearsBufferAndLoading(t *testing.T) {
	authoritative := []model.Message{model.NewUserMessage("Hello"), model.NewAssistantMessage("Hi there")}

	t.Run("fetch ok replaces list", func(t *testing.T) {
		st := NewState(nil)
		st.BeginSend("Hello")
		st.AppendChunk("Hi")

		st.Settle(authoritative, nil)

		assert.Equal(t, authoritative, st.Messages())
		assert.Empty(t, st.Streaming())
		assert.False(t, st.Loading())
	})

	t.Run("fetch ok with empty list", func(t *testing.T) {
		st := NewState(nil)
		st.BeginSend("Hello")

		st.Settle(nil, nil)

		assert.Empty(t, st.Messages())
		assert.False(t, st.Loading())
	})

	t.Run("fetch failure keeps local list", func(t *testing.T) {
		st := NewState(nil)
		st.BeginSend("Hello")
		st.FailSend(errTransport)

		st.Settle(nil, errTransport)

		msgs := st.Messages()
		require.Len(t, msgs, 2)
		assert.Equal(t, model.FallbackText, msgs[1].Content)
		assert.Empty(t, st.Streaming())
		assert.False(t, st.Loading())
	})

	t.Run("failed send keeps fallback when fetch has no reply", func(t *testing.T) {
		st := NewState(nil)
		st.BeginSend("Hello")
		st.FailSend(errTransport)

		st.Settle([]model.Message{model.NewUserMessage("Hello")}, nil)

		msgs := st.Messages()
		require.Len(t, msgs, 2)
		assert.Equal(t, "Hello", msgs[0].Content)
		assert.Equal(t, model.FallbackText, msgs[1].Content)
		assert.False(t, st.Loading())
	})

	t.Run("failed send adopts a fetched reply", func(t *testing.T) {
		st := NewState(nil)
		st.BeginSend("Hello")
		st.FailSend(errTransport)

		st.Settle(authoritative, nil)

		assert.Equal(t, authoritative, st.Messages())
	})

	t.Run("failure does not carry into the next cycle", func(t *testing.T) {
		st := NewState(nil)
		st.BeginSend("Hello")
		st.FailSend(errTransport)
		st.Settle(nil, nil)

		st.BeginSend("Again")
		st.Settle(nil, nil)

		assert.Empty(t, st.Messages())
	})
}

// =============================================================================
// NEW CHAT / VAULT TESTS
// =============================================================================

func TestResetToWelcome(t *testing.T) {
	st := NewState(nil)
	st.ConnectVault()
	st.BeginSend("Hello")
	st.AppendChunk("partial")

	note := st.ResetToWelcome()

	assert.Equal(t, NotifySuccess, note.Kind)
	assert.Equal(t, NewChatTitle, note.Title)
	assert.True(t, model.OnlySentinel(st.Messages()))
	assert.Empty(t, st.Streaming())
	assert.True(t, st.VaultConnected())
}

func TestVaultToggle(t *testing.T) {
	st := NewState(nil)
	st.OpenSettings()
	assert.Equal(t, PlaceholderNoVault, st.Placeholder())

	on := st.ConnectVault()
	assert.True(t, st.VaultConnected())
	assert.False(t, st.SettingsOpen())
	assert.Equal(t, NotifySuccess, on.Kind)
	assert.Equal(t, VaultConnectedTitle, on.Title)
	assert.Equal(t, PlaceholderVault, st.Placeholder())

	st.OpenSettings()
	off := st.DisconnectVault()
	assert.False(t, st.VaultConnected())
	assert.True(t, st.SettingsOpen())
	assert.Equal(t, NotifyInfo, off.Kind)
	assert.Equal(t, VaultDisconnectedTitle, off.Title)
}

func TestSearching(t *testing.T) {
	st := NewState(nil)
	st.BeginSend("Hello")
	assert.False(t, st.Searching())

	st.ConnectVault()
	assert.True(t, st.Searching())

	st.Settle(nil, nil)
	assert.False(t, st.Searching())
}

func TestCanSend(t *testing.T) {
	st := NewState(nil)
	assert.False(t, st.CanSend())

	st.SetInput("note")
	assert.True(t, st.CanSend())

	st.BeginLoad()
	assert.False(t, st.CanSend())
}

func TestNotificationText(t *testing.T) {
	assert.Equal(t, "New chat started.", Notification{Title: NewChatTitle}.Text())
	assert.Equal(t, "Vault Connected: "+VaultConnectedDesc,
		Notification{Title: VaultConnectedTitle, Description: VaultConnectedDesc}.Text())
	assert.Equal(t, "success", NotifySuccess.String())
}
