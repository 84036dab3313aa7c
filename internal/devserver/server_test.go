// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package devserver

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/praburajasekaran/zenith-note/internal/chatapi"
	"github.com/praburajasekaran/zenith-note/internal/config"
	"github.com/praburajasekaran/zenith-note/internal/model"
)

func testConfig() config.DevServerConfig {
	return config.DevServerConfig{
		Addr:       "127.0.0.1:0",
		RatePerSec: 1000,
		Burst:      1000,
	}
}

func newTestServer(t *testing.T, cfg config.DevServerConfig) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New(cfg, openTestStore(t), nil).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func decode[T any](t *testing.T, resp *http.Response) chatapi.APIResponse[T] {
	t.Helper()
	defer resp.Body.Close()
	var out chatapi.APIResponse[T]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

// =============================================================================
// HANDLER TESTS
// =============================================================================

func TestMessages_EmptySession(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp, err := http.Get(ts.URL + "/api/chat/abc/messages")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decode[chatapi.ChatState](t, resp)
	assert.True(t, out.Success)
	require.NotNil(t, out.Data)
	assert.Empty(t, out.Data.Messages)
	assert.Equal(t, "abc", out.Data.SessionID)
	assert.Equal(t, DefaultModel, out.Data.Model)
	assert.False(t, out.Data.IsProcessing)
}

func TestChat_StreamsReplyAndStoresBothMessages(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp := post(t, ts.URL+"/api/chat/s/chat", `{"message":"remember the milk","stream":true}`)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain"))
	assert.Equal(t, Reply("remember the milk"), string(body))

	resp, err = http.Get(ts.URL + "/api/chat/s/messages")
	require.NoError(t, err)
	out := decode[chatapi.ChatState](t, resp)
	require.Len(t, out.Data.Messages, 2)
	assert.Equal(t, model.RoleUser, out.Data.Messages[0].Role)
	assert.Equal(t, "remember the milk", out.Data.Messages[0].Content)
	assert.Equal(t, model.RoleAssistant, out.Data.Messages[1].Role)
	assert.Equal(t, string(body), out.Data.Messages[1].Content)
}

func TestChat_NonStreamingAnswersJSON(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp := post(t, ts.URL+"/api/chat/s/chat", `{"message":"hi","stream":false}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decode[map[string]model.Message](t, resp)
	assert.True(t, out.Success)
	require.NotNil(t, out.Data)
	assert.Equal(t, Reply("hi"), (*out.Data)["message"].Content)
}

func TestChat_RejectsBadInput(t *testing.T) {
	ts := newTestServer(t, testConfig())

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"message":`},
		{"blank", `{"message":"   ","stream":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/api/chat/s/chat", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			out := decode[struct{}](t, resp)
			assert.False(t, out.Success)
			assert.NotEmpty(t, out.Error)
		})
	}
}

func TestClear(t *testing.T) {
	ts := newTestServer(t, testConfig())
	post(t, ts.URL+"/api/chat/s/chat", `{"message":"one","stream":false}`).Body.Close()

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/chat/s/clear", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.True(t, decode[map[string]string](t, resp).Success)

	resp, err = http.Get(ts.URL + "/api/chat/s/messages")
	require.NoError(t, err)
	assert.Empty(t, decode[chatapi.ChatState](t, resp).Data.Messages)
}

func TestModel_Switch(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp := post(t, ts.URL+"/api/chat/s/model", `{"model":"bigger"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(ts.URL + "/api/chat/s/messages")
	require.NoError(t, err)
	assert.Equal(t, "bigger", decode[chatapi.ChatState](t, resp).Data.Model)

	resp = post(t, ts.URL+"/api/chat/s/model", `{"model":""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RatePerSec = 0.001
	cfg.Burst = 2
	ts := newTestServer(t, cfg)

	var codes []int
	for i := 0; i < 3; i++ {
		resp, err := http.Get(ts.URL + "/health")
		require.NoError(t, err)
		resp.Body.Close()
		codes = append(codes, resp.StatusCode)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRecoveryMiddleware(t *testing.T) {
	h := RecoveryMiddleware(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(mw("a"), mw("b"))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"a", "b", "handler"}, order)
}

// =============================================================================
// REPLY TESTS
// =============================================================================

func TestWords_ConcatenatesBack(t *testing.T) {
	tests := []string{
		"",
		"one",
		"one two  three",
		" leading and trailing ",
		"naïve café 日本語 text",
	}
	for _, s := range tests {
		words := Words(s)
		assert.Equal(t, s, strings.Join(words, ""), "input %q", s)
	}
	assert.Equal(t, []string{"a ", "b"}, Words("a b"))
}

func TestReply_TruncatesLongInput(t *testing.T) {
	reply := Reply(strings.Repeat("word ", 50))
	assert.Contains(t, reply, "...")
	assert.True(t, strings.HasPrefix(reply, "Noted."))
}
