// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chatapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/praburajasekaran/zenith-note/internal/model"
)

// Configuration constants.
const (
	// DefaultTimeout bounds every request except the chat stream.
	DefaultTimeout = 30 * time.Second

	// MaxResponseSize caps JSON response bodies.
	MaxResponseSize = 10 * 1024 * 1024

	// readBufferSize is the size of each read from the reply stream.
	readBufferSize = 4096
)

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the agent backend. It is safe for concurrent use.
type Client struct {
	baseURL string
	model   string
	logger  *zap.Logger

	httpClient   *http.Client
	streamClient *http.Client

	mu        sync.RWMutex
	sessionID string
}

// Option configures a Client.
type Option func(*Client)

// WithModel sets the model sent with chat requests.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTimeout sets the timeout for non-streaming requests.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithSessionID starts the client on an existing session.
func WithSessionID(id string) Option {
	return func(c *Client) {
		if id != "" {
			c.sessionID = id
		}
	}
}

// New creates a client for the backend at baseURL with a fresh session id.
func New(baseURL string, opts ...Option) *Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  zap.NewNop(),
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   DefaultTimeout,
		},
		// No timeout for streaming; the caller's context bounds it.
		streamClient: &http.Client{Transport: transport},
		sessionID:    uuid.NewString(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// SessionID returns the current session id.
func (c *Client) SessionID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionID
}

// SwitchSession makes id the current session.
func (c *Client) SwitchSession(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionID = id
}

// NewSession mints a new session id. The backend creates the conversation
// lazily on first use.
func (c *Client) NewSession(ctx context.Context) error {
	id := uuid.NewString()
	c.SwitchSession(id)
	c.logger.Info("new session", zap.String("session", id))
	return nil
}

// Model returns the model sent with chat requests.
func (c *Client) Model() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model
}

func (c *Client) endpoint(sessionID, path string) string {
	if sessionID == "" {
		sessionID = c.SessionID()
	}
	return c.baseURL + "/api/chat/" + url.PathEscape(sessionID) + path
}

// =============================================================================
// MESSAGES
// =============================================================================

// GetMessages fetches the authoritative message list of the current session.
func (c *Client) GetMessages(ctx context.Context) ([]model.Message, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("", "/messages"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var out APIResponse[ChatState]
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return nil, fmt.Errorf("%w: response has no data", ErrRequestFailed)
	}
	return out.Data.Messages, nil
}

// ClearMessages deletes the messages of the current session.
func (c *Client) ClearMessages(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.endpoint("", "/clear"), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	var out APIResponse[json.RawMessage]
	return c.doJSON(req, &out)
}

// UpdateModel switches the model on the backend and for later requests.
func (c *Client) UpdateModel(ctx context.Context, modelName string) error {
	body, err := json.Marshal(ModelRequest{Model: modelName})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("", "/model"), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out APIResponse[json.RawMessage]
	if err := c.doJSON(req, &out); err != nil {
		return err
	}

	c.mu.Lock()
	c.model = modelName
	c.mu.Unlock()
	return nil
}

// =============================================================================
// STREAMING CHAT
// =============================================================================

// SendMessage posts text and streams the reply. When onChunk is nil the
// backend is asked for a single JSON answer instead. An empty sessionID
// uses the current session.
func (c *Client) SendMessage(ctx context.Context, text, sessionID string, onChunk func(string)) error {
	body, err := json.Marshal(ChatRequest{
		Message: text,
		Model:   c.Model(),
		Stream:  onChunk != nil,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(sessionID, "/chat"), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if onChunk == nil {
		var out APIResponse[json.RawMessage]
		return c.doJSON(req, &out)
	}

	req.Header.Set("Accept", "text/plain")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	n, err := readStream(resp.Body, onChunk)
	c.logger.Debug("stream finished", zap.Int("bytes", n), zap.Error(err))
	if err != nil {
		return fmt.Errorf("stream interrupted: %w", err)
	}
	return nil
}

// readStream delivers the body to onChunk as it arrives. A multi-byte rune
// split across reads is held back until it is complete.
func readStream(r io.Reader, onChunk func(string)) (int, error) {
	buf := make([]byte, readBufferSize)
	var pending []byte
	total := 0

	for {
		n, err := r.Read(buf)
		if n > 0 {
			total += n
			pending = append(pending, buf[:n]...)
			cut := completePrefix(pending)
			if cut > 0 {
				onChunk(string(pending[:cut]))
				pending = append(pending[:0], pending[cut:]...)
			}
		}
		if errors.Is(err, io.EOF) {
			if len(pending) > 0 {
				onChunk(string(pending))
			}
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// completePrefix returns the length of the longest prefix of b that does
// not end in a truncated UTF-8 sequence.
func completePrefix(b []byte) int {
	end := len(b)
	// A rune is at most utf8.UTFMax bytes, so only the tail needs checking.
	for i := end - 1; i >= 0 && i >= end-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if !utf8.FullRune(b[i:end]) {
				return i
			}
			break
		}
	}
	return end
}

// =============================================================================
// HELPERS
// =============================================================================

func (c *Client) doJSON(req *http.Request, out interface{}) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var envelope struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !envelope.Success {
		msg := envelope.Error
		if msg == "" {
			msg = "backend reported failure"
		}
		return fmt.Errorf("%w: %s", ErrRequestFailed, msg)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(body))

	var envelope struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil && envelope.Error != "" {
		msg = envelope.Error
	}
	return &StatusError{Status: resp.StatusCode, Message: msg}
}
