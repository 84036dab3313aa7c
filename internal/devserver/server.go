// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/praburajasekaran/zenith-note/internal/chatapi"
	"github.com/praburajasekaran/zenith-note/internal/config"
	"github.com/praburajasekaran/zenith-note/internal/model"
	"github.com/praburajasekaran/zenith-note/internal/util"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// DefaultModel is assigned to sessions created without one.
	DefaultModel = "zenith-dev"

	// MaxRequestBodySize caps request bodies (1MB).
	MaxRequestBodySize = 1 << 20

	// quoteWidth bounds the echoed user text in the canned reply.
	quoteWidth = 60
)

// ============================================================================
// SERVER
// ============================================================================

// Server is the development backend.
type Server struct {
	addr       string
	chunkDelay time.Duration

	store   *Store
	limiter *rate.Limiter
	logger  *zap.Logger

	router *http.ServeMux
	server *http.Server

	mu         sync.Mutex
	processing map[string]bool
}

// New creates a server from cfg backed by store.
func New(cfg config.DevServerConfig, store *Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	s := &Server{
		addr:       cfg.Addr,
		chunkDelay: cfg.ChunkDelay(),
		store:      store,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RatePerSec), burst),
		logger:     logger.Named("devserver"),
		router:     http.NewServeMux(),
		processing: make(map[string]bool),
	}
	s.setupRoutes()
	return s
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Handler returns the routed handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	return Chain(
		RecoveryMiddleware(s.logger),
		LoggingMiddleware(s.logger),
		RateLimitMiddleware(s.limiter, s.logger),
	)(s.router)
}

// ============================================================================
// ROUTES
// ============================================================================

func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /api/chat/{session}/messages", s.handleMessages)
	s.router.HandleFunc("POST /api/chat/{session}/chat", s.handleChat)
	s.router.HandleFunc("DELETE /api/chat/{session}/clear", s.handleClear)
	s.router.HandleFunc("POST /api/chat/{session}/model", s.handleModel)

	s.router.HandleFunc("GET /health", s.handleHealth)
}

// ============================================================================
// HANDLERS
// ============================================================================

// handleMessages handles GET /api/chat/{session}/messages.
func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("session")
	ctx := r.Context()

	msgs, err := s.store.Messages(ctx, id)
	if err != nil {
		s.internalError(w, "list messages", err)
		return
	}

	modelName, err := s.store.Model(ctx, id)
	if errors.Is(err, ErrNotFound) {
		modelName = DefaultModel
	} else if err != nil {
		s.internalError(w, "get model", err)
		return
	}

	writeData(w, chatapi.ChatState{
		Messages:     msgs,
		SessionID:    id,
		IsProcessing: s.isProcessing(id),
		Model:        modelName,
	})
}

// handleChat handles POST /api/chat/{session}/chat.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)

	var req chatapi.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	id := r.PathValue("session")
	ctx := r.Context()

	modelName := req.Model
	if modelName == "" {
		modelName = DefaultModel
	}
	if err := s.store.EnsureSession(ctx, id, modelName); err != nil {
		s.internalError(w, "ensure session", err)
		return
	}
	if err := s.store.Append(ctx, id, model.NewUserMessage(req.Message)); err != nil {
		s.internalError(w, "store user message", err)
		return
	}

	s.setProcessing(id, true)
	defer s.setProcessing(id, false)

	reply := Reply(req.Message)
	if req.Stream {
		if err := s.streamReply(ctx, w, reply); err != nil {
			s.logger.Warn("stream aborted", zap.String("session", id), zap.Error(err))
			return
		}
	}

	msg := model.NewAssistantMessage(reply)
	if err := s.store.Append(ctx, id, msg); err != nil {
		if req.Stream {
			// Headers are gone; the client sees a short stream.
			s.logger.Error("store reply", zap.String("session", id), zap.Error(err))
			return
		}
		s.internalError(w, "store reply", err)
		return
	}

	if !req.Stream {
		writeData(w, map[string]model.Message{"message": msg})
	}
}

// streamReply writes reply as plain text one word at a time.
func (s *Server) streamReply(ctx context.Context, w http.ResponseWriter, reply string) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	for i, word := range Words(reply) {
		if i > 0 && s.chunkDelay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.chunkDelay):
			}
		}
		if _, err := w.Write([]byte(word)); err != nil {
			return err
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
	return nil
}

// handleClear handles DELETE /api/chat/{session}/clear.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("session")
	if err := s.store.Clear(r.Context(), id); err != nil {
		s.internalError(w, "clear", err)
		return
	}
	s.logger.Info("session cleared", zap.String("session", id))
	writeData(w, map[string]string{"sessionId": id})
}

// handleModel handles POST /api/chat/{session}/model.
func (s *Server) handleModel(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)

	var req chatapi.ModelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Model = strings.TrimSpace(req.Model)
	if req.Model == "" {
		writeError(w, http.StatusBadRequest, "model is required")
		return
	}

	id := r.PathValue("session")
	ctx := r.Context()
	if err := s.store.EnsureSession(ctx, id, req.Model); err != nil {
		s.internalError(w, "ensure session", err)
		return
	}
	if err := s.store.SetModel(ctx, id, req.Model); err != nil {
		s.internalError(w, "set model", err)
		return
	}
	writeData(w, chatapi.ModelRequest{Model: req.Model})
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) isProcessing(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processing[id]
}

func (s *Server) setProcessing(id string, v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v {
		s.processing[id] = true
	} else {
		delete(s.processing, id)
	}
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.logger.Error(op, zap.Error(err))
	writeError(w, http.StatusInternalServerError, op+" failed")
}

// ============================================================================
// REPLIES
// ============================================================================

// Reply returns the canned acknowledgement for a user message.
func Reply(text string) string {
	quote := util.TruncateWidth(strings.Join(strings.Fields(text), " "), quoteWidth)
	return "Noted. I've captured \"" + quote + "\" for your knowledge base. " +
		"This is the development server, so no assistant is reading your notes yet."
}

// Words splits s into chunks that each end after a run of spaces, so the
// chunks concatenate back to s.
func Words(s string) []string {
	var out []string
	start := 0
	inSpace := false
	for i, r := range s {
		if r == ' ' {
			inSpace = true
			continue
		}
		if inSpace {
			out = append(out, s[start:i])
			start = i
			inSpace = false
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

// ============================================================================
// SERVER LIFECYCLE
// ============================================================================

// Start listens on the configured address and blocks until shutdown.
func (s *Server) Start() error {
	s.mu.Lock()
	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	srv := s.server
	s.mu.Unlock()

	s.logger.Info("server start", zap.String("addr", s.addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.server
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	s.logger.Info("server shutdown")
	return srv.Shutdown(ctx)
}

// ============================================================================
// HELPERS
// ============================================================================

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeData[T any](w http.ResponseWriter, data T) {
	writeJSON(w, http.StatusOK, chatapi.APIResponse[T]{Success: true, Data: &data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, chatapi.APIResponse[struct{}]{Success: false, Error: message})
}
