// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package devserver provides a local backend that speaks the chat agent API.
//
// It lets the client run without a real assistant: messages are stored in
// sqlite per session and every user message is answered with a canned
// acknowledgement streamed word by word.
//
// # Endpoints
//
//   - GET    /api/chat/{session}/messages - Session transcript
//   - POST   /api/chat/{session}/chat     - Send a message, stream the reply
//   - DELETE /api/chat/{session}/clear    - Delete the transcript
//   - POST   /api/chat/{session}/model    - Switch the session model
//   - GET    /health                      - Health check
//
// All JSON endpoints answer with the {"success","data","error"} envelope.
// A token bucket shared by all clients answers 429 when exhausted.
//
// # Usage
//
//	store, err := devserver.OpenStore(cfg.DevServer.DatabasePath)
//	srv := devserver.New(cfg.DevServer, store, logger)
//	go srv.Start()
//	defer srv.Shutdown(ctx)
package devserver
