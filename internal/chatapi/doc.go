// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chatapi is the HTTP client for the Zenith agent backend.
//
// The backend exposes one resource per conversation, rooted at
// {base}/api/chat/{sessionId}:
//
//	GET    /messages  -> {"success":true,"data":{"messages":[...]}}
//	POST   /chat      {"message","model","stream":true} -> raw text stream
//	DELETE /clear     -> {"success":true}
//	POST   /model     {"model"} -> {"success":true}
//
// Client implements session.Service. Session ids are minted locally, so
// NewSession never touches the network.
//
// # Usage
//
//	c := chatapi.New("http://127.0.0.1:8787", chatapi.WithModel("gpt-4o"))
//	defer c.Close()
//	err := c.SendMessage(ctx, "Create a note about Go", "", func(chunk string) {
//	    fmt.Print(chunk)
//	})
package chatapi
