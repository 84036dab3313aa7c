// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and saving for Zenith Note.
//
// # Configuration Precedence
//
// Configuration is resolved from (highest precedence first):
//   - Environment variables (ZENITH_*), including any set by a .env file
//   - ~/.zenith/config.toml (or $ZENITH_HOME/config.toml)
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Server.URL)
//
// Save writes the file atomically with 0600 permissions; the theme manager
// uses it to persist the dark/light preference.
package config
