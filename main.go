// Zenith Note - a terminal chat companion for your personal knowledge base.
//
// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"os"

	"github.com/praburajasekaran/zenith-note/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
