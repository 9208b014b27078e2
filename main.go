// Copyright (c) 2026 Keymaster Team
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for Contactbook.
//
// Usage:
//
//	go run . [flags]
//	./contactbook [flags]
//
// Without a subcommand this launches the interactive TUI. See --help for
// options.
package main

import (
	"os"

	"github.com/toeirei/contactbook/internal/logging"
	"github.com/toeirei/contactbook/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		logging.Errorf("Contactbook CLI error: %v", err)
		os.Exit(1)
	}
}
