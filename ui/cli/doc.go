// Copyright (c) 2026 Keymaster Team
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line interface for Contactbook using Cobra.
// It loads configuration, opens the store and either starts the TUI or runs
// one of the scripting subcommands against the same live.Book.
package cli
