// Copyright (c) 2026 Keymaster Team
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.

// Package core contains the presentation controller shared by the TUI and
// the CLI. It owns the transient form state and the edit session; storage
// lives behind the ContactWriter interface.
package core
