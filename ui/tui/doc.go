// Copyright (c) 2026 Keymaster Team
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.

// Package tui implements the terminal UI: a live contact list and the
// add/edit form. Presentation and input handling live here; the edit session
// belongs to core.Controller and storage to live.Book.
package tui
