// Copyright (c) 2026 Keymaster Team
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/toeirei/contactbook/internal/core"
	"github.com/toeirei/contactbook/internal/db"
	"github.com/toeirei/contactbook/internal/i18n"
	"github.com/toeirei/contactbook/internal/live"
	"github.com/toeirei/contactbook/internal/model"
)

// newTestBook opens a private in-memory store wrapped in a Book.
func newTestBook(t *testing.T, seed ...model.Contact) *live.Book {
	t.Helper()
	i18n.Init("en")
	store, err := db.NewStoreFromDSN(db.TypeSQLite, "file:tui_"+strings.ReplaceAll(t.Name(), "/", "_")+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	book := live.NewBook(store)
	t.Cleanup(func() {
		_ = book.Close()
		_ = store.Close()
	})
	for _, c := range seed {
		if err := book.Upsert(context.Background(), c); err != nil {
			t.Fatalf("seed %v: %v", c, err)
		}
	}
	return book
}

func listContacts(t *testing.T, book *live.Book) []model.Contact {
	t.Helper()
	contacts, err := book.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	return contacts
}

// newTestList returns a sized list model showing the book's contacts.
func newTestList(t *testing.T, book *live.Book) (listModel, *core.Controller) {
	t.Helper()
	ctrl := core.NewController(book)
	m := newListModel(context.Background(), ctrl)
	m.setSize(80, 24)
	m.setContacts(listContacts(t, book))
	return m, ctrl
}

// keyPress builds the tea.KeyMsg bubbletea would deliver for s.
func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// runCmd executes cmd and returns its message, or nil for a nil cmd.
func runCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
