// Copyright (c) 2026 Keymaster Team
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/toeirei/contactbook/internal/i18n"
)

type listKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Copy   key.Binding
	Filter key.Binding
	Quit   key.Binding
}

// newListKeyMap is built after i18n.Init so the help text is translated.
func newListKeyMap() listKeyMap {
	return listKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", i18n.T("help.up"))),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", i18n.T("help.down"))),
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", i18n.T("help.add"))),
		Edit:   key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e/enter", i18n.T("help.edit"))),
		Delete: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", i18n.T("help.delete"))),
		Copy:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", i18n.T("help.copy"))),
		Filter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", i18n.T("help.filter"))),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q/esc", i18n.T("help.quit"))),
	}
}

func (k listKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.Copy, k.Filter, k.Quit}
}

func (k listKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, k.ShortHelp()}
}

type formKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Cancel key.Binding
}

func newFormKeyMap() formKeyMap {
	return formKeyMap{
		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", i18n.T("help.next"))),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", i18n.T("help.save"))),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", i18n.T("help.cancel"))),
	}
}

func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Submit, k.Cancel}
}

func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var (
	_ help.KeyMap = listKeyMap{}
	_ help.KeyMap = formKeyMap{}
)
