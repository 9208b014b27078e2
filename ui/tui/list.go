// Copyright (c) 2026 Keymaster Team
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/toeirei/contactbook/internal/core"
	"github.com/toeirei/contactbook/internal/db"
	"github.com/toeirei/contactbook/internal/i18n"
	"github.com/toeirei/contactbook/internal/model"
)

// clipboardWrite is replaced in tests.
var clipboardWrite = clipboard.WriteAll

// openFormMsg asks the root model to show the form for the controller's
// current state.
type openFormMsg struct{}

// quitMsg asks the root model to leave the program.
type quitMsg struct{}

type listModel struct {
	ctx  context.Context
	ctrl *core.Controller

	contacts  []model.Contact // latest snapshot
	displayed []model.Contact // after filtering
	cursor    int
	filter    string
	filtering bool

	confirmingDelete bool
	toDelete         model.Contact

	viewport viewport.Model
	keys     listKeyMap
	help     help.Model
	status   string
	err      error
	width    int
	height   int
}

func newListModel(ctx context.Context, ctrl *core.Controller) listModel {
	return listModel{
		ctx:      ctx,
		ctrl:     ctrl,
		viewport: viewport.New(0, 0),
		keys:     newListKeyMap(),
		help:     help.New(),
	}
}

// setContacts replaces the snapshot, keeping the cursor on the same name
// when it is still present.
func (m *listModel) setContacts(contacts []model.Contact) {
	var selected string
	if c, ok := m.selected(); ok {
		selected = c.Name
	}
	m.contacts = contacts
	m.rebuild()
	for i, c := range m.displayed {
		if c.Name == selected {
			m.cursor = i
			break
		}
	}
	m.cursor = core.ClampCursor(m.cursor, len(m.displayed))
	m.refreshViewport()
}

func (m *listModel) rebuild() {
	m.displayed = db.FilterContactsByTokens(m.contacts, db.TokenizeSearchQuery(m.filter))
	m.cursor = core.ClampCursor(m.cursor, len(m.displayed))
}

func (m *listModel) selected() (model.Contact, bool) {
	if len(m.displayed) == 0 || m.cursor >= len(m.displayed) {
		return model.Contact{}, false
	}
	return m.displayed[m.cursor], true
}

func (m *listModel) setSize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width
	// title, filter line, status line, help and margins
	m.viewport.Width = max(0, width-4)
	m.viewport.Height = max(1, height-10)
	m.refreshViewport()
}

func (m *listModel) refreshViewport() {
	m.viewport.SetContent(m.listContentView())
	m.viewport.YOffset = core.EnsureCursorInView(m.cursor, m.viewport.YOffset, m.viewport.Height)
}

func (m listModel) Update(raw tea.Msg) (listModel, tea.Cmd) {
	msg, ok := raw.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.confirmingDelete {
		switch msg.String() {
		case "y", "Y":
			m.confirmingDelete = false
			if err := m.ctrl.Delete(m.ctx, m.toDelete); err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			m.status = i18n.T("list.status.deleted", m.toDelete.Name)
		case "n", "N", "esc", "q":
			m.confirmingDelete = false
			m.status = i18n.T("list.status.delete_cancelled")
		}
		return m, nil
	}

	// While filtering, all input goes to the filter.
	if m.filtering {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			m.filtering = false
		case tea.KeyBackspace:
			if r := []rune(m.filter); len(r) > 0 {
				m.filter = string(r[:len(r)-1])
			}
		case tea.KeySpace:
			m.filter += " "
		case tea.KeyRunes:
			m.filter += string(msg.Runes)
		}
		m.rebuild()
		m.refreshViewport()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		return m, nil

	case key.Matches(msg, m.keys.Quit):
		// esc/q first clear an active filter.
		if m.filter != "" && msg.String() != "ctrl+c" {
			m.filter = ""
			m.rebuild()
			m.refreshViewport()
			return m, nil
		}
		return m, func() tea.Msg { return quitMsg{} }

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.refreshViewport()
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.displayed)-1 {
			m.cursor++
			m.refreshViewport()
		}

	case key.Matches(msg, m.keys.Add):
		m.ctrl.Cancel()
		m.status = ""
		return m, func() tea.Msg { return openFormMsg{} }

	case key.Matches(msg, m.keys.Edit):
		if c, ok := m.selected(); ok {
			m.ctrl.Edit(c)
			m.status = ""
			return m, func() tea.Msg { return openFormMsg{} }
		}

	case key.Matches(msg, m.keys.Delete):
		if c, ok := m.selected(); ok {
			m.toDelete = c
			m.confirmingDelete = true
		}

	case key.Matches(msg, m.keys.Copy):
		if c, ok := m.selected(); ok {
			if err := clipboardWrite(c.Phone); err != nil {
				m.status = i18n.T("list.status.copy_failed", err)
			} else {
				m.status = i18n.T("list.status.copied", c.Name)
			}
		}
	}
	return m, nil
}

// listContentView builds the string content for the list viewport.
func (m listModel) listContentView() string {
	nameWidth := 0
	for _, c := range m.displayed {
		nameWidth = max(nameWidth, lipgloss.Width(c.Name))
	}
	var b strings.Builder
	for i, c := range m.displayed {
		prefix := "  "
		style := itemStyle
		if i == m.cursor {
			prefix = "▸ "
			style = selectedItemStyle
		}
		name := c.Name + strings.Repeat(" ", nameWidth-lipgloss.Width(c.Name))
		b.WriteString(style.Render(prefix+name) + "  " + phoneStyle.Render(c.Phone))
		if i < len(m.displayed)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m listModel) viewConfirmation() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		specialStyle.Render(i18n.T("list.delete_confirm.question", m.toDelete.String())),
		"",
		helpStyle.Render(i18n.T("list.delete_confirm.hint")),
	)
	box := dialogBoxStyle.Render(body)
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m listModel) View() string {
	if m.confirmingDelete {
		return m.viewConfirmation()
	}

	items := []string{titleStyle.Render(fmt.Sprintf("%s · %s (%d)", i18n.T("app.title"), i18n.T("list.title"), len(m.contacts)))}

	switch {
	case len(m.displayed) > 0:
		items = append(items, m.viewport.View())
	case m.filter != "":
		items = append(items, helpStyle.Render(i18n.T("list.empty_filtered")))
	default:
		items = append(items, helpStyle.Render(i18n.T("list.empty")))
	}

	items = append(items, "")
	if m.filtering {
		items = append(items, i18n.T("list.filtering", m.filter+"█"))
	} else if m.filter != "" {
		items = append(items, helpStyle.Render(i18n.T("list.filter_active", m.filter)))
	}
	if m.err != nil {
		items = append(items, errorStyle.Render(i18n.T("list.error", m.err)))
	} else if m.status != "" {
		items = append(items, successStyle.Render(m.status))
	}
	items = append(items, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}
