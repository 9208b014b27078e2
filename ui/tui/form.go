// Copyright (c) 2026 Keymaster Team
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-viper/mapstructure/v2"

	"github.com/toeirei/contactbook/internal/core"
	"github.com/toeirei/contactbook/internal/i18n"
	"github.com/toeirei/contactbook/internal/model"
)

// contactSavedMsg signals that the form saved a contact.
type contactSavedMsg struct {
	contact model.Contact
}

// formClosedMsg signals that the form was cancelled.
type formClosedMsg struct{}

// formField is one input of the form; id matches the mapstructure tag of
// the model.Contact field it edits.
type formField struct {
	id    string
	input textinput.Model
}

const (
	fieldName = iota
	fieldPhone
)

type formModel struct {
	ctx        context.Context
	ctrl       *core.Controller
	fields     []formField
	focusIndex int // len(fields) is the submit button
	keys       formKeyMap
	help       help.Model
	err        error
}

// newFormModel builds the form from the controller state: empty for a new
// contact, prefilled with the name locked during an edit session.
func newFormModel(ctx context.Context, ctrl *core.Controller) formModel {
	m := formModel{
		ctx:  ctx,
		ctrl: ctrl,
		keys: newFormKeyMap(),
		help: help.New(),
	}
	for _, id := range []string{"name", "phone"} {
		t := textinput.New()
		t.Cursor.Style = focusedStyle
		t.CharLimit = 128
		t.Width = 40
		switch id {
		case "name":
			t.Prompt = fmt.Sprintf("%-8s", i18n.T("form.name")+":")
			t.Placeholder = "Ana Souza"
		case "phone":
			t.Prompt = fmt.Sprintf("%-8s", i18n.T("form.phone")+":")
			t.Placeholder = "+55 11 91234-5678"
		}
		m.fields = append(m.fields, formField{id: id, input: t})
	}

	_ = m.set(model.Contact{Name: ctrl.Name(), Phone: ctrl.Phone()})

	if m.editing() {
		m.fields[fieldName].input.PromptStyle = disabledStyle
		m.fields[fieldName].input.TextStyle = disabledStyle
		m.focusIndex = fieldPhone
	}
	m.fields[m.focusIndex].input.Focus()
	m.fields[m.focusIndex].input.TextStyle = focusedStyle
	return m
}

func (m formModel) editing() bool {
	_, ok := m.ctrl.Editing()
	return ok
}

// get decodes the field values into a Contact.
func (m formModel) get() (model.Contact, error) {
	values := make(map[string]any, len(m.fields))
	for _, f := range m.fields {
		values[f.id] = f.input.Value()
	}
	var c model.Contact
	err := mapstructure.Decode(values, &c)
	return c, err
}

// set fills the fields from c.
func (m *formModel) set(c model.Contact) error {
	values := make(map[string]any, len(m.fields))
	if err := mapstructure.Decode(c, &values); err != nil {
		return err
	}
	for i := range m.fields {
		if v, ok := values[m.fields[i].id].(string); ok {
			m.fields[i].input.SetValue(v)
		}
	}
	return nil
}

func (m formModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m formModel) Update(msg tea.Msg) (formModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.ctrl.Cancel()
			return m, func() tea.Msg { return formClosedMsg{} }

		case key.Matches(msg, m.keys.Submit) && m.focusIndex == len(m.fields),
			key.Matches(msg, m.keys.Submit) && m.focusIndex == fieldPhone:
			return m.submit()

		case key.Matches(msg, m.keys.Next), key.Matches(msg, m.keys.Submit):
			return m, m.moveFocus(1)

		case key.Matches(msg, m.keys.Prev):
			return m, m.moveFocus(-1)
		}
	}

	cmds := make([]tea.Cmd, len(m.fields))
	for i := range m.fields {
		m.fields[i].input, cmds[i] = m.fields[i].input.Update(msg)
	}
	m.sync()
	return m, tea.Batch(cmds...)
}

// sync copies the field values into the controller.
func (m formModel) sync() {
	c, err := m.get()
	if err != nil {
		return
	}
	if !m.editing() {
		m.ctrl.SetName(c.Name)
	}
	m.ctrl.SetPhone(c.Phone)
}

func (m formModel) submit() (formModel, tea.Cmd) {
	m.sync()
	saved, err := m.ctrl.Submit(m.ctx)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	return m, func() tea.Msg { return contactSavedMsg{contact: saved} }
}

// moveFocus cycles through the editable fields and the submit button. The
// name field is skipped during an edit session.
func (m *formModel) moveFocus(delta int) tea.Cmd {
	first := fieldName
	if m.editing() {
		first = fieldPhone
	}
	n := len(m.fields) + 1 - first
	m.focusIndex = first + ((m.focusIndex-first+delta)%n+n)%n

	cmds := make([]tea.Cmd, len(m.fields))
	for i := range m.fields {
		if i == m.focusIndex {
			cmds[i] = m.fields[i].input.Focus()
			m.fields[i].input.TextStyle = focusedStyle
			continue
		}
		m.fields[i].input.Blur()
		m.fields[i].input.TextStyle = lipgloss.NewStyle()
		if m.editing() && i == fieldName {
			m.fields[i].input.TextStyle = disabledStyle
		}
	}
	return tea.Batch(cmds...)
}

func (m formModel) View() string {
	var items []string
	if edited, ok := m.ctrl.Editing(); ok {
		items = append(items, titleStyle.Render(i18n.T("form.title.edit", edited.Name)))
	} else {
		items = append(items, titleStyle.Render(i18n.T("form.title.add")))
	}

	for i := range m.fields {
		items = append(items, m.fields[i].input.View())
	}
	if m.editing() {
		items = append(items, helpStyle.Render(i18n.T("form.name_locked")))
	}

	button := buttonStyle.Render(i18n.T("form.submit"))
	if m.focusIndex == len(m.fields) {
		button = activeButtonStyle.Render(i18n.T("form.submit"))
	}
	items = append(items, "", button)

	if m.err != nil {
		items = append(items, "", errorStyle.Render(i18n.T("form.error", m.err)))
	}
	items = append(items, "", m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}
