// Copyright (c) 2026 Keymaster Team
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/toeirei/contactbook/internal/core"
	"github.com/toeirei/contactbook/internal/i18n"
	"github.com/toeirei/contactbook/internal/logging"
	"github.com/toeirei/contactbook/internal/model"
)

// Subscriber provides the live contact list. *live.Book satisfies it.
type Subscriber interface {
	Subscribe(ctx context.Context) (<-chan []model.Contact, error)
}

// viewState represents which part of the UI is currently active.
type viewState int

const (
	listView viewState = iota
	formView
)

// contactsMsg carries a snapshot from the subscription; ok is false once
// the subscription channel is closed.
type contactsMsg struct {
	contacts []model.Contact
	ok       bool
}

// mainModel routes messages to the list or the form.
type mainModel struct {
	ctx    context.Context
	ctrl   *core.Controller
	sub    <-chan []model.Contact
	state  viewState
	list   listModel
	form   formModel
	width  int
	height int
}

func newMainModel(ctx context.Context, ctrl *core.Controller, sub <-chan []model.Contact) mainModel {
	return mainModel{
		ctx:  ctx,
		ctrl: ctrl,
		sub:  sub,
		list: newListModel(ctx, ctrl),
	}
}

// waitForContacts reads the next snapshot. It is re-issued after every
// contactsMsg so the subscription is drained for the lifetime of the program.
func waitForContacts(sub <-chan []model.Contact) tea.Cmd {
	return func() tea.Msg {
		contacts, ok := <-sub
		return contactsMsg{contacts: contacts, ok: ok}
	}
}

func (m mainModel) Init() tea.Cmd {
	return waitForContacts(m.sub)
}

func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.setSize(msg.Width, msg.Height)
		m.form.help.Width = msg.Width
		return m, nil

	case contactsMsg:
		if !msg.ok {
			logging.Debugf("tui: subscription closed")
			return m, tea.Quit
		}
		m.list.setContacts(msg.contacts)
		return m, waitForContacts(m.sub)

	case openFormMsg:
		m.state = formView
		m.form = newFormModel(m.ctx, m.ctrl)
		m.form.help.Width = m.width
		return m, m.form.Init()

	case contactSavedMsg:
		m.state = listView
		m.list.err = nil
		m.list.status = i18n.T("list.status.saved", msg.contact.Name)
		return m, nil

	case formClosedMsg:
		m.state = listView
		return m, nil

	case quitMsg:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	switch m.state {
	case formView:
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.form, cmd = m.form.Update(msg)
	default:
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m mainModel) View() string {
	if m.state == formView {
		return docStyle.Render(m.form.View())
	}
	if m.list.confirmingDelete {
		return m.list.View()
	}
	return docStyle.Render(m.list.View())
}

// Run starts the TUI on the alternate screen and blocks until the user
// quits, ctx is cancelled or the subscription ends.
func Run(ctx context.Context, book Subscriber, ctrl *core.Controller) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sub, err := book.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe to contacts: %w", err)
	}

	p := tea.NewProgram(newMainModel(ctx, ctrl, sub), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		logging.Errorf("TUI run error: %v", err)
		return err
	}
	return nil
}
