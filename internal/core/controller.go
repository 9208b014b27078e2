// Copyright (c) 2025 ToeiRei
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/toeirei/contactbook/internal/logging"
	"github.com/toeirei/contactbook/internal/model"
)

// ContactWriter is the subset of the record store the Controller mutates.
// *live.Book satisfies it.
type ContactWriter interface {
	Upsert(ctx context.Context, c model.Contact) error
	Delete(ctx context.Context, c model.Contact) error
}

// Controller holds the form inputs and the optional edit session, and turns
// user actions into store calls. It is not safe for concurrent use; the TUI
// drives it from the bubbletea loop only.
type Controller struct {
	store   ContactWriter
	name    string
	phone   string
	editing *model.Contact
}

// NewController returns a Controller with empty inputs and no edit session.
func NewController(store ContactWriter) *Controller {
	return &Controller{store: store}
}

func (c *Controller) Name() string  { return c.name }
func (c *Controller) Phone() string { return c.phone }

func (c *Controller) SetName(v string)  { c.name = v }
func (c *Controller) SetPhone(v string) { c.phone = v }

// Editing returns the contact under edit, if any.
func (c *Controller) Editing() (model.Contact, bool) {
	if c.editing == nil {
		return model.Contact{}, false
	}
	return *c.editing, true
}

// Edit copies contact into the inputs and starts an edit session for it.
func (c *Controller) Edit(contact model.Contact) {
	cp := contact
	c.editing = &cp
	c.name = contact.Name
	c.phone = contact.Phone
	logging.Debugf("core: editing %q", contact.Name)
}

// Cancel drops the edit session and clears the inputs.
func (c *Controller) Cancel() {
	c.editing = nil
	c.name = ""
	c.phone = ""
}

// Submit saves the inputs. During an edit session the record keeps its
// original name and only the phone changes; otherwise a contact is created
// from both inputs, replacing any existing one with the same name. The
// inputs are cleared on success and kept on failure.
func (c *Controller) Submit(ctx context.Context) (model.Contact, error) {
	var rec model.Contact
	if c.editing != nil {
		rec = model.Contact{Name: c.editing.Name, Phone: strings.TrimSpace(c.phone)}
	} else {
		rec = model.Contact{Name: c.name, Phone: c.phone}.Normalize()
	}
	if err := rec.Validate(); err != nil {
		return model.Contact{}, err
	}

	if err := c.store.Upsert(ctx, rec); err != nil {
		return model.Contact{}, fmt.Errorf("save %q: %w", rec.Name, err)
	}
	logging.Infof("saved contact %q", rec.Name)
	c.Cancel()
	return rec, nil
}

// Delete removes contact from the store. Deleting the contact under edit
// also ends the edit session.
func (c *Controller) Delete(ctx context.Context, contact model.Contact) error {
	if err := c.store.Delete(ctx, contact); err != nil {
		return fmt.Errorf("delete %q: %w", contact.Name, err)
	}
	logging.Infof("deleted contact %q", contact.Name)
	if c.editing != nil && c.editing.Name == contact.Name {
		c.Cancel()
	}
	return nil
}
