// Copyright (c) 2026 Keymaster Team
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.

// package model defines the core data structures for Contactbook.
package model // import "github.com/toeirei/contactbook/internal/model"

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyName is returned when a contact would be stored under a blank name.
var ErrEmptyName = errors.New("contact name cannot be empty")

// Contact is a single entry in the contact list. Name is the primary key;
// there is at most one stored contact per name.
type Contact struct {
	Name  string `json:"name" mapstructure:"name"`
	Phone string `json:"phone" mapstructure:"phone"`
}

// String returns the "name <phone>" representation.
func (c Contact) String() string {
	if c.Phone == "" {
		return c.Name
	}
	return fmt.Sprintf("%s <%s>", c.Name, c.Phone)
}

// Normalize returns a copy with surrounding whitespace removed from both fields.
func (c Contact) Normalize() Contact {
	return Contact{
		Name:  strings.TrimSpace(c.Name),
		Phone: strings.TrimSpace(c.Phone),
	}
}

// Validate reports ErrEmptyName when the normalized name is blank.
func (c Contact) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// BackupData holds every contact for export and restore.
type BackupData struct {
	SchemaVersion int       `json:"schema_version"`
	Contacts      []Contact `json:"contacts"`
}
