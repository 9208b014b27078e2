// Copyright (c) 2025 ToeiRei
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"

	"github.com/toeirei/contactbook/internal/model"
	"github.com/uptrace/bun"
)

// Store defines the interface for all database operations in Contactbook.
// This allows for multiple database backends to be implemented.
type Store interface {
	// Contact methods
	UpsertContact(ctx context.Context, c model.Contact) error
	DeleteContact(ctx context.Context, name string) error
	GetContact(ctx context.Context, name string) (*model.Contact, error)
	GetAllContacts(ctx context.Context) ([]model.Contact, error)
	SearchContacts(ctx context.Context, query string) ([]model.Contact, error)

	// Backup methods
	ExportDataForBackup(ctx context.Context) (*model.BackupData, error)
	ImportDataFromBackup(ctx context.Context, backup *model.BackupData) error
	IntegrateDataFromBackup(ctx context.Context, backup *model.BackupData) error

	// Type returns the database type ("sqlite", "postgres", "mysql").
	Type() string
	// BunDB exposes the underlying bun handle for searchers and helpers.
	BunDB() *bun.DB
	Close() error
}
