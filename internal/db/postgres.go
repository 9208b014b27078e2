// Copyright (c) 2025 ToeiRei
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.

// package db provides the data access layer for Contactbook.
// This file contains the PostgreSQL implementation of the database store.
package db // import "github.com/toeirei/contactbook/internal/db"

import (
	"fmt"

	"github.com/jackc/pgx/v5"
)

// PostgresStore is the PostgreSQL implementation of the Store interface.
// Upserts use ON CONFLICT (name) DO UPDATE.
type PostgresStore struct {
	bunStore
}

// validatePostgresDSN parses dsn with pgx so malformed connection strings
// fail before any connection attempt, with pgx's own error message.
func validatePostgresDSN(dsn string) error {
	if _, err := pgx.ParseConfig(dsn); err != nil {
		return fmt.Errorf("invalid postgres dsn: %w", err)
	}
	return nil
}
