// Copyright (c) 2025 ToeiRei
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.

// package db provides the data access layer for Contactbook.
// This file contains the MySQL implementation of the database store.
package db // import "github.com/toeirei/contactbook/internal/db"

import (
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// MySQLStore is the MySQL implementation of the Store interface.
// Upserts use ON DUPLICATE KEY UPDATE.
type MySQLStore struct {
	bunStore
}

// normalizeMySQLDSN forces parseTime so DATETIME columns scan into
// time.Time, which the contacts model relies on.
func normalizeMySQLDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}
