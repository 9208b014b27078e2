// Copyright (c) 2025 ToeiRei
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.

// package db provides the data access layer for Contactbook.
// This file contains the SQLite implementation of the database store.
package db // import "github.com/toeirei/contactbook/internal/db"

import (
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SqliteStore is the SQLite implementation of the Store interface.
type SqliteStore struct {
	bunStore
}

// FilePath returns the absolute path of the database file behind the DSN, or
// "" for in-memory databases. The live package watches this file to notice
// writes made by other processes.
func (s *SqliteStore) FilePath() string {
	return sqliteFilePath(s.dsn)
}

// sqliteFilePath extracts the filesystem path from an SQLite DSN such as
// "./contactbook.db" or "file:contactbook.db?_pragma=busy_timeout(5000)".
func sqliteFilePath(dsn string) string {
	if isMemoryDSN(dsn) || dsn == "" {
		return ""
	}
	p := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return ""
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
