// Copyright (c) 2026 Keymaster Team
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"path/filepath"
	"testing"
)

// TestDBPoolDefaultsSQLite verifies that NewStoreFromDSN applies the default
// MaxOpenConns to file-backed SQLite and pins in-memory databases to a single
// connection.
func TestDBPoolDefaultsSQLite(t *testing.T) {
	t.Setenv("CONTACTBOOK_DB_MAX_OPEN_CONNS", "")
	t.Setenv("CONTACTBOOK_DB_MAX_IDLE_CONNS", "")

	cases := []struct {
		name string
		dsn  string
		want int
	}{
		{"file", filepath.Join(t.TempDir(), "pool.db"), 25},
		{"memory", "file:TestDBPoolDefaultsSQLite?mode=memory&cache=shared", 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := NewStoreFromDSN("sqlite", c.dsn)
			if err != nil {
				t.Fatalf("NewStoreFromDSN returned error: %v", err)
			}
			defer func() { _ = s.Close() }()
			ss, ok := s.(*SqliteStore)
			if !ok {
				t.Fatalf("expected *SqliteStore, got %T", s)
			}
			if got := ss.BunDB().DB.Stats().MaxOpenConnections; got != c.want {
				t.Fatalf("MaxOpenConnections = %d; want %d", got, c.want)
			}
		})
	}
}

func TestDBPoolEnvOverride(t *testing.T) {
	t.Setenv("CONTACTBOOK_DB_MAX_OPEN_CONNS", "7")

	s, err := NewStoreFromDSN("sqlite", filepath.Join(t.TempDir(), "env.db"))
	if err != nil {
		t.Fatalf("NewStoreFromDSN returned error: %v", err)
	}
	defer func() { _ = s.Close() }()
	if got := s.BunDB().DB.Stats().MaxOpenConnections; got != 7 {
		t.Fatalf("MaxOpenConnections = %d; want 7", got)
	}
}

func TestNewStoreFromDSN_UnsupportedType(t *testing.T) {
	if _, err := NewStoreFromDSN("oracle", "x"); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
}

func TestSqliteFilePath(t *testing.T) {
	abs, err := filepath.Abs("contactbook.db")
	if err != nil {
		t.Fatal(err)
	}
	cases := map[string]string{
		"./contactbook.db":                  abs,
		"file:contactbook.db?_pragma=x":     abs,
		":memory:":                          "",
		"file:foo?mode=memory&cache=shared": "",
	}
	for dsn, want := range cases {
		if got := sqliteFilePath(dsn); got != want {
			t.Errorf("sqliteFilePath(%q) = %q; want %q", dsn, got, want)
		}
	}
}
