// Copyright (c) 2025 ToeiRei
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"strings"
	"testing"
)

// WithTestStore opens an in-memory sqlite Store named after the test for the
// duration of fn.
func WithTestStore(t *testing.T, fn func(s *SqliteStore)) {
	t.Helper()

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	st, err := NewStoreFromDSN(TypeSQLite, dsn)
	if err != nil {
		t.Fatalf("NewStoreFromDSN failed: %v", err)
	}
	s, ok := st.(*SqliteStore)
	if !ok {
		t.Fatalf("store is not *SqliteStore")
	}
	defer func() { _ = s.Close() }()

	fn(s)
}
