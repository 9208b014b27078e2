// Package db contains the data-access layer for Contactbook.
//
// A single `contacts` table keyed by name is reached through bun on SQLite,
// PostgreSQL or MySQL. The dialect is picked from the configured database
// type and migrations are embedded per engine under `migrations/<type>`.
//
// DI helpers
//   - `New` returns a Store; there is no package-level store.
//   - Consumers that only search depend on `ContactSearcher`. Tests inject
//     `FakeContactSearcher` without a database.
//
// Upsert semantics
//   - `UpsertContact` inserts a row or replaces the phone of the row with the
//     same name. `created_at` survives the update so listing stays in
//     insertion order.
//   - `DeleteContact` on a missing name is a no-op.
//
// Testing notes
//   - Prefer `db.NewStoreFromDSN("sqlite", "file:<name>?mode=memory&cache=shared")` in
//     tests that need real DB semantics and migrations.
//   - Postgres and MySQL tests run only when INTEGRATION_DB and
//     INTEGRATION_DSN are set.
package db
