// Package sqlite provides the SQLite-backed invocation history.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files; only up migrations are applied.
//
// # Data Location
//
// By default, the database is stored at ~/.drivegate/data/history.db
//
// # Thread Safety
//
// All operations are thread-safe. The store runs SQLite in WAL mode with a
// busy timeout so concurrent request handlers can record at the same time.
package sqlite
