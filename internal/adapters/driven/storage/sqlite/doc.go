// Package sqlite provides a SQLite-based implementation of the profile library.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Imported profiles are stored with their
// raw bytes so they can be decoded again without the original file.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.flamesearch/data/profiles.db
package sqlite
