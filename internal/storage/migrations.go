package storage

import "fmt"

// migrate creates the lookup cache schema if it doesn't exist.
func (db *DB) migrate() error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	db.logger.Info("database migrations applied")
	return nil
}

var migrations = []string{
	// Resolved train stations, keyed by the lowercased lookup name.
	`CREATE TABLE IF NOT EXISTS stations (
		name_key     TEXT PRIMARY KEY,
		signature    TEXT NOT NULL,
		station_name TEXT NOT NULL,
		advertised   TEXT,
		resolved_at  TEXT NOT NULL
	)`,

	// Resolved ferry routes, keyed by the lowercased lookup name.
	`CREATE TABLE IF NOT EXISTS ferry_routes (
		name_key    TEXT PRIMARY KEY,
		route_id    TEXT NOT NULL,
		route_name  TEXT NOT NULL,
		short_name  TEXT,
		route_type  TEXT,
		resolved_at TEXT NOT NULL
	)`,

	// Miscellaneous key-value state
	`CREATE TABLE IF NOT EXISTS metadata (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
}
