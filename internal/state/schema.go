package state

import (
	"database/sql"

	"github.com/cockroachdb/errors"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS session (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			source TEXT NOT NULL,
			track_index INTEGER NOT NULL DEFAULT 0,
			volume REAL NOT NULL DEFAULT 80,
			shuffle INTEGER NOT NULL DEFAULT 0,
			repeat INTEGER NOT NULL DEFAULT 0,
			mood TEXT,
			updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS recent_sources (
			path TEXT PRIMARY KEY,
			last_used_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_recent_sources_last_used ON recent_sources(last_used_at DESC);
	`)
	if err != nil {
		return errors.Wrap(err, "create schema")
	}

	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return errors.Wrap(err, "record schema version")
}
