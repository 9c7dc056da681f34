package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS athletes (
		id         TEXT PRIMARY KEY,
		email      TEXT NOT NULL,
		chat_id    TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_athletes_email ON athletes(email)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_athletes_chat_id ON athletes(chat_id) WHERE chat_id != ''`,

	`CREATE TABLE IF NOT EXISTS plan_versions (
		id         TEXT PRIMARY KEY,
		athlete_id TEXT NOT NULL REFERENCES athletes(id) ON DELETE CASCADE,
		version    INTEGER NOT NULL CHECK(version > 0),
		macro_plan TEXT,
		weeks      TEXT NOT NULL,
		created_at TEXT NOT NULL,
		UNIQUE(athlete_id, version)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plan_versions_athlete ON plan_versions(athlete_id)`,

	`CREATE TABLE IF NOT EXISTS session_records (
		id           TEXT PRIMARY KEY,
		plan_id      TEXT NOT NULL REFERENCES plan_versions(id) ON DELETE CASCADE,
		date         TEXT NOT NULL,
		session_type TEXT NOT NULL,
		status       TEXT NOT NULL DEFAULT 'pending'
		             CHECK(status IN ('pending','completed','modified','skipped')),
		skip_reason  TEXT NOT NULL DEFAULT '',
		rpe          TEXT NOT NULL DEFAULT '',
		cue_feedback TEXT NOT NULL DEFAULT '',
		notes        TEXT NOT NULL DEFAULT '',
		completed_at TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_session_records_plan ON session_records(plan_id)`,
	`CREATE INDEX IF NOT EXISTS idx_session_records_date ON session_records(date)`,
}
