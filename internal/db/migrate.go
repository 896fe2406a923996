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

// migrations are executed in order on every open. Statements must be
// idempotent: CREATE ... IF NOT EXISTS, or ALTER TABLE whose duplicate
// column failure Migrate tolerates.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id                 TEXT PRIMARY KEY,
		source_file        TEXT NOT NULL,
		report_date        TEXT NOT NULL DEFAULT '',
		date_range         TEXT NOT NULL DEFAULT '',
		report_year        INTEGER NOT NULL DEFAULT 0,
		pet_name           TEXT NOT NULL DEFAULT '',
		pet_age            TEXT NOT NULL DEFAULT '',
		pet_weight         TEXT NOT NULL DEFAULT '',
		date               TEXT NOT NULL,
		session_number     INTEGER NOT NULL,
		exit_time          TEXT NOT NULL,
		entry_time         TEXT NOT NULL,
		duration_min       REAL NOT NULL,
		cross_midnight     INTEGER NOT NULL DEFAULT 0,
		reported_visits    INTEGER NOT NULL DEFAULT -1,
		reported_total_min REAL NOT NULL DEFAULT -1,
		calc_visits        INTEGER NOT NULL DEFAULT 0,
		calc_total_min     REAL NOT NULL DEFAULT 0
	)`,

	// One row per physical pet-door event: re-merging a report that was
	// already merged must not duplicate its sessions.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_identity
		ON sessions(pet_name, date, exit_time, entry_time)`,

	`CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions(date)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_source ON sessions(source_file)`,

	`ALTER TABLE sessions ADD COLUMN extracted_at TEXT NOT NULL DEFAULT ''`,
}
