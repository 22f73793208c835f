package store

import (
	"context"
	"database/sql"
)

// schema contains the DDL for all dataset tables.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS dataset_runs (
		id         TEXT PRIMARY KEY,
		kind       TEXT NOT NULL,
		seed       INTEGER NOT NULL,
		batches    INTEGER NOT NULL,
		quanta     TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS dataset_samples (
		run_id   TEXT NOT NULL REFERENCES dataset_runs(id) ON DELETE CASCADE,
		batch    INTEGER NOT NULL,
		features TEXT NOT NULL,
		label    INTEGER NOT NULL,
		score    REAL NOT NULL DEFAULT 0,
		PRIMARY KEY (run_id, batch)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_dataset_runs_created_at ON dataset_runs(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_dataset_samples_label ON dataset_samples(run_id, label)`,
}

// migrate executes all schema DDL statements.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
