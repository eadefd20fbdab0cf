package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
)

const (
	kvTable      = "kv_entries"
	historyTable = "session_records"
	llmTable     = "llm_requests"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS ` + kvTable + ` (
		key        TEXT    NOT NULL PRIMARY KEY,
		value      TEXT    NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ` + historyTable + ` (
		id          TEXT    NOT NULL PRIMARY KEY,
		sequence    INTEGER NOT NULL,
		category    TEXT    NOT NULL,
		difficulty  TEXT    NOT NULL,
		score       INTEGER NOT NULL,
		total       INTEGER NOT NULL,
		best_streak INTEGER NOT NULL,
		finished_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS ` + historyTable + `_finished_at ON ` + historyTable + ` (finished_at)`,
	`CREATE TABLE IF NOT EXISTS ` + llmTable + ` (
		sequence      INTEGER NOT NULL PRIMARY KEY,
		timestamp     INTEGER NOT NULL,
		provider      TEXT    NOT NULL,
		model         TEXT    NOT NULL,
		purpose       TEXT    NOT NULL,
		input_tokens  INTEGER NOT NULL,
		output_tokens INTEGER NOT NULL,
		latency_ms    INTEGER NOT NULL,
		success       INTEGER NOT NULL,
		error_message TEXT    NOT NULL DEFAULT ''
	)`,
}

// migrate creates every table and index that does not exist yet.
func migrate(ctx context.Context, drv dialect.ExecQuerier) error {
	for _, stmt := range schema {
		if err := drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
