package store

import (
	"database/sql"
	"fmt"
)

const schema = `
	CREATE TABLE IF NOT EXISTS llm_request_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL UNIQUE,
		timestamp     TEXT    NOT NULL,
		provider      TEXT    NOT NULL,
		model         TEXT    NOT NULL,
		purpose       TEXT    NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL,
		error_message TEXT    NOT NULL DEFAULT '',
		request_body  TEXT    NOT NULL DEFAULT '',
		response_body TEXT    NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_llm_purpose ON llm_request_events(purpose);
	CREATE INDEX IF NOT EXISTS idx_llm_model   ON llm_request_events(model);

	CREATE TABLE IF NOT EXISTS diagnostic_runs (
		id                 TEXT    PRIMARY KEY,
		catalog_version    TEXT    NOT NULL,
		started_at         TEXT    NOT NULL,
		completed_at       TEXT    NOT NULL,
		answered           INTEGER NOT NULL,
		overall_percentage INTEGER NOT NULL,
		overall_level      TEXT    NOT NULL,
		organisation       TEXT    NOT NULL DEFAULT '',
		focus              TEXT    NOT NULL DEFAULT '',
		result             TEXT    NOT NULL,
		enrichment         TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_completed ON diagnostic_runs(completed_at DESC);

	CREATE TABLE IF NOT EXISTS answer_events (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence     INTEGER NOT NULL UNIQUE,
		timestamp    TEXT    NOT NULL,
		run_id       TEXT    NOT NULL,
		question_id  TEXT    NOT NULL,
		category     TEXT    NOT NULL,
		option_index INTEGER NOT NULL,
		score        INTEGER NOT NULL,
		follow_up    INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_answers_run ON answer_events(run_id);
`

// migrate creates every table and index that does not exist yet.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
