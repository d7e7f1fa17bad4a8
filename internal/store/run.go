package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrRunNotFound is returned when updating a run that does not exist.
var ErrRunNotFound = errors.New("run not found")

// runRepo implements RunRepo with raw SQL.
type runRepo struct {
	db *sql.DB
}

func (r *runRepo) SaveRun(ctx context.Context, run *RunRecord) error {
	if run.ID == "" {
		return fmt.Errorf("save run: empty ID")
	}
	if !json.Valid(run.Result) {
		return fmt.Errorf("save run %s: result is not valid JSON", run.ID)
	}

	var enrichment any
	if len(run.Enrichment) > 0 {
		enrichment = string(run.Enrichment)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO diagnostic_runs (
			id, catalog_version, started_at, completed_at, answered,
			overall_percentage, overall_level, organisation, focus, result, enrichment
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CatalogVersion, formatTime(run.StartedAt), formatTime(run.CompletedAt), run.Answered,
		run.OverallPercentage, run.OverallLevel, run.Organisation, strings.Join(run.Focus, "\n"), string(run.Result), enrichment,
	)
	if err != nil {
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}
	return nil
}

const runColumns = `id, catalog_version, started_at, completed_at, answered,
	overall_percentage, overall_level, organisation, focus, result, enrichment`

func (r *runRepo) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM diagnostic_runs WHERE id = ?", id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return run, err
}

func (r *runRepo) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	query := "SELECT " + runColumns + " FROM diagnostic_runs ORDER BY completed_at DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *run)
	}
	return out, rows.Err()
}

func (r *runRepo) AttachEnrichment(ctx context.Context, id string, enrichment json.RawMessage) error {
	if !json.Valid(enrichment) {
		return fmt.Errorf("attach enrichment to %s: not valid JSON", id)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE diagnostic_runs SET enrichment = ? WHERE id = ?`, string(enrichment), id)
	if err != nil {
		return fmt.Errorf("attach enrichment to %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("attach enrichment to %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("attach enrichment to %s: %w", id, ErrRunNotFound)
	}
	return nil
}

func scanRun(row rowScanner) (*RunRecord, error) {
	var (
		run                RunRecord
		started, completed string
		focus, result      string
		enrichment         sql.NullString
	)
	err := row.Scan(&run.ID, &run.CatalogVersion, &started, &completed, &run.Answered,
		&run.OverallPercentage, &run.OverallLevel, &run.Organisation, &focus, &result, &enrichment)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}

	if run.StartedAt, err = parseTime(started); err != nil {
		return nil, err
	}
	if run.CompletedAt, err = parseTime(completed); err != nil {
		return nil, err
	}
	if focus != "" {
		run.Focus = strings.Split(focus, "\n")
	}
	run.Result = json.RawMessage(result)
	if enrichment.Valid {
		run.Enrichment = json.RawMessage(enrichment.String)
	}
	return &run, nil
}
