package store

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
)

type RunStore struct {
	db *sqlx.DB
}

var (
	TriggerTypeManual    = "manual"
	TriggerTypeScheduled = "scheduled"
)

var (
	RunStatusInProgress = "in_progress"
	RunStatusSuccess    = "success"
	RunStatusFailure    = "failure"
	RunStatusSkipped    = "skipped"
)

func (rs *RunStore) InsertPipelineRun(ctx context.Context, run *PipelineRun) error {
	query := `INSERT INTO pipeline_runs (
		trigger_type,
		source_files,
		rules,
		status,
		contract_count,
		error_message
	) VALUES (
		:trigger_type,
		:source_files,
		:rules,
		:status,
		:contract_count,
		:error_message
	) RETURNING id, started_at`

	rows, err := rs.db.NamedQuery(query, run)
	if err != nil {
		return err
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&run.ID, &run.StartedAt); err != nil {
			return err
		}
	}

	log.Printf("Pipeline run recorded with ID: %d", run.ID)
	return nil
}

func (rs *RunStore) CompleteRun(ctx context.Context, id int64, status string, contractCount int, errorMessage string) error {
	query := `UPDATE pipeline_runs
		SET status = $2, contract_count = $3, error_message = $4, completed_at = NOW()
		WHERE id = $1`

	result, err := rs.db.ExecContext(ctx, query, id, status, contractCount, errorMessage)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("pipeline run %d not found", id)
	}
	return nil
}

func (rs *RunStore) GetLatest(ctx context.Context, limit int) ([]PipelineRun, error) {
	query := `
	SELECT
		id, trigger_type, source_files, rules, status,
		contract_count, error_message, started_at, completed_at
	FROM pipeline_runs
	ORDER BY started_at DESC
	LIMIT $1`

	if limit <= 0 {
		limit = 20
	}

	runs := []PipelineRun{}
	if err := rs.db.SelectContext(ctx, &runs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query pipeline runs: %w", err)
	}
	return runs, nil
}
