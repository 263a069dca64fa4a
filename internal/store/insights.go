package store

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
)

type InsightStore struct {
	db *sqlx.DB
}

func (is *InsightStore) InsertInsightEntries(ctx context.Context, entries []InsightEntry) error {
	query := `INSERT INTO insight_entries (
		run_id,
		rule,
		list_position,
		contract_no,
		order_no,
		naics,
		awardee,
		months_remaining,
		sb_dollars,
		size_status,
		set_aside_description,
		inserted_at
	) VALUES (
		:run_id,
		:rule,
		:list_position,
		:contract_no,
		:order_no,
		:naics,
		:awardee,
		:months_remaining,
		:sb_dollars,
		:size_status,
		:set_aside_description,
		:inserted_at
	)`

	tx, err := is.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i := range entries {
		if _, err := tx.NamedExecContext(ctx, query, &entries[i]); err != nil {
			return fmt.Errorf("failed to insert insight entry %s/%s: %w", entries[i].Rule, entries[i].ContractNo, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Printf("Insertion successful, %d insight entries stored.", len(entries))
	return nil
}

// GetInsightEntries returns the latest run's entries for one rule, preserving
// the months-remaining ordering the filter produced.
func (is *InsightStore) GetInsightEntries(ctx context.Context, rule string, limit int) ([]InsightEntry, error) {
	query := `
	SELECT
		id, run_id, rule, list_position, contract_no, order_no, naics, awardee,
		months_remaining, sb_dollars, size_status, set_aside_description,
		inserted_at
	FROM insight_entries
	WHERE rule = $1
		AND run_id = (SELECT COALESCE(MAX(run_id), 0) FROM insight_entries WHERE rule = $1)
	ORDER BY list_position ASC
	LIMIT $2`

	if limit <= 0 {
		limit = 500
	}

	entries := []InsightEntry{}
	if err := is.db.SelectContext(ctx, &entries, query, rule, limit); err != nil {
		return nil, fmt.Errorf("failed to query insight entries: %w", err)
	}
	return entries, nil
}
