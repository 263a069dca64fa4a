package store

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type ContractStore struct {
	db *sqlx.DB
}

// ContractFilter narrows GetContractActions. Zero values mean "no filter";
// NAICSCodes matches any of the listed 6-digit codes.
type ContractFilter struct {
	Source     string
	SizeStatus string
	NAICSCodes []string
	RunID      int64
	Limit      int
}

func (cs *ContractStore) InsertContractActions(ctx context.Context, actions []ContractAction) error {
	query := `INSERT INTO contract_actions (
		run_id,
		contract_no,
		order_no,
		modification_no,
		award_date,
		effective_date,
		expiration_date,
		contract_type,
		contract_action_type,
		naics,
		requirements_description,
		place_of_performance,
		set_aside_description,
		size_status,
		sb_dollars,
		awardee,
		sdb_actions,
		sdvosb_actions,
		wosb_actions,
		hubzone_actions,
		naics_description,
		psc_description,
		omb_level_1,
		omb_level_2,
		source,
		inserted_at
	) VALUES (
		:run_id,
		:contract_no,
		:order_no,
		:modification_no,
		:award_date,
		:effective_date,
		:expiration_date,
		:contract_type,
		:contract_action_type,
		:naics,
		:requirements_description,
		:place_of_performance,
		:set_aside_description,
		:size_status,
		:sb_dollars,
		:awardee,
		:sdb_actions,
		:sdvosb_actions,
		:wosb_actions,
		:hubzone_actions,
		:naics_description,
		:psc_description,
		:omb_level_1,
		:omb_level_2,
		:source,
		:inserted_at
	)`

	tx, err := cs.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i := range actions {
		if _, err := tx.NamedExecContext(ctx, query, &actions[i]); err != nil {
			return fmt.Errorf("failed to insert contract action %s: %w", actions[i].ContractNo, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Printf("Insertion successful, %d contract actions stored.", len(actions))
	return nil
}

func (cs *ContractStore) GetContractActions(ctx context.Context, filter ContractFilter) ([]ContractAction, error) {
	query := `
	SELECT
		id, run_id, contract_no, order_no, modification_no,
		award_date, effective_date, expiration_date,
		contract_type, contract_action_type, naics,
		requirements_description, place_of_performance,
		set_aside_description, size_status, sb_dollars, awardee,
		sdb_actions, sdvosb_actions, wosb_actions, hubzone_actions,
		naics_description, psc_description, omb_level_1, omb_level_2,
		source, inserted_at
	FROM contract_actions
	WHERE ($1 = '' OR source = $1)
		AND ($2 = '' OR size_status = $2)
		AND (cardinality($3::text[]) = 0 OR naics = ANY($3))
		AND ($4 = 0 OR run_id = $4)
	ORDER BY expiration_date ASC NULLS LAST
	LIMIT $5`

	limit := filter.Limit
	if limit <= 0 {
		limit = 500
	}

	codes := filter.NAICSCodes
	if codes == nil {
		codes = []string{}
	}

	actions := []ContractAction{}
	err := cs.db.SelectContext(ctx, &actions, query,
		filter.Source, filter.SizeStatus, pq.Array(codes), filter.RunID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query contract actions: %w", err)
	}
	return actions, nil
}
