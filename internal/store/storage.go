package store

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Storage struct {
	Contracts interface {
		InsertContractActions(ctx context.Context, actions []ContractAction) error
		GetContractActions(ctx context.Context, filter ContractFilter) ([]ContractAction, error)
	}

	Insights interface {
		InsertInsightEntries(ctx context.Context, entries []InsightEntry) error
		GetInsightEntries(ctx context.Context, rule string, limit int) ([]InsightEntry, error)
	}

	Runs interface {
		InsertPipelineRun(ctx context.Context, run *PipelineRun) error
		CompleteRun(ctx context.Context, id int64, status string, contractCount int, errorMessage string) error
		GetLatest(ctx context.Context, limit int) ([]PipelineRun, error)
	}
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{
		Contracts: &ContractStore{db: db},
		Insights:  &InsightStore{db: db},
		Runs:      &RunStore{db: db},
	}
}
