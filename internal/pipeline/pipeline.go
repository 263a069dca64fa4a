package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/osbp/contract_insights/internal/logger"
	"github.com/osbp/contract_insights/internal/pipeline/catalog"
	"github.com/osbp/contract_insights/internal/pipeline/config"
	"github.com/osbp/contract_insights/internal/pipeline/corpus"
	"github.com/osbp/contract_insights/internal/pipeline/enrich"
	"github.com/osbp/contract_insights/internal/pipeline/files"
	"github.com/osbp/contract_insights/internal/pipeline/insight"
	"github.com/osbp/contract_insights/internal/pipeline/load"
	"github.com/osbp/contract_insights/internal/pipeline/normalize"
	"github.com/osbp/contract_insights/internal/pipeline/types"
	"github.com/osbp/contract_insights/internal/store"
)

// BatchOptions selects the inputs and outputs of one batch run. Either
// source path may be empty; at least one must be set. A nil storage on
// RunBatch means artifacts-only (no persistence).
type BatchOptions struct {
	SourceAPath string
	SourceBPath string
	RefDir      string
	OutDir      string
	Rules       []string
	Trigger     string
}

type BatchResult struct {
	RunID         int64
	ContractCount int
	Artifacts     []string
	ProfileCount  int
	FailedCount   int
}

// RunBatch executes one full pipeline pass: normalize the raw extracts,
// write the canonical table, apply the insight rules, assemble enriched
// profiles, and optionally persist everything under one run id.
func RunBatch(ctx context.Context, opts BatchOptions, cfg config.Config, storage *store.Storage, appLogger *logger.Logger) (*BatchResult, error) {
	const component = "Pipeline"
	now := time.Now()

	if opts.SourceAPath == "" && opts.SourceBPath == "" {
		return nil, fmt.Errorf("no source extract provided")
	}
	if opts.Trigger == "" {
		opts.Trigger = store.TriggerTypeManual
	}

	rules := opts.Rules
	if len(rules) == 0 {
		rules = insight.Names()
	}

	if err := files.ArchiveFolderFiles(opts.OutDir, appLogger); err != nil {
		appLogger.Warn(component, "Output archive pass failed: dir=%s err=%v", opts.OutDir, err)
	}

	// Phase 1: normalize each extract into the canonical schema.
	var accri, army []types.ContractRecord
	sourceFiles := []string{}
	for _, path := range []string{opts.SourceAPath, opts.SourceBPath} {
		if path == "" {
			continue
		}

		src, err := types.SourceFromPath(path)
		if err != nil {
			return nil, err
		}

		df, err := files.ReadTable(path, appLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s extract: %w", types.SourceNames[src], err)
		}

		records, err := normalize.Run(df, src, now, appLogger)
		if err != nil {
			return nil, err
		}

		switch src {
		case types.SourceACCRI:
			accri = records
		case types.SourceArmy:
			army = records
		}
		sourceFiles = append(sourceFiles, path)
	}

	combined := make([]types.ContractRecord, 0, len(accri)+len(army))
	combined = append(combined, accri...)
	combined = append(combined, army...)

	result := &BatchResult{ContractCount: len(combined)}

	canonicalPath := filepath.Join(opts.OutDir, "canonical_table.csv")
	if err := normalize.WriteArtifact(combined, canonicalPath); err != nil {
		return nil, fmt.Errorf("failed to write canonical table: %w", err)
	}
	result.Artifacts = append(result.Artifacts, canonicalPath)

	// Phase 2: shared enrichment context, built once per batch.
	catalogs, err := catalog.Load(opts.RefDir, appLogger)
	if err != nil {
		return nil, err
	}

	stats := corpus.Compute(combined, cfg)
	appLogger.Info(component, "Corpus statistics computed: distinctNAICS=%d", stats.DistinctNAICS())

	enrichCtx := &enrich.Context{
		Cfg:      cfg,
		Catalogs: catalogs,
		Stats:    stats,
		ACCRI:    accri,
		Corpus:   combined,
	}

	// Phase 3: optional persistence under one run id.
	var run *store.PipelineRun
	if storage != nil {
		run = &store.PipelineRun{
			TriggerType: opts.Trigger,
			SourceFiles: sourceFiles,
			Rules:       rules,
			Status:      store.RunStatusInProgress,
		}
		if err := storage.Runs.InsertPipelineRun(ctx, run); err != nil {
			return nil, fmt.Errorf("failed to record pipeline run: %w", err)
		}
		result.RunID = run.ID

		if err := load.LoadContractActions(ctx, combined, run.ID, storage, appLogger); err != nil {
			finalizeRun(ctx, storage, run.ID, store.RunStatusFailure, 0, err, appLogger)
			return nil, err
		}
	}

	// Phase 4: insight lists and enriched profiles.
	orchestrator := NewOrchestrator(enrichCtx, opts.OutDir, appLogger, cfg.EnrichWorkers)
	orchestrator.Start()

	for _, rule := range rules {
		matched, err := insight.Apply(rule, combined, cfg)
		if err != nil {
			orchestrator.Close()
			orchestrator.Wait()
			if run != nil {
				finalizeRun(ctx, storage, run.ID, store.RunStatusFailure, len(combined), err, appLogger)
			}
			return nil, err
		}
		appLogger.Info(component, "Insight rule applied: rule=%s matched=%d", rule, len(matched))

		rulePath := filepath.Join(opts.OutDir, rule+".csv")
		if err := insight.WriteArtifact(rule, matched, rulePath); err != nil {
			appLogger.Error(component, "Failed to write insight artifact: rule=%s err=%v", rule, err)
		} else {
			result.Artifacts = append(result.Artifacts, rulePath)
		}

		if run != nil {
			if err := load.LoadInsightEntries(ctx, rule, matched, run.ID, storage, appLogger); err != nil {
				appLogger.Error(component, "Failed to persist insight list: rule=%s err=%v", rule, err)
			}
		}

		for i, row := range matched {
			if cfg.MaxRows > 0 && i >= cfg.MaxRows {
				break
			}
			orchestrator.AddJob(ProfileJob{Rule: rule, Index: i, Row: row})
		}
	}

	orchestrator.Close()
	profiles, failed := orchestrator.Wait()
	result.Artifacts = append(result.Artifacts, profiles...)
	result.ProfileCount = len(profiles)
	result.FailedCount = failed

	if run != nil {
		finalizeRun(ctx, storage, run.ID, store.RunStatusSuccess, len(combined), nil, appLogger)
	}

	logLines := make([]string, 0, len(result.Artifacts)+1)
	logLines = append(logLines, fmt.Sprintf("run completed: contracts=%d profiles=%d failed=%d", result.ContractCount, result.ProfileCount, result.FailedCount))
	for _, a := range result.Artifacts {
		logLines = append(logLines, "artifact: "+a)
	}
	if err := files.AppendRunLog(filepath.Join(opts.OutDir, "run_log.txt"), logLines); err != nil {
		appLogger.Warn(component, "Failed to append run log: err=%v", err)
	}

	appLogger.Info(component, "Batch completed: contracts=%d artifacts=%d duration=%s", result.ContractCount, len(result.Artifacts), time.Since(now))
	return result, nil
}

func finalizeRun(ctx context.Context, storage *store.Storage, id int64, status string, contractCount int, runErr error, appLogger *logger.Logger) {
	message := ""
	if runErr != nil {
		message = runErr.Error()
	}
	if err := storage.Runs.CompleteRun(ctx, id, status, contractCount, message); err != nil {
		appLogger.Error("Pipeline", "Failed to finalize run record: id=%d err=%v", id, err)
	}
}
