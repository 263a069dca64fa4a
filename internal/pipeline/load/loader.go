package load

import (
	"context"
	"time"

	"github.com/osbp/contract_insights/internal/logger"
	"github.com/osbp/contract_insights/internal/pipeline/types"
	"github.com/osbp/contract_insights/internal/store"
)

// LoadContractActions persists one normalized batch under a run id.
func LoadContractActions(ctx context.Context, records []types.ContractRecord, runID int64, storage *store.Storage, appLogger *logger.Logger) error {
	const component = "Loader"
	appLogger.Info(component, "Starting contract action load: runID=%d rows=%d", runID, len(records))

	now := time.Now()
	actions := make([]store.ContractAction, 0, len(records))
	for _, r := range records {
		actions = append(actions, toContractAction(r, runID, now))
	}

	if err := storage.Contracts.InsertContractActions(ctx, actions); err != nil {
		appLogger.Error(component, "Failed to insert contract actions: runID=%d err=%v", runID, err)
		return err
	}

	appLogger.Info(component, "Contract action load completed: runID=%d", runID)
	return nil
}

// LoadInsightEntries persists one rule's insight list, position-ordered.
func LoadInsightEntries(ctx context.Context, rule string, records []types.ContractRecord, runID int64, storage *store.Storage, appLogger *logger.Logger) error {
	const component = "Loader"

	now := time.Now()
	entries := make([]store.InsightEntry, 0, len(records))
	for i, r := range records {
		entries = append(entries, toInsightEntry(r, rule, runID, i, now))
	}

	if err := storage.Insights.InsertInsightEntries(ctx, entries); err != nil {
		appLogger.Error(component, "Failed to insert insight entries: rule=%s runID=%d err=%v", rule, runID, err)
		return err
	}

	appLogger.Info(component, "Insight load completed: rule=%s runID=%d rows=%d", rule, runID, len(entries))
	return nil
}

func toContractAction(r types.ContractRecord, runID int64, now time.Time) store.ContractAction {
	return store.ContractAction{
		RunID:                   runID,
		ContractNo:              r.ContractNo,
		OrderNo:                 r.OrderNo,
		ModificationNo:          r.ModificationNo,
		AwardDate:               nullableDate(r.AwardDate),
		EffectiveDate:           nullableDate(r.EffectiveDate),
		ExpirationDate:          nullableDate(r.ExpirationDate),
		ContractType:            r.ContractType,
		ContractActionType:      r.ContractActionType,
		NAICS:                   r.NAICS,
		RequirementsDescription: r.RequirementsDescription,
		PlaceOfPerformance:      r.PlaceOfPerformance,
		SetAsideDescription:     r.SetAsideDescription,
		SizeStatus:              r.SizeStatus,
		SBDollars:               r.SBDollars,
		Awardee:                 r.Awardee,
		SDBActions:              r.SDBActions,
		SDVOSBActions:           r.SDVOSBActions,
		WOSBActions:             r.WOSBActions,
		HUBZoneActions:          r.HUBZoneActions,
		NAICSDescription:        r.NAICSDescription,
		PSCDescription:          r.PSCDescription,
		OMBLevel1:               r.OMBLevel1,
		OMBLevel2:               r.OMBLevel2,
		Source:                  types.SourceNames[r.Source],
		InsertedAt:              now,
	}
}

func toInsightEntry(r types.ContractRecord, rule string, runID int64, position int, now time.Time) store.InsightEntry {
	var months *int
	if r.HasMonthsRemaining() {
		m := r.MonthsRemaining
		months = &m
	}

	return store.InsightEntry{
		RunID:               runID,
		Rule:                rule,
		Position:            position,
		ContractNo:          r.ContractNo,
		OrderNo:             r.OrderNo,
		NAICS:               r.NAICS,
		Awardee:             r.Awardee,
		MonthsRemaining:     months,
		SBDollars:           r.SBDollars,
		SizeStatus:          r.SizeStatus,
		SetAsideDescription: r.SetAsideDescription,
		InsertedAt:          now,
	}
}

func nullableDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
