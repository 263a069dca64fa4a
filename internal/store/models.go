package store

import (
	"time"

	"github.com/lib/pq"
)

// ContractAction represents the 'contract_actions' table: one canonical row
// per contract action as normalized from a source extract. Months remaining
// is deliberately absent; it is recomputed from expiration_date at read time.
type ContractAction struct {
	ID                      int64      `db:"id" json:"id"`
	RunID                   int64      `db:"run_id" json:"run_id"`
	ContractNo              string     `db:"contract_no" json:"contract_no"`
	OrderNo                 string     `db:"order_no" json:"order_no"`
	ModificationNo          string     `db:"modification_no" json:"modification_no"`
	AwardDate               *time.Time `db:"award_date" json:"award_date"`
	EffectiveDate           *time.Time `db:"effective_date" json:"effective_date"`
	ExpirationDate          *time.Time `db:"expiration_date" json:"expiration_date"`
	ContractType            string     `db:"contract_type" json:"contract_type"`
	ContractActionType      string     `db:"contract_action_type" json:"contract_action_type"`
	NAICS                   string     `db:"naics" json:"naics"`
	RequirementsDescription string     `db:"requirements_description" json:"requirements_description"`
	PlaceOfPerformance      string     `db:"place_of_performance" json:"place_of_performance"`
	SetAsideDescription     string     `db:"set_aside_description" json:"set_aside_description"`
	SizeStatus              string     `db:"size_status" json:"size_status"`
	SBDollars               float64    `db:"sb_dollars" json:"sb_dollars"`
	Awardee                 string     `db:"awardee" json:"awardee"`
	SDBActions              int        `db:"sdb_actions" json:"sdb_actions"`
	SDVOSBActions           int        `db:"sdvosb_actions" json:"sdvosb_actions"`
	WOSBActions             int        `db:"wosb_actions" json:"wosb_actions"`
	HUBZoneActions          int        `db:"hubzone_actions" json:"hubzone_actions"`
	NAICSDescription        string     `db:"naics_description" json:"naics_description"`
	PSCDescription          string     `db:"psc_description" json:"psc_description"`
	OMBLevel1               string     `db:"omb_level_1" json:"omb_level_1"`
	OMBLevel2               string     `db:"omb_level_2" json:"omb_level_2"`
	Source                  string     `db:"source" json:"source"`
	InsertedAt              time.Time  `db:"inserted_at" json:"inserted_at"`
}

// InsightEntry represents the 'insight_entries' table: one row of one named
// insight list from one run. Months remaining here is a run-scoped snapshot,
// valid only relative to the run's start time.
type InsightEntry struct {
	ID                  int64     `db:"id" json:"id"`
	RunID               int64     `db:"run_id" json:"run_id"`
	Rule                string    `db:"rule" json:"rule"`
	Position            int       `db:"list_position" json:"position"`
	ContractNo          string    `db:"contract_no" json:"contract_no"`
	OrderNo             string    `db:"order_no" json:"order_no"`
	NAICS               string    `db:"naics" json:"naics"`
	Awardee             string    `db:"awardee" json:"awardee"`
	MonthsRemaining     *int      `db:"months_remaining" json:"months_remaining"`
	SBDollars           float64   `db:"sb_dollars" json:"sb_dollars"`
	SizeStatus          string    `db:"size_status" json:"size_status"`
	SetAsideDescription string    `db:"set_aside_description" json:"set_aside_description"`
	InsertedAt          time.Time `db:"inserted_at" json:"inserted_at"`
}

// PipelineRun represents the 'pipeline_runs' table.
type PipelineRun struct {
	ID            int64          `db:"id" json:"id"`
	TriggerType   string         `db:"trigger_type" json:"trigger_type"`
	SourceFiles   pq.StringArray `db:"source_files" json:"source_files"`
	Rules         pq.StringArray `db:"rules" json:"rules"`
	Status        string         `db:"status" json:"status"`
	ContractCount int            `db:"contract_count" json:"contract_count"`
	ErrorMessage  string         `db:"error_message" json:"error_message"`
	StartedAt     time.Time      `db:"started_at" json:"started_at"`
	CompletedAt   *time.Time     `db:"completed_at" json:"completed_at"`
}
