package insight

import (
	"fmt"
	"sort"
	"strings"

	"github.com/osbp/contract_insights/internal/pipeline/config"
	"github.com/osbp/contract_insights/internal/pipeline/files"
	"github.com/osbp/contract_insights/internal/pipeline/types"
)

// Rule names double as artifact names, so they stay filesystem-safe.
const (
	RuleUnrestrictedSBAwards   = "unrestricted_sb_awards"
	RuleSetAsideSocioPotential = "sbsa"
	Rule8aExit                 = "8a_exit"
	RuleUnrestrictedOTSBAwards = "unrestricted_otsb_awards"
)

type predicate func(record types.ContractRecord, cfg config.Config) bool

// rules is the selection registry: each entry is a pure predicate followed by
// the shared months-remaining sort. Rules are independent of each other.
var rules = map[string]predicate{
	RuleUnrestrictedSBAwards:   unrestrictedSBAwards,
	RuleSetAsideSocioPotential: setAsideSocioPotential,
	Rule8aExit:                 eightAExit,
	RuleUnrestrictedOTSBAwards: unrestrictedOTSBAwards,
}

// Names returns the known rule names in a stable order.
func Names() []string {
	return []string{
		RuleUnrestrictedSBAwards,
		RuleSetAsideSocioPotential,
		Rule8aExit,
		RuleUnrestrictedOTSBAwards,
	}
}

// Apply runs one named rule over the canonical table and returns the insight
// list, sorted by months remaining ascending with input order preserved on
// ties.
func Apply(rule string, records []types.ContractRecord, cfg config.Config) ([]types.ContractRecord, error) {
	pred, ok := rules[rule]
	if !ok {
		return nil, fmt.Errorf("unknown insight rule: %s", rule)
	}

	matched := make([]types.ContractRecord, 0, len(records))
	for _, r := range records {
		if pred(r, cfg) {
			matched = append(matched, r)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].MonthsRemaining < matched[j].MonthsRemaining
	})

	return matched, nil
}

func monthsInWindow(record types.ContractRecord, cfg config.Config) bool {
	if !record.HasMonthsRemaining() {
		return false
	}
	return record.MonthsRemaining >= cfg.MinMonthsRemaining && record.MonthsRemaining <= cfg.MaxMonthsRemaining
}

func isTrackedAward(record types.ContractRecord) bool {
	return !types.IsExcludedActionType(record.ContractActionType)
}

// unrestrictedSBAwards: small-business awards competed without a set-aside,
// expiring inside the outreach window.
func unrestrictedSBAwards(record types.ContractRecord, cfg config.Config) bool {
	if !isTrackedAward(record) || !monthsInWindow(record, cfg) {
		return false
	}
	if record.SetAsideDescription != types.NoSetAsideUsed && record.SetAsideDescription != "" {
		return false
	}
	return record.SizeStatus == types.SizeStatusSB
}

// setAsideSocioPotential: small-business awards already competed under some
// set-aside, candidates for a socio-economic category move.
func setAsideSocioPotential(record types.ContractRecord, cfg config.Config) bool {
	if !isTrackedAward(record) || !monthsInWindow(record, cfg) {
		return false
	}
	if record.SetAsideDescription == types.NoSetAsideUsed {
		return false
	}
	return record.SizeStatus == types.SizeStatusSB
}

// eightAExit: 8(a) awards whose holder may graduate from the program before
// the contract expires. No size filter; program status governs here.
func eightAExit(record types.ContractRecord, cfg config.Config) bool {
	if !isTrackedAward(record) || !monthsInWindow(record, cfg) {
		return false
	}
	upper := strings.ToUpper(record.SetAsideDescription)
	return upper == "8(A) SOLE SOURCE" || upper == "8A COMPETED"
}

// unrestrictedOTSBAwards: other-than-small awards in the window, candidates
// for small-business recompetes.
func unrestrictedOTSBAwards(record types.ContractRecord, cfg config.Config) bool {
	if record.SizeStatus != types.SizeStatusOTSB {
		return false
	}
	return isTrackedAward(record) && monthsInWindow(record, cfg)
}

// WriteArtifact persists one insight list under its rule name.
func WriteArtifact(rule string, records []types.ContractRecord, path string) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.Row())
	}
	return files.WriteRecords(types.CanonicalColumns, rows, path)
}
