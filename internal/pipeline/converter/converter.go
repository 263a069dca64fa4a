package converter

import (
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/osbp/contract_insights/internal/pipeline/types"
	"github.com/osbp/contract_insights/internal/pipeline/utils"
)

// Source-specific labels. The FPDS-style extract (source A) carries the long
// element labels; the Army rollup (source B) already uses the short forms.
var (
	awardeeCols      = []string{"13GG Legal Business Name (UEI)", "Awardee"}
	setAsideCols     = []string{"10N Type Set Aside Description", "Type Set Aside Description"}
	requirementsCols = []string{"6M Description of Requirement", "Requirements Description"}
	expirationCols   = []string{"Current Completion Date", "Expiration"}
	sizeStatusCols   = []string{"Small Business Actions", "Size Status"}
	sbDollarsCols    = []string{"Small Business Dollars", "SB Dollars"}
)

// DfRowToContractRecord maps one raw extract row onto the canonical record.
// Dates fail soft to the zero value; money is coerced to plain numeric here
// and never re-enters as a formatted string.
func DfRowToContractRecord(df dataframe.DataFrame, rowIdx int, src types.Source, now time.Time) types.ContractRecord {
	getStr := func(col string) string {
		return utils.GetStr(col, rowIdx, &df)
	}
	getAny := func(cols []string) string {
		return utils.GetStrAny(cols, rowIdx, &df)
	}

	record := types.ContractRecord{
		ContractNo:              getStr("Contract No"),
		OrderNo:                 getStr("Order No"),
		ModificationNo:          getStr("Modification No"),
		AwardDate:               utils.ParseDate(getStr("Award Date")),
		EffectiveDate:           utils.ParseDate(getStr("Effective Date")),
		ExpirationDate:          utils.ParseDate(getAny(expirationCols)),
		ContractType:            getStr("Contract Type"),
		ContractActionType:      getStr("Contract Action Type"),
		NAICS:                   utils.NormalizeNAICS(getStr("NAICS")),
		RequirementsDescription: getAny(requirementsCols),
		PlaceOfPerformance:      getStr("Place of Performance"),
		SetAsideDescription:     normalizeSetAside(getAny(setAsideCols)),
		SizeStatus:              sizeStatusFromActions(getAny(sizeStatusCols)),
		SBDollars:               utils.MoneyValue(getAny(sbDollarsCols)),
		Awardee:                 getAny(awardeeCols),
		SDBActions:              utils.ParseIntDefault(getStr("SDB Concern Actions"), 0),
		SDVOSBActions:           utils.ParseIntDefault(getStr("Service Disabled Veterans Actions"), 0),
		WOSBActions:             utils.ParseIntDefault(getStr("Women Owned Actions"), 0),
		HUBZoneActions:          utils.ParseIntDefault(getStr("HUB Zone Actions"), 0),
		NAICSDescription:        getStr("NAICS Description"),
		PSCDescription:          getStr("PSC Description"),
		OMBLevel1:               getStr("OMB Level 1"),
		OMBLevel2:               getStr("OMB Level 2"),
		Source:                  src,
	}

	record.MonthsRemaining, _ = utils.MonthsRemaining(record.ExpirationDate, now)
	return record
}

// normalizeSetAside strips trailing periods and replaces blanks with the
// NO SET ASIDE USED sentinel so the column is never empty downstream.
func normalizeSetAside(val string) string {
	cleaned := trimDots(val)
	if cleaned == "" {
		return types.NoSetAsideUsed
	}
	return cleaned
}

func trimDots(val string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(val), "."))
}

// sizeStatusFromActions collapses the small-business action count to the
// canonical two-valued encoding: zero actions means other-than-small. Values
// already in canonical form pass through unchanged.
func sizeStatusFromActions(val string) string {
	switch strings.ToUpper(strings.TrimSpace(val)) {
	case types.SizeStatusSB:
		return types.SizeStatusSB
	case types.SizeStatusOTSB:
		return types.SizeStatusOTSB
	}
	if utils.ParseIntDefault(val, 0) > 0 {
		return types.SizeStatusSB
	}
	return types.SizeStatusOTSB
}
