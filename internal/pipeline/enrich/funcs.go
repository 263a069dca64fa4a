package enrich

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/osbp/contract_insights/internal/pipeline/types"
	"github.com/osbp/contract_insights/internal/pipeline/utils"
)

// sizeStandard reports the SBA threshold for the row's NAICS: dollar millions
// when the table carries one, employee count otherwise.
func sizeStandard(row types.ContractRecord, ctx *Context) (string, error) {
	standard, ok := ctx.Catalogs.SizeStandards[utils.NormalizeNAICS(row.NAICS)]
	if !ok {
		return fmt.Sprintf("%s not found", row.NAICS), nil
	}
	if standard.Millions != "" {
		return fmt.Sprintf("%sM", standard.Millions), nil
	}
	if standard.Employees != "" {
		return fmt.Sprintf("%s Employees", standard.Employees), nil
	}
	return fmt.Sprintf("%s not found", row.NAICS), nil
}

func wosbEligible(row types.ContractRecord, ctx *Context) (string, error) {
	if class, ok := ctx.Catalogs.WOSB[utils.NormalizeNAICS(row.NAICS)]; ok && class != "" {
		return class, nil
	}
	return "No", nil
}

func targetedNAICS(row types.ContractRecord, ctx *Context) (string, error) {
	return yesNo(ctx.Cfg.IsTargetedSector(row.NAICS)), nil
}

func topNAICS(row types.ContractRecord, ctx *Context) (string, error) {
	return yesNo(ctx.Stats.IsTopNAICS(row.NAICS)), nil
}

func strongNAICS(row types.ContractRecord, ctx *Context) (string, error) {
	return yesNo(ctx.Stats.IsStrongNAICS(row.NAICS)), nil
}

func weakNAICS(row types.ContractRecord, ctx *Context) (string, error) {
	return yesNo(ctx.Stats.IsWeakNAICS(row.NAICS)), nil
}

func nmrWaiverAvailable(row types.ContractRecord, ctx *Context) (string, error) {
	_, ok := ctx.Catalogs.NMRWaivers[utils.NormalizeNAICS(row.NAICS)]
	return yesNo(ok), nil
}

// accRIAwards counts small-business awards in the command's own extract that
// share this row's NAICS, modifications and umbrella vehicles excluded.
func accRIAwards(row types.ContractRecord, ctx *Context) (string, error) {
	return strconv.Itoa(countMatchingAwards(ctx.ACCRI, row.NAICS)), nil
}

// allACCAwards counts the same cohort across every ingested source.
func allACCAwards(row types.ContractRecord, ctx *Context) (string, error) {
	return strconv.Itoa(countMatchingAwards(ctx.Corpus, row.NAICS)), nil
}

func countMatchingAwards(records []types.ContractRecord, naics string) int {
	key := utils.NormalizeNAICS(naics)
	count := 0
	for _, r := range records {
		if !r.IsSmallBusiness() || types.IsExcludedActionType(r.ContractActionType) {
			continue
		}
		if utils.NormalizeNAICS(r.NAICS) == key {
			count++
		}
	}
	return count
}

// financialRisk buckets the award value against the NAICS group's percentile
// thresholds. Groups with no small-business history answer No Data rather
// than guessing.
func financialRisk(row types.ContractRecord, ctx *Context) (string, error) {
	thresholds, ok := ctx.Stats.PercentileThresholds(row.NAICS)
	if !ok {
		return "No Data", nil
	}
	switch {
	case row.SBDollars <= thresholds.P50:
		return "Low Risk", nil
	case row.SBDollars <= thresholds.P75:
		return "Medium Risk", nil
	default:
		return "High Risk", nil
	}
}

func awardeeSB(row types.ContractRecord, ctx *Context) (string, error) {
	return yesNo(row.IsSmallBusiness()), nil
}

// awardeeSocioeconomicStatus joins the labels of every socio-economic program
// the awardee's action counts show participation in.
func awardeeSocioeconomicStatus(row types.ContractRecord, ctx *Context) (string, error) {
	labels := make([]string, 0, 4)
	if row.SDBActions > 0 {
		labels = append(labels, "SDB")
	}
	if row.SDVOSBActions > 0 {
		labels = append(labels, "SDVOSB")
	}
	if row.WOSBActions > 0 {
		labels = append(labels, "WOSB")
	}
	if row.HUBZoneActions > 0 {
		labels = append(labels, "HUBZone")
	}
	if len(labels) == 0 {
		return "None", nil
	}
	return strings.Join(labels, ", "), nil
}

// latestModification finds the most recent modification action on the same
// base contract number.
func latestModification(row types.ContractRecord, ctx *Context) (string, error) {
	latest := ""
	var latestDate = row.AwardDate
	found := false
	for _, r := range ctx.ACCRI {
		if r.ContractNo != row.ContractNo {
			continue
		}
		if strings.ToUpper(strings.TrimSpace(r.ContractActionType)) != "MODIFICATION" {
			continue
		}
		if !found || r.AwardDate.After(latestDate) {
			latest = r.ModificationNo
			latestDate = r.AwardDate
			found = true
		}
	}
	if !found {
		return "No Modifications", nil
	}
	return latest, nil
}

func forecast(row types.ContractRecord, ctx *Context) (string, error) {
	if cabinet, ok := ctx.Catalogs.Forecast[row.ContractNo]; ok && cabinet != "" {
		return cabinet, nil
	}
	return "No Forecast Identified", nil
}

// pcfCabinetLink prefers the order-level link; a base-contract link is the
// fallback.
func pcfCabinetLink(row types.ContractRecord, ctx *Context) (string, error) {
	if row.OrderNo != "" {
		if link, ok := ctx.Catalogs.OrderLinks[row.OrderNo]; ok && link != "" {
			return link, nil
		}
	}
	if link, ok := ctx.Catalogs.ContractLinks[row.ContractNo]; ok && link != "" {
		return link, nil
	}
	return "No PCF cabinet link found", nil
}

// itKeywords are matched as whole words so e.g. ITEM never triggers on IT.
// Longer alternatives come first; word boundaries make the order a formality.
var itKeywordPattern = regexp.MustCompile(`(?i)\b(?:` + strings.Join([]string{
	"ARTIFICIAL INTELLIGENCE",
	"INFORMATION TECHNOLOGY",
	"INTERNET OF THINGS",
	"TELECOMMUNICATIONS",
	"MACHINE LEARNING",
	"CRYPTOCURRENCY",
	"CYBERSECURITY",
	"TELEPHONICS",
	"BLOCKCHAIN",
	"ELECTRONIC",
	"TECHNOLOGY",
	"TELEPHONIC",
	"ANALYTICS",
	"TELEPHONE",
	"TELEPHONY",
	"COMPUTER",
	"HARDWARE",
	"SOFTWARE",
	"TELECOMM",
	"DIGITAL",
	"NETWORK",
	"TELECOM",
	"CRYPTO",
	"CLOUD",
	"DATA",
	"IOT",
	"AI",
	"IT",
	"ML",
}, "|") + `)\b`)

// itBuy flags contracts whose description fields read like an IT procurement.
func itBuy(row types.ContractRecord, ctx *Context) (string, error) {
	fields := []string{
		row.NAICSDescription,
		row.PSCDescription,
		row.OMBLevel1,
		row.OMBLevel2,
	}
	for _, field := range fields {
		if itKeywordPattern.MatchString(field) {
			return "Yes", nil
		}
	}
	return "No", nil
}
