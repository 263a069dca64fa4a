package enrich

import (
	"fmt"

	"github.com/osbp/contract_insights/internal/pipeline/catalog"
	"github.com/osbp/contract_insights/internal/pipeline/config"
	"github.com/osbp/contract_insights/internal/pipeline/corpus"
	"github.com/osbp/contract_insights/internal/pipeline/types"
)

// Context carries everything an enrichment function may consult. It is built
// once per batch and shared read-only across workers; functions must never
// mutate it.
type Context struct {
	Cfg      config.Config
	Catalogs *catalog.Set
	Stats    *corpus.Stats

	// ACCRI keeps the source A rows including modifications; Corpus is the
	// combined canonical table used for cross-source counting.
	ACCRI  []types.ContractRecord
	Corpus []types.ContractRecord
}

// Func derives one report attribute for one contract record.
type Func func(row types.ContractRecord, ctx *Context) (string, error)

// Registry is the static attribute-name to function mapping.
var Registry = map[string]Func{
	"size_standard":                sizeStandard,
	"wosb_eligible":                wosbEligible,
	"targeted_naics":               targetedNAICS,
	"top_naics":                    topNAICS,
	"strong_naics":                 strongNAICS,
	"weak_naics":                   weakNAICS,
	"nmr_waiver_available":         nmrWaiverAvailable,
	"acc_ri_awards":                accRIAwards,
	"all_acc_awards":               allACCAwards,
	"financial_risk":               financialRisk,
	"awardee_sb":                   awardeeSB,
	"awardee_socioeconomic_status": awardeeSocioeconomicStatus,
	"modification":                 latestModification,
	"forecast":                     forecast,
	"pcf_cabinet_link":             pcfCabinetLink,
	"it_buy":                       itBuy,
}

// Names returns the registry keys in the report's attribute order.
func Names() []string {
	return []string{
		"size_standard",
		"wosb_eligible",
		"targeted_naics",
		"top_naics",
		"strong_naics",
		"weak_naics",
		"nmr_waiver_available",
		"acc_ri_awards",
		"all_acc_awards",
		"financial_risk",
		"awardee_sb",
		"awardee_socioeconomic_status",
		"modification",
		"forecast",
		"pcf_cabinet_link",
		"it_buy",
	}
}

// Apply runs one registered function and always comes back with a string:
// failures collapse to the Error sentinel so a single bad attribute never
// sinks a report.
func Apply(name string, row types.ContractRecord, ctx *Context) string {
	fn, ok := Registry[name]
	if !ok {
		return fmt.Sprintf("Error: unknown enrichment function %s", name)
	}

	value, err := safeCall(fn, row, ctx)
	if err != nil {
		return fmt.Sprintf("Error: %s", err.Error())
	}
	return value
}

func safeCall(fn Func, row types.ContractRecord, ctx *Context) (value string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return fn(row, ctx)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
