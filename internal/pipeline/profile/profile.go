package profile

import (
	"fmt"
	"strconv"
	"time"

	"github.com/osbp/contract_insights/internal/pipeline/enrich"
	"github.com/osbp/contract_insights/internal/pipeline/files"
	"github.com/osbp/contract_insights/internal/pipeline/types"
)

// Element is one labeled line of a market-research profile.
type Element struct {
	Label string
	Value string
}

// analysisElements maps report labels to enrichment registry names, in the
// order the profile presents them.
var analysisElements = []struct {
	Label    string
	Function string
}{
	{"Size Standard", "size_standard"},
	{"WOSB/EDWOSB Eligible", "wosb_eligible"},
	{"Targeted NAICS", "targeted_naics"},
	{"Top NAICS", "top_naics"},
	{"Strong NAICS", "strong_naics"},
	{"Weak NAICS", "weak_naics"},
	{"NMR Waiver Available", "nmr_waiver_available"},
	{"ACC-RI Awards in NAICS", "acc_ri_awards"},
	{"All ACC Awards in NAICS", "all_acc_awards"},
	{"Financial Risk", "financial_risk"},
	{"Awardee Small Business", "awardee_sb"},
	{"Awardee Socio-Economic Status", "awardee_socioeconomic_status"},
	{"Latest Modification", "modification"},
	{"Forecast", "forecast"},
	{"PCF Cabinet Link", "pcf_cabinet_link"},
	{"IT Buy", "it_buy"},
}

// Assemble builds one profile: the contract's own data elements followed by
// one line per enrichment attribute. Every registered function is called
// exactly once per row.
func Assemble(row types.ContractRecord, ctx *enrich.Context) []Element {
	months := ""
	if row.HasMonthsRemaining() {
		months = strconv.Itoa(row.MonthsRemaining)
	}

	elements := []Element{
		{"Contract No", row.ContractNo},
		{"Order No", row.OrderNo},
		{"Awardee", row.Awardee},
		{"NAICS", row.NAICS},
		{"NAICS Description", row.NAICSDescription},
		{"Requirements Description", row.RequirementsDescription},
		{"Contract Type", row.ContractType},
		{"Contract Action Type", row.ContractActionType},
		{"Type Set Aside Description", row.SetAsideDescription},
		{"Place of Performance", row.PlaceOfPerformance},
		{"Award Date", formatDate(row.AwardDate)},
		{"Expiration", formatDate(row.ExpirationDate)},
		{"Months Remaining", months},
		{"SB Dollars", fmt.Sprintf("$%.2f", row.SBDollars)},
	}

	for _, a := range analysisElements {
		elements = append(elements, Element{a.Label, enrich.Apply(a.Function, row, ctx)})
	}
	return elements
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// WriteArtifact persists one profile as a two-column CSV.
func WriteArtifact(elements []Element, path string) error {
	rows := make([][]string, 0, len(elements))
	for _, e := range elements {
		rows = append(rows, []string{e.Label, e.Value})
	}
	return files.WriteRecords([]string{"Element", "Value"}, rows, path)
}
