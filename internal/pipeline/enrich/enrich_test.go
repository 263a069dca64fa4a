package enrich

import (
	"strings"
	"testing"
	"time"

	"github.com/osbp/contract_insights/internal/pipeline/catalog"
	"github.com/osbp/contract_insights/internal/pipeline/config"
	"github.com/osbp/contract_insights/internal/pipeline/corpus"
	"github.com/osbp/contract_insights/internal/pipeline/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() *Context {
	corpusRows := []types.ContractRecord{
		{NAICS: "541512", SizeStatus: types.SizeStatusSB, SBDollars: 100000, ContractActionType: "AWARD"},
		{NAICS: "541512", SizeStatus: types.SizeStatusSB, SBDollars: 900000, ContractActionType: "AWARD"},
		{NAICS: "238210", SizeStatus: types.SizeStatusSB, SBDollars: 500, ContractActionType: "AWARD"},
		{NAICS: "334111", SizeStatus: types.SizeStatusSB, SBDollars: 300, ContractActionType: "AWARD"},
		{NAICS: "111110", SizeStatus: types.SizeStatusSB, SBDollars: 100, ContractActionType: "AWARD"},
	}

	return &Context{
		Cfg: config.Default(),
		Catalogs: &catalog.Set{
			SizeStandards: map[string]catalog.SizeStandard{
				"541512": {Millions: "34.0"},
				"334111": {Employees: "1250"},
				"111110": {},
			},
			WOSB:       map[string]string{"238210": "EDWOSB"},
			NMRWaivers: map[string]string{"334118": "Computer Peripheral Manufacturing"},
			Forecast:   map[string]string{"W911-26-C-0001": "FY27 IT Services Recompete"},
			OrderLinks: map[string]string{
				"0005": "https://pcf.example.mil/o/0005",
			},
			ContractLinks: map[string]string{
				"W911-26-C-0001": "https://pcf.example.mil/c/0001",
				"W911-26-D-0002": "https://pcf.example.mil/c/0002",
			},
		},
		Stats:  corpus.Compute(corpusRows, config.Default()),
		ACCRI:  corpusRows,
		Corpus: corpusRows,
	}
}

func TestSizeStandard(t *testing.T) {
	ctx := testContext()

	got := Apply("size_standard", types.ContractRecord{NAICS: "541512"}, ctx)
	assert.Equal(t, "34.0M", got)

	got = Apply("size_standard", types.ContractRecord{NAICS: "334111"}, ctx)
	assert.Equal(t, "1250 Employees", got)

	got = Apply("size_standard", types.ContractRecord{NAICS: "999999"}, ctx)
	assert.Equal(t, "999999 not found", got)

	got = Apply("size_standard", types.ContractRecord{NAICS: "111110"}, ctx)
	assert.Equal(t, "111110 not found", got, "a row with neither threshold is treated as absent")
}

func TestWOSBEligible(t *testing.T) {
	ctx := testContext()

	assert.Equal(t, "EDWOSB", Apply("wosb_eligible", types.ContractRecord{NAICS: "238210"}, ctx))
	assert.Equal(t, "No", Apply("wosb_eligible", types.ContractRecord{NAICS: "999999"}, ctx))
}

func TestFinancialRisk(t *testing.T) {
	ctx := testContext()

	low := types.ContractRecord{NAICS: "541512", SBDollars: 100000}
	assert.Equal(t, "Low Risk", Apply("financial_risk", low, ctx))

	high := types.ContractRecord{NAICS: "541512", SBDollars: 900000}
	assert.Equal(t, "High Risk", Apply("financial_risk", high, ctx))

	medium := types.ContractRecord{NAICS: "541512", SBDollars: 400000}
	assert.Equal(t, "Medium Risk", Apply("financial_risk", medium, ctx))

	noData := types.ContractRecord{NAICS: "999999", SBDollars: 100}
	assert.Equal(t, "No Data", Apply("financial_risk", noData, ctx))
}

func TestCorpusMembershipFunctions(t *testing.T) {
	ctx := testContext()
	inCorpus := types.ContractRecord{NAICS: "541512"}
	outOfCorpus := types.ContractRecord{NAICS: "999999"}

	assert.Equal(t, "Yes", Apply("top_naics", inCorpus, ctx))
	assert.Equal(t, "No", Apply("top_naics", outOfCorpus, ctx))
	assert.Equal(t, "Yes", Apply("strong_naics", inCorpus, ctx))
	assert.Equal(t, "No", Apply("weak_naics", outOfCorpus, ctx))
}

func TestTargetedNAICS(t *testing.T) {
	ctx := testContext()

	assert.Equal(t, "Yes", Apply("targeted_naics", types.ContractRecord{NAICS: "541512"}, ctx))
	assert.Equal(t, "Yes", Apply("targeted_naics", types.ContractRecord{NAICS: "334111"}, ctx))
	assert.Equal(t, "No", Apply("targeted_naics", types.ContractRecord{NAICS: "238210"}, ctx))
}

func TestNMRWaiverAvailable(t *testing.T) {
	ctx := testContext()

	assert.Equal(t, "Yes", Apply("nmr_waiver_available", types.ContractRecord{NAICS: "334118"}, ctx))
	assert.Equal(t, "No", Apply("nmr_waiver_available", types.ContractRecord{NAICS: "541512"}, ctx))
}

func TestAwardCounts(t *testing.T) {
	ctx := testContext()
	ctx.ACCRI = []types.ContractRecord{
		{NAICS: "541512", SizeStatus: types.SizeStatusSB, ContractActionType: "AWARD"},
		{NAICS: "541512", SizeStatus: types.SizeStatusSB, ContractActionType: "MODIFICATION"},
		{NAICS: "541512", SizeStatus: types.SizeStatusOTSB, ContractActionType: "AWARD"},
		{NAICS: "238210", SizeStatus: types.SizeStatusSB, ContractActionType: "AWARD"},
	}
	ctx.Corpus = append(ctx.ACCRI, types.ContractRecord{
		NAICS: "541512", SizeStatus: types.SizeStatusSB, ContractActionType: "AWARD",
	})

	row := types.ContractRecord{NAICS: "541512"}
	assert.Equal(t, "1", Apply("acc_ri_awards", row, ctx))
	assert.Equal(t, "2", Apply("all_acc_awards", row, ctx))
}

func TestAwardeeStatus(t *testing.T) {
	ctx := testContext()

	sb := types.ContractRecord{SizeStatus: types.SizeStatusSB}
	assert.Equal(t, "Yes", Apply("awardee_sb", sb, ctx))
	assert.Equal(t, "No", Apply("awardee_sb", types.ContractRecord{SizeStatus: types.SizeStatusOTSB}, ctx))

	socio := types.ContractRecord{SDBActions: 1, WOSBActions: 2, HUBZoneActions: 1}
	assert.Equal(t, "SDB, WOSB, HUBZone", Apply("awardee_socioeconomic_status", socio, ctx))

	assert.Equal(t, "None", Apply("awardee_socioeconomic_status", types.ContractRecord{}, ctx))
}

func TestLatestModification(t *testing.T) {
	ctx := testContext()
	ctx.ACCRI = []types.ContractRecord{
		{ContractNo: "C-1", ModificationNo: "P00001", ContractActionType: "MODIFICATION", AwardDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ContractNo: "C-1", ModificationNo: "P00003", ContractActionType: "MODIFICATION", AwardDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)},
		{ContractNo: "C-1", ModificationNo: "P00002", ContractActionType: "MODIFICATION", AwardDate: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
		{ContractNo: "C-2", ModificationNo: "P00009", ContractActionType: "MODIFICATION", AwardDate: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)},
		{ContractNo: "C-1", ModificationNo: "", ContractActionType: "AWARD", AwardDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	row := types.ContractRecord{ContractNo: "C-1"}
	assert.Equal(t, "P00003", Apply("modification", row, ctx))

	assert.Equal(t, "No Modifications", Apply("modification", types.ContractRecord{ContractNo: "C-3"}, ctx))
}

func TestForecastAndLinks(t *testing.T) {
	ctx := testContext()

	withForecast := types.ContractRecord{ContractNo: "W911-26-C-0001"}
	assert.Equal(t, "FY27 IT Services Recompete", Apply("forecast", withForecast, ctx))
	assert.Equal(t, "No Forecast Identified", Apply("forecast", types.ContractRecord{ContractNo: "X"}, ctx))

	// Order link wins over the base contract link.
	withOrder := types.ContractRecord{ContractNo: "W911-26-D-0002", OrderNo: "0005"}
	assert.Equal(t, "https://pcf.example.mil/o/0005", Apply("pcf_cabinet_link", withOrder, ctx))

	contractOnly := types.ContractRecord{ContractNo: "W911-26-C-0001"}
	assert.Equal(t, "https://pcf.example.mil/c/0001", Apply("pcf_cabinet_link", contractOnly, ctx))

	assert.Equal(t, "No PCF cabinet link found", Apply("pcf_cabinet_link", types.ContractRecord{ContractNo: "X"}, ctx))
}

func TestITBuy(t *testing.T) {
	ctx := testContext()

	t.Run("whole words only", func(t *testing.T) {
		row := types.ContractRecord{NAICSDescription: "ITEM SUPPLY SERVICES"}
		assert.Equal(t, "No", Apply("it_buy", row, ctx))

		row = types.ContractRecord{NAICSDescription: "IT SUPPORT SERVICES"}
		assert.Equal(t, "Yes", Apply("it_buy", row, ctx))
	})

	t.Run("case insensitive", func(t *testing.T) {
		row := types.ContractRecord{PSCDescription: "cloud hosting"}
		assert.Equal(t, "Yes", Apply("it_buy", row, ctx))
	})

	t.Run("multi word keyword", func(t *testing.T) {
		row := types.ContractRecord{OMBLevel1: "Artificial Intelligence Research"}
		assert.Equal(t, "Yes", Apply("it_buy", row, ctx))
	})

	t.Run("all four fields consulted", func(t *testing.T) {
		row := types.ContractRecord{OMBLevel2: "Telecommunications"}
		assert.Equal(t, "Yes", Apply("it_buy", row, ctx))

		row = types.ContractRecord{
			NAICSDescription: "Landscaping",
			PSCDescription:   "Grounds keeping",
			OMBLevel1:        "Facilities",
			OMBLevel2:        "Maintenance",
		}
		assert.Equal(t, "No", Apply("it_buy", row, ctx))
	})
}

func TestApplyIsTotal(t *testing.T) {
	ctx := testContext()
	row := types.ContractRecord{NAICS: "541512"}

	t.Run("unknown function name", func(t *testing.T) {
		got := Apply("no_such_function", row, ctx)
		assert.True(t, strings.HasPrefix(got, "Error: "))
	})

	t.Run("panics collapse to the error sentinel", func(t *testing.T) {
		broken := &Context{Cfg: config.Default()} // nil catalogs and stats
		got := Apply("size_standard", row, broken)
		assert.True(t, strings.HasPrefix(got, "Error: "))
	})

	t.Run("every registered function returns a value for a sparse row", func(t *testing.T) {
		sparse := types.ContractRecord{}
		for _, name := range Names() {
			got := Apply(name, sparse, ctx)
			assert.NotEmpty(t, got, name)
		}
	})
}

func TestNamesMatchesRegistry(t *testing.T) {
	names := Names()
	require.Len(t, names, len(Registry))
	for _, name := range names {
		_, ok := Registry[name]
		assert.True(t, ok, name)
	}
}
