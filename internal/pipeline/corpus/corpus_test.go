package corpus

import (
	"testing"

	"github.com/osbp/contract_insights/internal/pipeline/config"
	"github.com/osbp/contract_insights/internal/pipeline/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sbRecord(naics string, dollars float64) types.ContractRecord {
	return types.ContractRecord{
		NAICS:      naics,
		SizeStatus: types.SizeStatusSB,
		SBDollars:  dollars,
	}
}

func TestPercentileThresholdsTwoPoints(t *testing.T) {
	stats := Compute([]types.ContractRecord{
		sbRecord("541512", 100000),
		sbRecord("541512", 900000),
	}, config.Default())

	th, ok := stats.PercentileThresholds("541512")
	require.True(t, ok)
	assert.Equal(t, 100000.0, th.P50)
	assert.Equal(t, 500000.0, th.P75)

	// The low award sits at or below the median, the high one above p75.
	assert.LessOrEqual(t, 100000.0, th.P50)
	assert.Greater(t, 900000.0, th.P75)
}

func TestPercentileMonotonicity(t *testing.T) {
	stats := Compute([]types.ContractRecord{
		sbRecord("541330", 10),
		sbRecord("541330", 25000),
		sbRecord("541330", 90000),
		sbRecord("541330", 250000),
		sbRecord("541330", 1000000),
	}, config.Default())

	th, ok := stats.PercentileThresholds("541330")
	require.True(t, ok)
	assert.LessOrEqual(t, th.P50, th.P75)
	assert.LessOrEqual(t, th.P75, th.P90)
}

func TestPercentileThresholdsNoData(t *testing.T) {
	stats := Compute(nil, config.Default())

	_, ok := stats.PercentileThresholds("999999")
	assert.False(t, ok)
}

func TestOnlySmallBusinessRowsCount(t *testing.T) {
	stats := Compute([]types.ContractRecord{
		sbRecord("541512", 100),
		{NAICS: "541512", SizeStatus: types.SizeStatusOTSB, SBDollars: 999999},
		{NAICS: "238210", SizeStatus: types.SizeStatusOTSB, SBDollars: 5},
	}, config.Default())

	assert.Equal(t, 1, stats.DistinctNAICS())
	_, ok := stats.PercentileThresholds("238210")
	assert.False(t, ok)
}

func TestTopNAICSEitherRanking(t *testing.T) {
	cfg := config.Default()
	cfg.TopNAICSCount = 1

	// 541512 wins on dollars, 238210 wins on action count.
	records := []types.ContractRecord{
		sbRecord("541512", 1000000),
		sbRecord("238210", 10),
		sbRecord("238210", 10),
		sbRecord("238210", 10),
		sbRecord("541330", 50),
	}

	stats := Compute(records, cfg)
	assert.True(t, stats.IsTopNAICS("541512"))
	assert.True(t, stats.IsTopNAICS("238210"))
	assert.False(t, stats.IsTopNAICS("541330"))
}

func TestRankTieBreakDeterministic(t *testing.T) {
	metric := map[string]float64{
		"541512": 100,
		"238210": 100,
		"541330": 100,
	}

	top := rank(metric, 2, false)
	assert.Equal(t, []string{"238210", "541330"}, top, "ties break by code ascending")

	bottom := rank(metric, 2, true)
	assert.Equal(t, []string{"238210", "541330"}, bottom)
}

func TestStrongWeakSizing(t *testing.T) {
	cfg := config.Default()
	cfg.StrongNAICSPercentage = 0.5

	// Dollar and count rankings agree so membership is unambiguous.
	records := []types.ContractRecord{
		sbRecord("111111", 250), sbRecord("111111", 250), sbRecord("111111", 250), sbRecord("111111", 250),
		sbRecord("222222", 40), sbRecord("222222", 30), sbRecord("222222", 30),
		sbRecord("333333", 5), sbRecord("333333", 5),
		sbRecord("444444", 1),
	}

	stats := Compute(records, cfg)

	// Half of four distinct groups: two strong, two weak.
	assert.True(t, stats.IsStrongNAICS("111111"))
	assert.True(t, stats.IsStrongNAICS("222222"))
	assert.False(t, stats.IsStrongNAICS("333333"))

	assert.True(t, stats.IsWeakNAICS("444444"))
	assert.True(t, stats.IsWeakNAICS("333333"))
	assert.False(t, stats.IsWeakNAICS("111111"))
}

func TestLongNAICSKeysNormalized(t *testing.T) {
	stats := Compute([]types.ContractRecord{
		sbRecord("5415129999", 100),
	}, config.Default())

	_, ok := stats.PercentileThresholds("541512")
	assert.True(t, ok)
}
