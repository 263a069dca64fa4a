package insight

import (
	"testing"
	"time"

	"github.com/osbp/contract_insights/internal/pipeline/config"
	"github.com/osbp/contract_insights/internal/pipeline/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(contractNo string, months int, setAside, sizeStatus, actionType string) types.ContractRecord {
	return types.ContractRecord{
		ContractNo:          contractNo,
		ExpirationDate:      time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		MonthsRemaining:     months,
		SetAsideDescription: setAside,
		SizeStatus:          sizeStatus,
		ContractActionType:  actionType,
	}
}

func TestApplyUnknownRule(t *testing.T) {
	_, err := Apply("no_such_rule", nil, config.Default())
	require.Error(t, err)
}

func TestUnrestrictedSBAwards(t *testing.T) {
	cfg := config.Default()

	table := []types.ContractRecord{
		record("C-OUT-OF-WINDOW", 30, types.NoSetAsideUsed, types.SizeStatusSB, "AWARD"),
		record("C-IN", 12, types.NoSetAsideUsed, types.SizeStatusSB, "AWARD"),
		record("C-SET-ASIDE", 12, "SMALL BUSINESS SET ASIDE", types.SizeStatusSB, "AWARD"),
		record("C-OTSB", 12, types.NoSetAsideUsed, types.SizeStatusOTSB, "AWARD"),
		record("C-MOD", 12, types.NoSetAsideUsed, types.SizeStatusSB, "MODIFICATION"),
	}

	matched, err := Apply(RuleUnrestrictedSBAwards, table, cfg)
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "C-IN", matched[0].ContractNo)
}

func TestSetAsideSocioPotential(t *testing.T) {
	cfg := config.Default()

	table := []types.ContractRecord{
		record("C-UNRESTRICTED", 12, types.NoSetAsideUsed, types.SizeStatusSB, "AWARD"),
		record("C-SBSA", 12, "SMALL BUSINESS SET ASIDE", types.SizeStatusSB, "AWARD"),
		record("C-SBSA-OTSB", 12, "SMALL BUSINESS SET ASIDE", types.SizeStatusOTSB, "AWARD"),
	}

	matched, err := Apply(RuleSetAsideSocioPotential, table, cfg)
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "C-SBSA", matched[0].ContractNo)
}

func TestEightAExit(t *testing.T) {
	cfg := config.Default()

	table := []types.ContractRecord{
		record("C-SOLE", 12, "8(a) Sole Source", types.SizeStatusSB, "AWARD"),
		record("C-COMPETED", 8, "8A COMPETED", types.SizeStatusOTSB, "AWARD"),
		record("C-OTHER", 12, "SMALL BUSINESS SET ASIDE", types.SizeStatusSB, "AWARD"),
	}

	matched, err := Apply(Rule8aExit, table, cfg)
	require.NoError(t, err)
	require.Len(t, matched, 2, "program status governs, size status does not")
	assert.Equal(t, "C-COMPETED", matched[0].ContractNo, "sorted by months remaining ascending")
}

func TestUnrestrictedOTSBAwards(t *testing.T) {
	cfg := config.Default()

	table := []types.ContractRecord{
		record("C-OTSB", 12, types.NoSetAsideUsed, types.SizeStatusOTSB, "AWARD"),
		record("C-SB", 12, types.NoSetAsideUsed, types.SizeStatusSB, "AWARD"),
		record("C-SATOC", 12, types.NoSetAsideUsed, types.SizeStatusOTSB, "SATOC"),
	}

	matched, err := Apply(RuleUnrestrictedOTSBAwards, table, cfg)
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "C-OTSB", matched[0].ContractNo)
}

func TestSubsetAndOrderingLaw(t *testing.T) {
	cfg := config.Default()

	table := []types.ContractRecord{
		record("C-1", 20, types.NoSetAsideUsed, types.SizeStatusSB, "AWARD"),
		record("C-2", 6, types.NoSetAsideUsed, types.SizeStatusSB, "AWARD"),
		record("C-3", 12, types.NoSetAsideUsed, types.SizeStatusSB, "AWARD"),
		record("C-4", 12, types.NoSetAsideUsed, types.SizeStatusSB, "AWARD"),
	}
	inTable := make(map[string]bool, len(table))
	for _, r := range table {
		inTable[r.ContractNo] = true
	}

	for _, rule := range Names() {
		matched, err := Apply(rule, table, cfg)
		require.NoError(t, err)

		assert.LessOrEqual(t, len(matched), len(table))
		for i, r := range matched {
			assert.True(t, inTable[r.ContractNo], "no row is fabricated")
			if i > 0 {
				assert.GreaterOrEqual(t, r.MonthsRemaining, matched[i-1].MonthsRemaining)
			}
		}
	}

	// Stable: equal months keep input order.
	matched, err := Apply(RuleUnrestrictedSBAwards, table, cfg)
	require.NoError(t, err)
	require.Len(t, matched, 4)
	assert.Equal(t, "C-3", matched[1].ContractNo)
	assert.Equal(t, "C-4", matched[2].ContractNo)
}

func TestWindowBoundsInclusive(t *testing.T) {
	cfg := config.Default()

	table := []types.ContractRecord{
		record("C-MIN", cfg.MinMonthsRemaining, types.NoSetAsideUsed, types.SizeStatusSB, "AWARD"),
		record("C-MAX", cfg.MaxMonthsRemaining, types.NoSetAsideUsed, types.SizeStatusSB, "AWARD"),
		record("C-UNDER", cfg.MinMonthsRemaining-1, types.NoSetAsideUsed, types.SizeStatusSB, "AWARD"),
		record("C-OVER", cfg.MaxMonthsRemaining+1, types.NoSetAsideUsed, types.SizeStatusSB, "AWARD"),
	}

	matched, err := Apply(RuleUnrestrictedSBAwards, table, cfg)
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, "C-MIN", matched[0].ContractNo)
	assert.Equal(t, "C-MAX", matched[1].ContractNo)
}

func TestNullExpirationExcluded(t *testing.T) {
	cfg := config.Default()

	r := record("C-NULL", 12, types.NoSetAsideUsed, types.SizeStatusSB, "AWARD")
	r.ExpirationDate = time.Time{}

	matched, err := Apply(RuleUnrestrictedSBAwards, []types.ContractRecord{r}, cfg)
	require.NoError(t, err)
	assert.Empty(t, matched)
}
