package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 6, cfg.MinMonthsRemaining)
	assert.Equal(t, 24, cfg.MaxMonthsRemaining)
	assert.Equal(t, 25, cfg.TopNAICSCount)
	assert.Equal(t, 0.30, cfg.StrongNAICSPercentage)
	assert.Equal(t, []string{"33", "51", "54"}, cfg.TargetedNAICS)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MIN_MONTHS_REMAINING", "3")
	t.Setenv("MAX_MONTHS_REMAINING", "36")
	t.Setenv("STRONG_NAICS_PERCENTAGE", "0.5")
	t.Setenv("TARGETED_NAICS", "23, 54")

	cfg := FromEnv()
	assert.Equal(t, 3, cfg.MinMonthsRemaining)
	assert.Equal(t, 36, cfg.MaxMonthsRemaining)
	assert.Equal(t, 0.5, cfg.StrongNAICSPercentage)
	assert.Equal(t, []string{"23", "54"}, cfg.TargetedNAICS)
}

func TestIsTargetedSector(t *testing.T) {
	cfg := Default()

	assert.True(t, cfg.IsTargetedSector("541512"))
	assert.True(t, cfg.IsTargetedSector("334111"))
	assert.False(t, cfg.IsTargetedSector("238210"))
	assert.False(t, cfg.IsTargetedSector("5"))
}
