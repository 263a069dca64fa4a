package config

import (
	"strings"

	"github.com/osbp/contract_insights/internal/env"
)

// Config carries every tunable threshold the pipeline reads. Components take
// it by value at construction; nothing reads process-wide state after startup.
type Config struct {
	MinMonthsRemaining    int
	MaxMonthsRemaining    int
	TopNAICSCount         int
	StrongNAICSPercentage float64
	TargetedNAICS         []string
	MaxRows               int
	EnrichWorkers         int
}

func Default() Config {
	return Config{
		MinMonthsRemaining:    6,
		MaxMonthsRemaining:    24,
		TopNAICSCount:         25,
		StrongNAICSPercentage: 0.30,
		TargetedNAICS:         []string{"33", "51", "54"},
		MaxRows:               5,
		EnrichWorkers:         4,
	}
}

func FromEnv() Config {
	cfg := Default()
	cfg.MinMonthsRemaining = env.GetInt("MIN_MONTHS_REMAINING", cfg.MinMonthsRemaining)
	cfg.MaxMonthsRemaining = env.GetInt("MAX_MONTHS_REMAINING", cfg.MaxMonthsRemaining)
	cfg.TopNAICSCount = env.GetInt("TOP_NAICS_COUNT", cfg.TopNAICSCount)
	cfg.StrongNAICSPercentage = env.GetFloat("STRONG_NAICS_PERCENTAGE", cfg.StrongNAICSPercentage)
	cfg.MaxRows = env.GetInt("MAX_ROWS", cfg.MaxRows)
	cfg.EnrichWorkers = env.GetInt("ENRICH_WORKERS", cfg.EnrichWorkers)

	if raw := env.GetString("TARGETED_NAICS", ""); raw != "" {
		sectors := []string{}
		for _, s := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				sectors = append(sectors, trimmed)
			}
		}
		if len(sectors) > 0 {
			cfg.TargetedNAICS = sectors
		}
	}

	return cfg
}

// IsTargetedSector reports whether the first two digits of a NAICS code fall
// in the configured target sector list.
func (c Config) IsTargetedSector(naics string) bool {
	if len(naics) < 2 {
		return false
	}
	sector := naics[:2]
	for _, t := range c.TargetedNAICS {
		if sector == t {
			return true
		}
	}
	return false
}
