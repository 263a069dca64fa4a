package corpus

import (
	"math"
	"sort"

	"github.com/osbp/contract_insights/internal/pipeline/config"
	"github.com/osbp/contract_insights/internal/pipeline/types"
	"github.com/osbp/contract_insights/internal/pipeline/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Thresholds are the award-value percentile cut points for one NAICS group.
type Thresholds struct {
	P50 float64
	P75 float64
	P90 float64
}

// Stats holds every corpus-wide aggregate the enrichment functions consult.
// It is computed once per batch and read-only afterwards, so concurrent
// enrichment workers can share one instance.
type Stats struct {
	dollarsByNAICS map[string][]float64
	countsByNAICS  map[string]int

	topByValue  map[string]bool
	topByCount  map[string]bool
	strongValue map[string]bool
	strongCount map[string]bool
	weakValue   map[string]bool
	weakCount   map[string]bool
}

// Compute scans the full canonical table (small-business rows only) and
// builds the per-NAICS dollar groups plus the top/strong/weak rankings.
func Compute(records []types.ContractRecord, cfg config.Config) *Stats {
	s := &Stats{
		dollarsByNAICS: make(map[string][]float64),
		countsByNAICS:  make(map[string]int),
	}

	for _, r := range records {
		if !r.IsSmallBusiness() {
			continue
		}
		naics := utils.NormalizeNAICS(r.NAICS)
		if naics == "" {
			continue
		}
		s.dollarsByNAICS[naics] = append(s.dollarsByNAICS[naics], r.SBDollars)
		s.countsByNAICS[naics]++
	}

	sums := make(map[string]float64, len(s.dollarsByNAICS))
	counts := make(map[string]float64, len(s.countsByNAICS))
	for naics, vals := range s.dollarsByNAICS {
		sums[naics] = floats.Sum(vals)
		counts[naics] = float64(s.countsByNAICS[naics])
	}

	s.topByValue = asSet(rank(sums, cfg.TopNAICSCount, false))
	s.topByCount = asSet(rank(counts, cfg.TopNAICSCount, false))

	strongK := int(math.Round(cfg.StrongNAICSPercentage * float64(len(sums))))
	s.strongValue = asSet(rank(sums, strongK, false))
	s.strongCount = asSet(rank(counts, strongK, false))
	s.weakValue = asSet(rank(sums, strongK, true))
	s.weakCount = asSet(rank(counts, strongK, true))

	return s
}

// PercentileThresholds returns the 50/75/90 linear-interpolation percentiles
// of small-business dollars for one NAICS group. ok is false when the group
// has no data; callers must treat that as an explicit no-data signal.
func (s *Stats) PercentileThresholds(naics string) (Thresholds, bool) {
	vals, ok := s.dollarsByNAICS[utils.NormalizeNAICS(naics)]
	if !ok || len(vals) == 0 {
		return Thresholds{}, false
	}

	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	return Thresholds{
		P50: stat.Quantile(0.50, stat.LinInterp, sorted, nil),
		P75: stat.Quantile(0.75, stat.LinInterp, sorted, nil),
		P90: stat.Quantile(0.90, stat.LinInterp, sorted, nil),
	}, true
}

// IsTopNAICS reports membership in the top-K ranking by summed dollars or by
// action count; presence in either counts.
func (s *Stats) IsTopNAICS(naics string) bool {
	key := utils.NormalizeNAICS(naics)
	return s.topByValue[key] || s.topByCount[key]
}

func (s *Stats) IsStrongNAICS(naics string) bool {
	key := utils.NormalizeNAICS(naics)
	return s.strongValue[key] || s.strongCount[key]
}

func (s *Stats) IsWeakNAICS(naics string) bool {
	key := utils.NormalizeNAICS(naics)
	return s.weakValue[key] || s.weakCount[key]
}

// DistinctNAICS is the number of small-business NAICS groups in the corpus.
func (s *Stats) DistinctNAICS() int {
	return len(s.dollarsByNAICS)
}

// rank orders codes by metric (descending unless ascending is set), breaking
// ties by NAICS code ascending so results are deterministic, and returns the
// first k codes.
func rank(metric map[string]float64, k int, ascending bool) []string {
	codes := make([]string, 0, len(metric))
	for code := range metric {
		codes = append(codes, code)
	}

	sort.Slice(codes, func(i, j int) bool {
		a, b := metric[codes[i]], metric[codes[j]]
		if a == b {
			return codes[i] < codes[j]
		}
		if ascending {
			return a < b
		}
		return a > b
	})

	if k < 0 {
		k = 0
	}
	if k > len(codes) {
		k = len(codes)
	}
	return codes[:k]
}

func asSet(codes []string) map[string]bool {
	set := make(map[string]bool, len(codes))
	for _, c := range codes {
		set[c] = true
	}
	return set
}
