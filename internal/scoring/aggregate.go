package scoring

import (
	"github.com/unbound-force/clauserisk/internal/mitigation"
	"github.com/unbound-force/clauserisk/internal/taxonomy"
)

// Aggregate reduces clause records to the contract summary. Sums run
// over non-Neutral clauses. The normalization ceiling assumes every
// clause at the worst-case exposure multiplier, so the normalized score
// stays within [0, 100]; it is 0 when the ceiling is 0.
func (e *Engine) Aggregate(records []taxonomy.ClauseRiskRecord) taxonomy.ContractRiskSummary {
	s := taxonomy.ContractRiskSummary{
		ScoringMethod:       ScoringMethod,
		TotalClauses:        len(records),
		SeverityCounts:      make(map[taxonomy.Bucket]int, 4),
		CategoryCounts:      make(map[taxonomy.Category]int, 6),
		CategoryWeights:     e.profiles.Weights(),
		ExposureMultipliers: e.cfg.Exposure.Multipliers(),
	}
	for _, b := range taxonomy.Buckets() {
		s.SeverityCounts[b] = 0
	}
	for _, c := range taxonomy.Categories() {
		s.CategoryCounts[c] = 0
	}

	worst := e.cfg.Exposure.CriticalMultiplier
	for _, r := range records {
		s.SeverityCounts[r.SeverityBucket]++
		s.CategoryCounts[r.CanonicalCategory]++
		if r.HighRiskDetection.IsHighRisk {
			s.HighRiskCount++
		}
		if len(r.CalibrationDetails.Adjustments) > 0 {
			s.CalibratedClauses++
		}
		if r.CanonicalCategory == taxonomy.Neutral {
			continue
		}
		s.TotalSeverityScore += r.SeverityScore
		s.MaxPossibleScore += r.BaseImpact * worst
	}

	s.NormalizedScore = Normalize(s.TotalSeverityScore, s.MaxPossibleScore)
	s.MitigationSummary = mitigation.Summarize(records, e.cfg.Mitigation)
	return s
}

// Normalize returns 100 x total / ceiling clamped to [0, 100], or 0
// when ceiling is not positive.
func Normalize(total, ceiling float64) float64 {
	if ceiling <= 0 {
		return 0
	}
	n := 100 * total / ceiling
	switch {
	case n < 0:
		return 0
	case n > 100:
		return 100
	default:
		return n
	}
}
