package mitigation

import (
	"fmt"

	"github.com/unbound-force/clauserisk/internal/config"
	"github.com/unbound-force/clauserisk/internal/taxonomy"
)

var effortNotes = map[taxonomy.EffortLevel]string{
	taxonomy.EffortLow:      "Minimal negotiation required",
	taxonomy.EffortMedium:   "2-3 weeks for negotiation and legal review",
	taxonomy.EffortHigh:     "4-6 weeks for comprehensive risk mitigation",
	taxonomy.EffortVeryHigh: "6+ weeks; consider walking away if risks cannot be mitigated",
}

// categoryReviews phrases the per-category review line.
var categoryReviews = map[taxonomy.Category]string{
	taxonomy.LiabilityRisk:   "Risk management review for %d liability clauses",
	taxonomy.TerminationRisk: "Business continuity review for %d termination clauses",
	taxonomy.IPRisk:          "IP counsel review for %d intellectual property clauses",
	taxonomy.DataPrivacyRisk: "Privacy and compliance review for %d data privacy clauses",
	taxonomy.PaymentRisk:     "Finance review for %d payment clauses",
}

type itemKey struct {
	strategy string
	action   string
}

// Summarize rolls the mitigation strategies of every record into the
// contract's executive summary. Records are read in input order, so
// action lists keep first-seen order.
func Summarize(records []taxonomy.ClauseRiskRecord, cfg config.MitigationConfig) taxonomy.MitigationSummary {
	s := taxonomy.MitigationSummary{
		CriticalActions:     []taxonomy.Mitigation{},
		HighPriorityActions: []taxonomy.Mitigation{},
		RecommendedReviews:  []string{},
	}

	// Each action list deduplicates on its own; the item total counts
	// unique items across every priority.
	seen := make(map[itemKey]bool)
	listed := map[taxonomy.Priority]map[itemKey]bool{
		taxonomy.PriorityCritical: {},
		taxonomy.PriorityHigh:     {},
	}
	highClauses := 0
	perCategory := make(map[taxonomy.Category]int)

	for _, r := range records {
		if r.SeverityBucket == taxonomy.BucketHigh {
			highClauses++
		}
		if r.SeverityBucket.Mitigable() && r.CanonicalCategory != taxonomy.Neutral {
			perCategory[r.CanonicalCategory]++
		}

		for _, m := range r.MitigationStrategies {
			k := itemKey{m.Strategy, m.Action}
			seen[k] = true

			inList, ok := listed[m.Priority]
			if !ok || inList[k] {
				continue
			}
			inList[k] = true

			switch m.Priority {
			case taxonomy.PriorityCritical:
				s.CriticalActions = append(s.CriticalActions, m)
			case taxonomy.PriorityHigh:
				s.HighPriorityActions = append(s.HighPriorityActions, m)
			}
		}
	}

	s.TotalMitigationItems = len(seen)
	s.CriticalActions = truncate(s.CriticalActions, cfg.MaxCriticalActions)
	s.HighPriorityActions = truncate(s.HighPriorityActions, cfg.MaxHighActions)

	if highClauses > 0 {
		s.RecommendedReviews = append(s.RecommendedReviews,
			fmt.Sprintf("Legal review required for %d high-severity clauses", highClauses))
	}
	for _, cat := range taxonomy.Categories() {
		if n := perCategory[cat]; n > 0 {
			s.RecommendedReviews = append(s.RecommendedReviews, fmt.Sprintf(categoryReviews[cat], n))
		}
	}

	s.EstimatedEffort = Effort(s.TotalMitigationItems, cfg)
	s.EffortNote = effortNotes[s.EstimatedEffort]
	return s
}

// Effort buckets a mitigation item count. The configured maxima are
// inclusive.
func Effort(items int, cfg config.MitigationConfig) taxonomy.EffortLevel {
	switch {
	case items <= cfg.EffortLowMax:
		return taxonomy.EffortLow
	case items <= cfg.EffortMediumMax:
		return taxonomy.EffortMedium
	case items <= cfg.EffortHighMax:
		return taxonomy.EffortHigh
	default:
		return taxonomy.EffortVeryHigh
	}
}

func truncate(list []taxonomy.Mitigation, limit int) []taxonomy.Mitigation {
	if limit >= 0 && len(list) > limit {
		return list[:limit]
	}
	return list
}
