// Package mitigation turns scored clauses into prioritized
// recommendations and rolls them up into an executive summary.
package mitigation

import (
	"sort"

	"github.com/unbound-force/clauserisk/internal/taxonomy"
)

// Generate returns the mitigation strategies for a scored clause,
// ordered Critical, High, Medium, Low and by table order within a
// priority. Only High and Medium clauses receive strategies; Neutral
// clauses never do. The result is never nil.
func Generate(r taxonomy.ClauseRiskRecord) []taxonomy.Mitigation {
	out := []taxonomy.Mitigation{}
	if r.CanonicalCategory == taxonomy.Neutral || !r.SeverityBucket.Mitigable() {
		return out
	}

	for _, c := range tables[r.CanonicalCategory] {
		if len(c.requires) > 0 && !anyTrigger(r.HighRiskDetection, c.requires) {
			continue
		}
		if c.when != nil && !c.when(r) {
			continue
		}

		m := taxonomy.Mitigation{
			Priority:  c.priority,
			Strategy:  c.strategy,
			Action:    c.action,
			Rationale: c.rationale,
		}
		if anyTrigger(r.HighRiskDetection, c.promoteOn) {
			m.Priority = taxonomy.PriorityCritical
		}
		if c.actionFor != nil {
			m.Action = c.actionFor(r)
		}
		out = append(out, m)
	}

	if len(out) == 0 && r.SeverityBucket == taxonomy.BucketHigh {
		out = fallback(r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return taxonomy.RankOf(out[i].Priority) < taxonomy.RankOf(out[j].Priority)
	})
	return out
}

func anyTrigger(d taxonomy.HighRiskDetection, ids []taxonomy.TriggerID) bool {
	for _, id := range ids {
		if d.Has(id) {
			return true
		}
	}
	return false
}
