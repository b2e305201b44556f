package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/unbound-force/clauserisk/internal/scoring"
	"github.com/unbound-force/clauserisk/internal/taxonomy"
)

// mdEscaper neutralizes Markdown syntax in clause text so contract
// wording never turns into emphasis, links, headings or table cells.
var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`>`, `\>`,
	`#`, `\#`,
	`|`, `\|`,
)

func mdText(s string) string {
	return mdEscaper.Replace(flatten(s))
}

// WriteMarkdown writes the assessment as a GitHub-flavored Markdown
// executive report: headline score, breakdown tables, prioritized
// actions and a section per High or Medium clause.
func WriteMarkdown(w io.Writer, a *scoring.Assessment) error {
	bw := bufio.NewWriter(w)
	writeMarkdown(bw, a)
	return bw.Flush()
}

func writeMarkdown(w *bufio.Writer, a *scoring.Assessment) {
	fmt.Fprintln(w, "# Contract Risk Assessment")
	fmt.Fprintln(w)
	if a == nil || len(a.Clauses) == 0 {
		fmt.Fprintln(w, "_No clauses scored._")
		return
	}

	sum := a.Summary
	ms := sum.MitigationSummary
	fmt.Fprintf(w, "**Risk score: %.1f / 100**. %d of %d clauses carry high-risk triggers. "+
		"Estimated negotiation effort: **%s** (%s).\n\n",
		sum.NormalizedScore, sum.HighRiskCount, sum.TotalClauses, ms.EstimatedEffort, ms.EffortNote)

	fmt.Fprintln(w, "## Summary")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Metric | Value |")
	fmt.Fprintln(w, "|---|---|")
	fmt.Fprintf(w, "| Clauses scored | %d |\n", sum.TotalClauses)
	fmt.Fprintf(w, "| Total severity | %.2f |\n", sum.TotalSeverityScore)
	fmt.Fprintf(w, "| Maximum possible | %.2f |\n", sum.MaxPossibleScore)
	fmt.Fprintf(w, "| Normalized score | %.1f |\n", sum.NormalizedScore)
	fmt.Fprintf(w, "| High-risk clauses | %d |\n", sum.HighRiskCount)
	fmt.Fprintf(w, "| Calibrated clauses | %d |\n", sum.CalibratedClauses)
	fmt.Fprintf(w, "| Mitigation items | %d |\n", ms.TotalMitigationItems)
	fmt.Fprintf(w, "| Scoring method | `%s` |\n", sum.ScoringMethod)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "## Severity Breakdown")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Bucket | Clauses |")
	fmt.Fprintln(w, "|---|---:|")
	for _, b := range taxonomy.Buckets() {
		fmt.Fprintf(w, "| %s | %d |\n", b, sum.SeverityCounts[b])
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "## Category Breakdown")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Category | Clauses | Weight |")
	fmt.Fprintln(w, "|---|---:|---:|")
	for _, c := range taxonomy.Categories() {
		fmt.Fprintf(w, "| %s | %d | %.1f |\n", c, sum.CategoryCounts[c], sum.CategoryWeights[c])
	}
	fmt.Fprintln(w)

	writeMarkdownActions(w, "Critical Actions", ms.CriticalActions)
	writeMarkdownActions(w, "High Priority Actions", ms.HighPriorityActions)

	if len(ms.RecommendedReviews) > 0 {
		fmt.Fprintln(w, "## Recommended Reviews")
		fmt.Fprintln(w)
		for _, r := range ms.RecommendedReviews {
			fmt.Fprintf(w, "- %s\n", r)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "## Clauses")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| # | Bucket | Score | Category | Source | Exposure |")
	fmt.Fprintln(w, "|---:|---|---:|---|---|---|")
	for _, r := range a.Clauses {
		fmt.Fprintf(w, "| %d | %s | %.2f | %s | %s | %s (%s) |\n",
			r.Index+1, r.SeverityBucket, r.SeverityScore, r.CanonicalCategory,
			r.CategorySource, r.FinancialExposure.Level, r.FinancialExposure.MonetaryValue)
	}
	fmt.Fprintln(w)

	for _, r := range a.Clauses {
		if !r.SeverityBucket.Mitigable() {
			continue
		}
		writeMarkdownClause(w, r)
	}
}

func writeMarkdownActions(w *bufio.Writer, title string, actions []taxonomy.Mitigation) {
	if len(actions) == 0 {
		return
	}
	fmt.Fprintf(w, "## %s\n\n", title)
	for i, m := range actions {
		fmt.Fprintf(w, "%d. **%s**: %s\n", i+1, m.Strategy, m.Action)
	}
	fmt.Fprintln(w)
}

func writeMarkdownClause(w *bufio.Writer, r taxonomy.ClauseRiskRecord) {
	fmt.Fprintf(w, "### Clause %d: %s (%s)\n\n", r.Index+1, r.CanonicalCategory, r.SeverityBucket)
	fmt.Fprintf(w, "> %s\n\n", mdText(r.ClauseText))
	fmt.Fprintf(w, "- Raw label: %s\n", mdText(r.RawLabel))
	fmt.Fprintf(w, "- Severity score: %.2f (impact %.2f x confidence %.2f)\n",
		r.SeverityScore, r.AdjustedImpact, r.CalibratedConfidence)
	fmt.Fprintf(w, "- Confidence: %.2f raw, %.2f calibrated\n", r.RawConfidence, r.CalibratedConfidence)
	fmt.Fprintf(w, "- Financial exposure: %s, x%.1f\n", r.FinancialExposure.Level, r.FinancialExposure.Multiplier)
	if n := r.ExtractedMetadata.Durations.NoticePeriodDays; n > 0 {
		fmt.Fprintf(w, "- Notice period: %d days\n", n)
	}
	fmt.Fprintln(w)

	if len(r.HighRiskDetection.Triggers) > 0 {
		fmt.Fprintln(w, "**High-risk triggers**")
		fmt.Fprintln(w)
		for _, t := range r.HighRiskDetection.Triggers {
			fmt.Fprintf(w, "- %s\n", t)
		}
		fmt.Fprintln(w)
	}

	if len(r.MitigationStrategies) > 0 {
		fmt.Fprintln(w, "**Mitigations**")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Priority | Strategy | Action |")
		fmt.Fprintln(w, "|---|---|---|")
		for _, m := range r.MitigationStrategies {
			fmt.Fprintf(w, "| %s | %s | %s |\n", m.Priority, m.Strategy, mdEscaper.Replace(m.Action))
		}
		fmt.Fprintln(w)
	}
}
