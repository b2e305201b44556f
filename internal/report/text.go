package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/unbound-force/clauserisk/internal/scoring"
	"github.com/unbound-force/clauserisk/internal/taxonomy"
)

// wrapWidth is the body width of wrapped prose lines; with the indent
// they stay inside 80 columns.
const wrapWidth = 70

// TextOptions controls optional sections of the text report.
type TextOptions struct {
	// Verbose adds a per-clause breakdown of triggers and mitigations
	// for every High and Medium clause.
	Verbose bool
}

// WriteText writes the assessment as human-readable styled text
// to the writer. Output uses lipgloss for color and formatting when
// the output is a TTY; degrades gracefully for pipes and CI.
func WriteText(w io.Writer, a *scoring.Assessment) error {
	return WriteTextOptions(w, a, TextOptions{})
}

// WriteTextOptions is WriteText with optional sections.
func WriteTextOptions(w io.Writer, a *scoring.Assessment, opts TextOptions) error {
	s := DefaultStyles()

	fmt.Fprintln(w, s.Header.Render("=== Contract Risk Assessment ==="))
	if a == nil || len(a.Clauses) == 0 {
		fmt.Fprintln(w, s.Muted.Render("    No clauses scored."))
		return nil
	}
	fmt.Fprintln(w)

	writeClauseTable(w, a.Clauses, s)
	writeSummary(w, a.Summary, s)
	writeActions(w, a.Summary.MitigationSummary, s)

	if opts.Verbose {
		for _, r := range a.Clauses {
			if !r.SeverityBucket.Mitigable() {
				continue
			}
			fmt.Fprintln(w)
			writeClauseDetail(w, r, s)
		}
	}
	return nil
}

func writeClauseTable(w io.Writer, records []taxonomy.ClauseRiskRecord, s Styles) {
	// Budget: 80 cols total. Borders take 6 (│ on each side + 4 inner │).
	// Padding: 1 space right per column = 5 cols for 5 columns.
	// Available: 80 - 4 (indent) - 6 - 5 = 65.
	// #=3, BUCKET=6, SCORE=5, CATEGORY=17, CLAUSE=34.
	const maxClause = 34
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		clause := truncateRunes(flatten(r.ClauseText), maxClause)
		if r.HighRiskDetection.IsHighRisk {
			clause = truncateRunes("! "+flatten(r.ClauseText), maxClause)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.Index+1),
			string(r.SeverityBucket),
			fmt.Sprintf("%.2f", r.SeverityScore),
			string(r.CanonicalCategory),
			clause,
		})
	}

	t := table.New().
		Width(76). // Leave 4 chars for left indent.
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			// Color the bucket column based on bucket value.
			if col == 1 && row >= 0 && row < len(rows) {
				return s.BucketStyle(taxonomy.Bucket(rows[row][1]))
			}
			return s.TableCell
		}).
		Headers("#", "BUCKET", "SCORE", "CATEGORY", "CLAUSE").
		Rows(rows...)

	fmt.Fprintln(w, t)
	fmt.Fprintln(w, s.Muted.Render("    ! marks clauses with high-risk triggers"))
}

func writeSummary(w io.Writer, sum taxonomy.ContractRiskSummary, s Styles) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, s.Header.Render("--- Summary ---"))
	line := func(label, value string) {
		fmt.Fprintf(w, "%s  %s\n", s.SummaryLabel.Render(label), s.SummaryValue.Render(value))
	}

	line("Clauses scored:", fmt.Sprintf("%d", sum.TotalClauses))
	line("Risk score:", fmt.Sprintf("%.1f / 100", sum.NormalizedScore))
	line("Total severity:", fmt.Sprintf("%.2f of %.2f possible", sum.TotalSeverityScore, sum.MaxPossibleScore))

	high := fmt.Sprintf("%d", sum.HighRiskCount)
	if sum.HighRiskCount > 0 {
		high = s.Fail.Render(high)
	}
	line("High-risk clauses:", high)
	line("Calibrated clauses:", fmt.Sprintf("%d", sum.CalibratedClauses))

	var parts []string
	for _, b := range taxonomy.Buckets() {
		parts = append(parts, s.BucketStyle(b).Render(fmt.Sprintf("%s: %d", b, sum.SeverityCounts[b])))
	}
	line("Severity:", strings.Join(parts, ", "))

	ms := sum.MitigationSummary
	line("Mitigation items:", fmt.Sprintf("%d", ms.TotalMitigationItems))
	line("Estimated effort:", string(ms.EstimatedEffort))
	if ms.EffortNote != "" {
		writeWrapped(w, s.Muted, "    ", ms.EffortNote)
	}
}

func writeActions(w io.Writer, ms taxonomy.MitigationSummary, s Styles) {
	if len(ms.CriticalActions) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, s.Header.Render(
			fmt.Sprintf("--- Critical Actions (%d) ---", len(ms.CriticalActions))))
		writeMitigations(w, ms.CriticalActions, s)
	}
	if len(ms.HighPriorityActions) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, s.Header.Render(
			fmt.Sprintf("--- High Priority Actions (%d) ---", len(ms.HighPriorityActions))))
		writeMitigations(w, ms.HighPriorityActions, s)
	}
	if len(ms.RecommendedReviews) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, s.Header.Render("--- Recommended Reviews ---"))
		for _, r := range ms.RecommendedReviews {
			writeWrapped(w, s.SummaryValue, "  - ", r)
		}
	}
}

func writeMitigations(w io.Writer, ms []taxonomy.Mitigation, s Styles) {
	for i, m := range ms {
		fmt.Fprintf(w, "  %d. %s %s\n", i+1,
			s.PriorityStyle(m.Priority).Render(fmt.Sprintf("[%s]", m.Priority)),
			m.Strategy)
		writeWrapped(w, s.SummaryValue, "     ", m.Action)
	}
}

func writeClauseDetail(w io.Writer, r taxonomy.ClauseRiskRecord, s Styles) {
	fmt.Fprintln(w, s.Header.Render(fmt.Sprintf("=== Clause %d: %s ===", r.Index+1, r.CanonicalCategory)))
	fmt.Fprintln(w, s.SubHeader.Render(fmt.Sprintf(
		"    bucket %s, score %.2f, conf %.2f -> %.2f, exposure %s (x%.1f)",
		r.SeverityBucket, r.SeverityScore, r.RawConfidence, r.CalibratedConfidence,
		r.FinancialExposure.Level, r.FinancialExposure.Multiplier)))
	writeWrapped(w, s.Muted, "    ", flatten(r.ClauseText))

	if len(r.HighRiskDetection.Triggers) > 0 {
		fmt.Fprintln(w, s.SummaryLabel.Render("    Triggers:"))
		for _, t := range r.HighRiskDetection.Triggers {
			writeWrapped(w, s.Fail, "      - ", t)
		}
	}
	if len(r.MitigationStrategies) > 0 {
		fmt.Fprintln(w, s.SummaryLabel.Render("    Mitigations:"))
		for _, m := range r.MitigationStrategies {
			fmt.Fprintf(w, "      %s %s\n",
				s.PriorityStyle(m.Priority).Render(fmt.Sprintf("[%s]", m.Priority)),
				m.Strategy)
			writeWrapped(w, s.Muted, "        ", m.Rationale)
		}
	}
}

// writeWrapped word-wraps text so that prefix plus body fits wrapWidth
// plus the indent, and aligns continuation lines under the first.
func writeWrapped(w io.Writer, style lipgloss.Style, prefix, text string) {
	width := wrapWidth + 4 - len(prefix)
	body := lipgloss.NewStyle().Width(width).Render(text)
	pad := strings.Repeat(" ", len(prefix))
	for i, l := range strings.Split(body, "\n") {
		l = strings.TrimRight(l, " ")
		if i == 0 {
			fmt.Fprintln(w, prefix+style.Render(l))
			continue
		}
		fmt.Fprintln(w, pad+style.Render(l))
	}
}

// flatten collapses runs of whitespace, including newlines, to single
// spaces.
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateRunes shortens s to at most n runes, marking the cut with "...".
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
