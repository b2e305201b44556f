package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/unbound-force/clauserisk/internal/scoring"
)

// WriteEvaluationText writes a calibration evaluation as a reliability
// table followed by the error summary.
func WriteEvaluationText(w io.Writer, ev *scoring.Evaluation) error {
	s := DefaultStyles()

	fmt.Fprintln(w, s.Header.Render("=== Calibration Reliability ==="))
	if ev == nil || ev.Labelled == 0 {
		fmt.Fprintln(w, s.Muted.Render("    No labelled clauses."))
		return nil
	}
	fmt.Fprintln(w)

	rows := make([][]string, 0, len(ev.CalibratedHistogram))
	for i, cal := range ev.CalibratedHistogram {
		raw := ev.RawHistogram[i]
		rows = append(rows, []string{
			fmt.Sprintf("%.2f-%.2f", cal.Lower, cal.Upper),
			fmt.Sprintf("%d", raw.Count),
			meanOrDash(raw.Count, raw.MeanConfidence),
			meanOrDash(raw.Count, raw.Accuracy),
			fmt.Sprintf("%d", cal.Count),
			meanOrDash(cal.Count, cal.MeanConfidence),
			meanOrDash(cal.Count, cal.Accuracy),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			return s.TableCell
		}).
		Headers("BIN", "RAW N", "RAW CONF", "RAW ACC", "CAL N", "CAL CONF", "CAL ACC").
		Rows(rows...)
	fmt.Fprintln(w, t)

	fmt.Fprintln(w)
	fmt.Fprintln(w, s.Header.Render("--- Summary ---"))
	fmt.Fprintf(w, "%s  %d\n", s.SummaryLabel.Render("Labelled clauses:"), ev.Labelled)
	fmt.Fprintf(w, "%s  %.1f%% (%d correct)\n", s.SummaryLabel.Render("Category accuracy:"), 100*ev.Accuracy, ev.Correct)
	fmt.Fprintf(w, "%s  %.4f\n", s.SummaryLabel.Render("Raw ECE:"), ev.RawECE)

	cal := fmt.Sprintf("%.4f", ev.CalibratedECE)
	switch {
	case ev.CalibratedECE < ev.RawECE:
		cal = s.Pass.Render(cal) + s.Muted.Render(" (improved)")
	case ev.CalibratedECE > ev.RawECE:
		cal = s.Fail.Render(cal) + s.Muted.Render(" (regressed)")
	}
	fmt.Fprintf(w, "%s  %s\n", s.SummaryLabel.Render("Calibrated ECE:"), cal)
	return nil
}

func meanOrDash(n int, v float64) string {
	if n == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}
