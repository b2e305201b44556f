package report

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/unbound-force/clauserisk/internal/taxonomy"
)

// Styles defines the visual theme for terminal report output.
// Lipgloss automatically degrades to no-color when output is not a TTY.
type Styles struct {
	// Header is used for section headers (e.g. "=== Contract Risk ===").
	Header lipgloss.Style

	// SubHeader is used for secondary information lines.
	SubHeader lipgloss.Style

	// BucketHigh through BucketNone color-code severity buckets.
	BucketHigh   lipgloss.Style
	BucketMedium lipgloss.Style
	BucketLow    lipgloss.Style
	BucketNone   lipgloss.Style

	// PriorityCritical is the only priority rendered louder than its
	// matching bucket color.
	PriorityCritical lipgloss.Style

	// TableHeader styles the header row of tables.
	TableHeader lipgloss.Style

	// TableCell styles regular table cells.
	TableCell lipgloss.Style

	// SummaryLabel styles summary line labels.
	SummaryLabel lipgloss.Style

	// SummaryValue styles summary line values.
	SummaryValue lipgloss.Style

	// Pass styles improvements (e.g. a lower calibrated error).
	Pass lipgloss.Style

	// Fail styles regressions and high-risk markers.
	Fail lipgloss.Style

	// Border is used for table borders.
	Border lipgloss.Style

	// Muted is used for de-emphasized text.
	Muted lipgloss.Style
}

// DefaultStyles returns the default color scheme for terminal reports.
func DefaultStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		SubHeader: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		BucketHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		BucketMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		BucketLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		BucketNone:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		PriorityCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),

		TableHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		TableCell:   lipgloss.NewStyle().PaddingRight(1),

		SummaryLabel: lipgloss.NewStyle().Bold(true).Width(22),
		SummaryValue: lipgloss.NewStyle(),

		Pass: lipgloss.NewStyle().Foreground(lipgloss.Color("40")).Bold(true),
		Fail: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),

		Border: lipgloss.NewStyle().Foreground(lipgloss.Color("63")),

		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// BucketStyle returns the appropriate style for a severity bucket.
func (s Styles) BucketStyle(b taxonomy.Bucket) lipgloss.Style {
	switch b {
	case taxonomy.BucketHigh:
		return s.BucketHigh
	case taxonomy.BucketMedium:
		return s.BucketMedium
	case taxonomy.BucketLow:
		return s.BucketLow
	default:
		return s.BucketNone
	}
}

// PriorityStyle returns the appropriate style for a mitigation priority.
func (s Styles) PriorityStyle(p taxonomy.Priority) lipgloss.Style {
	switch p {
	case taxonomy.PriorityCritical:
		return s.PriorityCritical
	case taxonomy.PriorityHigh:
		return s.BucketHigh
	case taxonomy.PriorityMedium:
		return s.BucketMedium
	case taxonomy.PriorityLow:
		return s.BucketLow
	default:
		return s.Muted
	}
}
