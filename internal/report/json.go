// Package report renders scored contracts as JSON, styled terminal
// text, a Markdown executive report, and HTML.
package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/unbound-force/clauserisk/internal/scoring"
	"github.com/unbound-force/clauserisk/internal/taxonomy"
)

// Version is the JSON envelope version documented by Schema.
const Version = "1.0.0"

// JSONReport is the top-level JSON output structure.
type JSONReport struct {
	Version      string                       `json:"version"`
	AssessmentID string                       `json:"assessment_id"`
	GeneratedAt  time.Time                    `json:"generated_at"`
	Clauses      []taxonomy.ClauseRiskRecord  `json:"clauses"`
	Summary      taxonomy.ContractRiskSummary `json:"summary"`
}

// NewJSONReport wraps an assessment in a freshly identified envelope.
func NewJSONReport(a *scoring.Assessment) JSONReport {
	r := JSONReport{
		Version:      Version,
		AssessmentID: uuid.NewString(),
		GeneratedAt:  time.Now().UTC(),
	}
	if a != nil {
		r.Clauses = a.Clauses
		r.Summary = a.Summary
	}
	// Always return a non-nil slice so JSON marshals as [] not null.
	if r.Clauses == nil {
		r.Clauses = []taxonomy.ClauseRiskRecord{}
	}
	return r
}

// WriteJSON writes the assessment as formatted JSON to the writer.
func WriteJSON(w io.Writer, a *scoring.Assessment) error {
	return writeIndented(w, NewJSONReport(a))
}

// WriteEvaluationJSON writes a calibration evaluation as formatted JSON.
func WriteEvaluationJSON(w io.Writer, ev *scoring.Evaluation) error {
	return writeIndented(w, ev)
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
