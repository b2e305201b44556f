package scoring

import (
	"context"
	"errors"
	"fmt"

	"github.com/unbound-force/clauserisk/internal/calibrate"
	"github.com/unbound-force/clauserisk/internal/taxonomy"
)

// ErrNoLabelledClauses is returned by Evaluate when no input carries an
// expected category.
var ErrNoLabelledClauses = errors.New("no clause has an expected category")

// DefaultBins is the reliability histogram resolution used when the
// caller passes a non-positive bin count.
const DefaultBins = 10

// Evaluation compares raw and calibrated confidence against gold
// categories. A clause counts as correct when its resolved category
// equals its expected one.
type Evaluation struct {
	Labelled      int     `json:"labelled"`
	Correct       int     `json:"correct"`
	Accuracy      float64 `json:"accuracy"`
	Bins          int     `json:"bins"`
	RawECE        float64 `json:"raw_ece"`
	CalibratedECE float64 `json:"calibrated_ece"`

	RawHistogram        []calibrate.Bin `json:"raw_histogram"`
	CalibratedHistogram []calibrate.Bin `json:"calibrated_histogram"`
}

// Evaluate scores inputs and measures the expected calibration error of
// the raw and calibrated confidences over the clauses that carry an
// Expected category. Unlabelled clauses are scored but ignored.
func (e *Engine) Evaluate(ctx context.Context, inputs []taxonomy.ClauseInput, bins int) (*Evaluation, error) {
	if bins <= 0 {
		bins = DefaultBins
	}

	var labelled []taxonomy.ClauseInput
	for i, in := range inputs {
		if in.Expected == "" {
			continue
		}
		if !in.Expected.Valid() {
			return nil, fmt.Errorf("clause %d: unknown expected category %q", i, in.Expected)
		}
		labelled = append(labelled, in)
	}
	if len(labelled) == 0 {
		return nil, ErrNoLabelledClauses
	}

	a, err := e.ScoreContract(ctx, labelled)
	if err != nil {
		return nil, err
	}

	raw := make([]float64, len(a.Clauses))
	cal := make([]float64, len(a.Clauses))
	correct := make([]bool, len(a.Clauses))
	ev := &Evaluation{Labelled: len(a.Clauses), Bins: bins}
	for i, r := range a.Clauses {
		raw[i] = r.CalibrationDetails.OriginalConfidence
		cal[i] = r.CalibratedConfidence
		correct[i] = r.CanonicalCategory == labelled[i].Expected
		if correct[i] {
			ev.Correct++
		}
	}
	ev.Accuracy = float64(ev.Correct) / float64(ev.Labelled)

	if ev.RawECE, err = calibrate.ExpectedCalibrationError(raw, correct, bins); err != nil {
		return nil, err
	}
	if ev.CalibratedECE, err = calibrate.ExpectedCalibrationError(cal, correct, bins); err != nil {
		return nil, err
	}
	if ev.RawHistogram, err = calibrate.Histogram(raw, correct, bins); err != nil {
		return nil, err
	}
	if ev.CalibratedHistogram, err = calibrate.Histogram(cal, correct, bins); err != nil {
		return nil, err
	}

	e.logger.Debug("evaluated calibration",
		"labelled", ev.Labelled,
		"accuracy", ev.Accuracy,
		"raw_ece", ev.RawECE,
		"calibrated_ece", ev.CalibratedECE,
	)
	return ev, nil
}
