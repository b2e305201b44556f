// Package calibrate adjusts a classifier's raw confidence with bounded
// additive rules driven by the clause text and its extracted signals,
// and measures how well confidences track accuracy.
package calibrate

import (
	"math"

	"github.com/unbound-force/clauserisk/internal/config"
	"github.com/unbound-force/clauserisk/internal/extract"
	"github.com/unbound-force/clauserisk/internal/taxonomy"
)

// Adjustment factor names, in application order.
const (
	FactorStrongKeywords = "keyword_match_strong"
	FactorKeywords       = "keyword_match"
	FactorAmount         = "explicit_amount"
	FactorEnforceability = "enforceability_language"
	FactorLongClause     = "detailed_clause"
	FactorShortClause    = "short_clause"
	FactorNegation       = "negation_language"
)

// Calibrator applies the calibration rules. It is immutable and safe
// for concurrent use.
type Calibrator struct {
	rules    config.CalibrationConfig
	profiles config.Profiles
}

// New builds a Calibrator from cfg.
func New(cfg *config.RiskConfig) (*Calibrator, error) {
	profiles, err := cfg.Profiles()
	if err != nil {
		return nil, err
	}
	return &Calibrator{rules: cfg.Calibration, profiles: profiles}, nil
}

// Clamp limits v to [0, 1]. NaN becomes 0.
func Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Calibrate clamps raw to [0, 1], then adds the delta of every rule
// that fires and clamps the sum again. Rules fire independently and are
// recorded in a fixed order:
//
//  1. category keyword hits (strong at or above the configured count)
//  2. an extracted monetary value
//  3. enforceability language ("shall", "must", "required")
//  4. a long clause
//  5. a short clause
//  6. negation or exception language ("not", "except", "unless")
func (c *Calibrator) Calibrate(raw float64, text string, cat taxonomy.Category, md taxonomy.ExtractedMetadata) taxonomy.CalibrationResult {
	r := c.rules
	lower := extract.Lower(text)
	original := Clamp(raw)

	// Always return a non-nil slice so JSON marshals as [] not null.
	adjustments := make([]taxonomy.Adjustment, 0, 6)
	add := func(factor string, delta float64) {
		adjustments = append(adjustments, taxonomy.Adjustment{Factor: factor, Delta: delta})
	}

	hits := extract.CountStems(lower, c.profiles.Keywords(cat))
	switch {
	case hits >= r.StrongKeywordHits:
		add(FactorStrongKeywords, r.StrongKeywordDelta)
	case hits > 0:
		add(FactorKeywords, r.KeywordDelta)
	}

	if md.MonetaryValue != nil {
		add(FactorAmount, r.AmountDelta)
	}
	if extract.HasAnyWord(lower, r.EnforceabilityTerms) {
		add(FactorEnforceability, r.EnforceabilityDelta)
	}

	words := extract.WordCount(text)
	if words > r.LongClauseWords {
		add(FactorLongClause, r.LongClauseDelta)
	}
	if words < r.ShortClauseWords {
		add(FactorShortClause, r.ShortClauseDelta)
	}

	if extract.HasAnyWord(lower, r.NegationTerms) {
		add(FactorNegation, r.NegationDelta)
	}

	var total float64
	for _, a := range adjustments {
		total += a.Delta
	}

	return taxonomy.CalibrationResult{
		OriginalConfidence:   original,
		CalibratedConfidence: Clamp(original + total),
		Adjustments:          adjustments,
		KeywordMatches:       hits,
	}
}
