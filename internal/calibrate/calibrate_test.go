package calibrate

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unbound-force/clauserisk/internal/config"
	"github.com/unbound-force/clauserisk/internal/extract"
	"github.com/unbound-force/clauserisk/internal/taxonomy"
)

func newCalibrator(t testing.TB) *Calibrator {
	t.Helper()
	c, err := New(config.DefaultConfig())
	require.NoError(t, err)
	return c
}

func calibrate(t testing.TB, raw float64, text string, cat taxonomy.Category) taxonomy.CalibrationResult {
	t.Helper()
	return newCalibrator(t).Calibrate(raw, text, cat, extract.Metadata(text))
}

func factors(r taxonomy.CalibrationResult) []string {
	out := make([]string, 0, len(r.Adjustments))
	for _, a := range r.Adjustments {
		out = append(out, a.Factor)
	}
	return out
}

// longClause pads text past the long-clause word limit.
func longClause(text string) string {
	return text + strings.Repeat(" and further", 30)
}

func TestCalibrate_Rules(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		cat     taxonomy.Category
		factors []string
		delta   float64
	}{
		{
			name:    "short bare clause",
			text:    "Standard boilerplate applies here.",
			cat:     taxonomy.LiabilityRisk,
			factors: []string{FactorShortClause},
			delta:   -0.05,
		},
		{
			name:    "one keyword with enforceability",
			text:    "Supplier shall indemnify Customer against all third party claims arising from the services provided under this Agreement.",
			cat:     taxonomy.LiabilityRisk,
			factors: []string{FactorKeywords, FactorEnforceability},
			delta:   0.05 + 0.05,
		},
		{
			name: "strong keywords amount and negation",
			text: "Supplier shall indemnify and hold harmless Customer for gross negligence, " +
				"except for amounts over $100,000.",
			cat:     taxonomy.LiabilityRisk,
			factors: []string{FactorStrongKeywords, FactorAmount, FactorEnforceability, FactorNegation},
			delta:   0.10 + 0.08 + 0.05 - 0.07,
		},
		{
			name:    "long clause",
			text:    longClause("The parties must cooperate in good faith"),
			cat:     taxonomy.Neutral,
			factors: []string{FactorEnforceability, FactorLongClause},
			delta:   0.05 + 0.03,
		},
		{
			name:    "notice is not a negation",
			text:    "Customer will give written notice to the other party regarding any change to the schedule.",
			cat:     taxonomy.PaymentRisk,
			factors: []string{},
			delta:   0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calibrate(t, 0.5, tt.text, tt.cat)
			assert.Equal(t, tt.factors, factors(got))
			assert.InDelta(t, 0.5+tt.delta, got.CalibratedConfidence, 1e-9)
			assert.Equal(t, 0.5, got.OriginalConfidence)
		})
	}
}

func TestCalibrate_KeywordMatches(t *testing.T) {
	got := calibrate(t, 0.6, "Patent and copyright ownership transfers.", taxonomy.IPRisk)
	assert.Equal(t, 3, got.KeywordMatches)
	assert.Equal(t, FactorStrongKeywords, got.Adjustments[0].Factor)
}

func TestCalibrate_Monotonic(t *testing.T) {
	text := "Supplier shall indemnify Customer for damages up to $250,000 unless caused by Customer."
	const delta = 0.07
	for _, raw := range []float64{0.2, 0.35, 0.5, 0.6} {
		lo := calibrate(t, raw, text, taxonomy.LiabilityRisk)
		hi := calibrate(t, raw+delta, text, taxonomy.LiabilityRisk)
		assert.InDelta(t, delta, hi.CalibratedConfidence-lo.CalibratedConfidence, 1e-9, "raw=%v", raw)
	}
}

func TestCalibrate_Bounds(t *testing.T) {
	stacked := longClause("Supplier shall indemnify and hold harmless for gross negligence and willful misconduct, " +
		"breach of warranty, uncapped liability of $5 million")
	for _, raw := range []float64{-3, -0.1, 0, 0.4, 0.99, 1, 7, math.NaN(), math.Inf(1)} {
		got := calibrate(t, raw, stacked, taxonomy.LiabilityRisk)
		assert.GreaterOrEqual(t, got.CalibratedConfidence, 0.0)
		assert.LessOrEqual(t, got.CalibratedConfidence, 1.0)
		assert.GreaterOrEqual(t, got.OriginalConfidence, 0.0)
		assert.LessOrEqual(t, got.OriginalConfidence, 1.0)
	}
	assert.Equal(t, 1.0, calibrate(t, 0.99, stacked, taxonomy.LiabilityRisk).CalibratedConfidence)
	assert.Equal(t, 0.0, calibrate(t, 0.01, "Not applicable.", taxonomy.Neutral).CalibratedConfidence)
}

func TestCalibrate_LengthRulesExclusive(t *testing.T) {
	for n := 1; n < 80; n++ {
		text := strings.TrimSpace(strings.Repeat("word ", n))
		got := factors(calibrate(t, 0.5, text, taxonomy.Neutral))
		assert.False(t, contains(got, FactorLongClause) && contains(got, FactorShortClause), "n=%d", n)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1))
	assert.Equal(t, 1.0, Clamp(2))
	assert.Equal(t, 0.3, Clamp(0.3))
	assert.Equal(t, 0.0, Clamp(math.NaN()))
}
