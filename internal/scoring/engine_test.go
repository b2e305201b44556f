package scoring

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unbound-force/clauserisk/internal/config"
	"github.com/unbound-force/clauserisk/internal/taxonomy"
)

const uncappedClause = "Company's indemnification obligations are uncapped and unlimited, " +
	"covering all damages including $750,000 in the event of breach."

func newEngine(t testing.TB) *Engine {
	t.Helper()
	e, err := NewEngine(nil, Options{})
	require.NoError(t, err)
	return e
}

func TestScoreClause_UncappedIndemnification(t *testing.T) {
	e := newEngine(t)
	rec, err := e.ScoreClause(taxonomy.ClauseInput{
		Text:       uncappedClause,
		Label:      "Uncapped Liability",
		Confidence: 0.85,
	})
	require.NoError(t, err)

	assert.Equal(t, taxonomy.LiabilityRisk, rec.CanonicalCategory)
	assert.Equal(t, "model", rec.CategorySource)
	require.NotNil(t, rec.ExtractedMetadata.MonetaryValue)
	assert.Equal(t, 750000.0, rec.ExtractedMetadata.MonetaryValue.Value)

	assert.True(t, rec.HighRiskDetection.IsHighRisk)
	assert.Contains(t, rec.HighRiskDetection.Triggers, "Uncapped indemnification obligation")
	require.NotNil(t, rec.HighRiskDetection.SeverityOverride)
	assert.Equal(t, taxonomy.BucketHigh, *rec.HighRiskDetection.SeverityOverride)

	assert.Equal(t, taxonomy.ExposureCritical, rec.FinancialExposure.Level)
	assert.Equal(t, 1.5, rec.FinancialExposure.Multiplier)
	assert.InDelta(t, 2.7, rec.AdjustedImpact, 1e-9)
	assert.InDelta(t, 0.98, rec.CalibratedConfidence, 1e-9)
	assert.InDelta(t, 2.7*0.98, rec.SeverityScore, 1e-9)
	assert.Equal(t, taxonomy.BucketHigh, rec.SeverityBucket)

	require.NotEmpty(t, rec.MitigationStrategies)
	assert.Equal(t, taxonomy.Mitigation{
		Priority:  taxonomy.PriorityCritical,
		Strategy:  "Cap Liability",
		Action:    rec.MitigationStrategies[0].Action,
		Rationale: rec.MitigationStrategies[0].Rationale,
	}, rec.MitigationStrategies[0])
}

func TestScoreClause_Neutral(t *testing.T) {
	e := newEngine(t)
	rec, err := e.ScoreClause(taxonomy.ClauseInput{
		Text:       "This Agreement is governed by the laws of Delaware; filing fees of $900,000 are borne equally.",
		Label:      "Governing Law",
		Confidence: 0.95,
	})
	require.NoError(t, err)

	assert.Equal(t, taxonomy.Neutral, rec.CanonicalCategory)
	assert.Zero(t, rec.BaseImpact)
	assert.Zero(t, rec.AdjustedImpact)
	assert.Zero(t, rec.SeverityScore)
	assert.Equal(t, taxonomy.BucketNone, rec.SeverityBucket)
	assert.NotNil(t, rec.MitigationStrategies)
	assert.Empty(t, rec.MitigationStrategies)
	assert.Equal(t, taxonomy.ExposureLow, rec.FinancialExposure.Level)
	assert.Equal(t, 1.0, rec.FinancialExposure.Multiplier)
	assert.Equal(t, taxonomy.Dollars(900000), rec.FinancialExposure.MonetaryValue)
}

func TestScoreClause_UnknownLabelIsNeutral(t *testing.T) {
	e := newEngine(t)
	rec, err := e.ScoreClause(taxonomy.ClauseInput{
		Text:       "Supplier shall indemnify Customer without limit.",
		Label:      "Totally New Label",
		Confidence: 0.9,
	})
	require.NoError(t, err)
	assert.Equal(t, taxonomy.Neutral, rec.CanonicalCategory)
	assert.Zero(t, rec.SeverityScore)
	assert.Empty(t, rec.MitigationStrategies)
}

func TestScoreClause_TextOverride(t *testing.T) {
	e := newEngine(t)
	rec, err := e.ScoreClause(taxonomy.ClauseInput{
		Text:       "Contractor hereby assigns all intellectual property and patent rights as work made for hire.",
		Label:      "Parties",
		Confidence: 0.4,
	})
	require.NoError(t, err)
	assert.Equal(t, taxonomy.IPRisk, rec.CanonicalCategory)
	assert.Equal(t, "text:ip", rec.CategorySource)
	assert.Equal(t, 1.6, rec.BaseImpact)
}

func TestScoreClause_BucketsFromScore(t *testing.T) {
	e := newEngine(t)
	tests := []struct {
		name string
		in   taxonomy.ClauseInput
		want taxonomy.Bucket
	}{
		{
			name: "medium",
			in: taxonomy.ClauseInput{
				Text:       "Customer shall pay invoices within 30 days and the parties shall agree on payment terms for renewals.",
				Label:      "Minimum Commitment",
				Confidence: 0.7,
			},
			want: taxonomy.BucketMedium,
		},
		{
			name: "low",
			in: taxonomy.ClauseInput{
				Text:       "Pricing may be adjusted.",
				Label:      "Price Restrictions",
				Confidence: 0.3,
			},
			want: taxonomy.BucketLow,
		},
		{
			name: "zero confidence",
			in: taxonomy.ClauseInput{
				Text:       "Not applicable.",
				Label:      "Renewal Term",
				Confidence: 0,
			},
			want: taxonomy.BucketNone,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := e.ScoreClause(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.SeverityBucket, "score=%v", rec.SeverityScore)
		})
	}
}

func TestScoreClause_ClampsConfidence(t *testing.T) {
	e := newEngine(t)
	rec, err := e.ScoreClause(taxonomy.ClauseInput{Text: "Liquidated damages apply.", Label: "Liquidated Damages", Confidence: 4})
	require.NoError(t, err)
	assert.Equal(t, 1.0, rec.RawConfidence)
	assert.LessOrEqual(t, rec.CalibratedConfidence, 1.0)
}

func TestScoreContract_PreservesOrder(t *testing.T) {
	e := newEngine(t)
	var inputs []taxonomy.ClauseInput
	for i := 0; i < 50; i++ {
		inputs = append(inputs, taxonomy.ClauseInput{
			Text:       fmt.Sprintf("Clause %d: Supplier shall pay a penalty of $%d,000.", i, i+1),
			Label:      "Liquidated Damages",
			Confidence: 0.6,
		})
	}

	a, err := e.ScoreContract(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, a.Clauses, len(inputs))
	for i, rec := range a.Clauses {
		assert.Equal(t, i, rec.Index)
		assert.Equal(t, inputs[i].Text, rec.ClauseText)
	}
	assert.Equal(t, 50, a.Summary.TotalClauses)
	assert.Equal(t, 50, a.Summary.CategoryCounts[taxonomy.PaymentRisk])
}

func TestScoreContract_Aggregation(t *testing.T) {
	e := newEngine(t)
	a, err := e.ScoreContract(context.Background(), []taxonomy.ClauseInput{
		{Text: uncappedClause, Label: "Uncapped Liability", Confidence: 0.85},
		{Text: "Either party may terminate for convenience upon 10 days notice.", Label: "Termination For Convenience", Confidence: 0.8},
		{Text: "This Agreement is governed by New York law.", Label: "Governing Law", Confidence: 0.99},
	})
	require.NoError(t, err)
	s := a.Summary

	liab, term := a.Clauses[0], a.Clauses[1]
	assert.InDelta(t, liab.SeverityScore+term.SeverityScore, s.TotalSeverityScore, 1e-9)
	assert.InDelta(t, (1.8+1.7)*1.5, s.MaxPossibleScore, 1e-9)
	assert.InDelta(t, 100*s.TotalSeverityScore/s.MaxPossibleScore, s.NormalizedScore, 1e-9)
	assert.Equal(t, 3, s.TotalClauses)
	assert.Equal(t, 2, s.HighRiskCount)
	assert.Equal(t, 1, s.CategoryCounts[taxonomy.Neutral])
	assert.Equal(t, 1, s.SeverityCounts[taxonomy.BucketNone])
	assert.Equal(t, 1.8, s.CategoryWeights[taxonomy.LiabilityRisk])
	assert.Len(t, s.CategoryWeights, 6)
	assert.Equal(t, 1.5, s.ExposureMultipliers[taxonomy.ExposureCritical])
	assert.Equal(t, ScoringMethod, s.ScoringMethod)
	assert.NotEmpty(t, s.MitigationSummary.CriticalActions)
	assert.Contains(t, s.MitigationSummary.RecommendedReviews, "Legal review required for 1 high-severity clauses")
}

func TestScoreContract_CriticalActionsAcrossClauses(t *testing.T) {
	e := newEngine(t)
	a, err := e.ScoreContract(context.Background(), []taxonomy.ClauseInput{
		{
			Text: "Company shall indemnify Customer for all damages arising from a breach, " +
				"provided that liability shall not exceed $300,000 in the aggregate.",
			Label:      "Cap On Liability",
			Confidence: 0.9,
		},
		{Text: uncappedClause, Label: "Uncapped Liability", Confidence: 0.85},
	})
	require.NoError(t, err)

	var critical []string
	for _, m := range a.Summary.MitigationSummary.CriticalActions {
		assert.Equal(t, taxonomy.PriorityCritical, m.Priority)
		critical = append(critical, m.Strategy)
	}
	assert.Contains(t, critical, "Cap Liability")
}

func TestScoreContract_Empty(t *testing.T) {
	e := newEngine(t)
	a, err := e.ScoreContract(context.Background(), nil)
	require.NoError(t, err)

	s := a.Summary
	assert.Empty(t, a.Clauses)
	assert.Zero(t, s.NormalizedScore)
	assert.Zero(t, s.TotalSeverityScore)
	assert.Zero(t, s.MaxPossibleScore)
	assert.Zero(t, s.HighRiskCount)
	assert.Zero(t, s.MitigationSummary.TotalMitigationItems)
	assert.Equal(t, taxonomy.EffortLow, s.MitigationSummary.EstimatedEffort)
	for _, b := range taxonomy.Buckets() {
		assert.Zero(t, s.SeverityCounts[b])
	}
}

func TestScoreContract_AllNeutral(t *testing.T) {
	e := newEngine(t)
	a, err := e.ScoreContract(context.Background(), []taxonomy.ClauseInput{
		{Text: "Effective as of January 1.", Label: "Effective Date", Confidence: 0.9},
		{Text: "Acme Corp and Beta LLC.", Label: "Parties", Confidence: 0.95},
	})
	require.NoError(t, err)
	assert.Zero(t, a.Summary.NormalizedScore)
	assert.Zero(t, a.Summary.MaxPossibleScore)
}

func TestScoreContract_NormalizedBound(t *testing.T) {
	e := newEngine(t)
	texts := []string{
		uncappedClause,
		"Licensee may terminate immediately without opportunity to cure, with damages of $2 million.",
		"Processor handles PII under GDPR and notifies of any data breach.",
		"Payment of $10,000 is due.",
		"Nothing here.",
	}
	labels := []string{"Uncapped Liability", "Change Of Control", "Unknown", "Minimum Commitment", "License Grant"}
	for _, conf := range []float64{0, 0.2, 0.55, 0.9, 1} {
		var inputs []taxonomy.ClauseInput
		for i := range texts {
			inputs = append(inputs, taxonomy.ClauseInput{Text: texts[i], Label: labels[i], Confidence: conf})
		}
		a, err := e.ScoreContract(context.Background(), inputs)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, a.Summary.NormalizedScore, 0.0)
		assert.LessOrEqual(t, a.Summary.NormalizedScore, 100.0)
	}
}

func TestScoreContract_Cancelled(t *testing.T) {
	e := newEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.ScoreContract(ctx, []taxonomy.ClauseInput{{Text: "x", Label: "Parties", Confidence: 0.5}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewEngine_ConfigErrors(t *testing.T) {
	cfg := config.DefaultConfig()
	delete(cfg.Categories, "termination")
	_, err := NewEngine(cfg, Options{})
	assert.ErrorIs(t, err, config.ErrMissingCategory)

	cfg = config.DefaultConfig()
	cfg.Severity.High = 0.1
	_, err = NewEngine(cfg, Options{})
	assert.ErrorIs(t, err, config.ErrInvalidPolicy)
}

type countingRecorder struct {
	mu        sync.Mutex
	clauses   int
	contracts int
}

func (c *countingRecorder) ClauseScored(taxonomy.Category, taxonomy.Bucket, bool, time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clauses++
}

func (c *countingRecorder) ContractScored(int, float64, time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contracts++
}

func TestScoreContract_RecordsMetrics(t *testing.T) {
	rec := &countingRecorder{}
	e, err := NewEngine(nil, Options{Metrics: rec})
	require.NoError(t, err)

	_, err = e.ScoreContract(context.Background(), []taxonomy.ClauseInput{
		{Text: "a", Label: "Parties"}, {Text: "b", Label: "Parties"}, {Text: "c", Label: "Parties"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, rec.clauses)
	assert.Equal(t, 1, rec.contracts)
}
