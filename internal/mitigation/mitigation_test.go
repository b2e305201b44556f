package mitigation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unbound-force/clauserisk/internal/config"
	"github.com/unbound-force/clauserisk/internal/taxonomy"
)

func record(cat taxonomy.Category, bucket taxonomy.Bucket, triggers ...taxonomy.TriggerID) taxonomy.ClauseRiskRecord {
	descs := make([]string, len(triggers))
	for i, id := range triggers {
		descs[i] = string(id)
	}
	return taxonomy.ClauseRiskRecord{
		CanonicalCategory: cat,
		SeverityBucket:    bucket,
		HighRiskDetection: taxonomy.HighRiskDetection{
			IsHighRisk: len(triggers) > 0,
			Triggers:   descs,
			TriggerIDs: triggers,
		},
		FinancialExposure: taxonomy.FinancialExposure{Level: taxonomy.ExposureLow, Multiplier: 1},
	}
}

func strategies(ms []taxonomy.Mitigation) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = string(m.Priority) + ":" + m.Strategy
	}
	return out
}

func TestGenerate_UncappedLiability(t *testing.T) {
	r := record(taxonomy.LiabilityRisk, taxonomy.BucketHigh,
		taxonomy.TriggerLiabilityAmount, taxonomy.TriggerUncappedLiability, taxonomy.TriggerUncappedIndemnity)
	r.ExtractedMetadata.UncappedLanguage = true
	r.ExtractedMetadata.MonetaryValue = taxonomy.Dollars(750000)

	got := Generate(r)
	assert.Equal(t, []string{
		"Critical:Cap Liability",
		"Critical:Add Exclusions",
		"High:Obtain Liability Insurance",
		"High:Mutual Indemnification",
		"High:Legal Review Required",
	}, strategies(got))
	assert.Contains(t, got[2].Action, "the full potential exposure")
}

func TestGenerate_CapStaysHighWithoutUncapped(t *testing.T) {
	r := record(taxonomy.LiabilityRisk, taxonomy.BucketMedium, taxonomy.TriggerLiabilityAmount)
	r.ExtractedMetadata.MonetaryValue = taxonomy.Dollars(250000)

	got := Generate(r)
	assert.Equal(t, []string{
		"High:Cap Liability",
		"High:Obtain Liability Insurance",
		"Medium:Add Exclusions",
	}, strategies(got))
	assert.Equal(t, "Secure professional liability insurance covering $250,000 to transfer risk.", got[1].Action)
}

func TestGenerate_Termination(t *testing.T) {
	r := record(taxonomy.TerminationRisk, taxonomy.BucketHigh,
		taxonomy.TriggerImmediateTermination, taxonomy.TriggerNoCure)
	assert.Equal(t, []string{"Critical:Add Notice Period", "Critical:Add Cure Period"}, strategies(Generate(r)))

	r = record(taxonomy.TerminationRisk, taxonomy.BucketMedium, taxonomy.TriggerConvenience)
	r.ExtractedMetadata.Durations.NoticePeriodDays = 10
	got := Generate(r)
	assert.Equal(t, []string{
		"High:Add Notice Period",
		"High:Add Termination Fee",
		"High:Make Termination Mutual",
		"Medium:Extend Notice Period",
	}, strategies(got))
	assert.Equal(t, "Extend the notice period from 10 to 30-60 days.", got[3].Action)
}

func TestGenerate_Privacy(t *testing.T) {
	r := record(taxonomy.DataPrivacyRisk, taxonomy.BucketHigh,
		taxonomy.TriggerPersonalData, taxonomy.TriggerPrivacyRegime, taxonomy.TriggerDataBreach)
	assert.Equal(t, []string{
		"Critical:Implement Compliance Program",
		"Critical:Incident Response Plan",
		"High:Data Processing Agreement",
		"High:Data Minimization",
		"Medium:Cyber Insurance",
	}, strategies(Generate(r)))
}

func TestGenerate_Payment(t *testing.T) {
	r := record(taxonomy.PaymentRisk, taxonomy.BucketMedium, taxonomy.TriggerPenalty, taxonomy.TriggerLateFee)
	r.FinancialExposure.Level = taxonomy.ExposureMedium
	r.ExtractedMetadata.MonetaryValue = taxonomy.Dollars(40000)

	got := Generate(r)
	assert.Equal(t, []string{
		"High:Negotiate Reasonable Damages",
		"High:Payment Terms Negotiation",
		"Medium:Reduce Late Fees",
		"Medium:Grace Period",
		"Medium:Add Performance Standards",
	}, strategies(got))
	assert.Contains(t, got[1].Action, "$40,000")
}

func TestGenerate_IP(t *testing.T) {
	r := record(taxonomy.IPRisk, taxonomy.BucketHigh,
		taxonomy.TriggerIPAssignment, taxonomy.TriggerPerpetual, taxonomy.TriggerWorkForHire)
	assert.Equal(t, []string{
		"Critical:Retain IP Ownership",
		"Critical:Exclude Background IP",
		"High:Limit License Term",
		"Medium:IP Counsel Review",
	}, strategies(Generate(r)))
}

func TestGenerate_FallbackForHighWithoutTriggers(t *testing.T) {
	got := Generate(record(taxonomy.TerminationRisk, taxonomy.BucketHigh))
	require.Len(t, got, 2)
	assert.Equal(t, "Legal and Business Review", got[0].Strategy)
	assert.Equal(t, "High-severity Termination Risk requires expert evaluation before contract execution.", got[0].Rationale)
	assert.Equal(t, "Document Assumptions", got[1].Strategy)

	assert.Empty(t, Generate(record(taxonomy.TerminationRisk, taxonomy.BucketMedium)))
}

func TestGenerate_NoStrategiesBelowMedium(t *testing.T) {
	for _, b := range []taxonomy.Bucket{taxonomy.BucketLow, taxonomy.BucketNone} {
		got := Generate(record(taxonomy.LiabilityRisk, b, taxonomy.TriggerUncappedLiability))
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
	got := Generate(record(taxonomy.Neutral, taxonomy.BucketHigh))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGenerate_Ordered(t *testing.T) {
	for _, cat := range taxonomy.Categories() {
		all := append([]taxonomy.TriggerID{}, allTriggers()...)
		got := Generate(record(cat, taxonomy.BucketHigh, all...))
		for i := 1; i < len(got); i++ {
			assert.LessOrEqual(t, taxonomy.RankOf(got[i-1].Priority), taxonomy.RankOf(got[i].Priority), cat)
		}
	}
}

func allTriggers() []taxonomy.TriggerID {
	return []taxonomy.TriggerID{
		taxonomy.TriggerImmediateTermination, taxonomy.TriggerConvenience, taxonomy.TriggerNoCure,
		taxonomy.TriggerLiabilityAmount, taxonomy.TriggerUncappedLiability, taxonomy.TriggerUncappedIndemnity,
		taxonomy.TriggerPersonalData, taxonomy.TriggerPrivacyRegime, taxonomy.TriggerDataBreach,
		taxonomy.TriggerPenalty, taxonomy.TriggerPaymentAmount, taxonomy.TriggerLateFee,
		taxonomy.TriggerIPAssignment, taxonomy.TriggerPerpetual, taxonomy.TriggerInfringement, taxonomy.TriggerWorkForHire,
	}
}

func withStrategies(r taxonomy.ClauseRiskRecord) taxonomy.ClauseRiskRecord {
	r.MitigationStrategies = Generate(r)
	return r
}

func TestSummarize(t *testing.T) {
	cfg := config.DefaultConfig().Mitigation
	records := []taxonomy.ClauseRiskRecord{
		withStrategies(record(taxonomy.LiabilityRisk, taxonomy.BucketHigh, taxonomy.TriggerUncappedLiability)),
		withStrategies(record(taxonomy.LiabilityRisk, taxonomy.BucketHigh, taxonomy.TriggerUncappedLiability)),
		withStrategies(record(taxonomy.TerminationRisk, taxonomy.BucketMedium, taxonomy.TriggerConvenience)),
		withStrategies(record(taxonomy.Neutral, taxonomy.BucketNone)),
		withStrategies(record(taxonomy.PaymentRisk, taxonomy.BucketLow, taxonomy.TriggerPenalty)),
	}

	s := Summarize(records, cfg)
	assert.Equal(t, []string{"Critical:Cap Liability", "Critical:Add Exclusions"}, strategies(s.CriticalActions))
	assert.Equal(t, []string{
		"High:Mutual Indemnification",
		"High:Legal Review Required",
		"High:Add Notice Period",
		"High:Add Termination Fee",
		"High:Make Termination Mutual",
	}, strategies(s.HighPriorityActions))
	assert.Equal(t, []string{
		"Legal review required for 2 high-severity clauses",
		"Risk management review for 2 liability clauses",
		"Business continuity review for 1 termination clauses",
	}, s.RecommendedReviews)
	assert.Equal(t, 7, s.TotalMitigationItems)
	assert.Equal(t, taxonomy.EffortMedium, s.EstimatedEffort)
	assert.Equal(t, "2-3 weeks for negotiation and legal review", s.EffortNote)
}

func TestSummarize_CriticalAfterHighCopy(t *testing.T) {
	capItem := taxonomy.Mitigation{Strategy: "Cap Liability", Action: "Negotiate a liability cap"}
	excl := taxonomy.Mitigation{Strategy: "Add Exclusions", Action: "Exclude indirect damages"}
	at := func(p taxonomy.Priority, ms ...taxonomy.Mitigation) []taxonomy.Mitigation {
		out := make([]taxonomy.Mitigation, len(ms))
		for i, m := range ms {
			m.Priority = p
			out[i] = m
		}
		return out
	}
	records := []taxonomy.ClauseRiskRecord{
		{CanonicalCategory: taxonomy.LiabilityRisk, SeverityBucket: taxonomy.BucketHigh,
			MitigationStrategies: at(taxonomy.PriorityHigh, capItem, excl)},
		{CanonicalCategory: taxonomy.LiabilityRisk, SeverityBucket: taxonomy.BucketHigh,
			MitigationStrategies: at(taxonomy.PriorityCritical, capItem, excl)},
		{CanonicalCategory: taxonomy.LiabilityRisk, SeverityBucket: taxonomy.BucketHigh,
			MitigationStrategies: at(taxonomy.PriorityCritical, capItem)},
	}

	s := Summarize(records, config.DefaultConfig().Mitigation)
	assert.Equal(t, []string{"Critical:Cap Liability", "Critical:Add Exclusions"}, strategies(s.CriticalActions))
	assert.Equal(t, []string{"High:Cap Liability", "High:Add Exclusions"}, strategies(s.HighPriorityActions))
	assert.Equal(t, 2, s.TotalMitigationItems, "unique across priorities")
}

func TestSummarize_Caps(t *testing.T) {
	cfg := config.MitigationConfig{MaxCriticalActions: 1, MaxHighActions: 2, EffortLowMax: 3, EffortMediumMax: 8, EffortHighMax: 15}
	var records []taxonomy.ClauseRiskRecord
	for i := 0; i < 4; i++ {
		records = append(records, taxonomy.ClauseRiskRecord{
			CanonicalCategory: taxonomy.PaymentRisk,
			SeverityBucket:    taxonomy.BucketHigh,
			MitigationStrategies: []taxonomy.Mitigation{
				{Priority: taxonomy.PriorityCritical, Strategy: "C", Action: fmt.Sprint("critical ", i)},
				{Priority: taxonomy.PriorityHigh, Strategy: "H", Action: fmt.Sprint("high ", i)},
				{Priority: taxonomy.PriorityMedium, Strategy: "M", Action: "shared"},
			},
		})
	}

	s := Summarize(records, cfg)
	assert.Len(t, s.CriticalActions, 1)
	assert.Len(t, s.HighPriorityActions, 2)
	assert.Equal(t, 9, s.TotalMitigationItems, "counted before truncation, across priorities")
	assert.Equal(t, taxonomy.EffortHigh, s.EstimatedEffort)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, config.DefaultConfig().Mitigation)
	assert.NotNil(t, s.CriticalActions)
	assert.NotNil(t, s.HighPriorityActions)
	assert.NotNil(t, s.RecommendedReviews)
	assert.Zero(t, s.TotalMitigationItems)
	assert.Equal(t, taxonomy.EffortLow, s.EstimatedEffort)
}

func TestEffort(t *testing.T) {
	cfg := config.DefaultConfig().Mitigation
	tests := []struct {
		items int
		want  taxonomy.EffortLevel
	}{
		{0, taxonomy.EffortLow},
		{3, taxonomy.EffortLow},
		{4, taxonomy.EffortMedium},
		{8, taxonomy.EffortMedium},
		{9, taxonomy.EffortHigh},
		{15, taxonomy.EffortHigh},
		{16, taxonomy.EffortVeryHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Effort(tt.items, cfg), "items=%d", tt.items)
	}
}
