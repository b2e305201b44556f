// Package taxonomy defines the closed risk vocabulary (categories,
// severity buckets, exposure levels, mitigation priorities) and the
// record types that flow between the scoring stages.
package taxonomy

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Category is one of the six canonical risk categories a clause is
// ultimately assigned to.
type Category string

// Canonical risk categories.
const (
	LiabilityRisk   Category = "Liability Risk"
	TerminationRisk Category = "Termination Risk"
	IPRisk          Category = "IP Risk"
	DataPrivacyRisk Category = "Data Privacy Risk"
	PaymentRisk     Category = "Payment Risk"
	Neutral         Category = "Neutral"
)

// Bucket is the severity bucket assigned to a scored clause.
type Bucket string

// Severity bucket constants.
const (
	BucketHigh   Bucket = "High"
	BucketMedium Bucket = "Medium"
	BucketLow    Bucket = "Low"
	BucketNone   Bucket = "None"
)

// ExposureLevel is the banded financial exposure of a clause.
type ExposureLevel string

// Exposure level constants.
const (
	ExposureLow      ExposureLevel = "low"
	ExposureMedium   ExposureLevel = "medium"
	ExposureHigh     ExposureLevel = "high"
	ExposureCritical ExposureLevel = "critical"
)

// Priority ranks a mitigation strategy.
type Priority string

// Mitigation priority constants.
const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
	PriorityLow      Priority = "Low"
)

// EffortLevel buckets the negotiation effort implied by a contract's
// mitigation workload.
type EffortLevel string

// Effort level constants.
const (
	EffortLow      EffortLevel = "Low"
	EffortMedium   EffortLevel = "Medium"
	EffortHigh     EffortLevel = "High"
	EffortVeryHigh EffortLevel = "Very High"
)

// TriggerID is the stable identifier of a high-risk predicate.
type TriggerID string

// High-risk trigger identifiers, grouped by the category whose
// predicates emit them.
const (
	TriggerImmediateTermination TriggerID = "termination.immediate"
	TriggerConvenience          TriggerID = "termination.convenience"
	TriggerNoCure               TriggerID = "termination.no_cure"

	TriggerLiabilityAmount   TriggerID = "liability.amount"
	TriggerUncappedLiability TriggerID = "liability.uncapped"
	TriggerUncappedIndemnity TriggerID = "liability.indemnity_without_cap"

	TriggerPersonalData  TriggerID = "privacy.pii"
	TriggerPrivacyRegime TriggerID = "privacy.regulation"
	TriggerDataBreach    TriggerID = "privacy.breach"

	TriggerPenalty       TriggerID = "payment.penalty"
	TriggerPaymentAmount TriggerID = "payment.amount"
	TriggerLateFee       TriggerID = "payment.late_fee"

	TriggerIPAssignment TriggerID = "ip.assignment"
	TriggerPerpetual    TriggerID = "ip.perpetual"
	TriggerInfringement TriggerID = "ip.infringement"
	TriggerWorkForHire  TriggerID = "ip.work_for_hire"
)

// Amount is a monetary figure extracted from clause text. A nil
// *Amount means no figure was detected. Unbounded marks "uncapped" or
// "unlimited" exposure and is never represented by a finite stand-in.
type Amount struct {
	Value     float64
	Unbounded bool
}

// UnboundedAmount returns the sentinel for unbounded exposure.
func UnboundedAmount() *Amount {
	return &Amount{Unbounded: true}
}

// Dollars returns a finite amount.
func Dollars(v float64) *Amount {
	return &Amount{Value: v}
}

// Exceeds reports whether the amount is strictly above limit. The
// unbounded sentinel exceeds every limit; a nil amount exceeds none.
func (a *Amount) Exceeds(limit float64) bool {
	if a == nil {
		return false
	}
	return a.Unbounded || a.Value > limit
}

// String renders the amount for human-readable output.
func (a *Amount) String() string {
	switch {
	case a == nil:
		return "none"
	case a.Unbounded:
		return "unbounded"
	default:
		return "$" + formatDollars(a.Value)
	}
}

// MarshalJSON encodes a finite amount as a number and the sentinel as
// the string "unbounded".
func (a Amount) MarshalJSON() ([]byte, error) {
	if a.Unbounded {
		return []byte(`"unbounded"`), nil
	}
	return json.Marshal(a.Value)
}

// UnmarshalJSON accepts the forms written by MarshalJSON.
func (a *Amount) UnmarshalJSON(data []byte) error {
	if string(data) == `"unbounded"` {
		*a = Amount{Unbounded: true}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("amount must be a number or \"unbounded\": %w", err)
	}
	*a = Amount{Value: v}
	return nil
}

// formatDollars renders v with thousands separators and no cents.
func formatDollars(v float64) string {
	s := strconv.FormatFloat(v, 'f', 0, 64)
	n := len(s)
	if n <= 3 {
		return s
	}
	out := make([]byte, 0, n+n/3)
	lead := n % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < n; i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}

// Durations holds the time spans extracted from a clause. A zero field
// means "not detected" and is indistinguishable from an explicit zero.
type Durations struct {
	Days             int `json:"days"`
	Months           int `json:"months"`
	Years            int `json:"years"`
	NoticePeriodDays int `json:"notice_period_days"`
}

// ExtractedMetadata holds the structured signals parsed from clause text.
type ExtractedMetadata struct {
	// MonetaryValue is the largest finite dollar figure in the clause,
	// or the unbounded sentinel when the clause only carries uncapped
	// language. Nil when nothing was detected.
	MonetaryValue *Amount `json:"monetary_value"`

	// UncappedLanguage is true when "uncapped"/"unlimited" wording
	// co-occurs with a liability or indemnification keyword.
	UncappedLanguage bool `json:"uncapped_language"`

	// Durations are the day/month/year/notice spans.
	Durations Durations `json:"durations"`
}

// ExposureAmount returns the amount that governs financial exposure:
// the unbounded sentinel whenever uncapped language is present,
// otherwise MonetaryValue.
func (m ExtractedMetadata) ExposureAmount() *Amount {
	if m.UncappedLanguage {
		return UnboundedAmount()
	}
	return m.MonetaryValue
}

// HighRiskDetection is the output of the high-risk pattern detector.
type HighRiskDetection struct {
	// IsHighRisk is true iff at least one predicate matched.
	IsHighRisk bool `json:"is_high_risk"`

	// Triggers describes every matched predicate, in evaluation order.
	Triggers []string `json:"triggers"`

	// TriggerIDs identifies the matched predicates. Parallel to
	// Triggers: len(TriggerIDs) always equals len(Triggers).
	TriggerIDs []TriggerID `json:"trigger_ids"`

	// SeverityOverride, when set, forces the clause's severity bucket.
	SeverityOverride *Bucket `json:"severity_override"`
}

// Has reports whether the trigger with the given ID matched.
func (d HighRiskDetection) Has(id TriggerID) bool {
	for _, t := range d.TriggerIDs {
		if t == id {
			return true
		}
	}
	return false
}

// Adjustment is one applied calibration rule.
type Adjustment struct {
	Factor string  `json:"factor"`
	Delta  float64 `json:"delta"`
}

// CalibrationResult records how a raw classifier confidence was adjusted.
type CalibrationResult struct {
	OriginalConfidence   float64      `json:"original_confidence"`
	CalibratedConfidence float64      `json:"calibrated_confidence"`
	Adjustments          []Adjustment `json:"adjustments"`
	KeywordMatches       int          `json:"keyword_matches"`
}

// FinancialExposure is the banded exposure multiplier for a clause.
type FinancialExposure struct {
	Level         ExposureLevel `json:"level"`
	Multiplier    float64       `json:"multiplier"`
	MonetaryValue *Amount       `json:"monetary_value"`
}

// Mitigation is one prioritized recommendation.
type Mitigation struct {
	Priority  Priority `json:"priority"`
	Strategy  string   `json:"strategy"`
	Action    string   `json:"action"`
	Rationale string   `json:"rationale"`
}

// ClauseInput is what the upstream collaborators supply per clause.
type ClauseInput struct {
	// Text is the segmented clause text.
	Text string `json:"clause" yaml:"clause"`

	// Label is the classifier's raw (fine-grained or canonical) label.
	Label string `json:"label" yaml:"label"`

	// Confidence is the classifier's confidence in Label.
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// Expected is an optional gold category, used only for
	// reliability evaluation.
	Expected Category `json:"expected,omitempty" yaml:"expected,omitempty"`
}

// ClauseRiskRecord is the immutable per-clause scoring output.
type ClauseRiskRecord struct {
	// Index is the clause's position in the input sequence.
	Index int `json:"index"`

	ClauseText        string   `json:"clause_text"`
	RawLabel          string   `json:"raw_label"`
	CanonicalCategory Category `json:"canonical_category"`

	// CategorySource explains how the category was resolved: "model",
	// "text:ip" or "text:privacy".
	CategorySource string `json:"category_source"`

	RawConfidence        float64 `json:"raw_confidence"`
	CalibratedConfidence float64 `json:"calibrated_confidence"`
	BaseImpact           float64 `json:"base_impact"`
	AdjustedImpact       float64 `json:"adjusted_impact"`
	SeverityScore        float64 `json:"severity_score"`
	SeverityBucket       Bucket  `json:"severity_bucket"`

	ExtractedMetadata    ExtractedMetadata `json:"extracted_metadata"`
	HighRiskDetection    HighRiskDetection `json:"high_risk_detection"`
	FinancialExposure    FinancialExposure `json:"financial_exposure"`
	CalibrationDetails   CalibrationResult `json:"calibration_details"`
	MitigationStrategies []Mitigation      `json:"mitigation_strategies"`
}

// MitigationSummary rolls per-clause mitigations up to the contract.
type MitigationSummary struct {
	CriticalActions      []Mitigation `json:"critical_actions"`
	HighPriorityActions  []Mitigation `json:"high_priority_actions"`
	RecommendedReviews   []string     `json:"recommended_reviews"`
	TotalMitigationItems int          `json:"total_mitigation_items"`
	EstimatedEffort      EffortLevel  `json:"estimated_effort"`
	EffortNote           string       `json:"effort_note"`
}

// ContractRiskSummary aggregates every clause record of one contract.
type ContractRiskSummary struct {
	ScoringMethod string `json:"scoring_method"`

	TotalSeverityScore float64 `json:"total_severity_score"`
	MaxPossibleScore   float64 `json:"max_possible_score"`

	// NormalizedScore is 100 × total / max, clamped to [0, 100], and 0
	// when MaxPossibleScore is 0.
	NormalizedScore float64 `json:"normalized_score"`

	TotalClauses      int `json:"total_clauses"`
	HighRiskCount     int `json:"high_risk_count"`
	CalibratedClauses int `json:"calibrated_clauses"`

	SeverityCounts      map[Bucket]int            `json:"severity_counts"`
	CategoryCounts      map[Category]int          `json:"category_counts"`
	CategoryWeights     map[Category]float64      `json:"category_weights"`
	ExposureMultipliers map[ExposureLevel]float64 `json:"exposure_multipliers"`
	MitigationSummary   MitigationSummary         `json:"mitigation_summary"`
}
