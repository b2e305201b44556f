// Package config holds the risk policy tables (category weights,
// keywords, thresholds, severity cutoffs, calibration rules, mitigation
// effort bands) and loads them from YAML files and the environment.
//
// A loaded configuration is converted once into an immutable Profiles
// table keyed by the closed taxonomy.Category enum and shared read-only
// by every scoring goroutine.
package config

import (
	"github.com/unbound-force/clauserisk/internal/taxonomy"
)

// RiskConfig is the complete, tunable scoring policy.
type RiskConfig struct {
	// Categories is keyed by category slug ("liability", "ip", ...).
	// Every canonical category must be present.
	Categories map[string]CategoryConfig `yaml:"categories" mapstructure:"categories" validate:"required,dive"`

	Severity    SeverityConfig    `yaml:"severity" mapstructure:"severity"`
	Exposure    ExposureConfig    `yaml:"exposure" mapstructure:"exposure"`
	Detection   DetectionConfig   `yaml:"detection" mapstructure:"detection"`
	Calibration CalibrationConfig `yaml:"calibration" mapstructure:"calibration"`
	Mapping     MappingConfig     `yaml:"mapping" mapstructure:"mapping"`
	Mitigation  MitigationConfig  `yaml:"mitigation" mapstructure:"mitigation"`

	// Workers bounds the number of clauses scored concurrently.
	Workers int `yaml:"workers" mapstructure:"workers" validate:"gte=1,lte=256"`
}

// CategoryConfig is the policy record for one canonical category.
type CategoryConfig struct {
	// BaseImpact is the category weight (0.0-1.8).
	BaseImpact float64 `yaml:"base_impact" mapstructure:"base_impact" validate:"gte=0,lte=1.8"`

	// FinancialThreshold is the dollar amount marking "high" exposure.
	FinancialThreshold float64 `yaml:"financial_threshold" mapstructure:"financial_threshold" validate:"gt=0"`

	ThresholdNote string `yaml:"financial_threshold_note" mapstructure:"financial_threshold_note"`
	Description   string `yaml:"description" mapstructure:"description"`

	// Keywords drive text-based detection and calibration. Entries are
	// lowercase stems matched at a word start.
	Keywords []string `yaml:"keywords" mapstructure:"keywords" validate:"dive,required,lowercase"`
}

// SeverityConfig holds the severity bucket cutoffs applied to a
// clause's severity score.
type SeverityConfig struct {
	High   float64 `yaml:"high" mapstructure:"high" validate:"gtfield=Medium"`
	Medium float64 `yaml:"medium" mapstructure:"medium" validate:"gt=0"`
}

// ExposureConfig holds the financial exposure bands and multipliers.
type ExposureConfig struct {
	// CriticalAbove is the critical band floor; it also marks the
	// critical tier of the amount predicates.
	CriticalAbove float64 `yaml:"critical_above" mapstructure:"critical_above" validate:"gtfield=MediumAbove"`

	// MediumAbove is the fixed medium band floor, independent of the
	// category threshold.
	MediumAbove float64 `yaml:"medium_above" mapstructure:"medium_above" validate:"gte=0"`

	CriticalMultiplier float64 `yaml:"critical_multiplier" mapstructure:"critical_multiplier" validate:"gtefield=HighMultiplier"`
	HighMultiplier     float64 `yaml:"high_multiplier" mapstructure:"high_multiplier" validate:"gtefield=MediumMultiplier"`
	MediumMultiplier   float64 `yaml:"medium_multiplier" mapstructure:"medium_multiplier" validate:"gtefield=LowMultiplier"`
	LowMultiplier      float64 `yaml:"low_multiplier" mapstructure:"low_multiplier" validate:"gt=0"`
}

// Multipliers returns the level → multiplier snapshot.
func (e ExposureConfig) Multipliers() map[taxonomy.ExposureLevel]float64 {
	return map[taxonomy.ExposureLevel]float64{
		taxonomy.ExposureCritical: e.CriticalMultiplier,
		taxonomy.ExposureHigh:     e.HighMultiplier,
		taxonomy.ExposureMedium:   e.MediumMultiplier,
		taxonomy.ExposureLow:      e.LowMultiplier,
	}
}

// DetectionConfig tunes the phrase lists shared by the extractor and
// the high-risk detector.
type DetectionConfig struct {
	// UnboundedTerms mark uncapped exposure ("uncapped", "unlimited").
	UnboundedTerms []string `yaml:"unbounded_terms" mapstructure:"unbounded_terms" validate:"min=1,dive,required"`

	// LiabilityTerms must co-occur with an unbounded term.
	LiabilityTerms []string `yaml:"liability_terms" mapstructure:"liability_terms" validate:"min=1,dive,required"`

	// CapTerms signal an existing liability cap.
	CapTerms []string `yaml:"cap_terms" mapstructure:"cap_terms" validate:"min=1,dive,required"`
}

// CalibrationConfig holds the additive calibration rules.
type CalibrationConfig struct {
	StrongKeywordHits   int     `yaml:"strong_keyword_hits" mapstructure:"strong_keyword_hits" validate:"gte=2"`
	StrongKeywordDelta  float64 `yaml:"strong_keyword_delta" mapstructure:"strong_keyword_delta"`
	KeywordDelta        float64 `yaml:"keyword_delta" mapstructure:"keyword_delta"`
	AmountDelta         float64 `yaml:"amount_delta" mapstructure:"amount_delta"`
	EnforceabilityDelta float64 `yaml:"enforceability_delta" mapstructure:"enforceability_delta"`
	LongClauseWords     int     `yaml:"long_clause_words" mapstructure:"long_clause_words" validate:"gtfield=ShortClauseWords"`
	LongClauseDelta     float64 `yaml:"long_clause_delta" mapstructure:"long_clause_delta"`
	ShortClauseWords    int     `yaml:"short_clause_words" mapstructure:"short_clause_words" validate:"gte=1"`
	ShortClauseDelta    float64 `yaml:"short_clause_delta" mapstructure:"short_clause_delta"`
	NegationDelta       float64 `yaml:"negation_delta" mapstructure:"negation_delta"`

	EnforceabilityTerms []string `yaml:"enforceability_terms" mapstructure:"enforceability_terms" validate:"dive,required"`
	NegationTerms       []string `yaml:"negation_terms" mapstructure:"negation_terms" validate:"dive,required"`
}

// MappingConfig tunes the category mapper.
type MappingConfig struct {
	// OverrideBelow is the model confidence under which a Neutral
	// mapping may be overridden by text detection.
	OverrideBelow float64 `yaml:"override_below" mapstructure:"override_below" validate:"gte=0,lte=1"`

	// MinKeywordHits is the distinct keyword count text detection needs.
	MinKeywordHits int `yaml:"min_keyword_hits" mapstructure:"min_keyword_hits" validate:"gte=1"`

	// Labels adds raw label aliases (raw label → category slug) on top
	// of the built-in table.
	Labels map[string]string `yaml:"labels" mapstructure:"labels"`
}

// MitigationConfig tunes the executive mitigation summary.
type MitigationConfig struct {
	MaxCriticalActions int `yaml:"max_critical_actions" mapstructure:"max_critical_actions" validate:"gte=1"`
	MaxHighActions     int `yaml:"max_high_actions" mapstructure:"max_high_actions" validate:"gte=1"`

	// Effort thresholds are inclusive upper bounds on the number of
	// mitigation items for the Low, Medium and High effort levels.
	EffortLowMax    int `yaml:"effort_low_max" mapstructure:"effort_low_max" validate:"gte=0"`
	EffortMediumMax int `yaml:"effort_medium_max" mapstructure:"effort_medium_max" validate:"gtfield=EffortLowMax"`
	EffortHighMax   int `yaml:"effort_high_max" mapstructure:"effort_high_max" validate:"gtfield=EffortMediumMax"`
}

// DefaultConfig returns the built-in scoring policy.
func DefaultConfig() *RiskConfig {
	return &RiskConfig{
		Categories: map[string]CategoryConfig{
			"liability": {
				BaseImpact:         1.8,
				FinancialThreshold: 100000,
				ThresholdNote:      "$100k+ triggers high exposure",
				Description:        "Obligations to compensate for damages, defend claims, or accept unlimited liability",
				Keywords: []string{
					"indemnif", "unlimited liability", "uncapped liability",
					"shall defend", "hold harmless", "breach of warranty",
					"gross negligence", "willful misconduct",
				},
			},
			"termination": {
				BaseImpact:         1.7,
				FinancialThreshold: 50000,
				ThresholdNote:      "$50k+ in termination fees or lost commitments",
				Description:        "Clauses allowing contract termination with minimal notice or cause",
				Keywords: []string{
					"termination for convenience", "immediate termination",
					"without cause", "at any time", "upon notice",
					"change of control", "material breach", "cure period",
				},
			},
			"ip": {
				BaseImpact:         1.6,
				FinancialThreshold: 100000,
				ThresholdNote:      "$100k+ in licensing value or infringement exposure",
				Description:        "Intellectual property ownership, licensing, assignment, and infringement risks",
				Keywords: []string{
					"intellectual property", "ip rights", "patent", "trademark",
					"copyright", "trade secret", "proprietary", "source code",
					"license grant", "ownership", "assignment", "work for hire",
					"work made for hire", "derivative works", "joint ownership",
					"irrevocable", "perpetual", "infringement", "licensor", "licensee",
				},
			},
			"data_privacy": {
				BaseImpact:         1.5,
				FinancialThreshold: 500000,
				ThresholdNote:      "Regulatory fines can be massive; $500k+ is high",
				Description:        "Data privacy compliance obligations and regulatory exposure (GDPR/CCPA)",
				Keywords: []string{
					"personal data", "personally identifiable", "pii",
					"gdpr", "ccpa", "data protection", "data privacy",
					"data breach", "data subject", "data processing",
					"consent", "opt-in", "opt-out", "privacy policy",
					"sensitive data", "biometric", "health information",
					"data security",
				},
			},
			"payment": {
				BaseImpact:         1.3,
				FinancialThreshold: 25000,
				ThresholdNote:      "$25k+ in penalties or commitments",
				Description:        "Financial obligations including penalties, late fees, and payment terms",
				Keywords: []string{
					"late payment", "penalty", "interest", "liquidated damages",
					"payment terms", "overdue", "default", "acceleration",
					"payment upon demand", "upfront payment",
				},
			},
			"neutral": {
				BaseImpact:         0.0,
				FinancialThreshold: 100000,
				ThresholdNote:      "Not used; neutral clauses carry no exposure",
				Description:        "Standard contractual terms with minimal risk",
				Keywords:           []string{},
			},
		},
		Severity: SeverityConfig{
			High:   1.5,
			Medium: 0.8,
		},
		Exposure: ExposureConfig{
			CriticalAbove:      500000,
			MediumAbove:        25000,
			CriticalMultiplier: 1.5,
			HighMultiplier:     1.3,
			MediumMultiplier:   1.1,
			LowMultiplier:      1.0,
		},
		Detection: DetectionConfig{
			UnboundedTerms: []string{"uncapped", "unlimited", "no limit", "without limit"},
			LiabilityTerms: []string{"liabilit", "indemnif", "damages", "hold harmless"},
			CapTerms: []string{
				"cap", "capped", "limited to", "shall not exceed",
				"limitation of liability", "maximum aggregate", "in no event",
			},
		},
		Calibration: CalibrationConfig{
			StrongKeywordHits:   3,
			StrongKeywordDelta:  0.10,
			KeywordDelta:        0.05,
			AmountDelta:         0.08,
			EnforceabilityDelta: 0.05,
			LongClauseWords:     50,
			LongClauseDelta:     0.03,
			ShortClauseWords:    15,
			ShortClauseDelta:    -0.05,
			NegationDelta:       -0.07,
			EnforceabilityTerms: []string{"shall", "must", "required"},
			NegationTerms:       []string{"not", "except", "unless"},
		},
		Mapping: MappingConfig{
			OverrideBelow:  0.70,
			MinKeywordHits: 2,
			Labels:         map[string]string{},
		},
		Mitigation: MitigationConfig{
			MaxCriticalActions: 5,
			MaxHighActions:     10,
			EffortLowMax:       3,
			EffortMediumMax:    8,
			EffortHighMax:      15,
		},
		Workers: 4,
	}
}
