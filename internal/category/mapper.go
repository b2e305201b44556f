// Package category resolves a classifier's raw label to one of the six
// canonical risk categories, falling back to keyword detection on the
// clause text when the classifier is unsure a clause is benign.
package category

import (
	"fmt"
	"strings"

	"github.com/unbound-force/clauserisk/internal/config"
	"github.com/unbound-force/clauserisk/internal/extract"
	"github.com/unbound-force/clauserisk/internal/taxonomy"
)

// Source records how a clause's category was decided.
type Source string

// Category sources.
const (
	SourceModel       Source = "model"
	SourceTextIP      Source = "text:ip"
	SourceTextPrivacy Source = "text:privacy"
)

// Resolution is the outcome of resolving one clause's category.
type Resolution struct {
	Category taxonomy.Category
	Source   Source
}

// Mapper maps raw labels to canonical categories. It is immutable and
// safe for concurrent use.
type Mapper struct {
	labels          map[string]taxonomy.Category
	ipKeywords      []string
	privacyKeywords []string
	overrideBelow   float64
	minHits         int
}

// New builds a Mapper from the built-in label table, the canonical
// category names, any configured label aliases, and the IP and privacy
// keyword lists of cfg.
func New(cfg *config.RiskConfig) (*Mapper, error) {
	profiles, err := cfg.Profiles()
	if err != nil {
		return nil, err
	}
	aliases, err := cfg.LabelAliases()
	if err != nil {
		return nil, err
	}

	m := &Mapper{
		labels:          make(map[string]taxonomy.Category, len(cuadLabels)+len(aliases)+6),
		ipKeywords:      profiles.Keywords(taxonomy.IPRisk),
		privacyKeywords: profiles.Keywords(taxonomy.DataPrivacyRisk),
		overrideBelow:   cfg.Mapping.OverrideBelow,
		minHits:         cfg.Mapping.MinKeywordHits,
	}
	for label, cat := range cuadLabels {
		m.labels[normalizeLabel(label)] = cat
	}
	for _, cat := range taxonomy.Categories() {
		m.labels[normalizeLabel(string(cat))] = cat
	}
	for label, cat := range aliases {
		key := normalizeLabel(label)
		if key == "" {
			return nil, fmt.Errorf("%w: empty label alias", config.ErrInvalidPolicy)
		}
		m.labels[key] = cat
	}
	return m, nil
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// MapLabel returns the canonical category for a raw label. Lookup trims
// surrounding space and ignores case. Unrecognized labels are Neutral.
func (m *Mapper) MapLabel(raw string) taxonomy.Category {
	if cat, ok := m.labels[normalizeLabel(raw)]; ok {
		return cat
	}
	return taxonomy.Neutral
}

// DetectIPRisk reports whether text contains at least the configured
// number of distinct IP keywords (two by default).
func (m *Mapper) DetectIPRisk(text string) bool {
	return extract.CountStems(extract.Lower(text), m.ipKeywords) >= m.minHits
}

// DetectDataPrivacyRisk reports whether text contains at least the
// configured number of distinct data privacy keywords.
func (m *Mapper) DetectDataPrivacyRisk(text string) bool {
	return extract.CountStems(extract.Lower(text), m.privacyKeywords) >= m.minHits
}

// EnhanceLabel applies the hybrid policy. The model's category stands
// unless it is Neutral with confidence below the override threshold, in
// which case IP detection and then privacy detection may replace it.
func (m *Mapper) EnhanceLabel(raw string, mapped taxonomy.Category, confidence float64, text string) taxonomy.Category {
	return m.enhance(mapped, confidence, text).Category
}

// Resolve maps raw and applies EnhanceLabel, recording the source of
// the final category.
func (m *Mapper) Resolve(raw string, confidence float64, text string) Resolution {
	return m.enhance(m.MapLabel(raw), confidence, text)
}

func (m *Mapper) enhance(mapped taxonomy.Category, confidence float64, text string) Resolution {
	if mapped != taxonomy.Neutral || confidence >= m.overrideBelow {
		return Resolution{Category: mapped, Source: SourceModel}
	}
	if m.DetectIPRisk(text) {
		return Resolution{Category: taxonomy.IPRisk, Source: SourceTextIP}
	}
	if m.DetectDataPrivacyRisk(text) {
		return Resolution{Category: taxonomy.DataPrivacyRisk, Source: SourceTextPrivacy}
	}
	return Resolution{Category: mapped, Source: SourceModel}
}
