// Package extract parses structured signals out of free clause text:
// dollar amounts, unbounded-exposure language, and durations. Every
// function is total: text that matches nothing yields nil or zero
// values, never an error.
package extract

import (
	"github.com/unbound-force/clauserisk/internal/config"
	"github.com/unbound-force/clauserisk/internal/taxonomy"
)

// Extractor holds the phrase lists used to recognize unbounded
// liability. It is immutable and safe for concurrent use.
type Extractor struct {
	unboundedTerms []string
	liabilityTerms []string
}

// New returns an Extractor using the given detection phrase lists.
func New(cfg config.DetectionConfig) *Extractor {
	return &Extractor{
		unboundedTerms: append([]string(nil), cfg.UnboundedTerms...),
		liabilityTerms: append([]string(nil), cfg.LiabilityTerms...),
	}
}

var defaultExtractor = New(config.DefaultConfig().Detection)

// MonetaryValue extracts a clause's monetary value using the built-in
// phrase lists. See (*Extractor).MonetaryValue.
func MonetaryValue(text string) *taxonomy.Amount {
	return defaultExtractor.MonetaryValue(text)
}

// Metadata extracts every signal using the built-in phrase lists.
func Metadata(text string) taxonomy.ExtractedMetadata {
	return defaultExtractor.Metadata(text)
}

// MonetaryValue returns the largest finite dollar figure in text. When
// the clause has no figure but does carry unbounded liability language,
// the unbounded sentinel is returned. Nil means no amount was detected.
func (e *Extractor) MonetaryValue(text string) *taxonomy.Amount {
	lower := Lower(text)
	if a := largestFigure(lower); a != nil {
		return a
	}
	if e.uncapped(lower) {
		return taxonomy.UnboundedAmount()
	}
	return nil
}

// Uncapped reports whether text pairs unbounded wording ("uncapped",
// "unlimited", ...) with a liability or indemnification term.
func (e *Extractor) Uncapped(text string) bool {
	return e.uncapped(Lower(text))
}

func (e *Extractor) uncapped(lower string) bool {
	return HasAnyStem(lower, e.unboundedTerms) && HasAnyStem(lower, e.liabilityTerms)
}

// Metadata bundles the monetary value, the uncapped-language flag and
// the durations of a clause.
func (e *Extractor) Metadata(text string) taxonomy.ExtractedMetadata {
	lower := Lower(text)
	md := taxonomy.ExtractedMetadata{
		MonetaryValue:    largestFigure(lower),
		UncappedLanguage: e.uncapped(lower),
		Durations:        Durations(text),
	}
	if md.MonetaryValue == nil && md.UncappedLanguage {
		md.MonetaryValue = taxonomy.UnboundedAmount()
	}
	return md
}
