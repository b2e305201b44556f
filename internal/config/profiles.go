package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/unbound-force/clauserisk/internal/taxonomy"
)

// Configuration integrity errors. These indicate a deployment bug, not
// bad input data, and are always returned to the caller.
var (
	ErrMissingCategory = errors.New("canonical category missing from configuration")
	ErrUnknownCategory = errors.New("unknown category in configuration")
	ErrInvalidPolicy   = errors.New("invalid scoring policy")
)

// Profiles is the immutable category table used at scoring time.
// It must not be modified after construction.
type Profiles map[taxonomy.Category]CategoryConfig

// Profiles converts the slug-keyed category configuration into a table
// keyed by canonical category. Every canonical category must be present
// and every configured slug must be canonical.
func (c *RiskConfig) Profiles() (Profiles, error) {
	p := make(Profiles, len(c.Categories))
	for slug, cc := range c.Categories {
		cat, ok := taxonomy.CategoryFromSlug(slug)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, slug)
		}
		p[cat] = cc
	}
	for _, cat := range taxonomy.Categories() {
		if _, ok := p[cat]; !ok {
			return nil, fmt.Errorf("%w: %s (key %q)", ErrMissingCategory, cat, cat.Slug())
		}
	}
	if p[taxonomy.Neutral].BaseImpact != 0 {
		return nil, fmt.Errorf("%w: neutral base_impact must be 0, got %g",
			ErrInvalidPolicy, p[taxonomy.Neutral].BaseImpact)
	}
	return p, nil
}

// Get returns the profile for a category.
func (p Profiles) Get(cat taxonomy.Category) (CategoryConfig, error) {
	cc, ok := p[cat]
	if !ok {
		return CategoryConfig{}, fmt.Errorf("%w: %s", ErrMissingCategory, cat)
	}
	return cc, nil
}

// Keywords returns the keyword list of a category, or nil.
func (p Profiles) Keywords(cat taxonomy.Category) []string {
	return p[cat].Keywords
}

// Weights returns a snapshot of every category's base impact.
func (p Profiles) Weights() map[taxonomy.Category]float64 {
	w := make(map[taxonomy.Category]float64, len(p))
	for cat, cc := range p {
		w[cat] = cc.BaseImpact
	}
	return w
}

// LabelAliases resolves the configured raw-label aliases. Keys are
// returned in sorted order for deterministic error reporting.
func (c *RiskConfig) LabelAliases() (map[string]taxonomy.Category, error) {
	keys := make([]string, 0, len(c.Mapping.Labels))
	for k := range c.Mapping.Labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]taxonomy.Category, len(keys))
	for _, label := range keys {
		slug := c.Mapping.Labels[label]
		cat, ok := taxonomy.CategoryFromSlug(slug)
		if !ok {
			return nil, fmt.Errorf("%w: label %q maps to %q", ErrUnknownCategory, label, slug)
		}
		out[label] = cat
	}
	return out, nil
}
