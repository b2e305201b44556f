package taxonomy

import "strings"

// Categories returns the six canonical categories in display order.
func Categories() []Category {
	return []Category{
		LiabilityRisk,
		TerminationRisk,
		IPRisk,
		DataPrivacyRisk,
		PaymentRisk,
		Neutral,
	}
}

var categorySlugs = map[Category]string{
	LiabilityRisk:   "liability",
	TerminationRisk: "termination",
	IPRisk:          "ip",
	DataPrivacyRisk: "data_privacy",
	PaymentRisk:     "payment",
	Neutral:         "neutral",
}

// Slug returns the lowercase configuration key for the category.
// Unknown categories yield "".
func (c Category) Slug() string {
	return categorySlugs[c]
}

// Valid reports whether c is one of the canonical categories.
func (c Category) Valid() bool {
	_, ok := categorySlugs[c]
	return ok
}

// CategoryFromSlug resolves a configuration key back to its category.
func CategoryFromSlug(slug string) (Category, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for c, s := range categorySlugs {
		if s == slug {
			return c, true
		}
	}
	return "", false
}
