package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/unbound-force/clauserisk/internal/taxonomy"
)

// Each rule yields candidate figures independently; the largest finite
// candidate wins.
var (
	// $500,000 / $500,000.00 / $500000
	dollarGroupedRE = regexp.MustCompile(`\$\s?(\d{1,3}(?:,\d{3})+|\d+)(\.\d+)?`)

	// $1.5 million / $100k / $2m / $3 billion / $10 thousand
	dollarMagnitudeRE = regexp.MustCompile(`\$\s?(\d+(?:,\d{3})*(?:\.\d+)?)\s*(billion|million|thousand|bn|mm|m|k)\b`)

	// USD 250,000 / USD 2 million
	usdRE = regexp.MustCompile(`\busd\s?\$?\s?(\d+(?:,\d{3})*(?:\.\d+)?)(?:\s*(billion|million|thousand|bn|mm|m|k)\b)?`)

	// 250,000 dollars / 5 million dollars
	numericDollarsRE = regexp.MustCompile(`\b(\d+(?:,\d{3})*(?:\.\d+)?)\s*(billion|million|thousand)?\s*(?:us\s+)?dollars?\b`)
)

var magnitudes = map[string]float64{
	"":         1,
	"k":        1e3,
	"thousand": 1e3,
	"m":        1e6,
	"mm":       1e6,
	"million":  1e6,
	"bn":       1e9,
	"billion":  1e9,
}

func parseFigure(digits, magnitude string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(digits, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	m, ok := magnitudes[magnitude]
	if !ok {
		return 0, false
	}
	return v * m, true
}

// dollarFigures returns every finite dollar figure found in lower.
func dollarFigures(lower string) []float64 {
	var out []float64
	for _, m := range dollarGroupedRE.FindAllStringSubmatch(lower, -1) {
		if v, ok := parseFigure(m[1]+m[2], ""); ok {
			out = append(out, v)
		}
	}
	for _, re := range []*regexp.Regexp{dollarMagnitudeRE, usdRE, numericDollarsRE} {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			if v, ok := parseFigure(m[1], m[2]); ok {
				out = append(out, v)
			}
		}
	}
	return append(out, spelledDollarAmounts(lower)...)
}

// largestFigure returns the largest finite dollar figure in lower, or
// nil when none is present.
func largestFigure(lower string) *taxonomy.Amount {
	var best *taxonomy.Amount
	for _, v := range dollarFigures(lower) {
		if v < 0 {
			continue
		}
		if best == nil || v > best.Value {
			best = taxonomy.Dollars(v)
		}
	}
	return best
}
