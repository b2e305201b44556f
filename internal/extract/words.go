package extract

import "regexp"

var letterRunRE = regexp.MustCompile(`[a-z]+`)

var smallNumbers = map[string]float64{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18,
	"nineteen": 19, "twenty": 20, "thirty": 30, "forty": 40,
	"fifty": 50, "sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

var scaleNumbers = map[string]float64{
	"thousand": 1e3,
	"million":  1e6,
	"billion":  1e9,
}

// fractions scale an "a" that opens a run: "half a million".
var fractions = map[string]float64{
	"half":    0.5,
	"quarter": 0.25,
}

// spelledDollarAmounts returns every spelled-out number run that is
// immediately followed by "dollar" or "dollars", e.g. "one hundred
// thousand dollars" or "two million five hundred thousand dollars".
// Hyphenated tens ("twenty-five") and "and" inside a run are accepted.
//
// A run opens only on a number word, or on "a" directly before
// "hundred" or a scale word. Words directly after a digit or "$" are
// left to the numeric rules, so "$0.5 million dollars" is not read as
// "million dollars".
func spelledDollarAmounts(lower string) []float64 {
	var (
		out            []float64
		total, current float64
		inRun          bool
		article        float64 // pending "a" multiplier; 0 when none
		prev           string
	)
	reset := func() {
		total, current, inRun, article = 0, 0, false, 0
	}

	for _, loc := range letterRunRE.FindAllStringIndex(lower, -1) {
		w := lower[loc[0]:loc[1]]
		before := prev
		prev = w

		if v, ok := smallNumbers[w]; ok {
			if !inRun {
				if followsFigure(lower, loc[0]) {
					reset()
					continue
				}
				article = 0
				inRun = true
			}
			current += v
			continue
		}

		s, isScale := scaleNumbers[w]
		if w == "hundred" || isScale {
			if !inRun {
				if article == 0 {
					reset()
					continue
				}
				current = article
				article = 0
				inRun = true
			}
			if w == "hundred" {
				if current == 0 {
					current = 1
				}
				current *= 100
				continue
			}
			if current == 0 {
				current = 1
			}
			total += current * s
			current = 0
			continue
		}

		switch {
		case w == "a" && !inRun && !followsFigure(lower, loc[0]):
			reset()
			article = 1
			if f, ok := fractions[before]; ok {
				article = f
			}
			continue
		case w == "and" && inRun:
			continue
		case (w == "dollar" || w == "dollars") && inRun:
			out = append(out, total+current)
		}
		reset()
	}
	return out
}

// followsFigure reports whether the word at i directly follows a digit
// or a dollar sign, ignoring spaces.
func followsFigure(lower string, i int) bool {
	j := i - 1
	for j >= 0 && (lower[j] == ' ' || lower[j] == '\t') {
		j--
	}
	if j < 0 {
		return false
	}
	c := lower[j]
	return c == '$' || (c >= '0' && c <= '9')
}
