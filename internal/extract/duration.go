package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/unbound-force/clauserisk/internal/taxonomy"
)

// Digit forms ("30 days", "30days", "thirty (30) days") and hyphenated
// adjective forms ("15-day", "24-month", "3-year").
const unitSep = `\)?(?:\s*-\s*|\s*)(?:calendar\s+|business\s+)?`

var (
	dayRE   = regexp.MustCompile(`(\d+)` + unitSep + `days?\b`)
	monthRE = regexp.MustCompile(`(\d+)` + unitSep + `months?\b`)
	yearRE  = regexp.MustCompile(`(\d+)` + unitSep + `years?\b`)

	// Notice forms that bind a day count directly to "notice".
	adjacentNoticeREs = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)` + unitSep + `days?['’]?\s+(?:(?:prior|advance|written)\s+){0,2}notice`),
		regexp.MustCompile(`notice\s+(?:period\s+)?of\s+(?:at\s+least\s+|not\s+less\s+than\s+)?(?:[a-z-]+\s+\()?(\d+)` + unitSep + `days?\b`),
	}

	segmentSplitRE = regexp.MustCompile(`;|\.\s+`)
)

// Durations extracts day, month, year and notice-period counts.
//
// For each unit the earliest match wins. This is the opposite of
// monetary extraction, where the largest figure wins.
//
// A notice period is taken from the first sentence or semicolon
// segment that mentions "notice": a day count bound to the word
// ("60 days notice", "notice of 30 days", "15-day notice") is
// preferred, otherwise the segment's first day count is used. The day
// count consumed as the notice period does not also populate Days.
func Durations(text string) taxonomy.Durations {
	lower := Lower(text)
	var d taxonomy.Durations

	notice, noticeAt := noticePeriod(lower)
	d.NoticePeriodDays = notice

	for _, loc := range dayRE.FindAllStringSubmatchIndex(lower, -1) {
		if loc[2] == noticeAt {
			continue
		}
		d.Days = atoi(lower[loc[2]:loc[3]])
		break
	}
	d.Months = firstCount(monthRE, lower)
	d.Years = firstCount(yearRE, lower)
	return d
}

// noticePeriod returns the notice period in days and the byte offset of
// its digits in lower, or (0, -1).
func noticePeriod(lower string) (int, int) {
	start := 0
	bounds := segmentSplitRE.FindAllStringIndex(lower, -1)
	bounds = append(bounds, []int{len(lower), len(lower)})
	for _, b := range bounds {
		seg := lower[start:b[0]]
		base := start
		start = b[1]
		if !strings.Contains(seg, "notice") {
			continue
		}

		best := -1
		var bestLoc []int
		for _, re := range adjacentNoticeREs {
			loc := re.FindStringSubmatchIndex(seg)
			if loc != nil && (best < 0 || loc[2] < best) {
				best, bestLoc = loc[2], loc
			}
		}
		if bestLoc == nil {
			bestLoc = dayRE.FindStringSubmatchIndex(seg)
		}
		if bestLoc != nil {
			return atoi(seg[bestLoc[2]:bestLoc[3]]), base + bestLoc[2]
		}
	}
	return 0, -1
}

func firstCount(re *regexp.Regexp, lower string) int {
	m := re.FindStringSubmatch(lower)
	if m == nil {
		return 0
	}
	return atoi(m[1])
}

// atoi parses a matched digit run; values too large for int yield 0.
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
