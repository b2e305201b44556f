package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Term matching is case-insensitive on the term but expects text that
// has already been lowercased once by the caller (see Lower). Stage
// code lowercases each clause a single time and matches many terms.

// Lower normalizes clause text for matching.
func Lower(text string) string {
	return strings.ToLower(text)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// boundaryBefore reports whether position i in s starts a word.
func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

// boundaryAfter reports whether position i in s ends a word.
func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}

func find(text, term string, whole bool) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return false
	}
	for off := 0; off < len(text); {
		i := strings.Index(text[off:], term)
		if i < 0 {
			return false
		}
		start := off + i
		end := start + len(term)
		if boundaryBefore(text, start) && (!whole || boundaryAfter(text, end)) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		off = start + size
	}
	return false
}

// HasStem reports whether term occurs in text starting at a word
// boundary. Stems such as "indemnif" match "indemnification", while
// "pii" does not match inside "happiing".
func HasStem(text, term string) bool {
	return find(text, term, false)
}

// HasWord reports whether term occurs in text as a whole word or
// phrase, so "not" never matches "notice".
func HasWord(text, term string) bool {
	return find(text, term, true)
}

// HasAnyStem reports whether any of terms matches as a stem.
func HasAnyStem(text string, terms []string) bool {
	for _, t := range terms {
		if HasStem(text, t) {
			return true
		}
	}
	return false
}

// HasAnyWord reports whether any of terms matches as a whole word.
func HasAnyWord(text string, terms []string) bool {
	for _, t := range terms {
		if HasWord(text, t) {
			return true
		}
	}
	return false
}

// CountStems returns the number of distinct terms that match as stems.
// Duplicate entries in terms are counted once.
func CountStems(text string, terms []string) int {
	seen := make(map[string]bool, len(terms))
	n := 0
	for _, t := range terms {
		key := strings.ToLower(strings.TrimSpace(t))
		if seen[key] {
			continue
		}
		seen[key] = true
		if HasStem(text, key) {
			n++
		}
	}
	return n
}

// WordCount returns the number of whitespace-separated words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
