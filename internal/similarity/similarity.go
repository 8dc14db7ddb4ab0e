// Package similarity provides the string-similarity primitive used by
// duplicate detection: normalization plus a Levenshtein-based ratio.
package similarity

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

var whitespaceCollapser = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

// Normalize prepares a title or artist name for comparison: lowercase, trim,
// collapse whitespace runs, "&" spelled out, hyphens treated as spaces.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = whitespaceCollapser.Replace(s)
	s = strings.ReplaceAll(s, " & ", " and ")
	s = strings.ReplaceAll(s, "-", " ")
	return strings.Join(strings.Fields(s), " ")
}

// Distance is the classic unit-cost edit distance between two strings.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Score returns a similarity ratio in [0,1]: 1 for equal strings (including
// two empty strings), 0 when one side is empty and the other is not.
func Score(a, b string) float64 {
	if a == b {
		return 1.0
	}

	lenA := utf8.RuneCountInString(a)
	lenB := utf8.RuneCountInString(b)
	if lenA == 0 || lenB == 0 {
		return 0.0
	}

	maxLen := lenA
	if lenB > maxLen {
		maxLen = lenB
	}

	return 1.0 - float64(Distance(a, b))/float64(maxLen)
}
