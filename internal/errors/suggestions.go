package errors

import (
	"strings"

	"github.com/mamba-lang/mamba/internal/i18n"
)

// ============================================================================
// Keyword typo suggestions
// ============================================================================

// keywordTypos maps identifiers people carry over from other languages to
// the Mamba spelling. The parser consults this only for identifiers in
// statement-start position on a line that looks like a block header, so
// ordinary variables named "until" or "cls" are left alone.
var keywordTypos = map[string]string{
	"elseif":   "elif",
	"elsif":    "elif",
	"define":   "def",
	"function": "def",
	"func":     "def",
	"cls":      "class",
	"switch":   "match",
	"foreach":  "for",
	"until":    "while not",
	"unless":   "if not",
}

// KeywordTypo returns the suggestion text for a known keyword typo, or ""
// when the identifier is not a recognized typo.
func KeywordTypo(ident string) string {
	if fix, ok := keywordTypos[ident]; ok {
		return i18n.T(i18n.SuggDidYouMean, fix)
	}
	return ""
}

// statementKeywords is the candidate set for near-miss detection:
// keywords that can begin a statement.
var statementKeywords = []string{
	"def", "class", "if", "elif", "else", "while", "for", "return",
	"import", "from", "pass", "break", "continue", "raise", "del",
	"global", "nonlocal", "assert", "lambda", "async",
}

// NearbyKeyword finds a statement keyword within edit distance 2 of the
// identifier, for misspellings the fixed table does not know ("whlie",
// "retrun"). Returns the suggestion text or "".
func NearbyKeyword(ident string) string {
	if len(ident) < 3 {
		return ""
	}
	if match := FindSimilar(ident, statementKeywords, 2); match != "" {
		return i18n.T(i18n.SuggDidYouMean, match)
	}
	return ""
}

// ============================================================================
// Similar-name lookup
// ============================================================================

// FindSimilar returns the candidate closest to name within maxDistance
// edits, or "" when nothing is close enough.
func FindSimilar(name string, candidates []string, maxDistance int) string {
	if len(candidates) == 0 {
		return ""
	}

	bestMatch := ""
	bestDistance := maxDistance + 1

	for _, candidate := range candidates {
		distance := levenshteinDistance(name, candidate)
		if distance < bestDistance {
			bestDistance = distance
			bestMatch = candidate
		}
	}

	if bestDistance <= maxDistance && bestDistance > 0 {
		return bestMatch
	}
	return ""
}

// levenshteinDistance computes the case-insensitive edit distance.
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	s1 = strings.ToLower(s1)
	s2 = strings.ToLower(s2)

	d := make([][]int, len(s1)+1)
	for i := range d {
		d[i] = make([]int, len(s2)+1)
	}

	for i := 0; i <= len(s1); i++ {
		d[i][0] = i
	}
	for j := 0; j <= len(s2); j++ {
		d[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			d[i][j] = min3(
				d[i-1][j]+1,      // deletion
				d[i][j-1]+1,      // insertion
				d[i-1][j-1]+cost, // substitution
			)
		}
	}

	return d[len(s1)][len(s2)]
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
