package recommendation

import (
	"strings"

	"github.com/arbovm/levenshtein"
)

// maxSuggestDistance bounds how far a query may be from a key and still be suggested
const maxSuggestDistance = 4

// NormalizeTone lowercases a tone and folds "-", "_" and repeated spaces into
// single spaces so that "Fair-Warm" and "fair  warm" resolve to "fair warm".
func NormalizeTone(tone string) string {
	tone = strings.ToLower(tone)
	tone = strings.NewReplacer("-", " ", "_", " ").Replace(tone)
	return strings.Join(strings.Fields(tone), " ")
}

// Suggest returns the stored tone closest to query by edit distance.
// ok is false when nothing is close enough to be a plausible typo.
func (t *Table) Suggest(query string) (string, bool) {
	q := NormalizeTone(query)
	if q == "" {
		return "", false
	}

	best, bestDist := "", -1
	for _, key := range t.keys {
		d := levenshtein.Distance(q, key)
		if bestDist < 0 || d < bestDist {
			best, bestDist = key, d
		}
	}
	if bestDist < 0 || bestDist > maxSuggestDistance {
		return "", false
	}
	return best, true
}
