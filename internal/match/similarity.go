package match

import (
	"regexp"
	"strings"
)

const (
	charWeight   = 0.3
	wordWeight   = 0.4
	synonymBonus = 0.05
	synonymCap   = 0.20
	phraseBonus  = 0.05
	phraseCap    = 0.15
)

// synonymPairs registers word-level synonyms. Pairs are unordered; lookup
// checks both directions.
var synonymPairs = [][2]string{
	{"bitcoin", "btc"},
	{"ethereum", "eth"},
	{"exceed", "above"},
	{"exceed", "over"},
	{"exceed", "surpass"},
	{"reach", "hit"},
	{"end", "eoy"},
	{"president", "presidency"},
	{"president", "presidential"},
	{"america", "usa"},
}

// resolutionPhrases earn a bonus when present in both titles; they signal the
// markets resolve on the same kind of condition.
var resolutionPhrases = []string{
	"will win",
	"by end of",
	"reach",
	"exceed",
	"at least",
	"more than",
	"before",
}

var (
	numberCommaRe = regexp.MustCompile(`(\d),(\d)`)
	thousandsRe   = regexp.MustCompile(`\b(\d+)k\b`)
	millionsRe    = regexp.MustCompile(`\b(\d+)m\b`)
	billionsRe    = regexp.MustCompile(`\b(\d+)b\b`)
	nonWordRe     = regexp.MustCompile(`[^a-z0-9]+`)
	spaceRe       = regexp.MustCompile(`\s+`)
)

// titleSimilarity scores two titles in [0,1] from four signals: a cheap
// character walk, word-set Jaccard, registered synonyms, and shared
// resolution phrasing.
func titleSimilarity(a, b string) float64 {
	na, nb := normalizeTitle(a), normalizeTitle(b)
	if na == "" || nb == "" {
		return 0
	}

	wordsA, wordsB := significantWords(na), significantWords(nb)

	score := charWeight*charSimilarity(na, nb) +
		wordWeight*jaccard(wordsA, wordsB) +
		synonymScore(wordsA, wordsB) +
		phraseScore(na, nb)

	if score > 1 {
		score = 1
	}
	return score
}

func normalizeTitle(s string) string {
	s = strings.ToLower(s)
	s = numberCommaRe.ReplaceAllString(s, "$1$2")
	s = numberCommaRe.ReplaceAllString(s, "$1$2") // second pass for 1,000,000
	// Expand integer magnitude suffixes so "100k" and "100,000" compare equal
	// in both the character walk and the word sets.
	s = thousandsRe.ReplaceAllString(s, "${1}000")
	s = millionsRe.ReplaceAllString(s, "${1}000000")
	s = billionsRe.ReplaceAllString(s, "${1}000000000")
	s = nonWordRe.ReplaceAllString(s, " ")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// charSimilarity walks the shorter string against a forward-only pointer in
// the longer one, counting characters found in order. This is a cheap greedy
// proxy, not edit distance; the downstream thresholds were tuned against this
// exact walk, so keep the algorithm as is.
func charSimilarity(a, b string) float64 {
	short, long := a, b
	if len(short) > len(long) {
		short, long = long, short
	}
	matches, j := 0, 0
	for i := 0; i < len(short); i++ {
		for k := j; k < len(long); k++ {
			if long[k] == short[i] {
				matches++
				j = k + 1
				break
			}
		}
	}
	return 2 * float64(matches) / float64(len(a)+len(b))
}

// significantWords returns the set of words longer than two characters.
func significantWords(normalized string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range strings.Fields(normalized) {
		if len(w) > 2 {
			out[w] = true
		}
	}
	return out
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if b[w] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func synonymScore(a, b map[string]bool) float64 {
	bonus := 0.0
	for _, pair := range synonymPairs {
		x, y := pair[0], pair[1]
		// Only differing words earn the bonus; a shared word already counts
		// in the Jaccard term.
		if (a[x] && b[y] && !a[y] && !b[x]) || (a[y] && b[x] && !a[x] && !b[y]) {
			bonus += synonymBonus
			if bonus >= synonymCap {
				return synonymCap
			}
		}
	}
	return bonus
}

func phraseScore(na, nb string) float64 {
	bonus := 0.0
	for _, phrase := range resolutionPhrases {
		if strings.Contains(na, phrase) && strings.Contains(nb, phrase) {
			bonus += phraseBonus
			if bonus >= phraseCap {
				return phraseCap
			}
		}
	}
	return bonus
}
