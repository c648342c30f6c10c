package match

import "regexp"

// negationRe recognizes the phrasing that flips a market's outcome space.
// This is a heuristic over surface text, not a semantic parse: double
// negation and negation outside the resolution clause will fool it.
var negationRe = regexp.MustCompile(`(?i)\b(will not|won'?t|not|fails? to|refuses? to)\b`)

// resolveOutcomeMapping decides whether YES on A corresponds to YES or NO on
// B. When exactly one title is phrased as a negation, the outcome spaces are
// inverted; otherwise they are aligned.
func resolveOutcomeMapping(titleA, titleB string) OutcomeMapping {
	negA := negationRe.MatchString(titleA)
	negB := negationRe.MatchString(titleB)
	return OutcomeMapping{IsInverted: negA != negB}
}
