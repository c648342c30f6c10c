package match

import (
	"fmt"
	"math"
	"strings"

	"crossmatch/internal/metadata"
)

const (
	// entityNeutralScore is returned when neither side mentions any entity.
	// No signal either way must neither penalize nor reward the pair, so the
	// default sits in the middle rather than at 0.
	entityNeutralScore = 0.5

	// entityConflictPenalty is the flat deduction applied once when any
	// conflicting entities exist.
	entityConflictPenalty = 0.3

	// amountMatchTolerance is the relative difference under which two
	// amounts are considered the same number.
	amountMatchTolerance = 0.01
)

type entityComparison struct {
	Score       float64
	Matching    []string
	Conflicting []string
}

// compareEntities intersects the comparable entity sets of two markets.
// People, organizations, and events match by canonical name; amounts match
// numerically within tolerance. Two markets that both name people but share
// none is treated as a conflict: same shape of event, different subjects.
func compareEntities(a, b metadata.Entities) entityComparison {
	if a.Total() == 0 && b.Total() == 0 {
		return entityComparison{Score: entityNeutralScore}
	}

	var matching, conflicting []string

	matching = append(matching, intersect(a.People, b.People)...)
	matching = append(matching, intersect(a.Organizations, b.Organizations)...)
	matching = append(matching, intersect(a.Events, b.Events)...)

	if len(a.People) > 0 && len(b.People) > 0 && len(intersect(a.People, b.People)) == 0 {
		conflicting = append(conflicting, fmt.Sprintf(
			"people: %s vs %s",
			strings.Join(a.People, ", "),
			strings.Join(b.People, ", "),
		))
	}

	for _, am := range a.Amounts {
		matched := false
		for _, bm := range b.Amounts {
			if amountsMatch(am, bm) {
				matching = append(matching, fmt.Sprintf("amount: %s", trimFloat(am.Value)))
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		for _, bm := range b.Amounts {
			if am.Unit == bm.Unit {
				conflicting = append(conflicting, fmt.Sprintf(
					"amount: %s vs %s %s", trimFloat(am.Value), trimFloat(bm.Value), am.Unit,
				))
				break
			}
		}
	}

	total := a.Total()
	if b.Total() > total {
		total = b.Total()
	}
	if total < 1 {
		total = 1
	}

	score := float64(len(matching)) / float64(total)
	if len(conflicting) > 0 {
		score -= entityConflictPenalty
	}
	if score < 0 {
		score = 0
	}

	return entityComparison{Score: score, Matching: matching, Conflicting: conflicting}
}

func amountsMatch(a, b metadata.AmountMention) bool {
	if a.Unit != b.Unit {
		return false
	}
	larger := math.Max(math.Abs(a.Value), math.Abs(b.Value))
	if larger == 0 {
		return a.Value == b.Value
	}
	return math.Abs(a.Value-b.Value)/larger <= amountMatchTolerance
}

func intersect(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	set := make(map[string]bool, len(b))
	for _, s := range b {
		set[strings.ToLower(s)] = true
	}
	var out []string
	for _, s := range a {
		if set[strings.ToLower(s)] {
			out = append(out, s)
		}
	}
	return out
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
