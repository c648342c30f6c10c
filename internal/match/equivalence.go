package match

import (
	"fmt"
	"math"

	"crossmatch/internal/config"
	"crossmatch/internal/metadata"
)

// Component weights of the overall score. They sum to 1; the validation
// penalty is subtracted afterwards and the result clamped to [0,1].
const (
	titleWeight    = 0.35
	entityWeight   = 0.30
	dateWeight     = 0.15
	categoryWeight = 0.10
	outcomeWeight  = 0.10

	validationPenalty = 0.1

	// dateNeutralScore applies when neither side names a date: absence of a
	// timeframe on both sides is no evidence against equivalence.
	dateNeutralScore = 0.5

	// dateOneSidedScore applies when exactly one side has a date. Weaker than
	// neutral because one market claims a timeframe the other does not.
	dateOneSidedScore = 0.3

	// noOverlapSimilarityFloor is the title similarity below which a pair
	// with zero entity overlap is disqualified. Title similarity alone is an
	// unreliable equivalence signal on short texts.
	noOverlapSimilarityFloor = 0.75
)

// CalculateEquivalence scores one candidate pair. The computation is a pure
// function of its inputs: identical inputs yield identical output.
//
// Stages: hard filters, component scoring, validations, finalize.
func CalculateEquivalence(a, b *metadata.Metadata, cfg config.Config) EquivalenceScore {
	if ok, reason := passesHardFilters(a, b, cfg); !ok {
		return EquivalenceScore{Disqualifiers: []string{reason}}
	}

	var score EquivalenceScore
	score.TitleSimilarity = titleSimilarity(a.Title, b.Title)

	cmp := compareEntities(a.Entities, b.Entities)
	score.EntityOverlap = cmp.Score
	score.MatchingEntities = cmp.Matching
	score.ConflictingEntities = cmp.Conflicting

	switch {
	case a.EventDate == nil && b.EventDate == nil:
		score.DateAlignment = dateNeutralScore
	case a.EventDate != nil && b.EventDate != nil:
		days := math.Abs(a.EventDate.Sub(*b.EventDate).Hours() / 24)
		score.DateAlignment = math.Max(0, 1-days/cfg.MaxDateDiffDays)
	default:
		score.DateAlignment = dateOneSidedScore
		score.Warnings = append(score.Warnings, "only one market specifies an event date")
	}

	if a.Category == b.Category {
		score.CategoryMatch = 1
	}
	if a.OutcomeType == b.OutcomeType {
		score.OutcomeAlignment = 1
	}

	score.Validations = Validations{
		SameCoreEvent:        score.EntityOverlap > 0.3 && score.TitleSimilarity > 0.5,
		SameTimeframe:        score.DateAlignment > 0.7,
		SameOutcomeStructure: score.OutcomeAlignment == 1,
		NoResolutionConflict: len(cmp.Conflicting) == 0,
		EntitiesMatch:        len(cmp.Matching) > 0 && len(cmp.Conflicting) == 0,
	}

	// Three independent disqualifier guards. Short market titles on unrelated
	// topics can still share generic words, so title similarity never stands
	// alone as proof of equivalence.
	if len(cmp.Conflicting) > 0 && len(cmp.Matching) == 0 {
		score.Disqualifiers = append(score.Disqualifiers, "conflicting entities with no matches")
	}
	if len(cmp.Matching) == 0 && score.TitleSimilarity < noOverlapSimilarityFloor {
		score.Disqualifiers = append(score.Disqualifiers,
			fmt.Sprintf("no entity overlap and title similarity %.2f below %.2f", score.TitleSimilarity, noOverlapSimilarityFloor))
	}
	if score.TitleSimilarity < cfg.MinTitleSimilarity {
		score.Disqualifiers = append(score.Disqualifiers,
			fmt.Sprintf("title similarity %.2f below minimum %.2f", score.TitleSimilarity, cfg.MinTitleSimilarity))
	}

	overall := titleWeight*score.TitleSimilarity +
		entityWeight*score.EntityOverlap +
		dateWeight*score.DateAlignment +
		categoryWeight*score.CategoryMatch +
		outcomeWeight*score.OutcomeAlignment -
		validationPenalty*float64(score.Validations.FailureCount())
	score.OverallScore = math.Min(1, math.Max(0, overall))

	return score
}
