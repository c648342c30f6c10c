package match

import (
	"fmt"

	"crossmatch/internal/hashutil"
	"crossmatch/internal/markets"
	"crossmatch/internal/metadata"
)

// Validations records the five pass/fail checks behind an equivalence score.
type Validations struct {
	SameCoreEvent        bool `json:"same_core_event"`
	SameTimeframe        bool `json:"same_timeframe"`
	SameOutcomeStructure bool `json:"same_outcome_structure"`
	NoResolutionConflict bool `json:"no_resolution_conflict"`
	EntitiesMatch        bool `json:"entities_match"`
}

// FailureCount returns how many validations failed; each failure costs a
// fixed penalty on the overall score.
func (v Validations) FailureCount() int {
	n := 0
	for _, ok := range []bool{v.SameCoreEvent, v.SameTimeframe, v.SameOutcomeStructure, v.NoResolutionConflict, v.EntitiesMatch} {
		if !ok {
			n++
		}
	}
	return n
}

// EquivalenceScore is the calibrated estimate that two listings describe the
// same resolvable event. A non-empty Disqualifiers list excludes the pair
// regardless of the numeric score.
type EquivalenceScore struct {
	OverallScore     float64 `json:"overall_score"`
	TitleSimilarity  float64 `json:"title_similarity"`
	EntityOverlap    float64 `json:"entity_overlap"`
	DateAlignment    float64 `json:"date_alignment"`
	CategoryMatch    float64 `json:"category_match"`
	OutcomeAlignment float64 `json:"outcome_alignment"`

	Validations         Validations `json:"validations"`
	MatchingEntities    []string    `json:"matching_entities,omitempty"`
	ConflictingEntities []string    `json:"conflicting_entities,omitempty"`
	Warnings            []string    `json:"warnings,omitempty"`
	Disqualifiers       []string    `json:"disqualifiers,omitempty"`
}

// Disqualified reports whether the pair must be excluded from results.
func (s EquivalenceScore) Disqualified() bool {
	return len(s.Disqualifiers) > 0
}

// OutcomeMapping translates between the two markets' YES/NO index spaces.
// Index 0 is YES, index 1 is NO on both sides.
type OutcomeMapping struct {
	IsInverted bool `json:"is_inverted"`
}

// AToB maps an outcome index on market A to the corresponding index on B.
func (m OutcomeMapping) AToB(idx int) int {
	if m.IsInverted {
		return 1 - idx
	}
	return idx
}

// BToA maps an outcome index on market B to the corresponding index on A.
func (m OutcomeMapping) BToA(idx int) int {
	// The translation is symmetric for binary outcome spaces.
	return m.AToB(idx)
}

// ValidatedPair is a cross-platform pair that cleared every filter. It is the
// sole input to the arbitrage subsystem.
type ValidatedPair struct {
	PairID    string            `json:"pair_id"`
	MarketA   markets.Market    `json:"market_a"`
	MarketB   markets.Market    `json:"market_b"`
	MetadataA metadata.Metadata `json:"metadata_a"`
	MetadataB metadata.Metadata `json:"metadata_b"`
	Score     EquivalenceScore  `json:"score"`
	Outcomes  OutcomeMapping    `json:"outcomes"`
}

// BuildPairID returns the canonical order-independent pair identifier.
func BuildPairID(a, b markets.Market) string {
	return hashutil.PairKey(
		fmt.Sprintf("%s:%s", a.Platform, a.MarketID),
		fmt.Sprintf("%s:%s", b.Platform, b.MarketID),
	)
}
