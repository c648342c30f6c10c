package match

import (
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"crossmatch/internal/config"
	"crossmatch/internal/markets"
	"crossmatch/internal/metadata"
)

// Markets evaluates every cross-platform candidate pair and returns the
// validated pairs, sorted by overall score descending (ties keep side-A input
// order). For each A-market only the single best-scoring surviving candidate
// is kept. This is greedy from A's perspective, not a global bipartite
// assignment: two A-markets may select the same B-market.
//
// Pairs are scored concurrently; each goroutine owns one slot of the results
// slice, so the output is deterministic for identical inputs.
func Markets(listA, listB []markets.Market, cfg config.Config) []ValidatedPair {
	if len(listA) == 0 || len(listB) == 0 {
		return nil
	}

	metaA := make([]metadata.Metadata, len(listA))
	for i, m := range listA {
		metaA[i] = metadata.Extract(m)
	}
	metaB := make([]metadata.Metadata, len(listB))
	for i, m := range listB {
		metaB[i] = metadata.Extract(m)
	}

	results := make([]*ValidatedPair, len(listA))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range listA {
		g.Go(func() error {
			results[i] = bestCandidate(listA[i], metaA[i], listB, metaB, cfg)
			return nil
		})
	}
	// Workers never return errors; Wait is only a join point.
	_ = g.Wait()

	out := make([]ValidatedPair, 0, len(results))
	for _, p := range results {
		if p != nil {
			out = append(out, *p)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score.OverallScore > out[j].Score.OverallScore
	})
	return out
}

func bestCandidate(a markets.Market, ma metadata.Metadata, listB []markets.Market, metaB []metadata.Metadata, cfg config.Config) *ValidatedPair {
	var best *ValidatedPair
	for j := range listB {
		b := listB[j]
		if b.Platform == a.Platform {
			// Same-platform pairs are a caller bug, not a scoring outcome.
			continue
		}

		score := CalculateEquivalence(&ma, &metaB[j], cfg)
		if score.Disqualified() || score.OverallScore < cfg.MinEquivalenceScore {
			continue
		}
		// Strictly-greater keeps the earliest B candidate on exact ties.
		if best != nil && score.OverallScore <= best.Score.OverallScore {
			continue
		}

		best = &ValidatedPair{
			PairID:    BuildPairID(a, b),
			MarketA:   a,
			MarketB:   b,
			MetadataA: ma,
			MetadataB: metaB[j],
			Score:     score,
			Outcomes:  resolveOutcomeMapping(a.Text(), b.Text()),
		}
	}
	return best
}
