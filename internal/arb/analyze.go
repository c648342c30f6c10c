package arb

import (
	"errors"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"crossmatch/internal/config"
	"crossmatch/internal/logging"
	"crossmatch/internal/match"
)

// ErrSamePlatform indicates a caller bug: both legs of a pair are on the
// same venue. All other non-results (no profit, unsafe risk, untradable
// quotes) are expected outcomes and return a nil opportunity without error.
var ErrSamePlatform = errors.New("arb: pair has both legs on the same platform")

// Analyze runs the full arbitrage pipeline for one validated pair: pricing,
// strategy selection, risk assessment, execution planning, and confidence
// grading. A nil result with nil error means no executable opportunity.
func Analyze(pair match.ValidatedPair, cfg config.Config) (*Opportunity, error) {
	if pair.MarketA.Platform == pair.MarketB.Platform {
		return nil, ErrSamePlatform
	}

	if reason, bad := untradable(pair.MarketA, pair.MarketB); bad {
		logging.Debugf("[arb] pair %s skipped: %s", pair.PairID, reason)
		return nil, nil
	}

	strat := calculateCrossPlatformArbitrage(pair, cfg)
	if strat == nil || strat.NetProfitPct < cfg.MinNetProfitPct {
		return nil, nil
	}

	risk := assessRisk(pair, strat, cfg)
	if !risk.IsSafe {
		return nil, nil
	}

	plan := buildExecutionPlan(pair, strat, cfg)
	confidence := scoreConfidence(pair.Score.OverallScore, strat, risk.Execution.Score)

	return &Opportunity{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		Pair:       pair,
		Strategy:   *strat,
		Risk:       risk,
		Plan:       plan,
		Confidence: confidence,
	}, nil
}

// FindOpportunities analyzes every validated pair and returns the executable
// opportunities sorted by net profit descending (pair id ascending on ties).
// Pairs are independent and analyzed concurrently; same-platform pairs are
// skipped as caller bugs.
func FindOpportunities(pairs []match.ValidatedPair, cfg config.Config) []Opportunity {
	results := make([]*Opportunity, len(pairs))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range pairs {
		g.Go(func() error {
			op, err := Analyze(pairs[i], cfg)
			if err != nil {
				// Invariant violations skip the pair; everything else in
				// this pipeline is modeled as data, not errors.
				return nil
			}
			results[i] = op
			return nil
		})
	}
	_ = g.Wait()

	out := make([]Opportunity, 0, len(results))
	for _, op := range results {
		if op != nil {
			out = append(out, *op)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Strategy.NetProfitUSD != out[j].Strategy.NetProfitUSD {
			return out[i].Strategy.NetProfitUSD > out[j].Strategy.NetProfitUSD
		}
		return out[i].Pair.PairID < out[j].Pair.PairID
	})
	return out
}
