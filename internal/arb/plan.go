package arb

import (
	"math"

	"crossmatch/internal/config"
	"crossmatch/internal/markets"
	"crossmatch/internal/match"
)

// minProfitableSizeUSD is the floor under which fixed costs and attention
// outweigh any plausible edge.
const minProfitableSizeUSD = 10

var abortConditions = []string{
	"either leg's price moves more than 2% before both legs are placed",
	"available liquidity drops below the recommended size on either leg",
	"either platform API becomes unavailable mid-execution",
}

const planFallback = "cancel the second leg if the first leg fills at a worse price than planned"

// buildExecutionPlan orders the legs thinnest-liquidity-first (the harder
// fill goes in while the easy hedge is still available) and sizes the
// position within depth and config limits.
func buildExecutionPlan(pair match.ValidatedPair, strat *SpreadStrategy, cfg config.Config) ExecutionPlan {
	marketFor := func(leg Leg) markets.Market {
		if leg.Platform == pair.MarketA.Platform && leg.MarketID == pair.MarketA.MarketID {
			return pair.MarketA
		}
		return pair.MarketB
	}

	first, second := strat.Legs[0], strat.Legs[1]
	if effectiveLiquidity(marketFor(second)) < effectiveLiquidity(marketFor(first)) {
		first, second = second, first
	}

	// The depth curve's 1% band is the size each market absorbs without
	// meaningful concession; the pair can't exceed the thinner side.
	maxExecutable := math.Min(
		depthCurve(pair.MarketA).VolumeAt1Pct,
		depthCurve(pair.MarketB).VolumeAt1Pct,
	)

	size := math.Max(minProfitableSizeUSD, cfg.DefaultPositionUSD)
	if maxExecutable > 0 {
		size = math.Min(size, maxExecutable)
	}
	size = math.Min(size, cfg.MaxPositionUSD)

	steps := make([]ExecutionStep, 0, 2)
	for i, leg := range []Leg{first, second} {
		note := "thinner book: execute first"
		if i == 1 {
			note = "hedge leg: place immediately after the first fill"
		}
		steps = append(steps, ExecutionStep{
			Order:       i + 1,
			Platform:    leg.Platform,
			MarketID:    leg.MarketID,
			Side:        leg.Side,
			LimitPrice:  leg.TargetPrice,
			NotionalUSD: size * leg.TargetPrice / strat.UnitCost,
			Note:        note,
		})
	}

	return ExecutionPlan{
		Steps:              steps,
		RecommendedSizeUSD: size,
		MaxExecutableUSD:   maxExecutable,
		AbortConditions:    abortConditions,
		Fallback:           planFallback,
	}
}
