package arb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crossmatch/internal/config"
	"crossmatch/internal/markets"
	"crossmatch/internal/match"
)

func pairWithBooks(a, b markets.Market) match.ValidatedPair {
	return match.ValidatedPair{
		PairID:  match.BuildPairID(a, b),
		MarketA: a,
		MarketB: b,
		Score:   match.EquivalenceScore{OverallScore: 0.85, EntityOverlap: 0.9, Validations: match.Validations{NoResolutionConflict: true}},
	}
}

func liquidMarket(platform markets.Platform, id string, bid, ask float64) markets.Market {
	return markets.Market{
		Platform:  platform,
		MarketID:  id,
		YesPrice:  (bid + ask) / 2,
		Liquidity: 50_000,
		Volume:    200_000,
		Orderbook: &markets.Orderbook{YesBid: bid, YesAsk: ask},
	}
}

// The core spread identity: YES at 0.40 on A plus NO at (1-0.65)=0.35 on B
// costs 0.75 per unit against a guaranteed payout of 1.
func TestCalculateCrossPlatformArbitrageIdentity(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	a := liquidMarket(markets.PlatformPolymarket, "pm-1", 0.38, 0.40)
	b := liquidMarket(markets.PlatformKalshi, "kx-1", 0.65, 0.67)
	pair := pairWithBooks(a, b)

	strat := calculateCrossPlatformArbitrage(pair, cfg)

	require.NotNil(t, strat)
	assert.Equal(t, DirectionYesA, strat.Direction)
	assert.InDelta(t, 0.75, strat.UnitCost, 1e-9)
	assert.InDelta(t, 0.25, strat.UnitProfit, 1e-9)

	assert.Equal(t, SideYes, strat.Legs[0].Side)
	assert.Equal(t, markets.PlatformPolymarket, strat.Legs[0].Platform)
	assert.Equal(t, SideNo, strat.Legs[1].Side)
	assert.Equal(t, markets.PlatformKalshi, strat.Legs[1].Platform)

	// Payout per unit pair is exactly 1, so gross profit tracks unit profit.
	assert.InDelta(t, strat.Units*strat.UnitProfit, strat.GrossProfitUSD, 1e-6)
	assert.Greater(t, strat.NetProfitUSD, 0.0)
	assert.Less(t, strat.NetProfitUSD, strat.GrossProfitUSD)
}

func TestCalculateCrossPlatformArbitrageInverted(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	// Inverted mapping: YES on A is hedged by YES on B, so the profitable
	// combination is cheap asks on both sides.
	a := liquidMarket(markets.PlatformPolymarket, "pm-1", 0.38, 0.40)
	b := liquidMarket(markets.PlatformKalshi, "kx-1", 0.33, 0.35)
	pair := pairWithBooks(a, b)
	pair.Outcomes = match.OutcomeMapping{IsInverted: true}

	strat := calculateCrossPlatformArbitrage(pair, cfg)

	require.NotNil(t, strat)
	assert.InDelta(t, 0.75, strat.UnitCost, 1e-9)
	assert.Equal(t, SideYes, strat.Legs[0].Side)
	assert.Equal(t, SideYes, strat.Legs[1].Side)
}

func TestCalculateCrossPlatformArbitrageNoEdge(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	// Both venues agree on the price; any spread position costs about 1.
	a := liquidMarket(markets.PlatformPolymarket, "pm-1", 0.49, 0.51)
	b := liquidMarket(markets.PlatformKalshi, "kx-1", 0.49, 0.51)
	pair := pairWithBooks(a, b)

	assert.Nil(t, calculateCrossPlatformArbitrage(pair, cfg))
}

func TestCalculateCrossPlatformArbitragePicksBetterDirection(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	// A overpriced relative to B: buying NO on A and YES on B is the edge.
	a := liquidMarket(markets.PlatformPolymarket, "pm-1", 0.70, 0.72)
	b := liquidMarket(markets.PlatformKalshi, "kx-1", 0.40, 0.42)
	pair := pairWithBooks(a, b)

	strat := calculateCrossPlatformArbitrage(pair, cfg)

	require.NotNil(t, strat)
	assert.Equal(t, DirectionNoA, strat.Direction)
	assert.Equal(t, SideNo, strat.Legs[0].Side)
	assert.Equal(t, SideYes, strat.Legs[1].Side)
	// NO on A at (1-0.70)=0.30 plus YES on B at 0.42.
	assert.InDelta(t, 0.72, strat.UnitCost, 1e-9)
}

func TestUntradable(t *testing.T) {
	t.Parallel()

	good := liquidMarket(markets.PlatformPolymarket, "pm-1", 0.48, 0.50)

	t.Run("healthy quotes pass", func(t *testing.T) {
		t.Parallel()
		_, bad := untradable(good, liquidMarket(markets.PlatformKalshi, "kx-1", 0.60, 0.62))
		assert.False(t, bad)
	})

	t.Run("crossed book fails when both sides bad", func(t *testing.T) {
		t.Parallel()
		crossed := liquidMarket(markets.PlatformKalshi, "kx-1", 0.55, 0.50)
		reason, bad := untradable(good, crossed)
		assert.True(t, bad)
		assert.Contains(t, reason, "kalshi")
	})

	t.Run("absurd spread fails", func(t *testing.T) {
		t.Parallel()
		wide := liquidMarket(markets.PlatformKalshi, "kx-1", 0.30, 0.60)
		_, bad := untradable(good, wide)
		assert.True(t, bad)
	})

	t.Run("synthetic quote from reported price passes", func(t *testing.T) {
		t.Parallel()
		noBook := markets.Market{Platform: markets.PlatformKalshi, MarketID: "kx-1", YesPrice: 0.50, Volume: 10_000}
		_, bad := untradable(good, noBook)
		assert.False(t, bad)
	})
}

func TestExecutablePrice(t *testing.T) {
	t.Parallel()

	withBook := liquidMarket(markets.PlatformPolymarket, "pm-1", 0.44, 0.46)
	q := executablePrice(withBook)
	assert.Equal(t, Quote{Bid: 0.44, Ask: 0.46}, q)
	assert.InDelta(t, 0.45, q.Mid(), 1e-9)
	assert.InDelta(t, 0.02, q.Spread(), 1e-9)

	noBook := markets.Market{YesPrice: 0.50}
	q = executablePrice(noBook)
	assert.InDelta(t, 0.495, q.Bid, 1e-9)
	assert.InDelta(t, 0.505, q.Ask, 1e-9)
}
