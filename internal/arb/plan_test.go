package arb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crossmatch/internal/config"
	"crossmatch/internal/markets"
)

func TestBuildExecutionPlanThinnerLegFirst(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	a := liquidMarket(markets.PlatformPolymarket, "pm-1", 0.38, 0.40)
	b := liquidMarket(markets.PlatformKalshi, "kx-1", 0.65, 0.67)
	b.Liquidity = 2_000 // much thinner than A

	pair := pairWithBooks(a, b)
	strat := calculateCrossPlatformArbitrage(pair, cfg)
	require.NotNil(t, strat)

	plan := buildExecutionPlan(pair, strat, cfg)

	require.Len(t, plan.Steps, 2)
	assert.Equal(t, markets.PlatformKalshi, plan.Steps[0].Platform)
	assert.Equal(t, 1, plan.Steps[0].Order)
	assert.Equal(t, markets.PlatformPolymarket, plan.Steps[1].Platform)
	assert.NotEmpty(t, plan.AbortConditions)
	assert.NotEmpty(t, plan.Fallback)
}

func TestBuildExecutionPlanSizeClamps(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	a := liquidMarket(markets.PlatformPolymarket, "pm-1", 0.38, 0.40)
	b := liquidMarket(markets.PlatformKalshi, "kx-1", 0.65, 0.67)

	pair := pairWithBooks(a, b)
	strat := calculateCrossPlatformArbitrage(pair, cfg)
	require.NotNil(t, strat)

	t.Run("depth limits the size", func(t *testing.T) {
		t.Parallel()
		thin := pair
		thin.MarketA.Liquidity = 500 // 1% band absorbs $50
		thinStrat := calculateCrossPlatformArbitrage(thin, cfg)
		require.NotNil(t, thinStrat)

		plan := buildExecutionPlan(thin, thinStrat, cfg)
		assert.InDelta(t, 50, plan.RecommendedSizeUSD, 1e-9)
		assert.InDelta(t, 50, plan.MaxExecutableUSD, 1e-9)
	})

	t.Run("config caps the size", func(t *testing.T) {
		t.Parallel()
		big := cfg
		big.DefaultPositionUSD = 5_000
		bigStrat := calculateCrossPlatformArbitrage(pair, big)
		require.NotNil(t, bigStrat)

		plan := buildExecutionPlan(pair, bigStrat, big)
		assert.LessOrEqual(t, plan.RecommendedSizeUSD, big.MaxPositionUSD)
	})

	t.Run("leg notionals split by price", func(t *testing.T) {
		t.Parallel()
		plan := buildExecutionPlan(pair, strat, cfg)
		total := plan.Steps[0].NotionalUSD + plan.Steps[1].NotionalUSD
		assert.InDelta(t, plan.RecommendedSizeUSD, total, 1e-6)
	})
}
