package arb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crossmatch/internal/config"
	"crossmatch/internal/markets"
)

func hasFlag(flags []RiskFlag, code string) bool {
	for _, f := range flags {
		if f.Code == code {
			return true
		}
	}
	return false
}

func TestAssessRiskLowLiquidity(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	a := liquidMarket(markets.PlatformPolymarket, "pm-1", 0.38, 0.40)
	b := liquidMarket(markets.PlatformKalshi, "kx-1", 0.65, 0.67)
	b.Liquidity = cfg.MinLiquidityUSD / 2

	pair := pairWithBooks(a, b)
	strat := calculateCrossPlatformArbitrage(pair, cfg)
	require.NotNil(t, strat)

	risk := assessRisk(pair, strat, cfg)

	assert.Equal(t, 80.0, risk.Execution.LiquidityRisk)
	assert.True(t, hasFlag(risk.Flags, "LOW_LIQUIDITY"))
}

func TestAssessRiskHealthyPairIsSafe(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	far := time.Now().UTC().Add(60 * 24 * time.Hour)
	a := liquidMarket(markets.PlatformPolymarket, "pm-1", 0.38, 0.40)
	a.EndDate = &far
	b := liquidMarket(markets.PlatformKalshi, "kx-1", 0.65, 0.67)
	b.EndDate = &far

	pair := pairWithBooks(a, b)
	strat := calculateCrossPlatformArbitrage(pair, cfg)
	require.NotNil(t, strat)

	risk := assessRisk(pair, strat, cfg)

	assert.True(t, risk.IsSafe, "flags: %+v overall=%.1f", risk.Flags, risk.OverallScore)
	assert.Equal(t, 20.0, risk.Execution.LiquidityRisk)
	assert.Equal(t, 20.0, risk.Execution.TimingRisk)
	assert.LessOrEqual(t, risk.OverallScore, cfg.MaxRiskScore)
}

func TestAssessRiskResolutionConflictIsCritical(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	a := liquidMarket(markets.PlatformPolymarket, "pm-1", 0.38, 0.40)
	b := liquidMarket(markets.PlatformKalshi, "kx-1", 0.65, 0.67)
	pair := pairWithBooks(a, b)
	pair.Score.Validations.NoResolutionConflict = false

	strat := calculateCrossPlatformArbitrage(pair, cfg)
	require.NotNil(t, strat)

	risk := assessRisk(pair, strat, cfg)

	assert.True(t, hasFlag(risk.Flags, "RESOLUTION_CONFLICT"))
	assert.False(t, risk.IsSafe)
	assert.Equal(t, 75.0, risk.Market.ResolutionRisk)
}

func TestAssessRiskNearResolution(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	soon := time.Now().UTC().Add(12 * time.Hour)
	a := liquidMarket(markets.PlatformPolymarket, "pm-1", 0.38, 0.40)
	a.EndDate = &soon
	b := liquidMarket(markets.PlatformKalshi, "kx-1", 0.65, 0.67)

	pair := pairWithBooks(a, b)
	strat := calculateCrossPlatformArbitrage(pair, cfg)
	require.NotNil(t, strat)

	risk := assessRisk(pair, strat, cfg)

	assert.Equal(t, 80.0, risk.Execution.TimingRisk)
	assert.True(t, hasFlag(risk.Flags, "NEAR_RESOLUTION"))
}

func TestAssessRiskStalePriceIsCritical(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	a := liquidMarket(markets.PlatformPolymarket, "pm-1", 0.38, 0.40)
	// Reported price far from the executable mid.
	a.YesPrice = 0.60
	b := liquidMarket(markets.PlatformKalshi, "kx-1", 0.65, 0.67)

	pair := pairWithBooks(a, b)
	strat := calculateCrossPlatformArbitrage(pair, cfg)
	require.NotNil(t, strat)

	risk := assessRisk(pair, strat, cfg)

	assert.True(t, hasFlag(risk.Flags, "STALE_PRICE"))
	assert.False(t, risk.IsSafe)
}

func TestAssessRiskUnknownPlatformScoresHigher(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 25.0, reliabilityFor(markets.PlatformPolymarket))
	assert.Equal(t, 20.0, reliabilityFor(markets.PlatformKalshi))
	assert.Equal(t, 45.0, reliabilityFor(markets.Platform("predictit")))
}
