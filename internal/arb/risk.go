package arb

import (
	"fmt"
	"math"
	"time"

	"crossmatch/internal/config"
	"crossmatch/internal/markets"
	"crossmatch/internal/match"
)

// Risk sub-scores are discrete bands rather than continuous curves: the
// inputs are heuristics, and banding keeps the output stable under small
// input noise. Each sub-assessment averages three factors.

// platformReliability is a static table; there are no live health checks.
var platformReliability = map[markets.Platform]float64{
	markets.PlatformPolymarket: 25,
	markets.PlatformKalshi:     20,
}

const (
	unknownPlatformReliability = 45
	flatRegulatoryRisk         = 30
	flatVolatilityRisk         = 40
)

// assessRisk combines execution, market, and operational risk for one
// strategy into a 0-100 score plus categorized flags.
func assessRisk(pair match.ValidatedPair, strat *SpreadStrategy, cfg config.Config) RiskAssessment {
	var flags []RiskFlag

	// Execution: liquidity, slippage, timing.
	minLiquidity := math.Min(effectiveLiquidity(pair.MarketA), effectiveLiquidity(pair.MarketB))
	var liquidityRisk float64
	switch {
	case minLiquidity < cfg.MinLiquidityUSD:
		liquidityRisk = 80
		flags = append(flags, RiskFlag{
			Severity: SeverityWarning,
			Code:     "LOW_LIQUIDITY",
			Detail:   fmt.Sprintf("minimum liquidity $%.0f below floor $%.0f", minLiquidity, cfg.MinLiquidityUSD),
		})
	case minLiquidity < 5*cfg.MinLiquidityUSD:
		liquidityRisk = 50
	default:
		liquidityRisk = 20
	}

	slipFrac := math.Max(strat.Legs[0].EstimatedSlippage, strat.Legs[1].EstimatedSlippage)
	var slippageRisk float64
	switch {
	case slipFrac >= 0.02:
		slippageRisk = 80
		flags = append(flags, RiskFlag{
			Severity: SeverityWarning,
			Code:     "HIGH_SLIPPAGE",
			Detail:   fmt.Sprintf("estimated slippage %.1f%% of notional", slipFrac*100),
		})
	case slipFrac >= 0.01:
		slippageRisk = 50
	default:
		slippageRisk = 20
	}

	timingRisk := assessTiming(pair, &flags)

	execution := ExecutionRisk{
		LiquidityRisk: liquidityRisk,
		SlippageRisk:  slippageRisk,
		TimingRisk:    timingRisk,
	}
	execution.Score = (liquidityRisk + slippageRisk + timingRisk) / 3

	// Market: resolution conflict, entity-derived correlation, volatility.
	resolutionRisk := 25.0
	if !pair.Score.Validations.NoResolutionConflict {
		resolutionRisk = 75
		flags = append(flags, RiskFlag{
			Severity: SeverityCritical,
			Code:     "RESOLUTION_CONFLICT",
			Detail:   "conflicting entities suggest different resolution criteria",
		})
	}

	var correlationRisk float64
	switch {
	case pair.Score.EntityOverlap < 0.3:
		correlationRisk = 70
	case pair.Score.EntityOverlap < 0.6:
		correlationRisk = 45
	default:
		correlationRisk = 20
	}

	market := MarketRisk{
		ResolutionRisk:  resolutionRisk,
		CorrelationRisk: correlationRisk,
		VolatilityRisk:  flatVolatilityRisk,
	}
	market.Score = (resolutionRisk + correlationRisk + flatVolatilityRisk) / 3

	// Operational: per-platform reliability plus a flat regulatory factor.
	operational := OperationalRisk{
		PlatformARisk:  reliabilityFor(pair.MarketA.Platform),
		PlatformBRisk:  reliabilityFor(pair.MarketB.Platform),
		RegulatoryRisk: flatRegulatoryRisk,
	}
	operational.Score = (operational.PlatformARisk + operational.PlatformBRisk + operational.RegulatoryRisk) / 3

	// Stale-price guard: an executable price far from the reported price
	// means the snapshot is not trustworthy.
	for _, m := range []markets.Market{pair.MarketA, pair.MarketB} {
		q := executablePrice(m)
		if dev := math.Abs(q.Mid() - m.YesPrice); dev > cfg.MaxPriceDeviation {
			flags = append(flags, RiskFlag{
				Severity: SeverityCritical,
				Code:     "STALE_PRICE",
				Detail:   fmt.Sprintf("%s executable mid deviates %.3f from reported price", m.Platform, dev),
			})
		}
	}

	overall := 0.5*execution.Score + 0.3*market.Score + 0.2*operational.Score

	assessment := RiskAssessment{
		OverallScore: overall,
		Execution:    execution,
		Market:       market,
		Operational:  operational,
		Flags:        flags,
	}
	assessment.IsSafe = countSeverity(flags, SeverityCritical) == 0 &&
		countSeverity(flags, SeverityWarning) <= 2 &&
		overall <= cfg.MaxRiskScore &&
		execution.Score <= cfg.MaxExecutionRisk
	return assessment
}

func assessTiming(pair match.ValidatedPair, flags *[]RiskFlag) float64 {
	end := earliestEndDate(pair.MarketA, pair.MarketB)
	if end == nil {
		return 50
	}
	until := time.Until(*end)
	switch {
	case until <= 48*time.Hour:
		*flags = append(*flags, RiskFlag{
			Severity: SeverityWarning,
			Code:     "NEAR_RESOLUTION",
			Detail:   "market resolves within 48 hours",
		})
		return 80
	case until <= 7*24*time.Hour:
		return 50
	default:
		return 20
	}
}

func earliestEndDate(a, b markets.Market) *time.Time {
	switch {
	case a.EndDate == nil:
		return b.EndDate
	case b.EndDate == nil:
		return a.EndDate
	case a.EndDate.Before(*b.EndDate):
		return a.EndDate
	default:
		return b.EndDate
	}
}

func reliabilityFor(p markets.Platform) float64 {
	if r, ok := platformReliability[p]; ok {
		return r
	}
	return unknownPlatformReliability
}

func countSeverity(flags []RiskFlag, severity string) int {
	n := 0
	for _, f := range flags {
		if f.Severity == severity {
			n++
		}
	}
	return n
}
