package arb

import "crossmatch/internal/markets"

// Quote is an executable bid/ask for the YES outcome.
type Quote struct {
	Bid float64 `json:"bid"`
	Ask float64 `json:"ask"`
}

// Mid returns the quote midpoint.
func (q Quote) Mid() float64 {
	return (q.Bid + q.Ask) / 2
}

// Spread returns the absolute top-of-book spread.
func (q Quote) Spread() float64 {
	return q.Ask - q.Bid
}

// syntheticHalfSpread widens the reported mid price into a bid/ask when no
// orderbook is available: 1% each side, 2% total.
const syntheticHalfSpread = 0.01

// executablePrice estimates what the market will actually fill at. With an
// orderbook the top of book is taken directly; otherwise a spread is
// synthesized around the reported price.
func executablePrice(m markets.Market) Quote {
	if m.Orderbook != nil {
		return Quote{Bid: m.Orderbook.YesBid, Ask: m.Orderbook.YesAsk}
	}
	p := m.YesPrice
	return Quote{
		Bid: clamp01(p * (1 - syntheticHalfSpread)),
		Ask: clamp01(p * (1 + syntheticHalfSpread)),
	}
}

// DepthCurve estimates how much size the market absorbs at increasing price
// concessions. Without full book depth this is a volume/liquidity heuristic,
// not an orderbook walk.
type DepthCurve struct {
	VolumeAt1Pct float64 `json:"volume_at_1pct"`
	VolumeAt2Pct float64 `json:"volume_at_2pct"`
	VolumeAt5Pct float64 `json:"volume_at_5pct"`

	PriceImpact100   float64 `json:"price_impact_100"`
	PriceImpact1000  float64 `json:"price_impact_1000"`
	PriceImpact10000 float64 `json:"price_impact_10000"`
}

func depthCurve(m markets.Market) DepthCurve {
	liq := effectiveLiquidity(m)
	return DepthCurve{
		VolumeAt1Pct:     liq * 0.10,
		VolumeAt2Pct:     liq * 0.25,
		VolumeAt5Pct:     liq * 0.50,
		PriceImpact100:   priceImpact(100, liq),
		PriceImpact1000:  priceImpact(1000, liq),
		PriceImpact10000: priceImpact(10000, liq),
	}
}

// effectiveLiquidity falls back to a tenth of the traded volume when the
// venue does not report liquidity.
func effectiveLiquidity(m markets.Market) float64 {
	if m.Liquidity > 0 {
		return m.Liquidity
	}
	return m.Volume * 0.1
}

// priceImpact estimates the relative price move caused by taking sizeUSD out
// of the book, capped at 10%.
func priceImpact(sizeUSD, liquidityUSD float64) float64 {
	if liquidityUSD <= 0 {
		return 0.10
	}
	impact := sizeUSD / (liquidityUSD * 10)
	if impact > 0.10 {
		impact = 0.10
	}
	return impact
}

// estimateSlippage maps an intended notional onto the depth curve's discrete
// impact bands.
func estimateSlippage(m markets.Market, notionalUSD float64) float64 {
	curve := depthCurve(m)
	switch {
	case notionalUSD <= 100:
		return curve.PriceImpact100
	case notionalUSD <= 1000:
		return curve.PriceImpact1000
	default:
		return curve.PriceImpact10000
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
