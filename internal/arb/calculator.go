package arb

import (
	"crossmatch/internal/config"
	"crossmatch/internal/markets"
	"crossmatch/internal/match"
)

const epsilon = 1e-9

// calculateCrossPlatformArbitrage evaluates both directional spread
// strategies for a validated pair and returns the one with the higher net
// profit, or nil when neither direction clears zero after fees and slippage.
//
// Core identity for binary markets: buying YES at p on one venue and NO at
// (1-q) on the other costs p + (1-q) while the guaranteed payout is exactly 1
// per unit pair. When the outcome mapping is inverted, YES on A is hedged by
// YES on B, so B's leg prices come from the opposite side of its book.
func calculateCrossPlatformArbitrage(pair match.ValidatedPair, cfg config.Config) *SpreadStrategy {
	qa := executablePrice(pair.MarketA)
	qb := executablePrice(pair.MarketB)

	var yesA, noA legPrice
	yesA = legPrice{price: qa.Ask, side: SideYes}
	noA = legPrice{price: 1 - qa.Bid, side: SideNo}

	var hedgeOfYesA, hedgeOfNoA legPrice
	if pair.Outcomes.IsInverted {
		hedgeOfYesA = legPrice{price: qb.Ask, side: SideYes}
		hedgeOfNoA = legPrice{price: 1 - qb.Bid, side: SideNo}
	} else {
		hedgeOfYesA = legPrice{price: 1 - qb.Bid, side: SideNo}
		hedgeOfNoA = legPrice{price: qb.Ask, side: SideYes}
	}

	s1 := buildStrategy(DirectionYesA, pair, yesA, hedgeOfYesA, qa, qb, cfg)
	s2 := buildStrategy(DirectionNoA, pair, noA, hedgeOfNoA, qa, qb, cfg)

	best := s1
	if best == nil || (s2 != nil && s2.NetProfitUSD > best.NetProfitUSD) {
		best = s2
	}
	if best == nil || best.NetProfitUSD <= epsilon {
		return nil
	}
	return best
}

type legPrice struct {
	price float64
	side  Side
}

func buildStrategy(dir Direction, pair match.ValidatedPair, legA, legB legPrice, qa, qb Quote, cfg config.Config) *SpreadStrategy {
	if legA.price <= epsilon || legB.price <= epsilon {
		return nil
	}

	unitCost := legA.price + legB.price
	positionUSD := cfg.DefaultPositionUSD
	units := positionUSD / unitCost

	notionalA := units * legA.price
	notionalB := units * legB.price

	feesA := feeScheduleFor(pair.MarketA.Platform)
	feesB := feeScheduleFor(pair.MarketB.Platform)

	slipFracA := estimateSlippage(pair.MarketA, notionalA)
	slipFracB := estimateSlippage(pair.MarketB, notionalB)

	tradingFees := feesA.TradingFee(notionalA, pair.MarketA.Volume) +
		feesB.TradingFee(notionalB, pair.MarketB.Volume)
	slippage := slipFracA*notionalA + slipFracB*notionalB

	// Exactly one leg pays out; assume the worse settlement schedule wins.
	payoutUSD := units
	settlement := feesA.SettlementFee(payoutUSD)
	if s := feesB.SettlementFee(payoutUSD); s > settlement {
		settlement = s
	}

	spreadCost := (qa.Spread()/2 + qb.Spread()/2) * units

	grossCost := positionUSD
	grossProfit := payoutUSD - grossCost
	netCost := grossCost + tradingFees + slippage
	netProfit := grossProfit - tradingFees - slippage - settlement

	s := &SpreadStrategy{
		Direction: dir,
		Legs: [2]Leg{
			{
				Platform:          pair.MarketA.Platform,
				MarketID:          pair.MarketA.MarketID,
				Side:              legA.side,
				TargetPrice:       legA.price,
				Quote:             qa,
				Fees:              feesA,
				EstimatedSlippage: slipFracA,
			},
			{
				Platform:          pair.MarketB.Platform,
				MarketID:          pair.MarketB.MarketID,
				Side:              legB.side,
				TargetPrice:       legB.price,
				Quote:             qb,
				Fees:              feesB,
				EstimatedSlippage: slipFracB,
			},
		},
		UnitCost:       unitCost,
		UnitProfit:     1 - unitCost,
		PositionUSD:    positionUSD,
		Units:          units,
		GrossCostUSD:   grossCost,
		NetCostUSD:     netCost,
		GrossProfitUSD: grossProfit,
		NetProfitUSD:   netProfit,
		Breakdown: CostBreakdown{
			TradingFeesUSD:    tradingFees,
			SlippageUSD:       slippage,
			SpreadCostUSD:     spreadCost,
			SettlementFeesUSD: settlement,
		},
	}
	if grossCost > 0 {
		s.GrossProfitPct = grossProfit / grossCost * 100
	}
	if netCost > 0 {
		s.NetProfitPct = netProfit / netCost * 100
	}
	return s
}

// untradable flags pairs whose quotes cannot realistically be executed:
// empty or crossed books, absurd spreads, or penny "dust" quotes. A platform
// fails only when both its YES and NO sides are bad.
func untradable(a, b markets.Market) (string, bool) {
	const (
		maxSpread = 0.05
		dustBid   = 0.01
		dustAsk   = 0.03
		lowAsk    = 0.05
		lowSpread = 0.02
	)

	sideBad := func(bid, ask float64) bool {
		if ask <= epsilon || bid < 0 || ask < 0 {
			return true
		}
		if bid <= epsilon {
			return true
		}
		spread := ask - bid
		if spread < 0 {
			// Crossed or locked quotes mean the data is suspect.
			return true
		}
		if spread > maxSpread {
			return true
		}
		if bid <= dustBid && ask >= dustAsk {
			return true
		}
		if ask <= lowAsk && spread >= lowSpread {
			return true
		}
		return false
	}

	marketBad := func(m markets.Market) bool {
		q := executablePrice(m)
		yesBad := sideBad(q.Bid, q.Ask)
		noBad := sideBad(1-q.Ask, 1-q.Bid)
		return yesBad && noBad
	}

	if marketBad(a) {
		return string(a.Platform) + " quotes effectively untradable", true
	}
	if marketBad(b) {
		return string(b.Platform) + " quotes effectively untradable", true
	}
	return "", false
}
