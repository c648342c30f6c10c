package arb

import "crossmatch/internal/markets"

// FeeTier grants a trading-fee discount above a 30-day volume threshold.
type FeeTier struct {
	MinVolumeUSD float64 `json:"min_volume_usd"`
	DiscountPct  float64 `json:"discount_pct"` // fraction of the trading fee waived
}

// FeeSchedule is the static fee table for one platform. There are no live
// fee lookups; the table reflects published schedules.
type FeeSchedule struct {
	Platform         markets.Platform `json:"platform"`
	TradingFeePct    float64          `json:"trading_fee_pct"`
	WithdrawalFeeUSD float64          `json:"withdrawal_fee_usd"`
	SettlementFeePct float64          `json:"settlement_fee_pct"`
	Tiers            []FeeTier        `json:"tiers,omitempty"`
}

var feeSchedules = map[markets.Platform]FeeSchedule{
	markets.PlatformPolymarket: {
		Platform:      markets.PlatformPolymarket,
		TradingFeePct: 0, // no maker/taker fee on binary markets
	},
	markets.PlatformKalshi: {
		Platform:      markets.PlatformKalshi,
		TradingFeePct: 0.01,
		Tiers: []FeeTier{
			{MinVolumeUSD: 10_000, DiscountPct: 0.25},
			{MinVolumeUSD: 100_000, DiscountPct: 0.50},
		},
	},
}

// defaultFeeSchedule is applied to platforms missing from the table;
// deliberately conservative.
var defaultFeeSchedule = FeeSchedule{
	TradingFeePct:    0.05,
	WithdrawalFeeUSD: 5,
	SettlementFeePct: 0.10,
}

// feeScheduleFor returns the fee table for a platform.
func feeScheduleFor(p markets.Platform) FeeSchedule {
	if fs, ok := feeSchedules[p]; ok {
		return fs
	}
	fs := defaultFeeSchedule
	fs.Platform = p
	return fs
}

// TradingFee returns the fee charged on a notional, applying the best volume
// discount tier the trailing volume qualifies for.
func (f FeeSchedule) TradingFee(notionalUSD, trailingVolumeUSD float64) float64 {
	fee := f.TradingFeePct * notionalUSD
	discount := 0.0
	for _, tier := range f.Tiers {
		if trailingVolumeUSD >= tier.MinVolumeUSD && tier.DiscountPct > discount {
			discount = tier.DiscountPct
		}
	}
	return fee * (1 - discount)
}

// SettlementFee returns the fee charged on the winning payout.
func (f FeeSchedule) SettlementFee(payoutUSD float64) float64 {
	return f.SettlementFeePct * payoutUSD
}
