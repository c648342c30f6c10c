package arb

import (
	"time"

	"crossmatch/internal/markets"
	"crossmatch/internal/match"
)

// Side is the outcome bought on one leg.
type Side string

const (
	SideYes Side = "YES"
	SideNo  Side = "NO"
)

// Direction tags the two spread strategies by the outcome taken on market A.
// The concrete sides per leg live on the legs themselves, since an inverted
// outcome mapping changes which side of B hedges A.
type Direction string

const (
	DirectionYesA Direction = "YES_A_HEDGE_B"
	DirectionNoA  Direction = "NO_A_HEDGE_B"
)

// Leg is one side of a spread position.
type Leg struct {
	Platform          markets.Platform `json:"platform"`
	MarketID          string           `json:"market_id"`
	Side              Side             `json:"side"`
	TargetPrice       float64          `json:"target_price"` // per-unit price paid for this leg
	Quote             Quote            `json:"quote"`        // executable YES quote snapshot at analysis time
	Fees              FeeSchedule      `json:"fees"`
	EstimatedSlippage float64          `json:"estimated_slippage"` // fraction of leg notional
}

// CostBreakdown itemizes where the edge goes. SpreadCost is already embedded
// in the executable prices and is reported for transparency, not deducted a
// second time.
type CostBreakdown struct {
	TradingFeesUSD    float64 `json:"trading_fees_usd"`
	SlippageUSD       float64 `json:"slippage_usd"`
	SpreadCostUSD     float64 `json:"spread_cost_usd"`
	SettlementFeesUSD float64 `json:"settlement_fees_usd"`
}

// SpreadStrategy is one directional cross-platform spread with its unit and
// position-sized economics. The guaranteed payout per unit pair is exactly 1,
// so profit exists when UnitCost < 1.
type SpreadStrategy struct {
	Direction Direction `json:"direction"`
	Legs      [2]Leg    `json:"legs"`

	UnitCost   float64 `json:"unit_cost"`   // combined per-unit cost, pre-fee
	UnitProfit float64 `json:"unit_profit"` // 1 - UnitCost

	PositionUSD    float64       `json:"position_usd"`
	Units          float64       `json:"units"`
	GrossCostUSD   float64       `json:"gross_cost_usd"`
	NetCostUSD     float64       `json:"net_cost_usd"`
	GrossProfitUSD float64       `json:"gross_profit_usd"`
	NetProfitUSD   float64       `json:"net_profit_usd"`
	GrossProfitPct float64       `json:"gross_profit_pct"`
	NetProfitPct   float64       `json:"net_profit_pct"`
	Breakdown      CostBreakdown `json:"breakdown"`
}

// Flag severities. Critical flags veto execution; warnings accumulate.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// RiskFlag is one categorized risk finding.
type RiskFlag struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Detail   string `json:"detail"`
}

// ExecutionRisk scores how likely the position is to fill as planned.
type ExecutionRisk struct {
	Score         float64 `json:"score"`
	LiquidityRisk float64 `json:"liquidity_risk"`
	SlippageRisk  float64 `json:"slippage_risk"`
	TimingRisk    float64 `json:"timing_risk"`
}

// MarketRisk scores whether the two markets may diverge at resolution.
type MarketRisk struct {
	Score           float64 `json:"score"`
	ResolutionRisk  float64 `json:"resolution_risk"`
	CorrelationRisk float64 `json:"correlation_risk"`
	VolatilityRisk  float64 `json:"volatility_risk"`
}

// OperationalRisk scores platform and regulatory exposure.
type OperationalRisk struct {
	Score          float64 `json:"score"`
	PlatformARisk  float64 `json:"platform_a_risk"`
	PlatformBRisk  float64 `json:"platform_b_risk"`
	RegulatoryRisk float64 `json:"regulatory_risk"`
}

// RiskAssessment is the combined 0-100 risk picture for one opportunity.
type RiskAssessment struct {
	OverallScore float64         `json:"overall_score"`
	Execution    ExecutionRisk   `json:"execution"`
	Market       MarketRisk      `json:"market"`
	Operational  OperationalRisk `json:"operational"`
	Flags        []RiskFlag      `json:"flags,omitempty"`
	IsSafe       bool            `json:"is_safe"`
}

// ExecutionStep is one ordered order-placement instruction.
type ExecutionStep struct {
	Order       int              `json:"order"`
	Platform    markets.Platform `json:"platform"`
	MarketID    string           `json:"market_id"`
	Side        Side             `json:"side"`
	LimitPrice  float64          `json:"limit_price"`
	NotionalUSD float64          `json:"notional_usd"`
	Note        string           `json:"note,omitempty"`
}

// ExecutionPlan is the sizing and ordering recommendation for a strategy.
type ExecutionPlan struct {
	Steps              []ExecutionStep `json:"steps"`
	RecommendedSizeUSD float64         `json:"recommended_size_usd"`
	MaxExecutableUSD   float64         `json:"max_executable_usd"`
	AbortConditions    []string        `json:"abort_conditions"`
	Fallback           string          `json:"fallback"`
}

// Confidence grades the opportunity A-F from match quality, price quality,
// execution risk, and profit margin.
type Confidence struct {
	Score               float64 `json:"score"`
	Grade               string  `json:"grade"`
	Recommendation      string  `json:"recommendation"`
	MatchConfidence     float64 `json:"match_confidence"`
	PriceConfidence     float64 `json:"price_confidence"`
	ExecutionConfidence float64 `json:"execution_confidence"`
	ProfitConfidence    float64 `json:"profit_confidence"`
}

// Opportunity is the fully analyzed, validated arbitrage record handed to
// presentation and notification collaborators. It is self-describing: no
// further lookups are needed to render a report.
type Opportunity struct {
	ID         string              `json:"id"`
	CreatedAt  time.Time           `json:"created_at"`
	Pair       match.ValidatedPair `json:"pair"`
	Strategy   SpreadStrategy      `json:"strategy"`
	Risk       RiskAssessment      `json:"risk"`
	Plan       ExecutionPlan       `json:"plan"`
	Confidence Confidence          `json:"confidence"`
}
