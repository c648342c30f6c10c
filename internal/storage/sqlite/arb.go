package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"crossmatch/internal/arb"
)

const opportunitiesSchemaSQL = `
CREATE TABLE IF NOT EXISTS opportunities (
	opportunity_id TEXT PRIMARY KEY,
	pair_id TEXT NOT NULL,
	platform_a TEXT,
	market_a TEXT,
	title_a TEXT,
	platform_b TEXT,
	market_b TEXT,
	title_b TEXT,
	equivalence_score REAL,
	direction TEXT,
	position_usd REAL,
	total_cost_usd REAL,
	net_profit_usd REAL,
	net_profit_pct REAL,
	risk_score REAL,
	confidence_score REAL,
	grade TEXT,
	plan_json TEXT,
	raw_json TEXT,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS opportunities_pair_idx ON opportunities(pair_id);
`

// InsertOpportunity stores one analyzed opportunity for the audit trail.
func (s *Store) InsertOpportunity(ctx context.Context, op *arb.Opportunity) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlite store not initialized")
	}
	if op == nil {
		return fmt.Errorf("opportunity is nil")
	}

	planJSON, err := json.Marshal(op.Plan)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	rawJSON, err := json.Marshal(op)
	if err != nil {
		return fmt.Errorf("marshal opportunity: %w", err)
	}

	query := `
INSERT INTO opportunities (
	opportunity_id, pair_id,
	platform_a, market_a, title_a,
	platform_b, market_b, title_b,
	equivalence_score, direction, position_usd, total_cost_usd,
	net_profit_usd, net_profit_pct, risk_score, confidence_score, grade,
	plan_json, raw_json, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	_, err = s.db.ExecContext(
		ctx,
		query,
		op.ID,
		op.Pair.PairID,
		string(op.Pair.MarketA.Platform),
		op.Pair.MarketA.MarketID,
		op.Pair.MarketA.Title,
		string(op.Pair.MarketB.Platform),
		op.Pair.MarketB.MarketID,
		op.Pair.MarketB.Title,
		op.Pair.Score.OverallScore,
		string(op.Strategy.Direction),
		op.Strategy.PositionUSD,
		op.Strategy.NetCostUSD,
		op.Strategy.NetProfitUSD,
		op.Strategy.NetProfitPct,
		op.Risk.OverallScore,
		op.Confidence.Score,
		op.Confidence.Grade,
		string(planJSON),
		string(rawJSON),
		op.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}
