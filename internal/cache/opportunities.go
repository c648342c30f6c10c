package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"crossmatch/internal/arb"
)

// OpportunityRecord captures the best published result for a pair. It is the
// unit of deduplication: a rescan republishes only when it beats this.
type OpportunityRecord struct {
	OpportunityID string    `json:"opportunity_id"`
	Direction     string    `json:"direction"`
	NetProfitUSD  float64   `json:"net_profit_usd"`
	NetProfitPct  float64   `json:"net_profit_pct"`
	PositionUSD   float64   `json:"position_usd"`
	Grade         string    `json:"grade"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RecordFromOpportunity projects an analyzed opportunity into its cached form.
func RecordFromOpportunity(op arb.Opportunity) OpportunityRecord {
	return OpportunityRecord{
		OpportunityID: op.ID,
		Direction:     string(op.Strategy.Direction),
		NetProfitUSD:  op.Strategy.NetProfitUSD,
		NetProfitPct:  op.Strategy.NetProfitPct,
		PositionUSD:   op.Strategy.PositionUSD,
		Grade:         op.Confidence.Grade,
		UpdatedAt:     op.CreatedAt,
	}
}

// Beats reports whether a fresh opportunity improves on the cached record
// enough to republish. Equal-profit rescans stay suppressed.
func (r OpportunityRecord) Beats(op arb.Opportunity) bool {
	return op.Strategy.NetProfitUSD > r.NetProfitUSD
}

// OpportunityCache stores the best opportunity per pair so repeated scans of
// an unchanged book do not republish the same finding.
type OpportunityCache interface {
	Get(ctx context.Context, pairID string) (*OpportunityRecord, bool, error)
	Set(ctx context.Context, pairID string, record OpportunityRecord) error
	Close() error
}

type redisOpportunityCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisOpportunityCache builds a cache keyed by the canonical pair ID.
func NewRedisOpportunityCache(addr, password string, db int, ttl time.Duration, prefix string) (OpportunityCache, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis addr is required")
	}
	if ttl <= 0 {
		ttl = 240 * time.Hour
	}
	if prefix == "" {
		prefix = "pair_best"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &redisOpportunityCache{client: client, ttl: ttl, prefix: prefix}, nil
}

func (c *redisOpportunityCache) key(pairID string) string {
	return fmt.Sprintf("%s:%s", c.prefix, pairID)
}

func (c *redisOpportunityCache) Get(ctx context.Context, pairID string) (*OpportunityRecord, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}
	raw, err := c.client.Get(ctx, c.key(pairID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var record OpportunityRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, false, err
	}
	return &record, true, nil
}

func (c *redisOpportunityCache) Set(ctx context.Context, pairID string, record OpportunityRecord) error {
	if c == nil || c.client == nil {
		return nil
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(pairID), payload, c.ttl).Err()
}

func (c *redisOpportunityCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
