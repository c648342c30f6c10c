package arb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Grade boundaries are closed: exactly 90 is still an A.
func TestGradeForClosedBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score float64
		want  string
	}{
		{100, "A"},
		{90, "A"},
		{89, "B"},
		{75, "B"},
		{74.9, "C"},
		{60, "C"},
		{59.9, "D"},
		{40, "D"},
		{39.9, "F"},
		{0, "F"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, gradeFor(tc.score), "score %.1f", tc.score)
	}
}

func TestScoreConfidence(t *testing.T) {
	t.Parallel()

	strat := &SpreadStrategy{
		Legs: [2]Leg{
			{Quote: Quote{Bid: 0.39, Ask: 0.40}},
			{Quote: Quote{Bid: 0.65, Ask: 0.66}},
		},
		NetProfitPct: 12,
	}

	got := scoreConfidence(0.9, strat, 20)

	assert.InDelta(t, 90.0, got.MatchConfidence, 1e-9)
	assert.Equal(t, 90.0, got.PriceConfidence) // 1c spreads
	assert.Equal(t, 80.0, got.ExecutionConfidence)
	assert.Equal(t, 90.0, got.ProfitConfidence) // >= 10% net
	// 0.35*90 + 0.25*90 + 0.25*80 + 0.15*90 = 87.5
	assert.InDelta(t, 87.5, got.Score, 1e-9)
	assert.Equal(t, "B", got.Grade)
	assert.NotEmpty(t, got.Recommendation)
}

func TestScoreConfidenceThinMargins(t *testing.T) {
	t.Parallel()

	strat := &SpreadStrategy{
		Legs: [2]Leg{
			{Quote: Quote{Bid: 0.20, Ask: 0.40}},
			{Quote: Quote{Bid: 0.40, Ask: 0.60}},
		},
		NetProfitPct: 0.5,
	}

	got := scoreConfidence(0.3, strat, 80)

	assert.Equal(t, 30.0, got.PriceConfidence)
	assert.Equal(t, 25.0, got.ProfitConfidence)
	assert.Equal(t, "F", got.Grade)
}
