package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"crossmatch/internal/metadata"
)

func TestCompareEntitiesNeutralWhenEmpty(t *testing.T) {
	t.Parallel()

	got := compareEntities(metadata.Entities{}, metadata.Entities{})
	assert.Equal(t, entityNeutralScore, got.Score)
	assert.Empty(t, got.Matching)
	assert.Empty(t, got.Conflicting)
}

func TestCompareEntitiesPeopleConflict(t *testing.T) {
	t.Parallel()

	a := metadata.Entities{People: []string{"Donald Trump"}}
	b := metadata.Entities{People: []string{"Gavin Newsom"}}
	got := compareEntities(a, b)

	assert.Empty(t, got.Matching)
	assert.Len(t, got.Conflicting, 1)
	assert.Zero(t, got.Score)
}

func TestCompareEntitiesFullOverlap(t *testing.T) {
	t.Parallel()

	a := metadata.Entities{
		People:        []string{"Donald Trump"},
		Organizations: []string{"Federal Reserve"},
	}
	b := metadata.Entities{
		People:        []string{"Donald Trump"},
		Organizations: []string{"Federal Reserve"},
	}
	got := compareEntities(a, b)

	assert.Equal(t, 1.0, got.Score)
	assert.Len(t, got.Matching, 2)
	assert.Empty(t, got.Conflicting)
}

func TestCompareEntitiesAmounts(t *testing.T) {
	t.Parallel()

	t.Run("within one percent matches", func(t *testing.T) {
		t.Parallel()
		a := metadata.Entities{Amounts: []metadata.AmountMention{{Value: 100000, Unit: "usd"}}}
		b := metadata.Entities{Amounts: []metadata.AmountMention{{Value: 100500, Unit: "usd"}}}
		got := compareEntities(a, b)
		assert.Len(t, got.Matching, 1)
		assert.Empty(t, got.Conflicting)
		assert.Equal(t, 1.0, got.Score)
	})

	t.Run("same unit different value conflicts", func(t *testing.T) {
		t.Parallel()
		a := metadata.Entities{Amounts: []metadata.AmountMention{{Value: 100000, Unit: "usd"}}}
		b := metadata.Entities{Amounts: []metadata.AmountMention{{Value: 150000, Unit: "usd"}}}
		got := compareEntities(a, b)
		assert.Empty(t, got.Matching)
		assert.Len(t, got.Conflicting, 1)
	})

	t.Run("different units do not conflict", func(t *testing.T) {
		t.Parallel()
		a := metadata.Entities{Amounts: []metadata.AmountMention{{Value: 5, Unit: "pct"}}}
		b := metadata.Entities{Amounts: []metadata.AmountMention{{Value: 100000, Unit: "usd"}}}
		got := compareEntities(a, b)
		assert.Empty(t, got.Matching)
		assert.Empty(t, got.Conflicting)
	})
}

func TestCompareEntitiesScoreNeverNegative(t *testing.T) {
	t.Parallel()

	a := metadata.Entities{
		People:  []string{"Donald Trump"},
		Amounts: []metadata.AmountMention{{Value: 1, Unit: "usd"}},
	}
	b := metadata.Entities{
		People:  []string{"Gavin Newsom"},
		Amounts: []metadata.AmountMention{{Value: 99, Unit: "usd"}},
	}
	got := compareEntities(a, b)
	assert.GreaterOrEqual(t, got.Score, 0.0)
	assert.NotEmpty(t, got.Conflicting)
}
