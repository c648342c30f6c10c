package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"crossmatch/internal/config"
	"crossmatch/internal/metadata"
)

func TestPassesHardFilters(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	date := func(y int, m time.Month, d int) *time.Time {
		t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &t
	}
	base := func() (metadata.Metadata, metadata.Metadata) {
		a := metadata.Metadata{Category: metadata.CategoryCrypto, OutcomeType: metadata.OutcomeBinary}
		b := metadata.Metadata{Category: metadata.CategoryCrypto, OutcomeType: metadata.OutcomeBinary}
		return a, b
	}

	t.Run("clean pair passes", func(t *testing.T) {
		t.Parallel()
		a, b := base()
		ok, reason := passesHardFilters(&a, &b, cfg)
		assert.True(t, ok)
		assert.Empty(t, reason)
	})

	t.Run("sports never crosses categories", func(t *testing.T) {
		t.Parallel()
		a, b := base()
		a.Category = metadata.CategorySports
		for _, cat := range []metadata.Category{
			metadata.CategoryPolitics, metadata.CategoryEconomics, metadata.CategoryCrypto,
			metadata.CategoryTech, metadata.CategoryEntertainment, metadata.CategoryScience,
			metadata.CategoryOther,
		} {
			b.Category = cat
			ok, _ := passesHardFilters(&a, &b, cfg)
			assert.False(t, ok, "sports vs %s", cat)
		}
	})

	t.Run("adjacent categories pass", func(t *testing.T) {
		t.Parallel()
		a, b := base()
		a.Category = metadata.CategoryPolitics
		b.Category = metadata.CategoryEconomics
		ok, _ := passesHardFilters(&a, &b, cfg)
		assert.True(t, ok)
	})

	t.Run("other only pairs with other", func(t *testing.T) {
		t.Parallel()
		a, b := base()
		a.Category = metadata.CategoryOther
		ok, _ := passesHardFilters(&a, &b, cfg)
		assert.False(t, ok)

		b.Category = metadata.CategoryOther
		ok, _ = passesHardFilters(&a, &b, cfg)
		assert.True(t, ok)
	})

	t.Run("outcome type mismatch rejects", func(t *testing.T) {
		t.Parallel()
		a, b := base()
		b.OutcomeType = metadata.OutcomeScalar
		ok, reason := passesHardFilters(&a, &b, cfg)
		assert.False(t, ok)
		assert.Contains(t, reason, "outcome type")
	})

	t.Run("dates beyond window reject", func(t *testing.T) {
		t.Parallel()
		a, b := base()
		a.EventDate = date(2026, time.January, 1)
		b.EventDate = date(2026, time.March, 1)
		ok, reason := passesHardFilters(&a, &b, cfg)
		assert.False(t, ok)
		assert.Contains(t, reason, "days apart")
	})

	t.Run("dates within window pass", func(t *testing.T) {
		t.Parallel()
		a, b := base()
		a.EventDate = date(2026, time.January, 1)
		b.EventDate = date(2026, time.January, 20)
		ok, _ := passesHardFilters(&a, &b, cfg)
		assert.True(t, ok)
	})

	t.Run("one sided date passes", func(t *testing.T) {
		t.Parallel()
		a, b := base()
		a.EventDate = date(2026, time.January, 1)
		ok, _ := passesHardFilters(&a, &b, cfg)
		assert.True(t, ok)
	})

	t.Run("subcategory mismatch rejects only when both set", func(t *testing.T) {
		t.Parallel()
		a, b := base()
		a.Subcategory = "bitcoin"
		b.Subcategory = "ethereum"
		ok, _ := passesHardFilters(&a, &b, cfg)
		assert.False(t, ok)

		b.Subcategory = ""
		ok, _ = passesHardFilters(&a, &b, cfg)
		assert.True(t, ok)
	})
}
