package workers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crossmatch/internal/markets"
)

func snap(platform markets.Platform, id string, price float64, at time.Time) markets.Snapshot {
	return markets.Snapshot{
		Platform:   platform,
		Market:     markets.Market{Platform: platform, MarketID: id, YesPrice: price},
		CapturedAt: at,
	}
}

func TestBookKeepsLatestSnapshot(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	book := NewBook(0)

	book.Put(snap(markets.PlatformPolymarket, "m1", 0.40, now.Add(-time.Minute)))
	book.Put(snap(markets.PlatformPolymarket, "m1", 0.45, now))

	got := book.MarketsFor(markets.PlatformPolymarket, now)
	require.Len(t, got, 1)
	assert.Equal(t, 0.45, got[0].YesPrice)
}

func TestBookIgnoresOlderSnapshot(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	book := NewBook(0)

	book.Put(snap(markets.PlatformPolymarket, "m1", 0.45, now))
	book.Put(snap(markets.PlatformPolymarket, "m1", 0.40, now.Add(-time.Minute)))

	got := book.MarketsFor(markets.PlatformPolymarket, now)
	require.Len(t, got, 1)
	assert.Equal(t, 0.45, got[0].YesPrice)
}

func TestBookExpiresStaleSnapshots(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	book := NewBook(10 * time.Minute)

	book.Put(snap(markets.PlatformPolymarket, "fresh", 0.50, now.Add(-time.Minute)))
	book.Put(snap(markets.PlatformPolymarket, "stale", 0.50, now.Add(-time.Hour)))

	got := book.MarketsFor(markets.PlatformPolymarket, now)
	require.Len(t, got, 1)
	assert.Equal(t, "fresh", got[0].MarketID)
	assert.Equal(t, 2, book.Size())
}

func TestBookSeparatesPlatforms(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	book := NewBook(0)

	book.Put(snap(markets.PlatformPolymarket, "m1", 0.50, now))
	book.Put(snap(markets.PlatformKalshi, "m1", 0.60, now))

	assert.Len(t, book.MarketsFor(markets.PlatformPolymarket, now), 1)
	assert.Len(t, book.MarketsFor(markets.PlatformKalshi, now), 1)
	assert.Equal(t, 2, book.Size())
}

func TestBookMarketsSortedByID(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	book := NewBook(0)

	for _, id := range []string{"c", "a", "b"} {
		book.Put(snap(markets.PlatformKalshi, id, 0.50, now))
	}

	got := book.MarketsFor(markets.PlatformKalshi, now)
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].MarketID)
	assert.Equal(t, "b", got[1].MarketID)
	assert.Equal(t, "c", got[2].MarketID)
}
