package workers

import (
	"sort"
	"sync"
	"time"

	"crossmatch/internal/markets"
)

// Book holds the latest snapshot per (platform, market id). The consumer
// pool writes into it concurrently; the scan loop reads stable slices out of
// it on each tick.
type Book struct {
	mu     sync.RWMutex
	latest map[markets.Platform]map[string]markets.Snapshot
	maxAge time.Duration
}

// NewBook creates a snapshot book. Snapshots older than maxAge are treated
// as gone; maxAge <= 0 disables expiry.
func NewBook(maxAge time.Duration) *Book {
	return &Book{
		latest: make(map[markets.Platform]map[string]markets.Snapshot),
		maxAge: maxAge,
	}
}

// Put records a snapshot, replacing any older one for the same market.
func (b *Book) Put(snap markets.Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	byID, ok := b.latest[snap.Platform]
	if !ok {
		byID = make(map[string]markets.Snapshot)
		b.latest[snap.Platform] = byID
	}
	if prev, ok := byID[snap.Market.MarketID]; ok && prev.CapturedAt.After(snap.CapturedAt) {
		return
	}
	byID[snap.Market.MarketID] = snap
}

// MarketsFor returns the fresh markets of one platform, sorted by market id
// so repeated scans over the same state are deterministic.
func (b *Book) MarketsFor(platform markets.Platform, now time.Time) []markets.Market {
	b.mu.RLock()
	defer b.mu.RUnlock()

	byID := b.latest[platform]
	out := make([]markets.Market, 0, len(byID))
	for _, snap := range byID {
		if b.maxAge > 0 && now.Sub(snap.CapturedAt) > b.maxAge {
			continue
		}
		out = append(out, snap.Market)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MarketID < out[j].MarketID })
	return out
}

// Size returns the number of tracked markets across all platforms.
func (b *Book) Size() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 0
	for _, byID := range b.latest {
		n += len(byID)
	}
	return n
}
