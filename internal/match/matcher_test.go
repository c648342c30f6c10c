package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crossmatch/internal/config"
	"crossmatch/internal/markets"
)

func pm(id, title string) markets.Market {
	return markets.Market{Platform: markets.PlatformPolymarket, MarketID: id, Title: title}
}

func kx(id, title string) markets.Market {
	return markets.Market{Platform: markets.PlatformKalshi, MarketID: id, Title: title}
}

func TestMarketsFindsEquivalentPair(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	listA := []markets.Market{
		pm("pm-btc", "Will Bitcoin exceed $100,000 by end of 2026?"),
		pm("pm-sb", "Will the Chiefs win the Super Bowl?"),
	}
	listB := []markets.Market{
		kx("kx-btc", "BTC above 100k EOY 2026"),
		kx("kx-trump", "Will Trump win the presidency in 2028?"),
	}

	pairs := Markets(listA, listB, cfg)

	require.Len(t, pairs, 1)
	assert.Equal(t, "pm-btc", pairs[0].MarketA.MarketID)
	assert.Equal(t, "kx-btc", pairs[0].MarketB.MarketID)
	assert.False(t, pairs[0].Outcomes.IsInverted)
	assert.NotEmpty(t, pairs[0].PairID)
}

func TestMarketsEmptyInputs(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	assert.Nil(t, Markets(nil, []markets.Market{kx("k", "x")}, cfg))
	assert.Nil(t, Markets([]markets.Market{pm("p", "x")}, nil, cfg))
}

func TestMarketsSkipsSamePlatform(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	listA := []markets.Market{pm("pm-1", "Will Bitcoin exceed $100,000 by end of 2026?")}
	listB := []markets.Market{pm("pm-2", "Will Bitcoin exceed $100,000 by end of 2026?")}

	assert.Empty(t, Markets(listA, listB, cfg))
}

func TestMarketsDeterministic(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	listA := []markets.Market{
		pm("pm-btc", "Will Bitcoin exceed $100,000 by end of 2026?"),
		pm("pm-eth", "Will Ethereum exceed $10,000 by end of 2026?"),
	}
	listB := []markets.Market{
		kx("kx-eth", "ETH above 10k EOY 2026"),
		kx("kx-btc", "BTC above 100k EOY 2026"),
	}

	first := Markets(listA, listB, cfg)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Markets(listA, listB, cfg))
	}
}

func TestMarketsSortedByScoreDescending(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	listA := []markets.Market{
		pm("pm-btc", "Will Bitcoin exceed $100,000 by end of 2026?"),
		pm("pm-btc2", "Bitcoin above $100,000 at end of 2026"),
	}
	listB := []markets.Market{
		kx("kx-btc", "Will Bitcoin exceed $100,000 by end of 2026?"),
	}

	pairs := Markets(listA, listB, cfg)
	for i := 1; i < len(pairs); i++ {
		assert.GreaterOrEqual(t, pairs[i-1].Score.OverallScore, pairs[i].Score.OverallScore)
	}
}

func TestBuildPairIDOrderIndependent(t *testing.T) {
	t.Parallel()

	a := pm("pm-1", "x")
	b := kx("kx-1", "y")
	assert.Equal(t, BuildPairID(a, b), BuildPairID(b, a))
	assert.NotEqual(t, BuildPairID(a, b), BuildPairID(a, kx("kx-2", "y")))
}
