package hashutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, HashStrings("a", "b"), HashStrings("a", "b"))
	assert.NotEqual(t, HashStrings("a", "b"), HashStrings("b", "a"))
	// The separator keeps ("ab","") distinct from ("a","b").
	assert.NotEqual(t, HashStrings("ab", ""), HashStrings("a", "b"))
	assert.Len(t, HashStrings("x"), 64)
}

func TestPairKeyOrderIndependent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, PairKey("polymarket:1", "kalshi:2"), PairKey("kalshi:2", "polymarket:1"))
	assert.NotEqual(t, PairKey("polymarket:1", "kalshi:2"), PairKey("polymarket:1", "kalshi:3"))
}
