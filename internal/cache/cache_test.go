package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiowebux/stockterm/internal/market"
)

func art(fp market.Fingerprint) *market.Artifact {
	return &market.Artifact{Fingerprint: fp, FetchedAt: time.Now()}
}

func TestGetMissing(t *testing.T) {
	c := New(4)
	got, ok := c.Get("AAPL|1d|1m|line|percent|12h|")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestPutThenGet(t *testing.T) {
	c := New(4)
	fp := market.NewSelection("AAPL").Fingerprint()
	a := art(fp)
	c.Put(fp, a)

	got, ok := c.Get(fp)
	require.True(t, ok)
	assert.Same(t, a, got)
	assert.Equal(t, 1, c.Len())
}

func TestPutReplacesSameFingerprint(t *testing.T) {
	c := New(4)
	fp := market.Fingerprint("TSLA|1d|1m|line|percent|12h|")
	first := art(fp)
	second := art(fp)
	c.Put(fp, first)
	c.Put(fp, second)

	got, ok := c.Get(fp)
	require.True(t, ok)
	assert.Same(t, second, got, "later put must win")
	assert.Equal(t, 1, c.Len(), "one entry per fingerprint")
}

func TestEvictionBound(t *testing.T) {
	c := New(3)
	for i := 0; i < 10; i++ {
		fp := market.Fingerprint(fmt.Sprintf("SYM%d|1d|1m|line|percent|12h|", i))
		c.Put(fp, art(fp))
		assert.LessOrEqual(t, c.Len(), 3)
	}
	assert.Equal(t, 3, c.Len())

	// Only the three most recent survive.
	for i := 0; i < 7; i++ {
		_, ok := c.Get(market.Fingerprint(fmt.Sprintf("SYM%d|1d|1m|line|percent|12h|", i)))
		assert.False(t, ok, "SYM%d should have been evicted", i)
	}
	for i := 7; i < 10; i++ {
		_, ok := c.Get(market.Fingerprint(fmt.Sprintf("SYM%d|1d|1m|line|percent|12h|", i)))
		assert.True(t, ok, "SYM%d should still be cached", i)
	}
}

func TestGetRefreshesRecency(t *testing.T) {
	c := New(2)
	fpA := market.Fingerprint("A|1d|1m|line|percent|12h|")
	fpB := market.Fingerprint("B|1d|1m|line|percent|12h|")
	fpC := market.Fingerprint("C|1d|1m|line|percent|12h|")
	c.Put(fpA, art(fpA))
	c.Put(fpB, art(fpB))

	// Touch A so B becomes the LRU entry.
	_, ok := c.Get(fpA)
	require.True(t, ok)

	c.Put(fpC, art(fpC))
	_, ok = c.Get(fpB)
	assert.False(t, ok, "B was least recently used and should be evicted")
	_, ok = c.Get(fpA)
	assert.True(t, ok)
	_, ok = c.Get(fpC)
	assert.True(t, ok)
}

func TestDefaultCapacity(t *testing.T) {
	c := New(0)
	for i := 0; i < DefaultCapacity+10; i++ {
		fp := market.Fingerprint(fmt.Sprintf("S%d|", i))
		c.Put(fp, art(fp))
	}
	assert.Equal(t, DefaultCapacity, c.Len())
}
