package fitness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGetMiss(t *testing.T) {
	c, err := NewCache(4)
	require.NoError(t, err)
	_, ok := c.Get(123)
	assert.False(t, ok)
}

func TestCachePutThenGet(t *testing.T) {
	c, err := NewCache(4)
	require.NoError(t, err)
	c.Put(123, 42)
	score, ok := c.Get(123)
	require.True(t, ok)
	assert.Equal(t, int64(42), score)
}

func TestCacheLen(t *testing.T) {
	c, err := NewCache(4)
	require.NoError(t, err)
	c.Put(1, 10)
	c.Put(2, 20)
	assert.Equal(t, 2, c.Len())
}

func TestCacheEvictsLeastRecentlyUsedOnceFull(t *testing.T) {
	c, err := NewCache(2)
	require.NoError(t, err)
	c.Put(1, 10)
	c.Put(2, 20)
	c.Put(3, 30)
	_, ok := c.Get(1)
	assert.False(t, ok, "entry 1 should have been evicted once the 2-entry cache filled")
	_, ok = c.Get(2)
	assert.True(t, ok)
	_, ok = c.Get(3)
	assert.True(t, ok)
}
