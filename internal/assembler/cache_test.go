package assembler

import (
	"fmt"
	"testing"

	"autodash/domain/core"
	"autodash/domain/dashboard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dash(datasetID core.DatasetID) *dashboard.Dashboard {
	return &dashboard.Dashboard{
		DashboardID: core.DashboardID(core.NewID()),
		DatasetID:   datasetID,
	}
}

func TestCacheHitAndMiss(t *testing.T) {
	c := newLRUCache(4)
	id := core.DatasetID("ds-1")

	assert.Nil(t, c.get(id))

	d := dash(id)
	c.put(id, d)
	assert.Same(t, d, c.get(id))
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := newLRUCache(2)
	a, b, x := core.DatasetID("a"), core.DatasetID("b"), core.DatasetID("x")

	c.put(a, dash(a))
	c.put(b, dash(b))

	// touching a makes b the eviction candidate
	require.NotNil(t, c.get(a))
	c.put(x, dash(x))

	assert.Equal(t, 2, c.len())
	assert.NotNil(t, c.get(a))
	assert.Nil(t, c.get(b))
	assert.NotNil(t, c.get(x))
}

func TestCacheInvalidate(t *testing.T) {
	c := newLRUCache(4)
	id := core.DatasetID("ds-1")

	c.put(id, dash(id))
	c.invalidate(id)

	assert.Nil(t, c.get(id))
	assert.Equal(t, 0, c.len())

	// invalidating an absent key is a no-op
	c.invalidate(id)
}

func TestCachePutReplacesExisting(t *testing.T) {
	c := newLRUCache(2)
	id := core.DatasetID("ds-1")

	first := dash(id)
	second := dash(id)
	c.put(id, first)
	c.put(id, second)

	assert.Equal(t, 1, c.len())
	assert.Same(t, second, c.get(id))
}

func TestCacheMinimumCapacity(t *testing.T) {
	c := newLRUCache(0)
	for i := 0; i < 5; i++ {
		id := core.DatasetID(fmt.Sprintf("ds-%d", i))
		c.put(id, dash(id))
	}
	assert.Equal(t, 1, c.len())
}
