package collision

import (
	"testing"

	"gatos/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryPointOrdersMostRecentFirst(t *testing.T) {
	ix := NewIndex[int]()
	require.NoError(t, ix.Insert(1, geometry.NewRect(0, 0, 10, 10)))
	require.NoError(t, ix.Insert(2, geometry.NewRect(5, 5, 10, 10)))
	require.NoError(t, ix.Insert(3, geometry.NewRect(100, 100, 10, 10)))

	assert.Equal(t, []int{2, 1}, ix.QueryPoint(geometry.Point2D{X: 7, Y: 7}))
	assert.Equal(t, []int{1}, ix.QueryPoint(geometry.Point2D{X: 1, Y: 1}))
	assert.Empty(t, ix.QueryPoint(geometry.Point2D{X: 50, Y: 50}))

	// Re-inserting moves a shape to the top of the stack.
	require.NoError(t, ix.Insert(1, geometry.NewRect(0, 0, 10, 10)))
	first, ok := ix.First(geometry.Point2D{X: 7, Y: 7})
	require.True(t, ok)
	assert.Equal(t, 1, first)
	assert.Equal(t, 3, ix.Len())
}

func TestRemove(t *testing.T) {
	ix := NewIndex[string]()
	require.NoError(t, ix.Insert("a", geometry.NewRect(-5, -5, 10, 10)))
	ix.Remove("a")
	ix.Remove("missing")

	_, ok := ix.First(geometry.Point2D{})
	assert.False(t, ok)
	assert.Zero(t, ix.Len())
}

func TestEdgesAreInclusive(t *testing.T) {
	ix := NewIndex[int]()
	require.NoError(t, ix.Insert(1, geometry.NewRect(0, 0, 10, 10)))

	assert.Equal(t, []int{1}, ix.QueryPoint(geometry.Point2D{X: 10, Y: 10}))
	assert.Equal(t, []int{1}, ix.QueryPoint(geometry.Point2D{X: 0, Y: 5}))
}

func TestClear(t *testing.T) {
	ix := NewIndex[int]()
	for i := 0; i < 100; i++ {
		require.NoError(t, ix.Insert(i, geometry.NewRect(float64(i), 0, 1, 1)))
	}
	assert.Equal(t, 100, ix.Len())
	ix.Clear()
	assert.Zero(t, ix.Len())
	assert.Empty(t, ix.QueryPoint(geometry.Point2D{X: 5.5, Y: 0.5}))
}
