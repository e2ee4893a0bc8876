package circuit

import (
	"testing"

	"gatos/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreKeepsInsertionOrder(t *testing.T) {
	s := NewStore[string]()
	s.Set(3, "c")
	s.Set(1, "a")
	s.Set(2, "b")
	s.Set(1, "a2")

	assert.Equal(t, []Handle{3, 1, 2}, s.Handles())
	v, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, "a2", v)

	s.Remove(1)
	s.Remove(42)
	assert.Equal(t, []Handle{3, 2}, s.Handles())
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Has(1))
}

func TestHandlesAreUnique(t *testing.T) {
	c := New()
	g := c.AddGate(GateAnd, geometry.Point2D{})
	n := c.AddNode(geometry.Point2D{})
	w := c.AddWire([]Handle{n})
	a := c.AddArtifact(RasterArtifact{})

	seen := map[Handle]bool{}
	for _, h := range []Handle{g, n, w, a} {
		assert.NotEqual(t, NoHandle, h)
		assert.False(t, seen[h])
		seen[h] = true
	}
}

func TestReleaseWireFreesNodes(t *testing.T) {
	c := New()
	a := c.AddNode(geometry.Point2D{X: 0, Y: 0})
	b := c.AddNode(geometry.Point2D{X: 10, Y: 0})
	w := c.AddWire([]Handle{a, b})
	c.MarkPending(w)

	assert.Equal(t, []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}}, c.NodePositions(w))
	assert.Equal(t, []Handle{w}, c.Pending())

	c.ReleaseWire(w)
	assert.Zero(t, c.Nodes.Len())
	assert.Zero(t, c.Wires.Len())
	assert.Empty(t, c.Pending())
}

func TestPositionCoversGatesAndArtifacts(t *testing.T) {
	c := New()
	g := c.AddGate(GateOr, geometry.Point2D{X: 5, Y: 5})
	a := c.AddArtifact(RasterArtifact{Anchor: geometry.Point2D{X: 20, Y: 10}, Size: geometry.NewSize(20, 10)})

	c.SetPosition(g, geometry.Point2D{X: 10, Y: 15})
	c.SetPosition(a, geometry.Point2D{X: 30, Y: 30})

	pos, ok := c.Position(g)
	require.True(t, ok)
	assert.Equal(t, geometry.Point2D{X: 10, Y: 15}, pos)

	bounds, ok := c.Bounds(a)
	require.True(t, ok)
	assert.Equal(t, geometry.NewRect(20, 25, 20, 10), bounds)

	_, ok = c.Position(Handle(999))
	assert.False(t, ok)
}

func TestUnplacedTag(t *testing.T) {
	c := New()
	g := c.AddGate(GateNot, StagingPosition)

	_, _, ok := c.Unplaced()
	assert.False(t, ok)

	c.SetUnplaced(g, geometry.Point2D{X: 2, Y: 2})
	h, offset, ok := c.Unplaced()
	require.True(t, ok)
	assert.Equal(t, g, h)
	assert.Equal(t, geometry.Point2D{X: 2, Y: 2}, offset)

	c.Remove(g)
	assert.False(t, c.IsUnplaced(g))
	assert.False(t, c.Gates.Has(g))
}

func TestGateKindLabels(t *testing.T) {
	assert.Equal(t, "And Gate", GateAnd.Label())
	assert.Equal(t, "Or Gate", GateOr.Label())
	assert.Equal(t, "Not Gate", GateNot.Label())
	assert.Len(t, GateKinds, 3)
}
