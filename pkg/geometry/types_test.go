package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundingBox(t *testing.T) {
	box := BoundingBox([]Point2D{{X: 10, Y: 10}, {X: 0, Y: 5}, {X: 5, Y: -5}})
	assert.Equal(t, Point2D{X: 0, Y: -5}, box.Min())
	assert.Equal(t, Point2D{X: 10, Y: 10}, box.Max())
	assert.Equal(t, Point2D{X: 5, Y: 2.5}, box.Center())

	assert.Equal(t, Rect{}, BoundingBox(nil))
}

func TestRectAroundContains(t *testing.T) {
	r := RectAround(Point2D{X: 10, Y: 5}, NewSize(4, 2))
	assert.True(t, r.Contains(Point2D{X: 12, Y: 6}))
	assert.True(t, r.Contains(Point2D{X: 8, Y: 4}))
	assert.False(t, r.Contains(Point2D{X: 12.5, Y: 5}))
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, Point2D{X: 1, Y: -1}, Point2D{X: 0.5, Y: -0.5}.Round())
	assert.Equal(t, Point2D{X: 2, Y: -3}, Point2D{X: 2.4, Y: -2.5}.Round())
}
