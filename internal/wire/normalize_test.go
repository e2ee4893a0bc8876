package wire

import (
	"math/rand"
	"testing"

	"gatos/internal/viewport"
	"gatos/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pitch = viewport.GridPitch

func pt(x, y float64) geometry.Point2D {
	return geometry.Point2D{X: x, Y: y}
}

func TestNormalizeAlreadyOrthogonal(t *testing.T) {
	route, converged := Normalize([]geometry.Point2D{pt(0, 0), pt(10, 0)}, pitch)
	assert.True(t, converged)
	assert.Equal(t, []RouteNode{{Position: pt(0, 0), Source: 0}, {Position: pt(10, 0), Source: 1}}, route)
}

func TestNormalizeDiagonalSplitsAtMidpoint(t *testing.T) {
	route, converged := Normalize([]geometry.Point2D{pt(0, 0), pt(10, 10)}, pitch)
	require.False(t, converged)
	assert.Equal(t, []geometry.Point2D{pt(0, 0), pt(5, 0), pt(5, 10), pt(10, 10)}, Positions(route))
	assert.Equal(t, 0, route[0].Source)
	assert.True(t, route[1].IsVia())
	assert.True(t, route[2].IsVia())
	assert.Equal(t, 1, route[3].Source)

	again, converged := Normalize(Positions(route), pitch)
	assert.True(t, converged)
	assert.Equal(t, Positions(route), Positions(again))
}

func TestNormalizeZeroLength(t *testing.T) {
	route, converged := Normalize([]geometry.Point2D{pt(15, 15), pt(15, 15)}, pitch)
	assert.True(t, converged)
	assert.Len(t, route, 2)
}

func TestNormalizeMidpointTieRoundsAwayFromZero(t *testing.T) {
	// Midpoint 2.5 snaps to 5, which equals b.x: the second bend coincides
	// with b and the closing segment has zero length.
	route, _ := Normalize([]geometry.Point2D{pt(0, 0), pt(5, 10)}, pitch)
	assert.Equal(t, []geometry.Point2D{pt(0, 0), pt(5, 0), pt(5, 10), pt(5, 10)}, Positions(route))

	route, _ = Normalize([]geometry.Point2D{pt(0, 0), pt(-5, 10)}, pitch)
	assert.Equal(t, []geometry.Point2D{pt(0, 0), pt(-5, 0), pt(-5, 10), pt(-5, 10)}, Positions(route))
}

func TestNormalizeMultiSegment(t *testing.T) {
	in := []geometry.Point2D{pt(0, 0), pt(20, 0), pt(40, 30), pt(40, 50)}
	route, converged := Normalize(in, pitch)
	require.False(t, converged)
	assert.Equal(t, []geometry.Point2D{
		pt(0, 0), pt(20, 0), pt(30, 0), pt(30, 30), pt(40, 30), pt(40, 50),
	}, Positions(route))
}

func TestNormalizeConvergesToOrthogonal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		n := 2 + rng.Intn(5)
		points := make([]geometry.Point2D, n)
		for i := range points {
			points[i] = pt(float64(rng.Intn(81)-40)*pitch, float64(rng.Intn(81)-40)*pitch)
		}

		passes := 0
		for {
			route, converged := Normalize(points, pitch)
			points = Positions(route)
			passes++
			if converged {
				break
			}
			require.Less(t, passes, 4, "normalization did not converge")
		}

		for i := 0; i+1 < len(points); i++ {
			assert.True(t, Orthogonal(points[i], points[i+1]), "segment %v-%v", points[i], points[i+1])
		}
	}
}
