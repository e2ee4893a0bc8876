// Package wire turns captured wire gestures into orthogonal routes and
// rasterizes finished routes into images.
package wire

import (
	"gatos/internal/viewport"
	"gatos/pkg/geometry"
)

// Via marks a RouteNode that was inserted by a normalization pass.
const Via = -1

// RouteNode is one node of a normalized route. Source is the index of the
// input node it came from, or Via for a newly inserted bend.
type RouteNode struct {
	Position geometry.Point2D
	Source   int
}

// IsVia reports whether the node was inserted by the pass.
func (n RouteNode) IsVia() bool {
	return n.Source == Via
}

// Normalize runs one splitting pass over a node sequence.
//
// Every pair (a, b) that shares neither coordinate gets two bends at the
// grid-snapped midpoint X, (splitX, a.y) and (splitX, b.y), giving a Z-shaped
// dogleg. The last input node is always re-appended to close the route.
// converged is true when the pass inserted nothing, i.e. the input was
// already orthogonal.
func Normalize(points []geometry.Point2D, pitch float64) (route []RouteNode, converged bool) {
	if len(points) == 0 {
		return nil, true
	}

	route = make([]RouteNode, 0, len(points)*3)
	for i := 0; i+1 < len(points); i++ {
		a, b := points[i], points[i+1]
		route = append(route, RouteNode{Position: a, Source: i})
		if Orthogonal(a, b) {
			continue
		}

		splitX := viewport.SnapToGrid(geometry.Point2D{X: (a.X + b.X) / 2}, pitch).X
		route = append(route,
			RouteNode{Position: geometry.Point2D{X: splitX, Y: a.Y}, Source: Via},
			RouteNode{Position: geometry.Point2D{X: splitX, Y: b.Y}, Source: Via},
		)
	}
	last := len(points) - 1
	route = append(route, RouteNode{Position: points[last], Source: last})

	return route, len(route) == len(points)
}

// Orthogonal reports whether the segment a-b is horizontal, vertical or
// zero-length.
func Orthogonal(a, b geometry.Point2D) bool {
	return a.X == b.X || a.Y == b.Y
}

// Positions extracts the node positions of a route.
func Positions(route []RouteNode) []geometry.Point2D {
	points := make([]geometry.Point2D, len(route))
	for i, n := range route {
		points[i] = n.Position
	}
	return points
}
