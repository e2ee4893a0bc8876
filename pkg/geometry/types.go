// Package geometry provides the 2D value types shared by the editor:
// world points, axis-aligned rectangles and sizes.
package geometry

import (
	"math"
)

// Point2D is a position in world or device space.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p + other.
func (p Point2D) Add(other Point2D) Point2D {
	return Point2D{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns p - other.
func (p Point2D) Sub(other Point2D) Point2D {
	return Point2D{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale multiplies both components by factor.
func (p Point2D) Scale(factor float64) Point2D {
	return Point2D{X: p.X * factor, Y: p.Y * factor}
}

// Round rounds both components half away from zero.
func (p Point2D) Round() Point2D {
	return Point2D{X: math.Round(p.X), Y: math.Round(p.Y)}
}

// Rect is an axis-aligned rectangle. (X, Y) is the corner with the smallest
// coordinates on both axes, whichever way Y points.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRect creates a Rect from its minimum corner and size.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// RectAround creates a Rect of the given size centred on c.
func RectAround(c Point2D, size Size) Rect {
	return Rect{X: c.X - size.Width/2, Y: c.Y - size.Height/2, Width: size.Width, Height: size.Height}
}

// Contains reports whether p lies inside r. Edges count as inside.
func (r Rect) Contains(p Point2D) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Center returns the centre point.
func (r Rect) Center() Point2D {
	return Point2D{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Min returns the corner with the smallest coordinates.
func (r Rect) Min() Point2D {
	return Point2D{X: r.X, Y: r.Y}
}

// Max returns the corner with the largest coordinates.
func (r Rect) Max() Point2D {
	return Point2D{X: r.X + r.Width, Y: r.Y + r.Height}
}

// Size is a width and height.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewSize creates a Size.
func NewSize(width, height float64) Size {
	return Size{Width: width, Height: height}
}

// BoundingBox returns the smallest Rect containing every point. It is the
// zero Rect for no points.
func BoundingBox(points []Point2D) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo.X, lo.Y = math.Min(lo.X, p.X), math.Min(lo.Y, p.Y)
		hi.X, hi.Y = math.Max(hi.X, p.X), math.Max(hi.Y, p.Y)
	}
	return Rect{X: lo.X, Y: lo.Y, Width: hi.X - lo.X, Height: hi.Y - lo.Y}
}
