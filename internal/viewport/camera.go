package viewport

import (
	"fmt"

	"gatos/pkg/geometry"

	"gonum.org/v1/gonum/mat"
)

// Zoom limits, in world units per pixel.
const (
	MinZoom = 0.1
	MaxZoom = 10.0
)

const zoomStep = 1.25

// Camera is an orthographic 2D camera looking down -Z.
type Camera struct {
	Position geometry.Point2D
	Zoom     float64 // world units per pixel
	Near     float64
	Far      float64
}

// NewCamera creates a camera at the origin with one world unit per pixel.
func NewCamera() Camera {
	return Camera{Zoom: 1, Near: 0, Far: 1000}
}

// Projection returns the orthographic projection for a viewport of the given
// size in pixels. The visible area is centred on the camera.
func (c Camera) Projection(viewport geometry.Size) *mat.Dense {
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	halfW := viewport.Width / 2 * zoom
	halfH := viewport.Height / 2 * zoom
	left, right := -halfW, halfW
	bottom, top := -halfH, halfH

	rcpWidth := 1 / (right - left)
	rcpHeight := 1 / (top - bottom)
	r := 1 / (c.Near - c.Far)

	return mat.NewDense(4, 4, []float64{
		2 * rcpWidth, 0, 0, -(left + right) * rcpWidth,
		0, 2 * rcpHeight, 0, -(top + bottom) * rcpHeight,
		0, 0, r, r * c.Near,
		0, 0, 0, 1,
	})
}

// ProjectionInverse returns the inverse of Projection.
func (c Camera) ProjectionInverse(viewport geometry.Size) (*mat.Dense, error) {
	if viewport.Width <= 0 || viewport.Height <= 0 {
		return nil, fmt.Errorf("viewport %vx%v has no area", viewport.Width, viewport.Height)
	}
	var inv mat.Dense
	if err := inv.Inverse(c.Projection(viewport)); err != nil {
		return nil, fmt.Errorf("invert projection: %w", err)
	}
	return &inv, nil
}

// Transform returns the camera's world transform. The camera sits just
// inside the far plane so that everything in [Near, Far) is visible.
func (c Camera) Transform() *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		1, 0, 0, c.Position.X,
		0, 1, 0, c.Position.Y,
		0, 0, 1, c.Far - 0.1,
		0, 0, 0, 1,
	})
}

// ScreenToWorld maps a pointer sample through this camera.
func (c Camera) ScreenToWorld(pointer geometry.Point2D, viewport geometry.Size) (geometry.Point2D, error) {
	inv, err := c.ProjectionInverse(viewport)
	if err != nil {
		return geometry.Point2D{}, err
	}
	return ScreenToWorld(pointer, viewport, inv, c.Transform()), nil
}

// WorldToScreen maps a world point to device pixels through this camera.
func (c Camera) WorldToScreen(world geometry.Point2D, viewport geometry.Size) geometry.Point2D {
	return WorldToScreen(world, viewport, c.Projection(viewport), c.Transform())
}

// PixelsPerUnit returns how many device pixels one world unit covers.
func (c Camera) PixelsPerUnit() float64 {
	if c.Zoom <= 0 {
		return 1
	}
	return 1 / c.Zoom
}

// WithZoom returns a copy of the camera with zoom clamped to the allowed range.
func (c Camera) WithZoom(zoom float64) Camera {
	if zoom < MinZoom {
		zoom = MinZoom
	}
	if zoom > MaxZoom {
		zoom = MaxZoom
	}
	c.Zoom = zoom
	return c
}

// ZoomIn shows less of the world per pixel.
func (c Camera) ZoomIn() Camera {
	return c.WithZoom(c.Zoom / zoomStep)
}

// ZoomOut shows more of the world per pixel.
func (c Camera) ZoomOut() Camera {
	return c.WithZoom(c.Zoom * zoomStep)
}
