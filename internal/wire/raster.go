package wire

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"gatos/internal/circuit"
	"gatos/internal/viewport"
	"gatos/pkg/colorutil"
	"gatos/pkg/geometry"
)

// ErrDegenerateWire is returned for a route whose bounding box covers no
// grid cells.
var ErrDegenerateWire = errors.New("wire size zero")

// Color is the fill used for wire pixels.
var Color = colorutil.Wire

// CellScale is the on-screen size of one raster cell, in grid pitches.
// It matches the scale placed gate sprites are drawn at.
const CellScale = 2.0

// Rasterize draws an orthogonal route into a pixel buffer with one pixel per
// grid cell and returns the finished artifact.
//
// A pair of consecutive nodes that shares neither axis is an invariant
// violation and panics.
func Rasterize(points []geometry.Point2D, pitch float64, col color.Color) (circuit.RasterArtifact, error) {
	if len(points) < 2 {
		return circuit.RasterArtifact{}, fmt.Errorf("rasterize %d nodes: %w", len(points), ErrDegenerateWire)
	}

	box := geometry.BoundingBox(points)
	lo, hi := box.Min(), box.Max()

	w := int(math.Round(box.Width / pitch))
	h := int(math.Round(box.Height / pitch))
	if w == 0 && h == 0 {
		return circuit.RasterArtifact{}, ErrDegenerateWire
	}
	// A straight run is one cell thick.
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	cells := make([]image.Point, len(points))
	for i, p := range points {
		rel := p.Sub(lo).Scale(1 / pitch).Round()
		cells[i] = image.Pt(int(rel.X), int(rel.Y))
	}

	for i := 0; i+1 < len(cells); i++ {
		fillRun(img, cells[i], cells[i+1], col)
	}

	anchor := viewport.SnapToGrid(lo, pitch).Add(hi.Sub(lo).Scale(0.5))
	cellSize := CellScale * pitch
	return circuit.RasterArtifact{
		Image:  img,
		Cells:  image.Pt(w, h),
		Anchor: anchor,
		Size:   geometry.NewSize(float64(w)*cellSize, float64(h)*cellSize),
	}, nil
}

// fillRun fills the half-open cell run from t1 towards t2. Rows are flipped
// because the buffer origin is top-left while world Y points up.
func fillRun(img *image.RGBA, t1, t2 image.Point, col color.Color) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	switch {
	case t1.X == t2.X:
		x := min(t1.X, w-1)
		for y := min(t1.Y, t2.Y); y < max(t1.Y, t2.Y); y++ {
			img.Set(x, h-1-y, col)
		}
	case t1.Y == t2.Y:
		y := min(t1.Y, h-1)
		for x := min(t1.X, t2.X); x < max(t1.X, t2.X); x++ {
			img.Set(x, h-1-y, col)
		}
	default:
		panic(fmt.Sprintf("wire: segment %v-%v is not orthogonal", t1, t2))
	}
}

// FilledCells counts the opaque pixels of an artifact's buffer.
func FilledCells(img *image.RGBA) int {
	n := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			n++
		}
	}
	return n
}
