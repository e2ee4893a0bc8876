// Package canvas provides drawing for the circuit canvas.
package canvas

import (
	"image"
	"image/color"
	"math"

	"gatos/internal/app"
	"gatos/internal/assets"
	"gatos/internal/circuit"
	"gatos/internal/viewport"
	"gatos/pkg/colorutil"
	"gatos/pkg/geometry"

	"golang.org/x/image/draw"
)

// unplacedAlpha is the opacity of an entity following the pointer.
const unplacedAlpha = 170

// minGridSpacing is the smallest on-screen grid spacing, in pixels, that is
// still drawn.
const minGridSpacing = 4

// scene draws one snapshot into a pixel buffer of w x h. The snapshot's
// viewport is in logical units; scale converts to buffer pixels.
type scene struct {
	out     *image.RGBA
	snap    app.Snapshot
	symbols *assets.Provider
	view    geometry.Size
	scale   float64
}

// Render draws snap at w x h pixels.
func Render(snap app.Snapshot, symbols *assets.Provider, w, h int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return out
	}
	view := snap.Viewport
	if view.Width <= 0 || view.Height <= 0 {
		view = geometry.NewSize(float64(w), float64(h))
	}
	sc := &scene{out: out, snap: snap, symbols: symbols, view: view, scale: float64(w) / view.Width}

	draw.Draw(out, out.Bounds(), image.NewUniform(snap.Style.Background), image.Point{}, draw.Src)
	sc.drawGrid()
	for _, a := range snap.Artifacts {
		sc.drawArtifact(a)
	}
	for _, g := range snap.Gates {
		sc.drawGate(g)
	}
	for _, wv := range snap.Wires {
		sc.drawWire(wv)
	}
	sc.drawPalette()
	return out
}

// toPixel maps a world point to buffer pixels, top-left origin.
func (sc *scene) toPixel(world geometry.Point2D) geometry.Point2D {
	d := sc.snap.Camera.WorldToScreen(world, sc.view)
	return geometry.Point2D{X: d.X * sc.scale, Y: (sc.view.Height - d.Y) * sc.scale}
}

// deviceRect maps a device-space rectangle (bottom-left origin) to buffer pixels.
func (sc *scene) deviceRect(r geometry.Rect) image.Rectangle {
	x0 := r.X * sc.scale
	y0 := (sc.view.Height - r.Y - r.Height) * sc.scale
	return image.Rect(int(math.Round(x0)), int(math.Round(y0)),
		int(math.Round(x0+r.Width*sc.scale)), int(math.Round(y0+r.Height*sc.scale)))
}

// worldRect maps a world-space rectangle to buffer pixels.
func (sc *scene) worldRect(r geometry.Rect) image.Rectangle {
	a := sc.toPixel(r.Min())
	b := sc.toPixel(r.Max())
	return image.Rect(int(math.Round(a.X)), int(math.Round(b.Y)), int(math.Round(b.X)), int(math.Round(a.Y))).Canon()
}

func (sc *scene) drawGrid() {
	spacing := viewport.GridPitch * sc.snap.Camera.PixelsPerUnit() * sc.scale
	step := viewport.GridPitch
	if spacing <= 0 {
		return
	}
	for spacing < minGridSpacing {
		spacing *= 4
		step *= 4
	}

	// Visible world range
	lo := sc.snap.Camera.Position.Sub(geometry.Point2D{X: sc.view.Width, Y: sc.view.Height}.Scale(sc.snap.Camera.Zoom / 2))
	hi := sc.snap.Camera.Position.Add(geometry.Point2D{X: sc.view.Width, Y: sc.view.Height}.Scale(sc.snap.Camera.Zoom / 2))
	start := viewport.SnapToGrid(lo, step)

	col := sc.snap.Style.Grid
	b := sc.out.Bounds()
	for x := start.X; x <= hi.X; x += step {
		for y := start.Y; y <= hi.Y; y += step {
			p := sc.toPixel(geometry.Point2D{X: x, Y: y})
			px, py := int(math.Round(p.X)), int(math.Round(p.Y))
			if image.Pt(px, py).In(b) {
				sc.out.SetRGBA(px, py, col)
			}
		}
	}
}

func (sc *scene) drawArtifact(a app.ArtifactView) {
	if a.Image == nil {
		return
	}
	dst := sc.worldRect(geometry.RectAround(a.Anchor, a.Size))
	sc.scaleInto(dst, a.Image, a.Unplaced, draw.NearestNeighbor)
}

func (sc *scene) drawGate(g app.GateView) {
	if sc.symbols == nil {
		return
	}
	dst := sc.worldRect(geometry.RectAround(g.Position, geometry.NewSize(circuit.GateSize, circuit.GateSize)))
	sc.scaleInto(dst, sc.symbols.Symbol(g.Kind), g.Unplaced, draw.ApproxBiLinear)
}

func (sc *scene) scaleInto(dst image.Rectangle, src image.Image, faded bool, scaler draw.Scaler) {
	if dst.Empty() || !dst.Overlaps(sc.out.Bounds()) {
		return
	}
	var opts *draw.Options
	if faded {
		opts = &draw.Options{SrcMask: image.NewUniform(color.Alpha{A: unplacedAlpha})}
	}
	scaler.Scale(sc.out, dst, src, src.Bounds(), draw.Over, opts)
}

func (sc *scene) drawWire(wv app.WireView) {
	col := sc.snap.Style.Preview
	points := wv.Points
	if wv.Capturing && sc.snap.HasPointer {
		points = append(append([]geometry.Point2D(nil), points...), sc.snap.Pointer)
	}
	for i := 0; i+1 < len(points); i++ {
		a, b := sc.toPixel(points[i]), sc.toPixel(points[i+1])
		drawLine(sc.out, int(a.X), int(a.Y), int(b.X), int(b.Y), col, 2)
	}
	for _, p := range wv.Points {
		c := sc.toPixel(p)
		fillRect(sc.out, image.Rect(int(c.X)-2, int(c.Y)-2, int(c.X)+3, int(c.Y)+3), col)
	}
}

func (sc *scene) drawPalette() {
	if sc.snap.Strip.Width <= 0 {
		return
	}
	fillRect(sc.out, sc.deviceRect(sc.snap.Strip), colorutil.Palette)

	for _, e := range sc.snap.Entries {
		r := sc.deviceRect(e.Bounds)
		fillRect(sc.out, r, colorutil.Entry)

		// Symbol on the left, label to its right
		side := r.Dy() - 4
		if sc.symbols != nil && side > 0 {
			icon := image.Rect(r.Min.X+2, r.Min.Y+2, r.Min.X+2+side, r.Min.Y+2+side)
			draw.ApproxBiLinear.Scale(sc.out, icon, sc.symbols.Symbol(e.Kind), sc.symbols.Symbol(e.Kind).Bounds(), draw.Over, nil)
		}
		if sc.symbols != nil {
			textX := r.Min.X + side + 4 + (r.Dx()-side-4)/2
			sc.symbols.DrawLabel(sc.out, e.Label, image.Pt(textX, r.Min.Y+r.Dy()/2), colorutil.White)
		}
	}
}

func fillRect(out *image.RGBA, r image.Rectangle, col color.Color) {
	draw.Draw(out, r.Intersect(out.Bounds()), image.NewUniform(col), image.Point{}, draw.Over)
}

// drawLine draws a line between two points using Bresenham's algorithm.
func drawLine(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int) {
	bounds := output.Bounds()

	dx := x2 - x1
	dy := y2 - y1
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		for t := -thickness / 2; t <= thickness/2; t++ {
			for s := -thickness / 2; s <= thickness/2; s++ {
				px, py := x1+s, y1+t
				if image.Pt(px, py).In(bounds) {
					output.SetRGBA(px, py, col)
				}
			}
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}
