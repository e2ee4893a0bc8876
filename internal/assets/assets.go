// Package assets draws the gate symbols and provides the label font.
package assets

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"gatos/internal/circuit"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// SymbolPixels is the default side of a symbol image, twice the gate size
// in world units so symbols stay sharp at 2x zoom.
const SymbolPixels = int(2 * circuit.GateSize)

// Default symbol colours.
var (
	DefaultInk  = color.RGBA{R: 20, G: 24, B: 20, A: 255}
	DefaultBody = color.RGBA{R: 230, G: 230, B: 220, A: 255}
)

// kappa is the cubic control distance for a quarter circle of radius 1.
const kappa = 0.5523

// Provider draws and caches one symbol image per gate kind.
type Provider struct {
	mu    sync.Mutex
	size  int
	ink   color.Color
	body  color.Color
	face  font.Face
	cache map[circuit.GateKind]*image.RGBA
}

// NewProvider creates a provider drawing square symbols of size pixels.
func NewProvider(size int, ink, body color.Color) *Provider {
	if size <= 0 {
		size = SymbolPixels
	}
	return &Provider{
		size:  size,
		ink:   ink,
		body:  body,
		face:  basicfont.Face7x13,
		cache: make(map[circuit.GateKind]*image.RGBA),
	}
}

// Size returns the symbol side in pixels.
func (p *Provider) Size() int {
	return p.size
}

// Symbol returns the image for kind. The image is shared and must not be
// modified.
func (p *Provider) Symbol(kind circuit.GateKind) *image.RGBA {
	p.mu.Lock()
	defer p.mu.Unlock()
	if img, ok := p.cache[kind]; ok {
		return img
	}
	img := p.draw(kind)
	p.cache[kind] = img
	return img
}

// Face returns the label font.
func (p *Provider) Face() font.Face {
	return p.face
}

func (p *Provider) draw(kind circuit.GateKind) *image.RGBA {
	s := float32(p.size)
	img := image.NewRGBA(image.Rect(0, 0, p.size, p.size))
	ink := image.NewUniform(p.ink)
	body := image.NewUniform(p.body)

	// Leads
	lead := s * 0.04
	switch kind {
	case circuit.GateNot:
		fillRect(img, ink, 0.02*s, 0.5*s-lead/2, 0.25*s, lead)
	default:
		fillRect(img, ink, 0.02*s, 0.35*s-lead/2, 0.2*s, lead)
		fillRect(img, ink, 0.02*s, 0.65*s-lead/2, 0.2*s, lead)
	}
	fillRect(img, ink, 0.8*s, 0.5*s-lead/2, 0.18*s, lead)

	outline := func(scale float32) func(r *vector.Rasterizer) {
		return func(r *vector.Rasterizer) {
			shape(r, kind, s, scale)
		}
	}
	fill(img, ink, p.size, outline(1))
	fill(img, body, p.size, outline(0.86))
	return img
}

// shape traces the body of kind on r, scaled around the symbol centre.
func shape(r *vector.Rasterizer, kind circuit.GateKind, s, scale float32) {
	at := func(x, y float32) (float32, float32) {
		return s * (0.5 + (x-0.5)*scale), s * (0.5 + (y-0.5)*scale)
	}
	moveTo := func(x, y float32) { r.MoveTo(at(x, y)) }
	lineTo := func(x, y float32) { r.LineTo(at(x, y)) }
	quadTo := func(cx, cy, x, y float32) {
		ax, ay := at(cx, cy)
		bx, by := at(x, y)
		r.QuadTo(ax, ay, bx, by)
	}
	cubeTo := func(c1x, c1y, c2x, c2y, x, y float32) {
		ax, ay := at(c1x, c1y)
		bx, by := at(c2x, c2y)
		cx, cy := at(x, y)
		r.CubeTo(ax, ay, bx, by, cx, cy)
	}

	switch kind {
	case circuit.GateAnd:
		// Flat back, semicircular front of radius 0.3.
		moveTo(0.2, 0.2)
		lineTo(0.5, 0.2)
		cubeTo(0.5+0.3*kappa, 0.2, 0.8, 0.5-0.3*kappa, 0.8, 0.5)
		cubeTo(0.8, 0.5+0.3*kappa, 0.5+0.3*kappa, 0.8, 0.5, 0.8)
		lineTo(0.2, 0.8)
		r.ClosePath()
	case circuit.GateOr:
		moveTo(0.18, 0.2)
		quadTo(0.6, 0.2, 0.82, 0.5)
		quadTo(0.6, 0.8, 0.18, 0.8)
		quadTo(0.32, 0.5, 0.18, 0.2)
		r.ClosePath()
	case circuit.GateNot:
		moveTo(0.25, 0.2)
		lineTo(0.7, 0.5)
		lineTo(0.25, 0.8)
		r.ClosePath()
		circle(moveTo, cubeTo, 0.75, 0.5, 0.05)
		r.ClosePath()
	}
}

func circle(moveTo func(x, y float32), cubeTo func(c1x, c1y, c2x, c2y, x, y float32), cx, cy, rad float32) {
	c := rad * kappa
	moveTo(cx+rad, cy)
	cubeTo(cx+rad, cy+c, cx+c, cy+rad, cx, cy+rad)
	cubeTo(cx-c, cy+rad, cx-rad, cy+c, cx-rad, cy)
	cubeTo(cx-rad, cy-c, cx-c, cy-rad, cx, cy-rad)
	cubeTo(cx+c, cy-rad, cx+rad, cy-c, cx+rad, cy)
}

func fill(dst *image.RGBA, src image.Image, size int, trace func(r *vector.Rasterizer)) {
	r := vector.NewRasterizer(size, size)
	r.DrawOp = draw.Over
	trace(r)
	r.Draw(dst, dst.Bounds(), src, image.Point{})
}

func fillRect(dst *image.RGBA, src image.Image, x, y, w, h float32) {
	b := dst.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	r.DrawOp = draw.Over
	r.MoveTo(x, y)
	r.LineTo(x+w, y)
	r.LineTo(x+w, y+h)
	r.LineTo(x, y+h)
	r.ClosePath()
	r.Draw(dst, b, src, image.Point{})
}

// DrawLabel draws text centred on center in the provider's label face.
func (p *Provider) DrawLabel(dst draw.Image, text string, center image.Point, col color.Color) {
	face := p.Face()
	metrics := face.Metrics()

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
	}
	d.Dot = fixed.Point26_6{
		X: fixed.I(center.X) - d.MeasureString(text)/2,
		Y: fixed.I(center.Y) + (metrics.Ascent-metrics.Descent)/2,
	}
	d.DrawString(text)
}
