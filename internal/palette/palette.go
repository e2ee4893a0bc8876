// Package palette lays out the gate palette strip and answers pointer hits
// against it.
package palette

import (
	"log"

	"gatos/internal/circuit"
	"gatos/internal/collision"
	"gatos/pkg/geometry"

	"github.com/samber/lo"
)

// DefaultFraction is the share of the viewport height taken by the strip.
const DefaultFraction = 0.10

const (
	entryHeightShare = 0.8 // of strip height
	entryWidthShare  = 0.6 // of the per-entry slot
)

// Entry is one palette button.
type Entry struct {
	Kind   circuit.GateKind
	Label  string
	Bounds geometry.Rect // device coordinates, origin bottom-left
}

// Palette is a horizontal strip across the top of the viewport with one
// entry per gate kind, spaced evenly.
type Palette struct {
	kinds    []circuit.GateKind
	fraction float64

	viewport geometry.Size
	strip    geometry.Rect
	entries  []Entry
	index    *collision.Index[circuit.GateKind]
}

// New creates a palette for kinds. A fraction outside (0, 1] falls back to
// DefaultFraction.
func New(kinds []circuit.GateKind, fraction float64) *Palette {
	p := &Palette{
		kinds: append([]circuit.GateKind(nil), kinds...),
		index: collision.NewIndex[circuit.GateKind](),
	}
	p.SetFraction(fraction)
	return p
}

// SetFraction changes the strip height and forces a relayout.
func (p *Palette) SetFraction(fraction float64) {
	if fraction <= 0 || fraction > 1 {
		fraction = DefaultFraction
	}
	p.fraction = fraction
	p.viewport = geometry.Size{}
}

// Fraction returns the strip height share.
func (p *Palette) Fraction() float64 {
	return p.fraction
}

// Layout positions the strip and its entries for viewport. It is a no-op when
// the viewport has not changed.
func (p *Palette) Layout(viewport geometry.Size) {
	if viewport == p.viewport {
		return
	}
	p.viewport = viewport
	p.index.Clear()

	h := viewport.Height * p.fraction
	p.strip = geometry.NewRect(0, viewport.Height-h, viewport.Width, h)

	n := len(p.kinds)
	if n == 0 {
		p.entries = nil
		return
	}

	slot := viewport.Width / float64(n)
	ew, eh := slot*entryWidthShare, h*entryHeightShare
	gap := (viewport.Width - float64(n)*ew) / float64(n+1)
	y := p.strip.Y + (h-eh)/2

	p.entries = lo.Map(p.kinds, func(kind circuit.GateKind, i int) Entry {
		x := gap + float64(i)*(ew+gap)
		return Entry{Kind: kind, Label: kind.Label(), Bounds: geometry.NewRect(x, y, ew, eh)}
	})
	for _, e := range p.entries {
		if err := p.index.Insert(e.Kind, e.Bounds); err != nil {
			log.Printf("Palette: entry %s: %v", e.Kind, err)
		}
	}
}

// Strip returns the strip rectangle in device coordinates.
func (p *Palette) Strip() geometry.Rect {
	return p.strip
}

// Entries returns the laid out entries in kind order.
func (p *Palette) Entries() []Entry {
	return append([]Entry(nil), p.entries...)
}

// Contains reports whether pointer lies over the strip.
func (p *Palette) Contains(pointer geometry.Point2D) bool {
	return p.strip.Width > 0 && p.strip.Contains(pointer)
}

// Hit returns the entry under pointer.
func (p *Palette) Hit(pointer geometry.Point2D) (circuit.GateKind, bool) {
	if !p.Contains(pointer) {
		return 0, false
	}
	return p.index.First(pointer)
}
