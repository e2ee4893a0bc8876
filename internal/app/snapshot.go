package app

import (
	"image"

	"gatos/internal/circuit"
	"gatos/internal/config"
	"gatos/internal/palette"
	"gatos/internal/viewport"
	"gatos/pkg/geometry"

	"github.com/samber/lo"
)

// GateView is a gate as the renderer sees it.
type GateView struct {
	Handle   circuit.Handle
	Kind     circuit.GateKind
	Position geometry.Point2D
	Unplaced bool
}

// ArtifactView is a finished wire image. Image is shared and read-only.
type ArtifactView struct {
	Handle   circuit.Handle
	Image    *image.RGBA
	Anchor   geometry.Point2D
	Size     geometry.Size
	Unplaced bool
}

// WireView is a wire that has no image yet: either being captured or
// waiting for normalization to converge.
type WireView struct {
	Handle    circuit.Handle
	Points    []geometry.Point2D
	Capturing bool
}

// Snapshot is a copy of everything the renderer draws, taken under the
// state lock.
type Snapshot struct {
	Ticks    uint64
	Camera   viewport.Camera
	Style    config.Style
	Viewport geometry.Size

	Gates     []GateView
	Artifacts []ArtifactView
	Wires     []WireView

	Strip   geometry.Rect // device coordinates
	Entries []palette.Entry

	Pointer    geometry.Point2D // world
	HasPointer bool
}

// Snapshot copies the renderable state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.circuit
	snap := Snapshot{
		Ticks:      s.ticks,
		Camera:     s.camera,
		Style:      s.style,
		Viewport:   s.viewport,
		Strip:      s.palette.Strip(),
		Entries:    s.palette.Entries(),
		Pointer:    s.pointer,
		HasPointer: s.hasPointer,
	}

	snap.Gates = lo.FilterMap(c.Gates.Handles(), func(h circuit.Handle, _ int) (GateView, bool) {
		g, ok := c.Gates.Get(h)
		return GateView{Handle: h, Kind: g.Kind, Position: g.Position, Unplaced: c.IsUnplaced(h)}, ok
	})
	snap.Artifacts = lo.FilterMap(c.Artifacts.Handles(), func(h circuit.Handle, _ int) (ArtifactView, bool) {
		a, ok := c.Artifacts.Get(h)
		return ArtifactView{Handle: h, Image: a.Image, Anchor: a.Anchor, Size: a.Size, Unplaced: c.IsUnplaced(h)}, ok
	})

	capturing, isCapturing := s.capture.InProgress()
	snap.Wires = lo.Map(c.Wires.Handles(), func(h circuit.Handle, _ int) WireView {
		return WireView{
			Handle:    h,
			Points:    c.NodePositions(h),
			Capturing: isCapturing && h == capturing,
		}
	})
	return snap
}

// Counts returns the number of gates, artifacts and open wires.
func (s *State) Counts() (gates, artifacts, wires int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.circuit.Gates.Len(), s.circuit.Artifacts.Len(), s.circuit.Wires.Len()
}
