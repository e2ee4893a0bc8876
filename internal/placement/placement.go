// Package placement implements the drag state machine for gates and wire
// images: spawning from the palette, pick-up, grid-snapped dragging and
// commit or cancel on release.
package placement

import (
	"log"

	"gatos/internal/circuit"
	"gatos/internal/collision"
	"gatos/internal/viewport"
	"gatos/pkg/geometry"
)

// State is the placement state of one entity.
type State int

const (
	PaletteIdle State = iota // no instance exists
	Unplaced                 // following the pointer
	Placed                   // static, reachable through pick-up
)

func (s State) String() string {
	switch s {
	case PaletteIdle:
		return "PaletteIdle"
	case Unplaced:
		return "Unplaced"
	case Placed:
		return "Placed"
	default:
		return "Unknown"
	}
}

// Outcome reports what a release did.
type Outcome int

const (
	NoChange  Outcome = iota
	Committed         // entity became placed
	Cancelled         // entity was released over the palette and destroyed
)

// Controller owns the single unplaced slot of a circuit. Placed entities are
// registered in the world collision index; the unplaced one is not.
type Controller struct {
	circuit *circuit.Circuit
	shapes  *collision.Index[circuit.Handle]
	pitch   float64
}

// NewController creates a controller over c and its world index.
func NewController(c *circuit.Circuit, shapes *collision.Index[circuit.Handle], pitch float64) *Controller {
	return &Controller{circuit: c, shapes: shapes, pitch: pitch}
}

// State returns the placement state of h.
func (p *Controller) State(h circuit.Handle) State {
	if _, ok := p.circuit.Position(h); !ok {
		return PaletteIdle
	}
	if p.circuit.IsUnplaced(h) {
		return Unplaced
	}
	return Placed
}

// Active returns the entity currently following the pointer.
func (p *Controller) Active() (circuit.Handle, bool) {
	h, _, ok := p.circuit.Unplaced()
	return h, ok
}

// Activate spawns a gate of the given kind at the staging position with a
// zero drag offset. It does nothing while another entity is unplaced.
func (p *Controller) Activate(kind circuit.GateKind) (circuit.Handle, bool) {
	if _, busy := p.Active(); busy {
		return circuit.NoHandle, false
	}
	h := p.circuit.AddGate(kind, circuit.StagingPosition)
	p.circuit.SetUnplaced(h, geometry.Point2D{})
	return h, true
}

// PickUp grabs the topmost placed entity under world, remembering where on
// the entity it was grabbed.
func (p *Controller) PickUp(world geometry.Point2D) (circuit.Handle, bool) {
	if _, busy := p.Active(); busy {
		return circuit.NoHandle, false
	}
	h, ok := p.shapes.First(world)
	if !ok {
		return circuit.NoHandle, false
	}
	pos, ok := p.circuit.Position(h)
	if !ok {
		// Stale shape for an entity that no longer exists.
		p.shapes.Remove(h)
		return circuit.NoHandle, false
	}
	p.shapes.Remove(h)
	p.circuit.SetUnplaced(h, world.Sub(pos))
	return h, true
}

// Drag moves the unplaced entity so the grab point stays under world.
func (p *Controller) Drag(world geometry.Point2D) {
	h, offset, ok := p.circuit.Unplaced()
	if !ok {
		return
	}
	p.circuit.SetPosition(h, viewport.SnapToGrid(world.Sub(offset), p.pitch))
}

// Release ends the drag. Over the palette the entity is destroyed, anywhere
// else it is committed where it stands.
func (p *Controller) Release(overPalette bool) (circuit.Handle, Outcome) {
	h, _, ok := p.circuit.Unplaced()
	if !ok {
		return circuit.NoHandle, NoChange
	}
	if overPalette {
		p.circuit.Remove(h)
		p.shapes.Remove(h)
		return h, Cancelled
	}
	p.circuit.ClearUnplaced(h)
	p.Register(h)
	return h, Committed
}

// Register adds the current shape of h to the world index.
func (p *Controller) Register(h circuit.Handle) {
	bounds, ok := p.circuit.Bounds(h)
	if !ok {
		return
	}
	if err := p.shapes.Insert(h, bounds); err != nil {
		log.Printf("Placement: failed to register %d: %v", h, err)
	}
}
