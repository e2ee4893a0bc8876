// Package circuit holds the editable circuit: gates, wire nodes, wires and
// finished wire images, stored in typed tables keyed by stable handles.
package circuit

import (
	"image"

	"gatos/pkg/geometry"
)

// GateKind identifies a logic gate symbol.
type GateKind int

const (
	GateAnd GateKind = iota
	GateOr
	GateNot
)

// GateKinds lists every kind in palette order.
var GateKinds = []GateKind{GateAnd, GateOr, GateNot}

func (k GateKind) String() string {
	switch k {
	case GateAnd:
		return "And"
	case GateOr:
		return "Or"
	case GateNot:
		return "Not"
	default:
		return "Unknown"
	}
}

// Label returns the palette caption for the kind.
func (k GateKind) Label() string {
	return k.String() + " Gate"
}

// GateSize is the side length of a gate symbol in world units.
const GateSize = 55.0

// StagingPosition is where freshly spawned gates wait, off screen, until the
// first drag update moves them under the pointer.
var StagingPosition = geometry.Point2D{X: 10000, Y: 10000}

// Gate is a logic symbol instance on the canvas.
type Gate struct {
	Kind     GateKind
	Position geometry.Point2D
}

// Bounds returns the gate's shape in world space.
func (g Gate) Bounds() geometry.Rect {
	return geometry.RectAround(g.Position, geometry.NewSize(GateSize, GateSize))
}

// WireNode is a single grid-snapped waypoint of a wire.
type WireNode struct {
	Position geometry.Point2D
}

// Wire is an ordered route of node handles.
type Wire struct {
	Nodes []Handle
}

// RasterArtifact is the finished image of one wire run.
type RasterArtifact struct {
	Image  *image.RGBA
	Cells  image.Point      // buffer size, one pixel per grid cell
	Anchor geometry.Point2D // world position of the image centre
	Size   geometry.Size    // physical size in world units
}

// Bounds returns the artifact's shape in world space.
func (a RasterArtifact) Bounds() geometry.Rect {
	return geometry.RectAround(a.Anchor, a.Size)
}

// Circuit is the arena of every record the editor manipulates.
type Circuit struct {
	next Handle

	Gates     *Store[Gate]
	Nodes     *Store[WireNode]
	Wires     *Store[Wire]
	Artifacts *Store[RasterArtifact]

	// State tag tables
	unplaced *Store[geometry.Point2D] // drag offset per unplaced entity
	pending  *Store[struct{}]         // unfinalized wires awaiting normalization
}

// New creates an empty circuit.
func New() *Circuit {
	return &Circuit{
		next:      1,
		Gates:     NewStore[Gate](),
		Nodes:     NewStore[WireNode](),
		Wires:     NewStore[Wire](),
		Artifacts: NewStore[RasterArtifact](),
		unplaced:  NewStore[geometry.Point2D](),
		pending:   NewStore[struct{}](),
	}
}

func (c *Circuit) allocate() Handle {
	h := c.next
	c.next++
	return h
}

// AddGate creates a gate and returns its handle.
func (c *Circuit) AddGate(kind GateKind, pos geometry.Point2D) Handle {
	h := c.allocate()
	c.Gates.Set(h, Gate{Kind: kind, Position: pos})
	return h
}

// AddNode creates a wire node.
func (c *Circuit) AddNode(pos geometry.Point2D) Handle {
	h := c.allocate()
	c.Nodes.Set(h, WireNode{Position: pos})
	return h
}

// AddWire creates a wire over existing nodes.
func (c *Circuit) AddWire(nodes []Handle) Handle {
	h := c.allocate()
	c.Wires.Set(h, Wire{Nodes: append([]Handle(nil), nodes...)})
	return h
}

// AppendNode adds a node to the end of a wire's route.
func (c *Circuit) AppendNode(wire, node Handle) {
	w, ok := c.Wires.Get(wire)
	if !ok {
		return
	}
	w.Nodes = append(w.Nodes, node)
	c.Wires.Set(wire, w)
}

// SetRoute replaces a wire's node list.
func (c *Circuit) SetRoute(wire Handle, nodes []Handle) {
	if !c.Wires.Has(wire) {
		return
	}
	c.Wires.Set(wire, Wire{Nodes: nodes})
}

// NodePositions returns the positions of a wire's nodes in route order.
func (c *Circuit) NodePositions(wire Handle) []geometry.Point2D {
	w, ok := c.Wires.Get(wire)
	if !ok {
		return nil
	}
	points := make([]geometry.Point2D, 0, len(w.Nodes))
	for _, n := range w.Nodes {
		if node, ok := c.Nodes.Get(n); ok {
			points = append(points, node.Position)
		}
	}
	return points
}

// ReleaseWire removes a wire together with every node it owns.
func (c *Circuit) ReleaseWire(wire Handle) {
	w, ok := c.Wires.Get(wire)
	if !ok {
		return
	}
	for _, n := range w.Nodes {
		c.Nodes.Remove(n)
	}
	c.Wires.Remove(wire)
	c.pending.Remove(wire)
}

// AddArtifact stores a finished wire image.
func (c *Circuit) AddArtifact(a RasterArtifact) Handle {
	h := c.allocate()
	c.Artifacts.Set(h, a)
	return h
}

// Position returns the world position of a gate or artifact.
func (c *Circuit) Position(h Handle) (geometry.Point2D, bool) {
	if g, ok := c.Gates.Get(h); ok {
		return g.Position, true
	}
	if a, ok := c.Artifacts.Get(h); ok {
		return a.Anchor, true
	}
	return geometry.Point2D{}, false
}

// SetPosition moves a gate or artifact.
func (c *Circuit) SetPosition(h Handle, pos geometry.Point2D) {
	if g, ok := c.Gates.Get(h); ok {
		g.Position = pos
		c.Gates.Set(h, g)
		return
	}
	if a, ok := c.Artifacts.Get(h); ok {
		a.Anchor = pos
		c.Artifacts.Set(h, a)
	}
}

// Bounds returns the world-space shape of a gate or artifact.
func (c *Circuit) Bounds(h Handle) (geometry.Rect, bool) {
	if g, ok := c.Gates.Get(h); ok {
		return g.Bounds(), true
	}
	if a, ok := c.Artifacts.Get(h); ok {
		return a.Bounds(), true
	}
	return geometry.Rect{}, false
}

// Remove deletes a gate or artifact and any state tags it carries.
func (c *Circuit) Remove(h Handle) {
	c.Gates.Remove(h)
	c.Artifacts.Remove(h)
	c.unplaced.Remove(h)
}

// SetUnplaced tags an entity as following the pointer with the given offset.
func (c *Circuit) SetUnplaced(h Handle, offset geometry.Point2D) {
	c.unplaced.Set(h, offset)
}

// ClearUnplaced removes the unplaced tag.
func (c *Circuit) ClearUnplaced(h Handle) {
	c.unplaced.Remove(h)
}

// IsUnplaced reports whether h is currently following the pointer.
func (c *Circuit) IsUnplaced(h Handle) bool {
	return c.unplaced.Has(h)
}

// Unplaced returns the entity currently following the pointer, if any.
func (c *Circuit) Unplaced() (Handle, geometry.Point2D, bool) {
	handles := c.unplaced.Handles()
	if len(handles) == 0 {
		return NoHandle, geometry.Point2D{}, false
	}
	offset, _ := c.unplaced.Get(handles[0])
	return handles[0], offset, true
}

// MarkPending tags a wire as unfinalized.
func (c *Circuit) MarkPending(wire Handle) {
	c.pending.Set(wire, struct{}{})
}

// ClearPending removes the unfinalized tag without releasing the wire.
func (c *Circuit) ClearPending(wire Handle) {
	c.pending.Remove(wire)
}

// Pending returns the unfinalized wires in the order they were sealed.
func (c *Circuit) Pending() []Handle {
	return c.pending.Handles()
}
