package wire

import (
	"gatos/internal/circuit"
	"gatos/internal/viewport"
	"gatos/pkg/geometry"
)

// CaptureState is the state of the wire capture gesture.
type CaptureState int

const (
	Idle CaptureState = iota
	Capturing
)

func (s CaptureState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Capturing:
		return "Capturing"
	default:
		return "Unknown"
	}
}

// Capture records the end points of a wire while the secondary button is
// held. Only press and release positions become nodes.
type Capture struct {
	circuit *circuit.Circuit
	pitch   float64
	state   CaptureState
	wire    circuit.Handle
}

// NewCapture creates an idle capture writing into c.
func NewCapture(c *circuit.Circuit, pitch float64) *Capture {
	return &Capture{circuit: c, pitch: pitch}
}

// State returns the current gesture state.
func (c *Capture) State() CaptureState {
	return c.state
}

// InProgress returns the wire being captured, if any.
func (c *Capture) InProgress() (circuit.Handle, bool) {
	return c.wire, c.state == Capturing
}

// Press starts a gesture at the snapped world position. Pressing again while
// capturing, which happens when the release was missed outside the viewport,
// extends the same wire.
func (c *Capture) Press(world geometry.Point2D) {
	node := c.circuit.AddNode(viewport.SnapToGrid(world, c.pitch))
	if c.state == Capturing {
		c.circuit.AppendNode(c.wire, node)
		return
	}
	c.wire = c.circuit.AddWire([]circuit.Handle{node})
	c.state = Capturing
}

// Release closes the gesture with a final node and seals the wire as
// unfinalized. The sealed wire is returned; ok is false when no gesture was
// open.
func (c *Capture) Release(world geometry.Point2D) (sealed circuit.Handle, ok bool) {
	if c.state != Capturing {
		return circuit.NoHandle, false
	}
	node := c.circuit.AddNode(viewport.SnapToGrid(world, c.pitch))
	c.circuit.AppendNode(c.wire, node)
	c.circuit.MarkPending(c.wire)

	sealed = c.wire
	c.wire = circuit.NoHandle
	c.state = Idle
	return sealed, true
}
