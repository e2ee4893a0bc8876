// Package input latches pointer events from the UI goroutine into per-tick
// frames.
package input

import (
	"sync"

	"gatos/pkg/geometry"
)

// Button identifies one of the two logical pointer buttons.
type Button int

const (
	Primary   Button = iota // place and drag
	Secondary               // wire capture
)

// ButtonState holds the edges seen since the previous frame and the level at
// the time the frame was taken. Pressed and Released may both be set when a
// click completes between two ticks; PressedAt then still holds where the
// button went down while the frame pointer is where it came up.
type ButtonState struct {
	Pressed   bool
	Held      bool
	Released  bool
	PressedAt geometry.Point2D // device convention, valid when Pressed
}

// Frame is a snapshot of input for one tick.
type Frame struct {
	Pointer    geometry.Point2D // device convention, origin bottom-left
	HasPointer bool
	Viewport   geometry.Size
	Primary    ButtonState
	Secondary  ButtonState
}

// Button returns the state of b.
func (f Frame) Button(b Button) ButtonState {
	if b == Secondary {
		return f.Secondary
	}
	return f.Primary
}

// Collector accumulates events between ticks. All methods are safe for
// concurrent use.
type Collector struct {
	mu       sync.Mutex
	pointer  geometry.Point2D
	inside   bool
	viewport geometry.Size
	down     [2]bool
	pressed  [2]bool
	released [2]bool
	pressAt  [2]geometry.Point2D
}

// NewCollector creates a collector for a viewport of the given size.
func NewCollector(viewport geometry.Size) *Collector {
	return &Collector{viewport: viewport}
}

// Resize records a new viewport size.
func (c *Collector) Resize(viewport geometry.Size) {
	c.mu.Lock()
	c.viewport = viewport
	c.mu.Unlock()
}

// Move records the pointer position.
func (c *Collector) Move(p geometry.Point2D) {
	c.mu.Lock()
	c.pointer = p
	c.inside = true
	c.mu.Unlock()
}

// Leave marks the pointer as outside the viewport. Buttons keep their level.
func (c *Collector) Leave() {
	c.mu.Lock()
	c.inside = false
	c.mu.Unlock()
}

// Press records a button going down at p.
func (c *Collector) Press(b Button, p geometry.Point2D) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pointer = p
	c.inside = true
	c.down[b] = true
	c.pressed[b] = true
	c.pressAt[b] = p
}

// Release records a button going up at p.
func (c *Collector) Release(b Button, p geometry.Point2D) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pointer = p
	c.inside = true
	c.down[b] = false
	c.released[b] = true
}

// Frame returns the input since the last call and clears the edges.
func (c *Collector) Frame() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()

	f := Frame{
		Pointer:    c.pointer,
		HasPointer: c.inside,
		Viewport:   c.viewport,
		Primary:    c.take(Primary),
		Secondary:  c.take(Secondary),
	}
	return f
}

func (c *Collector) take(b Button) ButtonState {
	s := ButtonState{Pressed: c.pressed[b], Held: c.down[b], Released: c.released[b]}
	if s.Pressed {
		s.PressedAt = c.pressAt[b]
	}
	c.pressed[b] = false
	c.released[b] = false
	return s
}
