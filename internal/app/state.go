// Package app provides the editor state, the per-tick update and events.
package app

import (
	"log"
	"log/slog"
	"sync"

	"gatos/internal/circuit"
	"gatos/internal/collision"
	"gatos/internal/config"
	"gatos/internal/input"
	"gatos/internal/palette"
	"gatos/internal/placement"
	"gatos/internal/viewport"
	"gatos/internal/wire"
	"gatos/pkg/geometry"
)

// State holds the circuit and every component that edits it.
type State struct {
	mu sync.RWMutex

	circuit   *circuit.Circuit
	world     *collision.Index[circuit.Handle]
	placement *placement.Controller
	capture   *wire.Capture
	pipeline  *wire.Pipeline
	palette   *palette.Palette

	camera viewport.Camera
	style  config.Style
	pitch  float64

	// Last tick
	ticks      uint64
	viewport   geometry.Size
	pointer    geometry.Point2D // world
	hasPointer bool

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventGateSpawned EventType = iota
	EventPickedUp
	EventPlaced
	EventDiscarded
	EventWireCaptured
	EventWireRasterized
	EventWireDropped
	EventConfigApplied
)

// EventListener is called when an event occurs. data is the handle the
// event is about, or the Config for EventConfigApplied.
type EventListener func(data interface{})

type event struct {
	typ  EventType
	data interface{}
}

// NewState creates an editor state configured by cfg.
func NewState(cfg config.Config) *State {
	c := circuit.New()
	world := collision.NewIndex[circuit.Handle]()
	s := &State{
		circuit:   c,
		world:     world,
		placement: placement.NewController(c, world, viewport.GridPitch),
		capture:   wire.NewCapture(c, viewport.GridPitch),
		pipeline:  wire.NewPipeline(viewport.GridPitch),
		palette:   palette.New(circuit.GateKinds, cfg.PaletteFraction),
		camera:    viewport.NewCamera(),
		pitch:     viewport.GridPitch,
		listeners: make(map[EventType][]EventListener),
	}
	s.apply(cfg)
	return s
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// ApplyConfig updates the live settings: zoom, palette height and colours.
func (s *State) ApplyConfig(cfg config.Config) {
	s.mu.Lock()
	s.apply(cfg)
	s.mu.Unlock()
	s.Emit(EventConfigApplied, cfg)
}

func (s *State) apply(cfg config.Config) {
	style, err := cfg.Colors.Style()
	if err != nil {
		log.Printf("App: ignoring colours: %v", err)
		style = config.Default().MustStyle()
	}
	s.style = style
	s.pipeline.Color = style.Wire
	s.camera = s.camera.WithZoom(cfg.Zoom)
	s.palette.SetFraction(cfg.PaletteFraction)
}

// Zoom steps the camera zoom in or out.
func (s *State) Zoom(in bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if in {
		s.camera = s.camera.ZoomIn()
	} else {
		s.camera = s.camera.ZoomOut()
	}
}

// Camera returns the current camera.
func (s *State) Camera() viewport.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.camera
}

// Tick runs one update: map the pointer, spawn or pick up, drag or release,
// capture wires, then one normalization pass and rasterization of converged
// wires. Events are emitted after the state lock is released.
func (s *State) Tick(f input.Frame) {
	s.mu.Lock()
	events := s.step(f)
	s.mu.Unlock()

	for _, e := range events {
		s.Emit(e.typ, e.data)
	}
}

func (s *State) step(f input.Frame) []event {
	var events []event
	s.ticks++
	s.viewport = f.Viewport
	s.palette.Layout(f.Viewport)

	// One mapping per tick feeds both placement and capture.
	s.hasPointer = false
	if f.HasPointer {
		world, err := s.camera.ScreenToWorld(f.Pointer, f.Viewport)
		if err == nil {
			s.pointer, s.hasPointer = world, true
		}
	}
	overPalette := f.HasPointer && s.palette.Contains(f.Pointer)

	// A press is handled where the button went down; the pointer may have
	// moved on before the tick.
	pressAt := func(b input.ButtonState) (dev, world geometry.Point2D, ok bool) {
		if !s.hasPointer {
			return dev, world, false
		}
		if b.PressedAt == f.Pointer {
			return f.Pointer, s.pointer, true
		}
		world, err := s.camera.ScreenToWorld(b.PressedAt, f.Viewport)
		if err != nil {
			return dev, world, false
		}
		return b.PressedAt, world, true
	}

	press := func() {
		dev, world, ok := pressAt(f.Primary)
		if !ok {
			return
		}
		if kind, ok := s.palette.Hit(dev); ok {
			if h, ok := s.placement.Activate(kind); ok {
				slog.Debug("gate spawned", "handle", h, "kind", kind)
				events = append(events, event{EventGateSpawned, h})
			}
			return
		}
		if s.palette.Contains(dev) {
			return
		}
		if h, ok := s.placement.PickUp(world); ok {
			slog.Debug("picked up", "handle", h)
			events = append(events, event{EventPickedUp, h})
		}
	}
	release := func() {
		if s.hasPointer {
			s.placement.Drag(s.pointer)
		}
		h, outcome := s.placement.Release(overPalette)
		switch outcome {
		case placement.Committed:
			slog.Debug("placed", "handle", h)
			events = append(events, event{EventPlaced, h})
		case placement.Cancelled:
			slog.Debug("discarded", "handle", h)
			events = append(events, event{EventDiscarded, h})
		}
	}
	edges(f.Primary, press, release)
	if f.Primary.Held && s.hasPointer {
		s.placement.Drag(s.pointer)
	}

	edges(f.Secondary, func() {
		if _, world, ok := pressAt(f.Secondary); ok {
			s.capture.Press(world)
		}
	}, func() {
		if !s.hasPointer {
			return
		}
		if h, ok := s.capture.Release(s.pointer); ok {
			slog.Debug("wire captured", "handle", h)
			events = append(events, event{EventWireCaptured, h})
		}
	})

	for _, out := range s.pipeline.Step(s.circuit) {
		switch {
		case !out.Done:
			slog.Debug("wire normalized", "handle", out.Wire, "nodes", out.Nodes)
		case out.Err != nil:
			events = append(events, event{EventWireDropped, out.Wire})
		default:
			s.placement.Register(out.Artifact)
			events = append(events, event{EventWireRasterized, out.Artifact})
		}
	}
	return events
}

// edges runs press and release in the order they happened. When both edges
// arrive in one frame with the button still down, the release came first.
func edges(b input.ButtonState, press, release func()) {
	switch {
	case b.Pressed && b.Released && b.Held:
		release()
		press()
	default:
		if b.Pressed {
			press()
		}
		if b.Released {
			release()
		}
	}
}
