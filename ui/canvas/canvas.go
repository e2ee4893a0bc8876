package canvas

import (
	"image"

	"gatos/internal/app"
	"gatos/internal/assets"
	"gatos/internal/input"
	"gatos/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// CircuitCanvas shows the circuit and feeds pointer events to an input
// collector. Positions are handed over in device convention: origin at the
// bottom-left corner, Y up.
type CircuitCanvas struct {
	widget.BaseWidget

	state     *app.State
	collector *input.Collector
	symbols   *assets.Provider

	raster *fynecanvas.Raster

	// Last rendered output
	lastOutput *image.RGBA

	onZoomChange func(zoom float64)
}

var (
	_ desktop.Mouseable = (*CircuitCanvas)(nil)
	_ desktop.Hoverable = (*CircuitCanvas)(nil)
	_ fyne.Draggable    = (*CircuitCanvas)(nil)
	_ fyne.Scrollable   = (*CircuitCanvas)(nil)
)

// NewCircuitCanvas creates a canvas drawing state and feeding collector.
func NewCircuitCanvas(state *app.State, collector *input.Collector, symbols *assets.Provider) *CircuitCanvas {
	cc := &CircuitCanvas{
		state:     state,
		collector: collector,
		symbols:   symbols,
	}
	cc.raster = fynecanvas.NewRaster(cc.draw)
	cc.raster.ScaleMode = fynecanvas.ImageScalePixels
	cc.ExtendBaseWidget(cc)
	return cc
}

// OnZoomChange sets a callback for wheel zoom.
func (cc *CircuitCanvas) OnZoomChange(callback func(zoom float64)) {
	cc.onZoomChange = callback
}

// device converts a widget position to device convention.
func (cc *CircuitCanvas) device(pos fyne.Position) geometry.Point2D {
	return geometry.Point2D{X: float64(pos.X), Y: float64(cc.Size().Height - pos.Y)}
}

func button(b desktop.MouseButton) (input.Button, bool) {
	switch b {
	case desktop.MouseButtonPrimary:
		return input.Primary, true
	case desktop.MouseButtonSecondary:
		return input.Secondary, true
	default:
		return 0, false
	}
}

// MouseDown implements desktop.Mouseable.
func (cc *CircuitCanvas) MouseDown(ev *desktop.MouseEvent) {
	if b, ok := button(ev.Button); ok {
		cc.collector.Press(b, cc.device(ev.Position))
	}
}

// MouseUp implements desktop.Mouseable.
func (cc *CircuitCanvas) MouseUp(ev *desktop.MouseEvent) {
	if b, ok := button(ev.Button); ok {
		cc.collector.Release(b, cc.device(ev.Position))
	}
}

// MouseIn implements desktop.Hoverable.
func (cc *CircuitCanvas) MouseIn(ev *desktop.MouseEvent) {
	cc.collector.Move(cc.device(ev.Position))
}

// MouseMoved implements desktop.Hoverable.
func (cc *CircuitCanvas) MouseMoved(ev *desktop.MouseEvent) {
	cc.collector.Move(cc.device(ev.Position))
}

// MouseOut implements desktop.Hoverable.
func (cc *CircuitCanvas) MouseOut() {
	cc.collector.Leave()
}

// Dragged keeps the pointer current while the primary button is held.
func (cc *CircuitCanvas) Dragged(ev *fyne.DragEvent) {
	cc.collector.Move(cc.device(ev.Position))
}

// DragEnd implements fyne.Draggable. The release arrives through MouseUp.
func (cc *CircuitCanvas) DragEnd() {}

// Scrolled zooms the camera with the mouse wheel.
func (cc *CircuitCanvas) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY == 0 {
		return
	}
	cc.state.Zoom(ev.Scrolled.DY > 0)
	if cc.onZoomChange != nil {
		cc.onZoomChange(cc.state.Camera().Zoom)
	}
	cc.Refresh()
}

// Resize records the new viewport size with the collector.
func (cc *CircuitCanvas) Resize(size fyne.Size) {
	cc.BaseWidget.Resize(size)
	cc.collector.Resize(geometry.NewSize(float64(size.Width), float64(size.Height)))
}

// Refresh redraws the raster.
func (cc *CircuitCanvas) Refresh() {
	cc.raster.Refresh()
}

// GetRenderedOutput returns the last rendered image.
func (cc *CircuitCanvas) GetRenderedOutput() *image.RGBA {
	return cc.lastOutput
}

// draw is the raster drawing function.
func (cc *CircuitCanvas) draw(w, h int) image.Image {
	output := Render(cc.state.Snapshot(), cc.symbols, w, h)
	cc.lastOutput = output
	return output
}

// CreateRenderer implements fyne.Widget.
func (cc *CircuitCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &circuitCanvasRenderer{canvas: cc}
}

type circuitCanvasRenderer struct {
	canvas *CircuitCanvas
}

func (r *circuitCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.raster.Resize(size)
}

func (r *circuitCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(320, 240)
}

func (r *circuitCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *circuitCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.raster}
}

func (r *circuitCanvasRenderer) Destroy() {}
