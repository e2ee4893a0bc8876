package canvas

import (
	"image/color"
	"testing"

	"gatos/internal/app"
	"gatos/internal/assets"
	"gatos/internal/config"
	"gatos/internal/input"
	"gatos/pkg/geometry"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var screen = geometry.NewSize(800, 600)

func newCanvas(t *testing.T) (*CircuitCanvas, *app.State, *input.Collector) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	state := app.NewState(config.Default())
	collector := input.NewCollector(screen)
	cc := NewCircuitCanvas(state, collector, assets.NewProvider(0, assets.DefaultInk, assets.DefaultBody))
	cc.Resize(fyne.NewSize(800, 600))
	return cc, state, collector
}

func mouse(x, y float32, b desktop.MouseButton) *desktop.MouseEvent {
	return &desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}, Button: b}
}

func TestMouseEventsAreFlippedToDevice(t *testing.T) {
	cc, _, collector := newCanvas(t)

	cc.MouseDown(mouse(100, 50, desktop.MouseButtonSecondary))
	f := collector.Frame()
	assert.Equal(t, geometry.Point2D{X: 100, Y: 550}, f.Pointer)
	assert.True(t, f.Secondary.Pressed)
	assert.Equal(t, screen, f.Viewport)

	cc.MouseUp(mouse(120, 60, desktop.MouseButtonSecondary))
	f = collector.Frame()
	assert.Equal(t, geometry.Point2D{X: 120, Y: 540}, f.Pointer)
	assert.True(t, f.Secondary.Released)

	cc.MouseOut()
	assert.False(t, collector.Frame().HasPointer)

	// Middle button is not an editor button.
	cc.MouseDown(mouse(1, 1, desktop.MouseButtonTertiary))
	f = collector.Frame()
	assert.False(t, f.Primary.Pressed)
	assert.False(t, f.Secondary.Pressed)
}

func TestScrollZooms(t *testing.T) {
	cc, state, _ := newCanvas(t)
	var zooms []float64
	cc.OnZoomChange(func(z float64) { zooms = append(zooms, z) })

	cc.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, 1)})
	assert.Less(t, state.Camera().Zoom, 1.0)
	cc.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, 0)})
	assert.Len(t, zooms, 1)
}

func TestRenderPlacedGate(t *testing.T) {
	cc, state, collector := newCanvas(t)
	state.Tick(collector.Frame())

	entry := state.Snapshot().Entries[0].Bounds.Center()
	collector.Press(input.Primary, entry)
	state.Tick(collector.Frame())
	collector.Release(input.Primary, geometry.Point2D{X: 400, Y: 300})
	state.Tick(collector.Frame())

	gates, _, _ := state.Counts()
	require.Equal(t, 1, gates)

	img := cc.draw(800, 600)
	out := cc.GetRenderedOutput()
	require.Same(t, img, out)

	style := config.Default().MustStyle()
	body := out.RGBAAt(398, 302)
	assert.InDelta(t, float64(assets.DefaultBody.R), float64(body.R), 2)

	// Away from gates and grid dots the background shows through.
	assert.Equal(t, style.Background, out.RGBAAt(102, 302))

	// The palette strip covers the top of the canvas.
	assert.NotEqual(t, style.Background, out.RGBAAt(5, 5))
}

func TestRenderWirePreview(t *testing.T) {
	state := app.NewState(config.Default())
	f := input.Frame{Pointer: geometry.Point2D{X: 400, Y: 300}, HasPointer: true, Viewport: screen}
	f.Secondary = input.ButtonState{Pressed: true, Held: true, PressedAt: f.Pointer}
	state.Tick(f)

	f = input.Frame{Pointer: geometry.Point2D{X: 500, Y: 300}, HasPointer: true, Viewport: screen}
	f.Secondary = input.ButtonState{Held: true}
	state.Tick(f)

	out := Render(state.Snapshot(), nil, 800, 600)
	style := config.Default().MustStyle()
	// The rubber band runs from the first node to the pointer.
	assert.Equal(t, style.Preview, out.RGBAAt(450, 300))
}

func TestRenderEmpty(t *testing.T) {
	out := Render(app.Snapshot{Style: config.Style{Background: color.RGBA{R: 1, A: 255}}}, nil, 0, 0)
	assert.Equal(t, 0, out.Bounds().Dx())

	out = Render(app.Snapshot{Style: config.Style{Background: color.RGBA{R: 1, A: 255}}}, nil, 20, 10)
	assert.Equal(t, uint8(1), out.RGBAAt(3, 3).R)
}
