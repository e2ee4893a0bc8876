// Package mainwindow provides the main application window.
package mainwindow

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"
	"time"

	"gatos/internal/app"
	"gatos/internal/assets"
	"gatos/internal/input"
	"gatos/internal/version"
	"gatos/pkg/geometry"
	"gatos/ui/canvas"
	"gatos/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	collector *input.Collector
	canvas    *canvas.CircuitCanvas
	statusBar *widget.Label
	zoomLabel *widget.Label

	stop    context.CancelFunc
	closers []func()
}

// New creates a new main window of the given logical size.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs, symbols *assets.Provider, title string, size fyne.Size) *MainWindow {
	win := fyneApp.NewWindow(title)

	mw := &MainWindow{
		Window:    win,
		app:       fyneApp,
		state:     state,
		prefs:     p,
		collector: input.NewCollector(geometry.NewSize(float64(size.Width), float64(size.Height))),
	}
	mw.canvas = canvas.NewCircuitCanvas(state, mw.collector, symbols)

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	win.Canvas().SetOnTypedKey(mw.onTypedKey)
	mw.Resize(size)
	mw.SetOnClosed(mw.onClosed)

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.statusBar = widget.NewLabel("Ready")
	mw.zoomLabel = widget.NewLabel(zoomText(mw.state.Camera().Zoom))
	mw.canvas.OnZoomChange(func(zoom float64) {
		mw.zoomLabel.SetText(zoomText(zoom))
	})

	toolbar := container.NewHBox(
		widget.NewLabel("Zoom:"),
		widget.NewButton("-", mw.onZoomOut),
		widget.NewButton("+", mw.onZoomIn),
		mw.zoomLabel,
	)

	content := container.NewBorder(
		toolbar,                           // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		mw.canvas,                         // center
	)
	mw.SetContent(content)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.onZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.onZoomOut),
	)
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)
	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	status := map[app.EventType]string{
		app.EventGateSpawned:    "Gate spawned",
		app.EventPickedUp:       "Picked up",
		app.EventPlaced:         "Placed",
		app.EventDiscarded:      "Discarded",
		app.EventWireCaptured:   "Wire captured",
		app.EventWireRasterized: "Wire finished",
		app.EventWireDropped:    "Wire dropped: no length",
	}
	for ev, text := range status {
		text := text
		mw.state.On(ev, func(data interface{}) {
			gates, artifacts, wires := mw.state.Counts()
			mw.updateStatus(fmt.Sprintf("%s (%v) | %d gates, %d wire images, %d open wires",
				text, data, gates, artifacts, wires))
		})
	}
	mw.state.On(app.EventConfigApplied, func(interface{}) {
		mw.zoomLabel.SetText(zoomText(mw.state.Camera().Zoom))
		mw.updateStatus("Configuration reloaded")
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// Start runs the update loop: one state tick per interval, then a redraw.
func (mw *MainWindow) Start(interval time.Duration) {
	ctx, cancel := context.WithCancel(context.Background())
	mw.stop = cancel
	go mw.tickLoop(ctx, interval)
}

func (mw *MainWindow) tickLoop(ctx context.Context, interval time.Duration) {
	defer logPanic()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			mw.state.Tick(mw.collector.Frame())
			mw.canvas.Refresh()
		}
	}
}

// SavePreferences stores window size and zoom.
func (mw *MainWindow) SavePreferences() {
	size := mw.Window.Canvas().Size()
	mw.prefs.SetFloat(prefs.KeyWindowWidth, float64(size.Width))
	mw.prefs.SetFloat(prefs.KeyWindowHeight, float64(size.Height))
	mw.prefs.SetFloat(prefs.KeyZoom, mw.state.Camera().Zoom)
	if err := mw.prefs.Save(); err != nil {
		log.Printf("Prefs: save failed: %v", err)
	}
}

// OnClose registers fn to run when the window closes, after the update loop
// has stopped.
func (mw *MainWindow) OnClose(fn func()) {
	mw.closers = append(mw.closers, fn)
}

func (mw *MainWindow) onClosed() {
	if mw.stop != nil {
		mw.stop()
	}
	mw.SavePreferences()
	for _, fn := range mw.closers {
		fn()
	}
}

// onTypedKey closes the window on Escape.
func (mw *MainWindow) onTypedKey(ev *fyne.KeyEvent) {
	if ev.Name == fyne.KeyEscape {
		mw.Close()
	}
}

// logPanic logs a panic with its stack before letting it continue. Deferred
// at the top of goroutines the window starts.
func logPanic() {
	if r := recover(); r != nil {
		log.Printf("PANIC: %v\n%s", r, debug.Stack())
		panic(r)
	}
}

func (mw *MainWindow) onZoomIn() {
	mw.state.Zoom(true)
	mw.zoomLabel.SetText(zoomText(mw.state.Camera().Zoom))
	mw.canvas.Refresh()
}

func (mw *MainWindow) onZoomOut() {
	mw.state.Zoom(false)
	mw.zoomLabel.SetText(zoomText(mw.state.Camera().Zoom))
	mw.canvas.Refresh()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About gatos",
		fmt.Sprintf("gatos %s\n\n"+
			"Place logic gates from the palette with the left button.\n"+
			"Draw wires with the right button.",
			version.String()),
		mw.Window)
}

func zoomText(zoom float64) string {
	return fmt.Sprintf("%.0f%%", 100/zoom)
}
