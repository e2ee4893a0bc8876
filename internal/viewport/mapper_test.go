package viewport

import (
	"math"
	"testing"

	"gatos/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreenToWorld(t *testing.T) {
	viewport := geometry.NewSize(800, 600)

	tests := []struct {
		name    string
		camera  Camera
		pointer geometry.Point2D
		want    geometry.Point2D
	}{
		{"centre maps to camera", NewCamera(), geometry.Point2D{X: 400, Y: 300}, geometry.Point2D{}},
		{"bottom left corner", NewCamera(), geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: -400, Y: -300}},
		{"top right corner", NewCamera(), geometry.Point2D{X: 800, Y: 600}, geometry.Point2D{X: 400, Y: 300}},
		{
			"panned camera",
			Camera{Position: geometry.Point2D{X: 100, Y: -50}, Zoom: 1, Far: 1000},
			geometry.Point2D{X: 400, Y: 300},
			geometry.Point2D{X: 100, Y: -50},
		},
		{
			"zoomed camera",
			Camera{Zoom: 0.5, Far: 1000},
			geometry.Point2D{X: 800, Y: 300},
			geometry.Point2D{X: 200, Y: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.camera.ScreenToWorld(tt.pointer, viewport)
			require.NoError(t, err)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
		})
	}
}

func TestWorldToScreenRoundTrip(t *testing.T) {
	viewport := geometry.NewSize(1024, 768)
	cam := Camera{Position: geometry.Point2D{X: 35, Y: 80}, Zoom: 1.25, Far: 1000}

	pointer := geometry.Point2D{X: 123, Y: 456}
	world, err := cam.ScreenToWorld(pointer, viewport)
	require.NoError(t, err)

	back := cam.WorldToScreen(world, viewport)
	assert.InDelta(t, pointer.X, back.X, 1e-9)
	assert.InDelta(t, pointer.Y, back.Y, 1e-9)
}

func TestScreenToWorldRejectsEmptyViewport(t *testing.T) {
	_, err := NewCamera().ScreenToWorld(geometry.Point2D{X: 1, Y: 1}, geometry.Size{})
	assert.Error(t, err)
}

func TestSnapToGrid(t *testing.T) {
	tests := []struct {
		in, want geometry.Point2D
	}{
		{geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 0, Y: 0}},
		{geometry.Point2D{X: 12, Y: 7}, geometry.Point2D{X: 10, Y: 5}},
		{geometry.Point2D{X: 2.5, Y: -2.5}, geometry.Point2D{X: 5, Y: -5}},
		{geometry.Point2D{X: 7.4, Y: -7.6}, geometry.Point2D{X: 5, Y: -10}},
		{geometry.Point2D{X: 10000, Y: 10000}, geometry.Point2D{X: 10000, Y: 10000}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SnapToGrid(tt.in, GridPitch), "snap %v", tt.in)
	}
}

func TestSnapToGridIdempotent(t *testing.T) {
	for x := -50.0; x <= 50; x += 0.7 {
		for y := -50.0; y <= 50; y += 1.3 {
			once := SnapToGrid(geometry.Point2D{X: x, Y: y}, GridPitch)
			twice := SnapToGrid(once, GridPitch)
			assert.Equal(t, once, twice)
			assert.Zero(t, math.Mod(once.X, GridPitch))
			assert.Zero(t, math.Mod(once.Y, GridPitch))
		}
	}
}

func TestCameraZoomClamp(t *testing.T) {
	cam := NewCamera().WithZoom(100)
	assert.Equal(t, MaxZoom, cam.Zoom)
	cam = cam.WithZoom(0)
	assert.Equal(t, MinZoom, cam.Zoom)
	assert.InDelta(t, 1/zoomStep, NewCamera().ZoomIn().Zoom, 1e-12)
}
