// Package colorutil provides shared colours and colour parsing for the editor.
package colorutil

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Editor colours.
var (
	Black      = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Background = FromUnit(0.25, 0.3, 0.25, 1)
	Grid       = FromUnit(0.3, 0.36, 0.3, 1)
	Wire       = FromUnit(0.4, 0.5, 0.4, 1)
	Preview    = premultiply(color.NRGBA{R: 255, G: 213, B: 0, A: 200})
	Palette    = color.RGBA{R: 36, G: 42, B: 36, A: 230}
	Entry      = color.RGBA{R: 64, G: 76, B: 64, A: 255}
)

// FromUnit converts 0..1 channel values to RGBA. Channels are truncated.
func FromUnit(r, g, b, a float64) color.RGBA {
	return color.RGBA{R: unit(r), G: unit(g), B: unit(b), A: unit(a)}
}

func unit(v float64) uint8 {
	return uint8(math.Max(0, math.Min(1, v)) * 255)
}

func premultiply(c color.NRGBA) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

// ParseHex parses "#rrggbb" or "#rrggbbaa" as straight (non-premultiplied)
// alpha and returns the premultiplied colour. The leading '#' is optional.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("colour %q: want 6 or 8 hex digits", s)
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return premultiply(color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}), nil
}

// Hex formats c as "#rrggbbaa" with straight alpha.
func Hex(c color.Color) string {
	r := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x%02x", r.R, r.G, r.B, r.A)
}
