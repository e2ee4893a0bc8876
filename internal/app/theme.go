package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// GatosTheme is a dark green theme matching the canvas background.
type GatosTheme struct{}

var _ fyne.Theme = (*GatosTheme)(nil)

func (t *GatosTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return color.NRGBA{R: 0x3F, G: 0x4C, B: 0x3F, A: 0xFF}
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x66, G: 0x7F, B: 0x66, A: 0xFF} // wire green
	case theme.ColorNameForeground:
		return color.NRGBA{R: 0xF0, G: 0xF0, B: 0xE8, A: 0xFF}
	default:
		return theme.DefaultTheme().Color(name, theme.VariantDark)
	}
}

func (t *GatosTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *GatosTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *GatosTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}
