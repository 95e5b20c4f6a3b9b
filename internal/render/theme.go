package render

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette is the set of colours used for one theme.
type Palette struct {
	Accent  color.Color
	Text    color.Color
	Muted   color.Color
	OK      color.Color
	Warning color.Color
	Danger  color.Color
}

func PaletteFor(theme string) Palette {
	if theme == "dark" {
		return Palette{
			Accent:  lipgloss.Color("141"),
			Text:    lipgloss.Color("252"),
			Muted:   lipgloss.Color("245"),
			OK:      lipgloss.Color("78"),
			Warning: lipgloss.Color("221"),
			Danger:  lipgloss.Color("203"),
		}
	}
	return Palette{
		Accent:  lipgloss.Color("99"),
		Text:    lipgloss.Color("236"),
		Muted:   lipgloss.Color("241"),
		OK:      lipgloss.Color("28"),
		Warning: lipgloss.Color("172"),
		Danger:  lipgloss.Color("160"),
	}
}
