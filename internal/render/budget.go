package render

import (
	"fmt"
	"strings"

	"github.com/harunnryd/notedesk/internal/callback"
	"github.com/harunnryd/notedesk/internal/notes"

	"charm.land/lipgloss/v2"
)

const DefaultBarWidth = 30

// BudgetBar draws the SPINS character budget, coloured by level.
func BudgetBar(b notes.Budget, width int, p Palette) string {
	if width <= 0 {
		width = DefaultBarWidth
	}
	filled := int(b.Percent / 100 * float64(width))
	if filled > width {
		filled = width
	}

	fg := p.OK
	switch b.Level {
	case notes.LevelWarning:
		fg = p.Warning
	case notes.LevelDanger:
		fg = p.Danger
	}

	bar := lipgloss.NewStyle().Foreground(fg).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(p.Muted).Render(strings.Repeat("░", width-filled))
	label := fmt.Sprintf(" %d/%d (%.1f%%)", b.Length, b.Limit, b.Percent)
	if b.Over() {
		label += fmt.Sprintf(" %d over", -b.Remaining())
	}
	return bar + label
}

// Heading styles a section title.
func Heading(title string, p Palette) string {
	return lipgloss.NewStyle().Foreground(p.Accent).Bold(true).Render(title)
}

func Stats(s callback.Stats) string {
	return fmt.Sprintf("Today: %d  Pending: %d  Completed: %d", s.Today, s.Pending, s.Completed)
}
