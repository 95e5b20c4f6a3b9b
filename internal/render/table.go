package render

import (
	"strconv"

	"github.com/harunnryd/notedesk/internal/callback"
	"github.com/harunnryd/notedesk/internal/notes"
	"github.com/harunnryd/notedesk/internal/steps"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

type TableFormatter struct {
	headerStyle  lipgloss.Style
	oddRowStyle  lipgloss.Style
	evenRowStyle lipgloss.Style
	borderStyle  lipgloss.Style
}

func NewTableFormatter(p Palette) *TableFormatter {
	return &TableFormatter{
		headerStyle: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true).
			Align(lipgloss.Center).
			Padding(0, 1),
		oddRowStyle: lipgloss.NewStyle().
			Foreground(p.Text).
			Padding(0, 1),
		evenRowStyle: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(0, 1),
		borderStyle: lipgloss.NewStyle().
			Foreground(p.Accent),
	}
}

func (f *TableFormatter) newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(f.borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return f.headerStyle
			case row%2 == 0:
				return f.evenRowStyle
			default:
				return f.oddRowStyle
			}
		}).
		Headers(headers...)
}

func (f *TableFormatter) FormatCallbacks(items []callback.CallBack) (string, error) {
	if len(items) == 0 {
		return "No call backs found", nil
	}

	t := f.newTable("ID", "Date", "Time", "Reason", "Case", "Customer", "Status")
	for _, cb := range items {
		t.Row(
			cb.ID,
			callback.FormatLong(cb.Date),
			cb.TimeDisplay(),
			notes.Truncate(cb.Reason, 25),
			cb.CaseNumber,
			notes.Truncate(cb.CaseDetails.SpokenTo, 20),
			string(cb.Status),
		)
	}
	return t.String(), nil
}

func (f *TableFormatter) FormatRankings(items []steps.Ranked) (string, error) {
	if len(items) == 0 {
		return "No step usage recorded", nil
	}

	t := f.newTable("#", "Step", "Category", "Uses")
	for i, r := range items {
		t.Row(
			strconv.Itoa(i+1),
			notes.Truncate(r.Text, 50),
			r.Category.Label(),
			strconv.Itoa(r.Count),
		)
	}
	return t.String(), nil
}

func (f *TableFormatter) FormatCustomSteps(items []steps.CustomStep) (string, error) {
	if len(items) == 0 {
		return "No custom steps saved", nil
	}

	t := f.newTable("ID", "Step", "Created")
	for _, s := range items {
		t.Row(s.ID, notes.Truncate(s.Text, 60), s.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return t.String(), nil
}

func (f *TableFormatter) FormatMatches(items []steps.Match) (string, error) {
	if len(items) == 0 {
		return "No matching steps", nil
	}

	t := f.newTable("Step", "Category", "Uses")
	for _, m := range items {
		t.Row(notes.Truncate(m.Text, 60), m.Category.Label(), strconv.Itoa(m.Count))
	}
	return t.String(), nil
}
