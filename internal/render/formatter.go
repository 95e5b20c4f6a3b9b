// Package render turns tracker, ranking and library data into terminal
// output.
package render

import (
	"fmt"
	"strings"

	"github.com/harunnryd/notedesk/internal/callback"
	"github.com/harunnryd/notedesk/internal/steps"
)

type OutputFormat string

const (
	OutputFormatTable OutputFormat = "table"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
)

type Formatter interface {
	FormatCallbacks([]callback.CallBack) (string, error)
	FormatRankings([]steps.Ranked) (string, error)
	FormatCustomSteps([]steps.CustomStep) (string, error)
	FormatMatches([]steps.Match) (string, error)
}

type FormatterFactory struct {
	palette Palette
}

// NewFormatterFactory returns a factory whose tables use the palette of
// theme.
func NewFormatterFactory(theme string) *FormatterFactory {
	return &FormatterFactory{palette: PaletteFor(theme)}
}

func (f *FormatterFactory) Create(format OutputFormat) (Formatter, error) {
	switch format {
	case OutputFormatTable:
		return NewTableFormatter(f.palette), nil
	case OutputFormatJSON:
		return NewJSONFormatter(), nil
	case OutputFormatYAML:
		return NewYAMLFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (supported: table, json, yaml)", format)
	}
}

func ParseOutputFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(s))
	switch format {
	case OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("invalid output format: %s (supported: table, json, yaml)", s)
	}
}
