package render

import (
	"encoding/json"

	"github.com/harunnryd/notedesk/internal/callback"
	"github.com/harunnryd/notedesk/internal/steps"
)

type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func marshalJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (f *JSONFormatter) FormatCallbacks(items []callback.CallBack) (string, error) {
	return marshalJSON(items)
}

func (f *JSONFormatter) FormatRankings(items []steps.Ranked) (string, error) {
	return marshalJSON(items)
}

func (f *JSONFormatter) FormatCustomSteps(items []steps.CustomStep) (string, error) {
	return marshalJSON(items)
}

func (f *JSONFormatter) FormatMatches(items []steps.Match) (string, error) {
	return marshalJSON(items)
}
