package render

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/harunnryd/notedesk/internal/callback"
	"github.com/harunnryd/notedesk/internal/steps"
)

type YAMLFormatter struct{}

func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

func marshalYAML(v any) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (f *YAMLFormatter) FormatCallbacks(items []callback.CallBack) (string, error) {
	return marshalYAML(items)
}

func (f *YAMLFormatter) FormatRankings(items []steps.Ranked) (string, error) {
	return marshalYAML(items)
}

func (f *YAMLFormatter) FormatCustomSteps(items []steps.CustomStep) (string, error) {
	return marshalYAML(items)
}

func (f *YAMLFormatter) FormatMatches(items []steps.Match) (string, error) {
	return marshalYAML(items)
}
