package render

import (
	"strings"
	"testing"
	"time"

	"github.com/harunnryd/notedesk/internal/callback"
	"github.com/harunnryd/notedesk/internal/catalog"
	"github.com/harunnryd/notedesk/internal/notes"
	"github.com/harunnryd/notedesk/internal/steps"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCallbacks() []callback.CallBack {
	return []callback.CallBack{
		{
			ID:           "01HS0000000000000000000001",
			Reason:       "Follow Up",
			CaseNumber:   "CS-1",
			Date:         "2024-03-13",
			Time:         callback.SlotAfternoon,
			SpecificTime: "14:00",
			Status:       callback.StatusPending,
			CreatedAt:    time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC),
			CaseDetails:  callback.CaseDetails{SpokenTo: "Jordan"},
		},
	}
}

func TestFormatterFactory_Create(t *testing.T) {
	factory := NewFormatterFactory("light")

	tests := []struct {
		name    string
		format  OutputFormat
		wantErr bool
	}{
		{name: "table format", format: OutputFormatTable},
		{name: "json format", format: OutputFormatJSON},
		{name: "yaml format", format: OutputFormatYAML},
		{name: "invalid format", format: OutputFormat("csv"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := factory.Create(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("Create() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && f == nil {
				t.Error("Create() returned nil formatter for valid format")
			}
		})
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{input: "TABLE", want: OutputFormatTable},
		{input: "json", want: OutputFormatJSON},
		{input: "Yaml", want: OutputFormatYAML},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOutputFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseOutputFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTableFormatter(t *testing.T) {
	f := NewTableFormatter(PaletteFor("dark"))

	out, err := f.FormatCallbacks(sampleCallbacks())
	require.NoError(t, err)
	assert.Contains(t, out, "March 13, 2024")
	assert.Contains(t, out, "Follow Up")
	assert.Contains(t, out, "Jordan")

	out, err = f.FormatCallbacks(nil)
	require.NoError(t, err)
	assert.Equal(t, "No call backs found", out)

	out, err = f.FormatRankings([]steps.Ranked{{Text: "Rebooted modem", Count: 3, Category: catalog.CategoryInternet}})
	require.NoError(t, err)
	assert.Contains(t, out, "Rebooted modem")
	assert.Contains(t, out, catalog.CategoryInternet.Label())

	out, err = f.FormatMatches(nil)
	require.NoError(t, err)
	assert.Equal(t, "No matching steps", out)

	out, err = f.FormatCustomSteps(nil)
	require.NoError(t, err)
	assert.Equal(t, "No custom steps saved", out)
}

func TestJSONAndYAMLFormatters(t *testing.T) {
	out, err := NewJSONFormatter().FormatCallbacks(sampleCallbacks())
	require.NoError(t, err)
	assert.Contains(t, out, `"specificTime": "14:00"`)
	assert.Contains(t, out, `"spokenTo": "Jordan"`)

	out, err = NewYAMLFormatter().FormatCallbacks(sampleCallbacks())
	require.NoError(t, err)
	assert.Contains(t, out, "specificTime:")
	assert.Contains(t, out, "14:00")
	assert.Contains(t, out, "spokenTo: Jordan")
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestBudgetBar(t *testing.T) {
	p := PaletteFor("light")

	out := BudgetBar(notes.Budget{Length: 488, Limit: 976, Percent: 50, Level: notes.LevelOK}, 10, p)
	assert.Equal(t, 5, strings.Count(out, "█"))
	assert.Equal(t, 5, strings.Count(out, "░"))
	assert.Contains(t, out, "488/976 (50.0%)")

	out = BudgetBar(notes.Budget{Length: 980, Limit: 976, Percent: 100, Level: notes.LevelDanger}, 10, p)
	assert.Equal(t, 10, strings.Count(out, "█"))
	assert.Contains(t, out, "4 over")
}

func TestStats(t *testing.T) {
	assert.Equal(t, "Today: 1  Pending: 2  Completed: 3", Stats(callback.Stats{Today: 1, Pending: 2, Completed: 3}))
}
