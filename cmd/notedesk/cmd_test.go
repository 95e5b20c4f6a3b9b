package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harunnryd/notedesk/internal/callback"
	"github.com/harunnryd/notedesk/internal/config"
	"github.com/harunnryd/notedesk/internal/errors"
	"github.com/harunnryd/notedesk/internal/steps"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Log: config.LogConfig{Level: "error"},
		Store: config.StoreConfig{
			Path:         t.TempDir(),
			Profile:      "test",
			LockTimeout:  "1s",
			LockRetry:    "10ms",
			LockMaxRetry: 10,
		},
		Notes: config.NotesConfig{
			CaseNotesDebounce:   config.DefaultNotesCaseNotesDebounce,
			SpinsDebounce:       config.DefaultNotesSpinsDebounce,
			CallbackDebounce:    config.DefaultNotesCallbackDebounce,
			SpinsBudget:         config.DefaultNotesSpinsBudget,
			SpinsWarningPercent: config.DefaultNotesSpinsWarningPercent,
			SpinsDangerPercent:  config.DefaultNotesSpinsDangerPercent,
		},
		Callbacks: config.CallbacksConfig{
			ReminderSchedule: config.DefaultCallbacksReminderSpec,
			QuickSchedule:    config.DefaultQuickSchedule(),
		},
		Loop: config.LoopConfig{InboxSize: config.DefaultLoopInboxSize},
	}
}

// useConfig installs c as the resolved config for the duration of the test.
func useConfig(t *testing.T, c *config.Config) {
	t.Helper()
	prev := cfg
	cfg = c
	t.Cleanup(func() { cfg = prev })
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "notedesk", SilenceUsage: true, SilenceErrors: true}
	addCommands(root)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := execute(context.Background(), root)
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, "notedesk %s", strings.Join(args, " "))
	return out
}

func TestNotesSetAndShow(t *testing.T) {
	useConfig(t, testConfig(t))

	out := mustRun(t, "notes", "show")
	assert.Equal(t, "Case notes are empty.\n", out)

	out = mustRun(t, "notes", "set", "contactId", "C100")
	assert.Equal(t, "✓ contactId updated\n", out)

	out = mustRun(t, "notes", "show")
	assert.Contains(t, out, "Contact ID: C100")

	_, err := run(t, "notes", "set", "verificationCompleted", "Maybe")
	assert.True(t, errors.IsCategory(err, errors.ErrInvalidInput))

	_, err = run(t, "notes", "set", "favouriteColour", "blue")
	assert.True(t, errors.IsCategory(err, errors.ErrInvalidInput))
}

func TestNotesListEditing(t *testing.T) {
	useConfig(t, testConfig(t))

	mustRun(t, "notes", "add", "equipmentSNs", "SN1")
	mustRun(t, "notes", "add", "equipmentSNs", "SN2")

	out := mustRun(t, "notes", "add", "equipmentSNs", "SN1")
	assert.Equal(t, "Nothing added (empty or already listed).\n", out)

	out = mustRun(t, "notes", "move", "equipmentSNs", "2", "up")
	assert.Equal(t, "✓ moved\n", out)

	out = mustRun(t, "notes", "lists", "equipmentsns")
	assert.Equal(t, "equipmentSNs (2)\n  1. SN2\n  2. SN1\n", out)

	out = mustRun(t, "notes", "remove", "equipmentSNs", "5")
	assert.Equal(t, "No entry at that position.\n", out)

	_, err := run(t, "notes", "add", "pets", "cat")
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "unknown list")
}

func TestStepsAddAndList(t *testing.T) {
	useConfig(t, testConfig(t))

	out := mustRun(t, "steps", "list")
	assert.Equal(t, "No troubleshooting steps yet.\n", out)

	mustRun(t, "steps", "add", "Rebooted modem")
	mustRun(t, "steps", "add", "Checked signal levels")

	out = mustRun(t, "steps", "list")
	assert.Equal(t, "1. Rebooted modem\n2. Checked signal levels\n", out)

	out = mustRun(t, "notes", "show")
	assert.Contains(t, out, "Rebooted modem")
}

func TestCallbackScheduleAndList(t *testing.T) {
	useConfig(t, testConfig(t))

	mustRun(t, "notes", "set", "spokenTo", "Jordan")

	_, err := run(t, "callback", "schedule")
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.ErrInvalidInput))

	_, err = run(t, "callback", "draft", "--slot", "midnight")
	assert.True(t, errors.IsCategory(err, errors.ErrInvalidInput))

	mustRun(t, "callback", "draft", "--reason", "Follow Up", "--case", "CS-1", "--date", "2030-01-02", "--slot", "afternoon")

	out := mustRun(t, "callback", "schedule")
	assert.Contains(t, out, "January 2, 2030")

	out = mustRun(t, "callback", "list", "-o", "json")
	var listed []callback.CallBack
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Follow Up", listed[0].Reason)
	assert.Equal(t, "CS-1", listed[0].CaseNumber)
	assert.Equal(t, "Jordan", listed[0].CaseDetails.SpokenTo)
	assert.Equal(t, callback.StatusPending, listed[0].Status)

	out = mustRun(t, "notes", "show")
	assert.Contains(t, out, "Call Backs Scheduled:")

	out = mustRun(t, "callback", "complete", listed[0].ID)
	assert.Contains(t, out, "✓")

	_, err = run(t, "callback", "list", "--window", "fortnight")
	assert.True(t, errors.IsCategory(err, errors.ErrInvalidInput))
}

func TestDuplicateLibraryStepIsOnlyAWarning(t *testing.T) {
	useConfig(t, testConfig(t))

	mustRun(t, "steps", "library", "add", "Swap splitter")

	out, err := run(t, "steps", "library", "add", "Swap splitter")
	require.NoError(t, err)
	assert.Equal(t, "⚠ This step is already saved!\n", out)

	var saved []steps.CustomStep
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "steps", "library", "list", "-o", "json")), &saved))
	assert.Len(t, saved, 1)
}

func TestValidationErrorsPrintTheirMessage(t *testing.T) {
	useConfig(t, testConfig(t))

	out, err := run(t, "steps", "rank", "--category", "radio")
	assert.True(t, errors.IsCategory(err, errors.ErrInvalidInput))
	assert.Equal(t, "✗ unknown step category \"radio\"\n", out)

	out, err = run(t, "callback", "draft", "--slot", "midnight")
	require.Error(t, err)
	assert.Equal(t, "✗ slot must be morning, afternoon or evening\n", out)
}

func TestSpinsAndSelectionClear(t *testing.T) {
	useConfig(t, testConfig(t))

	mustRun(t, "notes", "set", "spokenTo", "Jordan")
	mustRun(t, "spins", "set", "caseNumber", "CS-9")
	mustRun(t, "spins", "issues", "custom", "Loose wall plate")
	assert.Contains(t, mustRun(t, "spins", "show", "--populate=false"), "Loose wall plate")

	assert.Equal(t, "✓ issues cleared\n", mustRun(t, "spins", "issues", "clear"))
	assert.Equal(t, "Nothing selected.\n", mustRun(t, "spins", "issues", "clear"))
	assert.NotContains(t, mustRun(t, "spins", "show", "--populate=false"), "Loose wall plate")

	assert.Equal(t, "✓ SPINS cleared\n", mustRun(t, "spins", "clear"))
	assert.NotContains(t, mustRun(t, "spins", "show", "--populate=false"), "CS-9")
	assert.Contains(t, mustRun(t, "notes", "show"), "Jordan")

	assert.Equal(t, "✓ SPINS populated\n", mustRun(t, "spins", "populate"))
}

func TestParseIndex(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "1", want: 0},
		{in: " 3 ", want: 2},
		{in: "0", wantErr: true},
		{in: "-2", wantErr: true},
		{in: "two", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseIndex(tt.in)
			if tt.wantErr {
				assert.True(t, errors.IsCategory(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMove(t *testing.T) {
	m, err := parseMove("2", "UP")
	require.NoError(t, err)
	assert.True(t, m.adjacent)
	assert.Equal(t, 1, m.from)

	m, err = parseMove("1", "3")
	require.NoError(t, err)
	assert.False(t, m.adjacent)
	assert.Equal(t, 0, m.from)
	assert.Equal(t, 2, m.to)

	_, err = parseMove("1", "sideways")
	assert.Error(t, err)
}

func TestShellRunsCommandsAgainstOneProfile(t *testing.T) {
	c := testConfig(t)
	useConfig(t, c)

	in := strings.NewReader("notes set contactId C9\n\nnotes add equipmentSNs 'SN 1'\nnotes show\nbogus\nexit\nnotes show\n")
	var out bytes.Buffer

	ctx := context.Background()
	sh, err := NewShell(ctx, c, in, &out, true)
	require.NoError(t, err)
	require.NoError(t, sh.Run(ctx))
	require.NoError(t, sh.Close())

	text := out.String()
	assert.Contains(t, text, "✓ contactId updated")
	assert.Contains(t, text, "Contact ID: C9")
	assert.Contains(t, text, "SN 1")
	assert.Contains(t, text, "Error:")
	assert.Equal(t, 1, strings.Count(text, "Contact ID: C9"), "commands after exit must not run")

	// The profile is released and the state persisted.
	out2 := mustRun(t, "notes", "show")
	assert.Contains(t, out2, "Contact ID: C9")
}

func TestShellStopsAtEndOfInput(t *testing.T) {
	c := testConfig(t)
	useConfig(t, c)

	var out bytes.Buffer
	sh, err := NewShell(context.Background(), c, strings.NewReader("steps add Rebooted"), &out, true)
	require.NoError(t, err)
	require.NoError(t, sh.Run(context.Background()))
	require.NoError(t, sh.Close())

	assert.Contains(t, mustRun(t, "steps", "list"), "1. Rebooted")
}

func TestConfigInitAndView(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	useConfig(t, nil)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil); rootCmd.SetArgs(nil) })

	rootCmd.SetArgs([]string{"config", "init"})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(filepath.Join(home, ".notedesk", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, embeddedDefaultConfig, data)

	out.Reset()
	rootCmd.SetArgs([]string{"config", "view"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "spins_budget: 976")
	assert.Contains(t, out.String(), "profile: default")
}

func TestProfileUnlockWithoutLock(t *testing.T) {
	useConfig(t, testConfig(t))

	var out bytes.Buffer
	profileUnlockCmd.SetOut(&out)
	t.Cleanup(func() { profileUnlockCmd.SetOut(nil) })

	require.NoError(t, profileUnlockCmd.RunE(profileUnlockCmd, nil))
	assert.Contains(t, out.String(), "No lock removed.")
}
