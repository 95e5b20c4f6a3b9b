package workspace

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/harunnryd/notedesk/internal/callback"
	"github.com/harunnryd/notedesk/internal/catalog"
	"github.com/harunnryd/notedesk/internal/config"
	"github.com/harunnryd/notedesk/internal/errors"
	"github.com/harunnryd/notedesk/internal/eventloop"
	"github.com/harunnryd/notedesk/internal/notes"
	"github.com/harunnryd/notedesk/internal/selection"
	"github.com/harunnryd/notedesk/internal/steps"
	"github.com/harunnryd/notedesk/internal/store"
	"github.com/harunnryd/notedesk/internal/taglist"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu        sync.Mutex
	caseNotes []string
	spins     []string
	budget    notes.Budget
}

func (s *recordingSink) CaseNotesChanged(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.caseNotes = append(s.caseNotes, text)
}

func (s *recordingSink) SpinsChanged(text string, b notes.Budget) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spins = append(s.spins, text)
	s.budget = b
}

func (s *recordingSink) caseNotesCalls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.caseNotes...)
}

func wednesdayMorning() time.Time {
	return time.Date(2024, 3, 13, 9, 0, 0, 0, time.Local)
}

func openTest(t *testing.T, kv store.KV, sink Sink) *Workspace {
	t.Helper()
	w, err := Open(kv, Options{
		Now:  func() time.Time { return wednesdayMorning() },
		Sink: sink,
	})
	require.NoError(t, err)
	return w
}

func addStep(text string) func(*steps.List) bool {
	return func(l *steps.List) bool { return l.Add(text) }
}

func addTag(v string) func(*taglist.Strings) bool {
	return func(l *taglist.Strings) bool { return l.Add(v) }
}

func TestCaseNotesScenario(t *testing.T) {
	kv := store.NewMemory()
	sink := &recordingSink{}
	w := openTest(t, kv, sink)

	require.NoError(t, w.SetField(FormCaseNotes, FieldContactID, "C100"))
	assert.True(t, w.EditSteps(addStep("Checked signal levels")))
	assert.True(t, w.EditSteps(addStep("Rebooted modem")))
	_, err := w.EditList(ListEquipmentSNs, addTag("SN123"))
	require.NoError(t, err)

	want := "Contact ID: C100\n\n" +
		"Troubleshooting Steps:\n" +
		"• Checked signal levels\n" +
		"• Rebooted modem\n\n" +
		"Affected Equipment SN: SN123"

	if diff := cmp.Diff(want, w.CaseNotes()); diff != "" {
		t.Errorf("case notes mismatch (-want +got):\n%s", diff)
	}
	calls := sink.caseNotesCalls()
	require.Len(t, calls, 4)
	assert.Equal(t, want, calls[3])

	raw, ok := kv.Get("caseNotes_contactId")
	require.True(t, ok)
	assert.Equal(t, "C100", raw)
	raw, ok = kv.Get("caseNotes_equipmentSNs")
	require.True(t, ok)
	assert.JSONEq(t, `["SN123"]`, raw)

	reopened := openTest(t, kv, nil)
	assert.Equal(t, want, reopened.CaseNotes())
}

func TestUniqueListsIgnoreDuplicates(t *testing.T) {
	w := openTest(t, store.NewMemory(), nil)

	changed, err := w.EditList(ListTicketNumbers, addTag("T-1"))
	require.NoError(t, err)
	assert.True(t, changed)
	changed, err = w.EditList(ListTicketNumbers, addTag(" T-1 "))
	require.NoError(t, err)
	assert.False(t, changed)

	_, _ = w.EditList(ListEquipmentModels, addTag("XB7"))
	_, _ = w.EditList(ListEquipmentModels, addTag("XB7"))
	models, err := w.List(ListEquipmentModels)
	require.NoError(t, err)
	assert.Equal(t, []string{"XB7", "XB7"}, models)

	_, err = w.EditList("nope", addTag("x"))
	assert.True(t, errors.IsCategory(err, errors.ErrInvalidInput))
}

func TestAuthMethodKeepsOneManagedStep(t *testing.T) {
	w := openTest(t, store.NewMemory(), nil)
	w.EditSteps(addStep("Checked signal levels"))

	for _, m := range []string{catalog.AuthOTP, catalog.AuthPersonalQuestions, catalog.AuthOTP, catalog.AuthNotAuthorized, catalog.AuthNotAuthorized} {
		require.NoError(t, w.SetField(FormCaseNotes, FieldAuthenticationMethod, m))
	}
	texts := w.steps.Texts()
	assert.Equal(t, []string{"Checked signal levels", catalog.AuthorizedUserStep}, texts)
	assert.Contains(t, w.CaseNotes(), "Authentication Method: "+catalog.NotAuthorizedDisplay)

	require.NoError(t, w.SetField(FormCaseNotes, FieldAuthenticationMethod, catalog.AuthPinPassphrase))
	assert.Equal(t, []string{"Checked signal levels"}, w.steps.Texts())

	err := w.SetField(FormCaseNotes, FieldAuthenticationMethod, "Telepathy")
	assert.True(t, errors.IsCategory(err, errors.ErrInvalidInput))
	err = w.SetField(FormCaseNotes, "favouriteColour", "blue")
	assert.True(t, errors.IsCategory(err, errors.ErrInvalidInput))
}

func TestReasonsFeedCaseNotes(t *testing.T) {
	w := openTest(t, store.NewMemory(), nil)

	reasons, err := w.Selection(SelectionReasons)
	require.NoError(t, err)
	token := reasons.Groups()[0].Tokens[0]

	_, err = w.EditSelection(SelectionReasons, func(s *selection.Set) bool { return s.Toggle(token) })
	require.NoError(t, err)
	_, err = w.EditSelection(SelectionReasons, func(s *selection.Set) bool { return s.SetCustom("Billing") })
	require.NoError(t, err)

	assert.Equal(t, "Reason of the call: "+token+", Billing", w.CaseNotes())
}

func TestCallbackPreviewAndSession(t *testing.T) {
	kv := store.NewMemory()
	w := openTest(t, kv, nil)
	require.NoError(t, w.SetField(FormCaseNotes, FieldSpokenTo, "Jordan"))

	w.EditDraft(func(d *callback.Draft) {
		d.Reason = "Follow Up"
		d.SelectSlot(callback.SlotAfternoon)
	})
	assert.Contains(t, w.CaseNotes(), "Call Back Scheduled:\n• Follow Up - 2024-03-13 at 14:00")

	cb, err := w.ScheduleCallback()
	require.NoError(t, err)
	assert.Equal(t, "Jordan", cb.CaseDetails.SpokenTo)
	assert.Equal(t, callback.NewDraft(wednesdayMorning()), w.Draft())
	assert.Contains(t, w.CaseNotes(), "Call Backs Scheduled:\n• Follow Up - 2024-03-13 at 14:00")

	require.NoError(t, w.SetField(FormCaseNotes, FieldSpokenTo, "Sam"))
	got, _ := w.Tracker().Get(cb.ID)
	assert.Equal(t, "Jordan", got.CaseDetails.SpokenTo)

	reopened := openTest(t, kv, nil)
	assert.Equal(t, []string{cb.ID}, reopened.Tracker().SessionIDs())

	assert.True(t, reopened.EditSessionCallback(cb.ID))
	assert.Equal(t, "Follow Up", reopened.Draft().Reason)
	assert.Empty(t, reopened.Tracker().SessionIDs())
	assert.Len(t, reopened.Tracker().Records(), 1)
}

func TestScheduleRequiresReasonAndDate(t *testing.T) {
	w := openTest(t, store.NewMemory(), nil)

	_, err := w.ScheduleCallback()
	assert.True(t, errors.IsCategory(err, errors.ErrInvalidInput))
	assert.Empty(t, w.Tracker().Records())

	w.EditDraft(func(d *callback.Draft) {
		d.Reason = "Follow Up"
		d.Date = ""
	})
	_, err = w.ScheduleCallback()
	assert.True(t, errors.IsCategory(err, errors.ErrInvalidInput))
	assert.Equal(t, "Follow Up", w.Draft().Reason)
}

func TestResetKeepsDurableState(t *testing.T) {
	kv := store.NewMemory()
	w := openTest(t, kv, nil)

	require.NoError(t, w.SetField(FormCaseNotes, FieldContactID, "C100"))
	require.NoError(t, w.SetField(FormSpins, FieldToolsInfo, "Ladder"))
	w.EditSteps(func(l *steps.List) bool { return l.AddFromQuickPick("Rebooted modem") })
	_, err := w.AddCustomStep("Swapped splitter")
	require.NoError(t, err)
	_, _ = w.EditSelection(SelectionIssues, func(s *selection.Set) bool { return s.SetCustom("Noise") })
	w.EditDraft(func(d *callback.Draft) { d.Reason = "Follow Up" })
	_, err = w.ScheduleCallback()
	require.NoError(t, err)
	w.EditDraft(func(d *callback.Draft) { d.Reason = "Customer Request" })
	require.NoError(t, w.SetTheme(ThemeDark))

	w.Reset()

	assert.Equal(t, "", w.CaseNotes())
	assert.Equal(t, "", w.Spins())
	assert.Equal(t, callback.NewDraft(wednesdayMorning()), w.Draft())
	assert.Empty(t, w.Tracker().SessionIDs())
	assert.Len(t, w.Tracker().Records(), 1)
	assert.Len(t, w.CustomSteps(), 1)
	assert.Equal(t, 1, w.rankings.Count("Rebooted modem"))
	assert.Equal(t, ThemeDark, w.Theme())

	for _, key := range kv.Keys() {
		assert.NotContains(t, key, "caseNotes_")
		assert.NotContains(t, key, "spins_")
	}

	reopened := openTest(t, kv, nil)
	assert.Equal(t, "", reopened.CaseNotes())
	assert.Len(t, reopened.Tracker().Records(), 1)
}

func TestAutoPopulateSpins(t *testing.T) {
	w := openTest(t, store.NewMemory(), nil)
	require.NoError(t, w.SetField(FormCaseNotes, FieldSpokenTo, "Jordan"))
	require.NoError(t, w.SetField(FormCaseNotes, FieldPhoneNumber, "555-0100"))
	_, _ = w.EditList(ListEquipmentSNs, addTag("SN1"))
	_, _ = w.EditList(ListEquipmentSNs, addTag("SN2"))
	_, _ = w.EditList(ListEquipmentModels, addTag("XB7"))

	assert.True(t, w.AutoPopulateSpins())
	want := "Customer: Jordan\nPhone: 555-0100\nEquipment: XB7\nS/N: SN1, SN2"
	assert.Equal(t, want, w.Spins())

	require.NoError(t, w.SetField(FormSpins, FieldCustomerName, "J. Doe"))
	require.NoError(t, w.SetField(FormCaseNotes, FieldSpokenTo, "Sam"))
	assert.False(t, w.AutoPopulateSpins())
	assert.Equal(t, "J. Doe", w.Field(FormSpins, FieldCustomerName))

	w.Reset()
	require.NoError(t, w.SetField(FormCaseNotes, FieldSpokenTo, "Alex"))
	assert.True(t, w.AutoPopulateSpins())
	assert.Equal(t, "Customer: Alex", w.Spins())
}

func TestSpinsBudgetReachesSink(t *testing.T) {
	sink := &recordingSink{}
	w := openTest(t, store.NewMemory(), sink)
	require.NoError(t, w.SetField(FormSpins, FieldToolsInfo, "Ladder"))

	assert.Equal(t, []string{"Tools: Ladder"}, sink.spins)
	assert.Equal(t, len("Tools: Ladder"), sink.budget.Length)
	assert.Equal(t, notes.LevelOK, sink.budget.Level)
	assert.Equal(t, sink.budget, w.SpinsBudget())
}

func TestSweepReminders(t *testing.T) {
	kv := store.NewMemory()
	w := openTest(t, kv, nil)
	require.NoError(t, w.SetField(FormCaseNotes, FieldSpokenTo, "Jordan"))
	w.EditDraft(func(d *callback.Draft) {
		d.Reason = "Follow Up"
		d.SetSpecificTime("09:04")
	})
	_, err := w.ScheduleCallback()
	require.NoError(t, err)

	s := w.Settings()
	s.Enabled = false
	w.SetSettings(s)
	assert.Empty(t, w.SweepReminders(wednesdayMorning()))

	s.Enabled = true
	w.SetSettings(s)
	due := w.SweepReminders(wednesdayMorning())
	require.Len(t, due, 1)
	assert.Equal(t, "You have a callback scheduled in 5 minutes: Jordan - Follow Up", due[0].Message)
	assert.Empty(t, w.SweepReminders(wednesdayMorning().Add(time.Minute)))

	reopened := openTest(t, kv, nil)
	assert.True(t, reopened.Tracker().Records()[0].ReminderShown)
	assert.Empty(t, reopened.SweepReminders(wednesdayMorning()))
}

func TestCorruptKeysStartEmpty(t *testing.T) {
	kv := store.NewMemory()
	require.NoError(t, kv.Set(KeyCallbacks, "{not json"))
	require.NoError(t, kv.Set("caseNotes_resolutions", "[1,"))
	require.NoError(t, kv.Set(KeyRankings, "oops"))

	w := openTest(t, kv, nil)
	assert.Empty(t, w.Tracker().Records())
	list, err := w.List(ListResolutions)
	require.NoError(t, err)
	assert.Empty(t, list)
	distinct, total := w.RankingTotals()
	assert.Zero(t, distinct)
	assert.Zero(t, total)
}

func TestMistypedKeysStartEmpty(t *testing.T) {
	kv := store.NewMemory()
	callbacks := `[{"id":"a","reason":"Follow Up","date":"2024-03-14","time":"morning","status":"pending","createdAt":"2024-03-13T09:00:00Z"},` +
		`{"id":"b","reason":"Other","date":"2024-03-14","createdAt":12}]`
	require.NoError(t, kv.Set(KeyCallbacks, callbacks))
	require.NoError(t, kv.Set(KeyRankings, `{"Rebooted modem":3,"Checked cable":"many"}`))
	require.NoError(t, kv.Set(KeyCustomSteps, `[{"id":"x","text":"Swap splitter"},{"id":7}]`))
	require.NoError(t, kv.Set(KeySelectedIssues, `["noSignal",4]`))
	require.NoError(t, kv.Set(KeySessionCallbacks, `["a",{}]`))
	require.NoError(t, kv.Set(KeyCallbackDraft, `{"reason":"Follow Up","date":5}`))

	w := openTest(t, kv, nil)
	assert.Empty(t, w.Tracker().Records())
	assert.Empty(t, w.Tracker().SessionIDs())
	distinct, total := w.RankingTotals()
	assert.Zero(t, distinct)
	assert.Zero(t, total)
	assert.Empty(t, w.CustomSteps())

	issues, err := w.Selection(SelectionIssues)
	require.NoError(t, err)
	assert.True(t, issues.Empty())

	assert.Empty(t, w.Draft().Reason)
	assert.Equal(t, "2024-03-13", w.Draft().Date)

	raw, ok := kv.Get(KeyCallbacks)
	require.True(t, ok)
	assert.Equal(t, callbacks, raw, "opening must not rewrite a corrupt value")
}

func TestClearSpinsKeepsCaseForm(t *testing.T) {
	kv := store.NewMemory()
	sink := &recordingSink{}
	w := openTest(t, kv, sink)

	require.NoError(t, w.SetField(FormCaseNotes, FieldSpokenTo, "Jordan"))
	require.NoError(t, w.SetField(FormSpins, FieldCaseNumber, "CS-9"))
	_, err := w.EditSelection(SelectionIssues, func(s *selection.Set) bool { return s.SetCustom("Loose wall plate") })
	require.NoError(t, err)
	_, err = w.EditSelection(SelectionInstructions, func(s *selection.Set) bool { return s.SetCustom("Bring a ladder") })
	require.NoError(t, err)
	assert.False(t, w.AutoPopulateSpins(), "hand-edited SPINS is not populated")

	assert.True(t, w.ClearSpins())
	assert.Empty(t, w.Field(FormSpins, FieldCaseNumber))
	assert.Equal(t, "Jordan", w.Field(FormCaseNotes, FieldSpokenTo))
	for _, name := range []SelectionName{SelectionIssues, SelectionInstructions} {
		set, err := w.Selection(name)
		require.NoError(t, err)
		assert.True(t, set.Empty(), name)
	}
	for _, key := range kv.Keys() {
		assert.False(t, strings.HasPrefix(key, "spins_"), "key %s survived", key)
	}
	assert.Empty(t, w.Spins())
	assert.False(t, w.ClearSpins(), "second clear changes nothing")

	assert.True(t, w.AutoPopulateSpins())
	assert.Equal(t, "Jordan", w.Field(FormSpins, FieldCustomerName))
}

func TestClearSelection(t *testing.T) {
	kv := store.NewMemory()
	w := openTest(t, kv, nil)

	_, err := w.EditSelection(SelectionReasons, func(s *selection.Set) bool { return s.SetCustom("Billing question") })
	require.NoError(t, err)
	assert.Contains(t, w.CaseNotes(), "Billing question")

	changed, err := w.EditSelection(SelectionReasons, (*selection.Set).Clear)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.NotContains(t, w.CaseNotes(), "Billing question")

	changed, err = w.EditSelection(SelectionReasons, (*selection.Set).Clear)
	require.NoError(t, err)
	assert.False(t, changed)

	reopened := openTest(t, kv, nil)
	set, err := reopened.Selection(SelectionReasons)
	require.NoError(t, err)
	assert.True(t, set.Empty())
}

func TestFlagsAndSearch(t *testing.T) {
	w := openTest(t, store.NewMemory(), nil)
	assert.False(t, w.Flag(FlagRanking))
	require.NoError(t, w.SetFlag(FlagRanking, true))
	assert.True(t, w.Flag(FlagRanking))
	assert.Error(t, w.SetFlag("turboEnabled", true))

	assert.Nil(t, w.SearchSteps("m"))
	w.EditSteps(func(l *steps.List) bool { return l.AddFromQuickPick("Rebooted modem") })
	matches := w.SearchSteps("modem")
	require.NotEmpty(t, matches)
	assert.Equal(t, "Rebooted modem", matches[0].Text)
	assert.Equal(t, 1, matches[0].Count)
}

func TestDebouncedRecompute(t *testing.T) {
	loop := eventloop.New(16)
	loop.Start()
	defer loop.Stop()

	sink := &recordingSink{}
	var w *Workspace
	var openErr error
	require.NoError(t, loop.Do(t.Context(), func() {
		w, openErr = Open(store.NewMemory(), Options{
			Now:  wednesdayMorning,
			Post: loop.Post,
			Notes: config.NotesConfig{
				CaseNotesDebounce: "20ms",
				SpinsDebounce:     "20ms",
				CallbackDebounce:  "20ms",
			},
			Sink: sink,
		})
	}))
	require.NoError(t, openErr)

	for _, v := range []string{"C", "C1", "C10", "C100"} {
		require.NoError(t, loop.Do(t.Context(), func() {
			_ = w.SetField(FormCaseNotes, FieldContactID, v)
		}))
	}

	assert.Eventually(t, func() bool { return len(sink.caseNotesCalls()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, []string{"Contact ID: C100"}, sink.caseNotesCalls())

	require.NoError(t, loop.Do(t.Context(), func() {
		_ = w.SetField(FormCaseNotes, FieldContactID, "C200")
		w.Flush()
	}))
	assert.Equal(t, "Contact ID: C200", sink.caseNotesCalls()[1])
	require.NoError(t, loop.Do(t.Context(), w.Close))
}
