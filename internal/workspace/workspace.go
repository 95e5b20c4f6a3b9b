// Package workspace holds the state of the case being worked on and
// keeps its persisted copy and rendered texts in step with it.
//
// Every mutation runs the same pipeline: change in memory, write the
// touched keys, then recompute the affected text. A Workspace is not safe
// for concurrent use; the interactive shell drives it from one event
// loop goroutine.
package workspace

import (
	"log/slog"
	"time"

	"github.com/harunnryd/notedesk/internal/callback"
	"github.com/harunnryd/notedesk/internal/config"
	"github.com/harunnryd/notedesk/internal/errors"
	"github.com/harunnryd/notedesk/internal/eventloop"
	"github.com/harunnryd/notedesk/internal/notes"
	"github.com/harunnryd/notedesk/internal/selection"
	"github.com/harunnryd/notedesk/internal/steps"
	"github.com/harunnryd/notedesk/internal/store"
	"github.com/harunnryd/notedesk/internal/taglist"
)

// Sink receives freshly rendered texts.
type Sink interface {
	CaseNotesChanged(text string)
	SpinsChanged(text string, budget notes.Budget)
}

type Options struct {
	Now func() time.Time

	// Post hands a debounced recompute to the owning event loop. When nil
	// texts are recomputed synchronously after each mutation.
	Post func(func()) bool

	Notes         config.NotesConfig
	QuickSchedule []config.QuickRule
	Sink          Sink
}

type Workspace struct {
	kv     store.KV
	now    func() time.Time
	budget notes.BudgetPolicy
	quick  []config.QuickRule
	sink   Sink

	fields map[Form]map[string]string
	lists  map[ListName]*taglist.Strings

	rankings *steps.Rankings
	steps    *steps.List
	library  *steps.Library

	selections map[SelectionName]*selection.Set

	tracker  *callback.Tracker
	draft    callback.Draft
	settings callback.NotificationSettings

	spinsEditedByHand bool

	caseNotesDebounce *eventloop.Debouncer
	spinsDebounce     *eventloop.Debouncer
	draftDebounce     *eventloop.Debouncer
}

// Open hydrates a workspace from kv. Missing or corrupt keys start empty.
func Open(kv store.KV, opts Options) (*Workspace, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	w := &Workspace{
		kv:     kv,
		now:    now,
		budget: notes.BudgetPolicyFrom(opts.Notes),
		quick:  opts.QuickSchedule,
		sink:   opts.Sink,
		fields: map[Form]map[string]string{
			FormCaseNotes: {},
			FormSpins:     {},
		},
		lists: make(map[ListName]*taglist.Strings),
		selections: map[SelectionName]*selection.Set{
			SelectionReasons:      selection.NewReasons(),
			SelectionIssues:       selection.NewIssues(),
			SelectionInstructions: selection.NewInstructions(),
		},
	}

	if opts.Post != nil {
		delays := make([]time.Duration, 3)
		for i, v := range [][2]string{
			{opts.Notes.CaseNotesDebounce, config.DefaultNotesCaseNotesDebounce},
			{opts.Notes.SpinsDebounce, config.DefaultNotesSpinsDebounce},
			{opts.Notes.CallbackDebounce, config.DefaultNotesCallbackDebounce},
		} {
			d, err := config.DurationOrDefault(v[0], v[1])
			if err != nil {
				return nil, errors.InvalidInput("notes debounce: " + err.Error())
			}
			delays[i] = d
		}
		w.caseNotesDebounce = eventloop.NewDebouncer(delays[0], opts.Post)
		w.spinsDebounce = eventloop.NewDebouncer(delays[1], opts.Post)
		w.draftDebounce = eventloop.NewDebouncer(delays[2], opts.Post)
	}

	w.hydrate()
	return w, nil
}

func (w *Workspace) hydrate() {
	for form, ids := range formFields {
		for _, id := range ids {
			if v, ok := w.kv.Get(form.prefix() + id); ok {
				w.fields[form][id] = v
			}
		}
	}

	for _, name := range Lists() {
		l := taglist.NewStrings(name.unique())
		var items []string
		if store.LoadJSON(w.kv, name.key(), &items) {
			l.Load(items)
		}
		w.lists[name] = l
	}

	counts := map[string]int{}
	if stored := map[string]int{}; store.LoadJSON(w.kv, KeyRankings, &stored) {
		counts = stored
	}
	w.rankings = steps.NewRankings(counts)

	w.steps = steps.NewList(w.rankings)
	var saved []steps.Step
	if store.LoadJSON(w.kv, KeySteps, &saved) {
		w.steps.Load(saved)
	}

	var custom []steps.CustomStep
	if !store.LoadJSON(w.kv, KeyCustomSteps, &custom) {
		custom = nil
	}
	w.library = steps.NewLibrary(custom, w.now)

	for name, set := range w.selections {
		tokensKey, customKey := name.keys()
		var tokens []string
		if !store.LoadJSON(w.kv, tokensKey, &tokens) {
			tokens = nil
		}
		set.Load(tokens, store.GetString(w.kv, customKey, ""))
	}

	var records []callback.CallBack
	if !store.LoadJSON(w.kv, KeyCallbacks, &records) {
		records = nil
	}
	var session []string
	if !store.LoadJSON(w.kv, KeySessionCallbacks, &session) {
		session = nil
	}
	w.tracker = callback.NewTracker(w.now)
	w.tracker.Load(records, session)

	w.draft = callback.NewDraft(w.now())
	if stored := w.draft; store.LoadJSON(w.kv, KeyCallbackDraft, &stored) {
		w.draft = stored
		if !w.draft.Time.Valid() {
			w.draft.Time = callback.SlotNone
		}
	}
	if w.draft.Date == "" {
		w.draft.Date = callback.Today(w.now())
	}

	w.settings = callback.LoadSettings(w.kv)
	w.spinsEditedByHand = store.GetFlag(w.kv, KeySpinsEditedByHand)

	slog.Debug("Workspace hydrated",
		"steps", w.steps.Len(),
		"custom_steps", w.library.Len(),
		"callbacks", len(records),
		"session", len(w.tracker.SessionIDs()))
}

type output int

const (
	outCaseNotes output = 1 << iota
	outSpins
	outDraft
)

// changed schedules the recompute of the affected texts. Without an event
// loop the texts are rendered right away.
func (w *Workspace) changed(out output) {
	if w.caseNotesDebounce == nil {
		if out&(outCaseNotes|outDraft) != 0 {
			w.emitCaseNotes()
		}
		if out&outSpins != 0 {
			w.emitSpins()
		}
		return
	}
	if out&outCaseNotes != 0 {
		w.caseNotesDebounce.Trigger(w.emitCaseNotes)
	}
	if out&outDraft != 0 {
		w.draftDebounce.Trigger(w.emitCaseNotes)
	}
	if out&outSpins != 0 {
		w.spinsDebounce.Trigger(w.emitSpins)
	}
}

func (w *Workspace) emitCaseNotes() {
	if w.sink != nil {
		w.sink.CaseNotesChanged(w.CaseNotes())
	}
}

func (w *Workspace) emitSpins() {
	if w.sink != nil {
		text := w.Spins()
		w.sink.SpinsChanged(text, w.budget.Measure(text))
	}
}

// Flush runs any pending recompute now. Call it from the loop goroutine.
func (w *Workspace) Flush() {
	for _, d := range []*eventloop.Debouncer{w.caseNotesDebounce, w.draftDebounce, w.spinsDebounce} {
		if d != nil {
			d.Flush()
		}
	}
}

// Close drops pending recomputes.
func (w *Workspace) Close() {
	for _, d := range []*eventloop.Debouncer{w.caseNotesDebounce, w.draftDebounce, w.spinsDebounce} {
		if d != nil {
			d.Cancel()
		}
	}
}

// CaseNotesInput is the formatter input for the current state.
func (w *Workspace) CaseNotesInput() notes.CaseNotes {
	f := w.fields[FormCaseNotes]
	in := notes.CaseNotes{
		ContactID:             trimmed(f[FieldContactID]),
		SpokenTo:              trimmed(f[FieldSpokenTo]),
		PhoneNumber:           trimmed(f[FieldPhoneNumber]),
		CallBackNo:            trimmed(f[FieldCallBackNo]),
		AccountNumber:         trimmed(f[FieldAccountNumber]),
		VerificationCompleted: trimmed(f[FieldVerificationCompleted]),
		AuthenticationMethod:  trimmed(f[FieldAuthenticationMethod]),
		ReasonOfCall:          w.selections[SelectionReasons].Joined(),
		TroubleshootingSteps:  w.steps.Texts(),
		EquipmentSNs:          w.lists[ListEquipmentSNs].Items(),
		EquipmentModels:       w.lists[ListEquipmentModels].Items(),
		Resolutions:           w.lists[ListResolutions].Items(),
		TicketNumbers:         w.lists[ListTicketNumbers].Items(),
		InfoAssistDocs:        w.lists[ListInfoAssist].Items(),
		AgentAssistSummaries:  w.lists[ListAgentAssistSummaries].Items(),
		FlowParagraphs:        w.lists[ListFlowParagraphs].Items(),
		RogersMastercard:      trimmed(f[FieldRogersMastercard]),
	}

	for _, cb := range w.tracker.Session() {
		in.ScheduledCallbacks = append(in.ScheduledCallbacks, notes.Callback{
			Reason:      cb.Reason,
			CaseNumber:  cb.CaseNumber,
			Date:        cb.Date,
			TimeDisplay: cb.TimeDisplay(),
		})
	}
	if len(in.ScheduledCallbacks) == 0 && w.draft.Ready() {
		in.PendingCallback = &notes.Callback{
			Reason:      trimmed(w.draft.Reason),
			CaseNumber:  trimmed(w.draft.CaseNumber),
			Date:        trimmed(w.draft.Date),
			TimeDisplay: w.draft.TimeDisplay(),
		}
	}
	return in
}

// SpinsInput is the SPINS formatter input for the current state.
func (w *Workspace) SpinsInput() notes.Spins {
	f := w.fields[FormSpins]
	return notes.Spins{
		CustomerName:       trimmed(f[FieldCustomerName]),
		PhoneNumber:        trimmed(f[FieldSpinsPhoneNumber]),
		CaseNumber:         trimmed(f[FieldCaseNumber]),
		EquipmentNameModel: trimmed(f[FieldEquipmentNameModel]),
		SerialNumber:       trimmed(f[FieldSerialNumber]),
		Issues:             w.selections[SelectionIssues].Items(),
		ToolsInfo:          trimmed(f[FieldToolsInfo]),
		Instructions:       w.selections[SelectionInstructions].Items(),
		RepeatServiceCall:  trimmed(f[FieldRepeatServiceCall]),
	}
}

func (w *Workspace) CaseNotes() string { return notes.FormatCaseNotes(w.CaseNotesInput()) }

func (w *Workspace) Spins() string { return notes.FormatSpins(w.SpinsInput()) }

func (w *Workspace) SpinsBudget() notes.Budget { return w.budget.Measure(w.Spins()) }
