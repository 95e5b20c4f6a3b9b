package workspace

import (
	"time"

	"github.com/harunnryd/notedesk/internal/callback"
	"github.com/harunnryd/notedesk/internal/store"
)

// Tracker exposes the call back tracker for reading. Mutate through the
// workspace methods so changes are persisted.
func (w *Workspace) Tracker() *callback.Tracker { return w.tracker }

func (w *Workspace) Draft() callback.Draft { return w.draft }

// EditDraft applies fn to the scheduler draft.
func (w *Workspace) EditDraft(fn func(*callback.Draft)) {
	before := w.draft
	fn(&w.draft)
	if w.draft == before {
		return
	}
	w.saveDraft()
	w.changed(outDraft)
}

// QuickSchedule fills the draft for a call back hours from now.
func (w *Workspace) QuickSchedule(hours float64) {
	w.EditDraft(func(d *callback.Draft) {
		d.QuickSchedule(hours, w.now(), w.quick)
	})
}

func (w *Workspace) saveDraft() {
	store.SaveJSON(w.kv, KeyCallbackDraft, w.draft)
}

func (w *Workspace) saveCallbacks() {
	store.SaveJSON(w.kv, KeyCallbacks, w.tracker.Records())
	store.SaveJSON(w.kv, KeySessionCallbacks, w.tracker.SessionIDs())
}

func (w *Workspace) caseDetails() callback.CaseDetails {
	f := w.fields[FormCaseNotes]
	return callback.CaseDetails{
		ContactID:     trimmed(f[FieldContactID]),
		SpokenTo:      trimmed(f[FieldSpokenTo]),
		PhoneNumber:   trimmed(f[FieldPhoneNumber]),
		CallBackNo:    trimmed(f[FieldCallBackNo]),
		AccountNumber: trimmed(f[FieldAccountNumber]),
	}
}

// ScheduleCallback books the draft with a snapshot of the case details.
func (w *Workspace) ScheduleCallback() (callback.CallBack, error) {
	cb, err := w.tracker.Schedule(&w.draft, w.caseDetails())
	if err != nil {
		return callback.CallBack{}, err
	}
	w.saveCallbacks()
	w.saveDraft()
	w.changed(outCaseNotes)
	return cb, nil
}

// mutateCallbacks persists and re-renders when changed is set.
func (w *Workspace) mutateCallbacks(changed bool) bool {
	if changed {
		w.saveCallbacks()
		w.changed(outCaseNotes)
	}
	return changed
}

func (w *Workspace) CompleteCallback(id string) bool {
	return w.mutateCallbacks(w.tracker.Complete(id))
}

func (w *Workspace) UpdateCallback(id string, e callback.Edit) (bool, error) {
	ok, err := w.tracker.Update(id, e)
	if err != nil {
		return false, err
	}
	return w.mutateCallbacks(ok), nil
}

func (w *Workspace) DeleteCallback(id string) bool {
	return w.mutateCallbacks(w.tracker.Delete(id))
}

func (w *Workspace) RemoveSessionCallback(id string) bool {
	return w.mutateCallbacks(w.tracker.RemoveFromSession(id))
}

// EditSessionCallback moves a session call back back into the draft.
func (w *Workspace) EditSessionCallback(id string) bool {
	if !w.tracker.EditSession(id, &w.draft) {
		return false
	}
	w.saveDraft()
	return w.mutateCallbacks(true)
}

func (w *Workspace) ClearCompletedCallbacks() int {
	n := w.tracker.ClearCompleted()
	w.mutateCallbacks(n > 0)
	return n
}

func (w *Workspace) ClearAllCallbacks() int {
	n := w.tracker.ClearAll()
	w.mutateCallbacks(n > 0)
	return n
}

func (w *Workspace) Settings() callback.NotificationSettings { return w.settings }

func (w *Workspace) SetSettings(s callback.NotificationSettings) {
	if s.ReminderTime < 0 {
		s.ReminderTime = callback.DefaultNotificationSettings().ReminderTime
	}
	w.settings = s
	callback.SaveSettings(w.kv, s)
}

// SweepReminders marks call backs due within the reminder window and
// returns their reminders. Nothing fires while notifications are off.
func (w *Workspace) SweepReminders(now time.Time) []callback.Reminder {
	if !w.settings.Enabled {
		return nil
	}
	due := w.tracker.ReminderSweep(now, w.settings.Window())
	if len(due) == 0 {
		return nil
	}
	w.saveCallbacks()

	out := make([]callback.Reminder, 0, len(due))
	for _, cb := range due {
		out = append(out, callback.Reminder{
			CallBack: cb,
			Message:  callback.ReminderMessage(cb, w.settings),
		})
	}
	return out
}
