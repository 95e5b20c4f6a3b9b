// Package callback books, tracks and reminds about customer call backs.
package callback

import (
	"sort"
	"strings"
	"time"

	"github.com/harunnryd/notedesk/internal/errors"

	"github.com/oklog/ulid/v2"
)

type DateWindow string

const (
	WindowAll      DateWindow = "all"
	WindowToday    DateWindow = "today"
	WindowTomorrow DateWindow = "tomorrow"
	WindowWeek     DateWindow = "week"
)

func (w DateWindow) Valid() bool {
	switch w {
	case "", WindowAll, WindowToday, WindowTomorrow, WindowWeek:
		return true
	}
	return false
}

// StatusFilter narrows by status; "all" or "" keeps everything.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterPending   StatusFilter = "pending"
	FilterCompleted StatusFilter = "completed"
)

func (f StatusFilter) Valid() bool {
	switch f {
	case "", FilterAll, FilterPending, FilterCompleted:
		return true
	}
	return false
}

type Stats struct {
	Today     int `json:"today"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

// Edit carries replacement values for an existing call back.
type Edit struct {
	Reason       string
	CaseNumber   string
	Date         string
	SpecificTime string
}

// Tracker owns every persisted call back plus the ids booked during the
// current case. Session entries are references, so a completed or edited
// record shows the same way in both views.
type Tracker struct {
	records []CallBack
	session []string
	now     func() time.Time
}

func NewTracker(now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{now: now}
}

// Load replaces state with persisted records and session ids. Session
// ids without a record are dropped.
func (t *Tracker) Load(records []CallBack, session []string) {
	t.records = append([]CallBack(nil), records...)
	t.session = nil
	for _, id := range session {
		if t.index(id) >= 0 {
			t.session = append(t.session, id)
		}
	}
}

func (t *Tracker) Records() []CallBack {
	return append([]CallBack(nil), t.records...)
}

func (t *Tracker) SessionIDs() []string {
	return append([]string(nil), t.session...)
}

// Session returns the call backs booked during this case, in booking
// order.
func (t *Tracker) Session() []CallBack {
	out := make([]CallBack, 0, len(t.session))
	for _, id := range t.session {
		if i := t.index(id); i >= 0 {
			out = append(out, t.records[i])
		}
	}
	return out
}

func (t *Tracker) Get(id string) (CallBack, bool) {
	if i := t.index(id); i >= 0 {
		return t.records[i], true
	}
	return CallBack{}, false
}

func (t *Tracker) index(id string) int {
	for i, r := range t.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// Schedule books the draft. Reason and date are required. On success
// the record joins both the store and the session and the draft resets.
func (t *Tracker) Schedule(d *Draft, details CaseDetails) (CallBack, error) {
	reason := strings.TrimSpace(d.Reason)
	if reason == "" {
		return CallBack{}, errors.InvalidInput("Please select a reason for the call back")
	}
	date := strings.TrimSpace(d.Date)
	if date == "" {
		return CallBack{}, errors.InvalidInput("Please select a date for the call back")
	}
	if err := ValidateDate(date); err != nil {
		return CallBack{}, err
	}
	if !d.Time.Valid() {
		return CallBack{}, errors.InvalidInput("Unknown time slot " + string(d.Time))
	}
	if err := ValidateTime(d.SpecificTime); err != nil {
		return CallBack{}, err
	}

	now := t.now()
	cb := CallBack{
		ID:           ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		Reason:       reason,
		CaseNumber:   strings.TrimSpace(d.CaseNumber),
		Date:         date,
		Time:         d.Time,
		SpecificTime: d.SpecificTime,
		Status:       StatusPending,
		CreatedAt:    now.UTC(),
		CaseDetails:  details,
	}
	t.records = append(t.records, cb)
	t.session = append(t.session, cb.ID)
	d.Reset(now)
	return cb, nil
}

// Complete moves a pending call back to completed. Completed records and
// unknown ids are left alone.
func (t *Tracker) Complete(id string) bool {
	i := t.index(id)
	if i < 0 || t.records[i].Status != StatusPending {
		return false
	}
	now := t.now().UTC()
	t.records[i].Status = StatusCompleted
	t.records[i].CompletedAt = &now
	return true
}

// Update rewrites reason, case number, date and time of a call back in
// any status. The slot is kept; the explicit time wins when rendering.
func (t *Tracker) Update(id string, e Edit) (bool, error) {
	i := t.index(id)
	if i < 0 {
		return false, nil
	}
	reason := strings.TrimSpace(e.Reason)
	if reason == "" {
		return false, errors.InvalidInput("Please select a reason for the call back")
	}
	date := strings.TrimSpace(e.Date)
	if err := ValidateDate(date); err != nil {
		return false, err
	}
	specific := strings.TrimSpace(e.SpecificTime)
	if err := ValidateTime(specific); err != nil {
		return false, err
	}

	r := &t.records[i]
	r.Reason = reason
	r.CaseNumber = strings.TrimSpace(e.CaseNumber)
	r.Date = date
	r.SpecificTime = specific
	return true, nil
}

// Delete removes a call back from the store and the session.
func (t *Tracker) Delete(id string) bool {
	i := t.index(id)
	if i < 0 {
		return false
	}
	t.records = append(t.records[:i], t.records[i+1:]...)
	t.dropSession(id)
	return true
}

// RemoveFromSession takes a call back out of the current case only.
func (t *Tracker) RemoveFromSession(id string) bool {
	return t.dropSession(id)
}

// EditSession loads a session call back into d for rework and takes it
// out of the session. The persisted record stays.
func (t *Tracker) EditSession(id string, d *Draft) bool {
	found := false
	for _, sid := range t.session {
		if sid == id {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	cb, ok := t.Get(id)
	if !ok {
		return false
	}
	*d = Draft{
		Reason:       cb.Reason,
		CaseNumber:   cb.CaseNumber,
		Date:         cb.Date,
		Time:         cb.Time,
		SpecificTime: cb.SpecificTime,
	}
	return t.dropSession(id)
}

func (t *Tracker) ClearSession() bool {
	if len(t.session) == 0 {
		return false
	}
	t.session = nil
	return true
}

func (t *Tracker) dropSession(id string) bool {
	for i, sid := range t.session {
		if sid == id {
			t.session = append(t.session[:i], t.session[i+1:]...)
			return true
		}
	}
	return false
}

// ClearCompleted deletes every completed call back and returns how many.
func (t *Tracker) ClearCompleted() int {
	kept := t.records[:0]
	removed := 0
	for _, r := range t.records {
		if r.Status == StatusCompleted {
			t.dropSession(r.ID)
			removed++
			continue
		}
		kept = append(kept, r)
	}
	t.records = kept
	return removed
}

func (t *Tracker) ClearAll() int {
	n := len(t.records)
	t.records = nil
	t.session = nil
	return n
}

// Filter keeps records matching status and the date window, judged
// against the calendar date of now.
func (t *Tracker) Filter(status StatusFilter, window DateWindow) []CallBack {
	today := Today(t.now())
	tomorrow, _ := AddDays(today, 1)
	weekStart, weekEnd, _ := WeekBounds(today)

	var out []CallBack
	for _, r := range t.records {
		if status != "" && status != FilterAll && string(r.Status) != string(status) {
			continue
		}
		switch window {
		case WindowToday:
			if r.Date != today {
				continue
			}
		case WindowTomorrow:
			if r.Date != tomorrow {
				continue
			}
		case WindowWeek:
			if !datePattern.MatchString(r.Date) || r.Date < weekStart || r.Date > weekEnd {
				continue
			}
		}
		out = append(out, r)
	}
	Sort(out)
	return out
}

// Sorted returns every record ordered by date then effective time.
func (t *Tracker) Sorted() []CallBack {
	out := t.Records()
	Sort(out)
	return out
}

// SplitToday separates the items dated day, keeping the order of both
// halves.
func SplitToday(items []CallBack, day string) (today, others []CallBack) {
	for _, r := range items {
		if r.Date == day {
			today = append(today, r)
		} else {
			others = append(others, r)
		}
	}
	return today, others
}

// Today is the tracker's current calendar date.
func (t *Tracker) Today() string { return Today(t.now()) }

func (t *Tracker) Stats() Stats {
	today := Today(t.now())
	var s Stats
	for _, r := range t.records {
		if r.Date == today {
			s.Today++
		}
		switch r.Status {
		case StatusPending:
			s.Pending++
		case StatusCompleted:
			s.Completed++
		}
	}
	return s
}

// ReminderSweep marks and returns pending call backs starting within
// window of now that have not been reminded yet. A record is reminded
// at most once.
func (t *Tracker) ReminderSweep(now time.Time, window time.Duration) []CallBack {
	var due []CallBack
	for i := range t.records {
		r := &t.records[i]
		if r.Status != StatusPending || r.ReminderShown {
			continue
		}
		at, err := r.Instant(now.Location())
		if err != nil {
			continue
		}
		until := at.Sub(now)
		if until > 0 && until <= window {
			r.ReminderShown = true
			due = append(due, *r)
		}
	}
	return due
}

// Sort orders call backs by date and effective time, keeping booking
// order for ties.
func Sort(items []CallBack) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date != items[j].Date {
			return items[i].Date < items[j].Date
		}
		return items[i].EffectiveTime() < items[j].EffectiveTime()
	})
}
