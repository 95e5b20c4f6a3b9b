package callback

import (
	"strings"
	"time"

	"github.com/harunnryd/notedesk/internal/config"
)

// Draft holds the scheduler inputs before a call back is booked.
type Draft struct {
	Reason       string `json:"reason"`
	CaseNumber   string `json:"caseNumber"`
	Date         string `json:"date"`
	Time         Slot   `json:"time"`
	SpecificTime string `json:"specificTime"`
}

// NewDraft returns an empty draft dated today.
func NewDraft(now time.Time) Draft {
	return Draft{Date: Today(now)}
}

// Reset clears every input and dates the draft today.
func (d *Draft) Reset(now time.Time) {
	*d = NewDraft(now)
}

// SelectSlot picks a part of the day and fills the clock time with its
// default. Choosing no slot leaves the clock time as it was.
func (d *Draft) SelectSlot(slot Slot) {
	d.Time = slot
	if slot != SlotNone {
		d.SpecificTime = slot.DefaultTime()
	}
}

// SetSpecificTime sets an explicit clock time and drops the slot.
func (d *Draft) SetSpecificTime(hhmm string) {
	d.SpecificTime = strings.TrimSpace(hhmm)
	d.Time = SlotNone
}

// Ready reports whether the draft would show as a pending call back in
// the notes.
func (d Draft) Ready() bool {
	return strings.TrimSpace(d.Reason) != "" && strings.TrimSpace(d.Date) != ""
}

func (d Draft) TimeDisplay() string {
	return timeDisplay(d.SpecificTime, d.Time)
}

// QuickSchedule fills the draft for a call back hours from now. The slot
// and default reason come from the first rule covering hours; the reason
// is only filled when empty.
func (d *Draft) QuickSchedule(hours float64, now time.Time, rules []config.QuickRule) {
	target := now.Add(time.Duration(hours * float64(time.Hour)))
	d.Date = Today(target)
	d.SpecificTime = target.Format("15:04")

	rule, ok := matchRule(hours, rules)
	if !ok {
		return
	}
	d.Time = Slot(rule.Slot)
	if strings.TrimSpace(d.Reason) == "" {
		d.Reason = rule.Reason
	}
}

func matchRule(hours float64, rules []config.QuickRule) (config.QuickRule, bool) {
	if len(rules) == 0 {
		rules = config.DefaultQuickSchedule()
	}
	for _, r := range rules {
		if r.MaxHours <= 0 || hours <= r.MaxHours {
			return r, true
		}
	}
	return config.QuickRule{}, false
}
