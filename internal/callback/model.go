package callback

import (
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Slot is a coarse part of the day used when no clock time is given.
type Slot string

const (
	SlotNone      Slot = ""
	SlotMorning   Slot = "morning"
	SlotAfternoon Slot = "afternoon"
	SlotEvening   Slot = "evening"
)

func (s Slot) Valid() bool {
	switch s {
	case SlotNone, SlotMorning, SlotAfternoon, SlotEvening:
		return true
	}
	return false
}

// DefaultTime is the HH:MM a slot stands for. An unset slot means 10:00.
func (s Slot) DefaultTime() string {
	switch s {
	case SlotAfternoon:
		return "14:00"
	case SlotEvening:
		return "18:00"
	default:
		return "10:00"
	}
}

// Label is the slot as printed in notes and listings. An unset slot
// prints as Evening even though it sorts at 10:00.
func (s Slot) Label() string {
	switch s {
	case SlotMorning:
		return "Morning"
	case SlotAfternoon:
		return "Afternoon"
	default:
		return "Evening"
	}
}

// CaseDetails is copied from the case form when the call back is booked
// and never refreshed afterwards.
type CaseDetails struct {
	ContactID     string `json:"contactId" yaml:"contactId"`
	SpokenTo      string `json:"spokenTo" yaml:"spokenTo"`
	PhoneNumber   string `json:"phoneNumber" yaml:"phoneNumber"`
	CallBackNo    string `json:"callBackNo" yaml:"callBackNo"`
	AccountNumber string `json:"accountNumber" yaml:"accountNumber"`
}

type CallBack struct {
	ID            string      `json:"id" yaml:"id"`
	Reason        string      `json:"reason" yaml:"reason"`
	CaseNumber    string      `json:"caseNumber" yaml:"caseNumber"`
	Date          string      `json:"date" yaml:"date"`
	Time          Slot        `json:"time" yaml:"time"`
	SpecificTime  string      `json:"specificTime" yaml:"specificTime"`
	Status        Status      `json:"status" yaml:"status"`
	CreatedAt     time.Time   `json:"createdAt" yaml:"createdAt"`
	CompletedAt   *time.Time  `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
	ReminderShown bool        `json:"reminderShown" yaml:"reminderShown"`
	CaseDetails   CaseDetails `json:"caseDetails" yaml:"caseDetails"`
}

// EffectiveTime is the explicit time when set, else the slot default.
func (c CallBack) EffectiveTime() string {
	if c.SpecificTime != "" {
		return c.SpecificTime
	}
	return c.Time.DefaultTime()
}

// TimeDisplay is how the notes print the call back time.
func (c CallBack) TimeDisplay() string {
	return timeDisplay(c.SpecificTime, c.Time)
}

// Instant resolves date and effective time in loc.
func (c CallBack) Instant(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", c.Date+" "+c.EffectiveTime(), loc)
}

func (c CallBack) IsPending() bool { return c.Status == StatusPending }

func timeDisplay(specific string, slot Slot) string {
	if specific != "" {
		return specific
	}
	return slot.Label()
}
