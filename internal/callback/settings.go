package callback

import (
	"fmt"
	"time"

	"github.com/harunnryd/notedesk/internal/store"
)

const SettingsKey = "notificationSettings"

type NotificationSettings struct {
	Enabled                     bool `json:"enabled"`
	ReminderTime                int  `json:"reminderTime"`
	SoundEnabled                bool `json:"soundEnabled"`
	BrowserNotificationsEnabled bool `json:"browserNotificationsEnabled"`
}

func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Enabled:      true,
		ReminderTime: 5,
		SoundEnabled: true,
	}
}

// Window is the reminder lead time.
func (s NotificationSettings) Window() time.Duration {
	return time.Duration(s.ReminderTime) * time.Minute
}

// LoadSettings reads stored settings over the defaults; fields missing
// from storage keep their default.
func LoadSettings(kv store.KV) NotificationSettings {
	s := DefaultNotificationSettings()
	if !store.LoadJSON(kv, SettingsKey, &s) {
		return DefaultNotificationSettings()
	}
	if s.ReminderTime < 0 {
		s.ReminderTime = DefaultNotificationSettings().ReminderTime
	}
	return s
}

func SaveSettings(kv store.KV, s NotificationSettings) {
	store.SaveJSON(kv, SettingsKey, s)
}

// ReminderMessage is the text shown for a due call back.
func ReminderMessage(cb CallBack, s NotificationSettings) string {
	return fmt.Sprintf("You have a callback scheduled in %d minutes: %s - %s",
		s.ReminderTime, cb.CaseDetails.SpokenTo, cb.Reason)
}
