package callback

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/harunnryd/notedesk/internal/config"
	"github.com/harunnryd/notedesk/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type trackerSweeper struct {
	mu       sync.Mutex
	tracker  *Tracker
	settings NotificationSettings
}

func (s *trackerSweeper) SweepReminders(now time.Time) []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Reminder
	for _, cb := range s.tracker.ReminderSweep(now, s.settings.Window()) {
		out = append(out, Reminder{CallBack: cb, Message: ReminderMessage(cb, s.settings)})
	}
	return out
}

func TestPoller_RunOnce(t *testing.T) {
	now := wednesday()
	tr := NewTracker(clockAt(now))
	d := Draft{Reason: "Modem swap", Date: "2024-03-13", SpecificTime: "09:03"}
	_, err := tr.Schedule(&d, CaseDetails{SpokenTo: "Jordan"})
	require.NoError(t, err)
	d = Draft{Reason: "Broken", Date: "2024-03-13", SpecificTime: "09:02"}
	_, err = tr.Schedule(&d, CaseDetails{SpokenTo: "Sam"})
	require.NoError(t, err)

	var got []string
	notifier := NotifierFunc(func(ctx context.Context, r Reminder) error {
		if r.CallBack.Reason == "Broken" {
			return fmt.Errorf("speaker unplugged")
		}
		got = append(got, r.Message)
		return nil
	})

	p, err := NewPoller(&trackerSweeper{tracker: tr, settings: DefaultNotificationSettings()}, notifier, config.CallbacksConfig{}, clockAt(now))
	require.NoError(t, err)

	assert.Equal(t, 1, p.RunOnce(context.Background()))
	assert.Equal(t, []string{"You have a callback scheduled in 5 minutes: Jordan - Modem swap"}, got)
	assert.Equal(t, now, p.LastRun())

	assert.Equal(t, 0, p.RunOnce(context.Background()))
}

func TestPoller_Lifecycle(t *testing.T) {
	sweeper := &trackerSweeper{tracker: NewTracker(nil), settings: DefaultNotificationSettings()}
	p, err := NewPoller(sweeper, NotifierFunc(func(context.Context, Reminder) error { return nil }),
		config.CallbacksConfig{ReminderSchedule: "@every 1m"}, nil)
	require.NoError(t, err)

	ctx := context.Background()
	assert.Error(t, p.Start(ctx), "start before init")
	assert.Error(t, p.Health(ctx))

	require.NoError(t, p.Init(ctx))
	require.NoError(t, p.Start(ctx))
	require.NoError(t, p.Start(ctx))
	assert.True(t, p.IsRunning())
	assert.NoError(t, p.Health(ctx))

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, p.Stop(stopCtx))
	require.NoError(t, p.Stop(stopCtx))
	assert.False(t, p.IsRunning())
	assert.Error(t, p.Health(ctx))
}

func TestNewPoller_RejectsBadSchedule(t *testing.T) {
	_, err := NewPoller(nil, nil, config.CallbacksConfig{ReminderSchedule: "every so often"}, nil)
	assert.Error(t, err)
}

func TestSettings_MergeOverDefaults(t *testing.T) {
	kv := store.NewMemory()
	assert.Equal(t, DefaultNotificationSettings(), LoadSettings(kv))

	require.NoError(t, kv.Set(SettingsKey, `{"reminderTime": 15}`))
	s := LoadSettings(kv)
	assert.Equal(t, 15, s.ReminderTime)
	assert.True(t, s.Enabled)
	assert.True(t, s.SoundEnabled)
	assert.False(t, s.BrowserNotificationsEnabled)
	assert.Equal(t, 15*time.Minute, s.Window())

	s.Enabled = false
	SaveSettings(kv, s)
	assert.False(t, LoadSettings(kv).Enabled)

	require.NoError(t, kv.Set(SettingsKey, `{broken`))
	assert.Equal(t, DefaultNotificationSettings(), LoadSettings(kv))
}
