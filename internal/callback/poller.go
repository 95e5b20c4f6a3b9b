package callback

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/harunnryd/notedesk/internal/config"
	"github.com/harunnryd/notedesk/internal/errors"

	"github.com/robfig/cron/v3"
)

// Reminder is one due call back with the message to show for it.
type Reminder struct {
	CallBack CallBack
	Message  string
}

// Sweeper finds due call backs, marks them reminded and persists that.
type Sweeper interface {
	SweepReminders(now time.Time) []Reminder
}

// Notifier delivers a reminder to the agent.
type Notifier interface {
	Notify(ctx context.Context, r Reminder) error
}

type NotifierFunc func(ctx context.Context, r Reminder) error

func (f NotifierFunc) Notify(ctx context.Context, r Reminder) error { return f(ctx, r) }

// Poller runs the reminder sweep on a cron schedule, every minute by
// default.
type Poller struct {
	sweeper  Sweeper
	notifier Notifier
	schedule string
	now      func() time.Time

	mu      sync.RWMutex
	ctx     context.Context
	cancel  context.CancelFunc
	cron    *cron.Cron
	running bool
	lastRun time.Time
}

func NewPoller(sweeper Sweeper, notifier Notifier, cfg config.CallbacksConfig, now func() time.Time) (*Poller, error) {
	schedule := strings.TrimSpace(cfg.ReminderSchedule)
	if schedule == "" {
		schedule = config.DefaultCallbacksReminderSpec
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("parse reminder schedule %q: %w", schedule, err)
	}
	if now == nil {
		now = time.Now
	}
	return &Poller{
		sweeper:  sweeper,
		notifier: notifier,
		schedule: schedule,
		now:      now,
	}, nil
}

func (p *Poller) Init(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ctx, p.cancel = context.WithCancel(ctx)
	slog.Debug("Reminder poller initialized", "schedule", p.schedule)
	return nil
}

func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return nil
	}
	if p.ctx == nil {
		return errors.Internal("reminder poller not initialized")
	}

	c := cron.New()
	if _, err := c.AddFunc(p.schedule, func() { p.RunOnce(p.ctx) }); err != nil {
		return fmt.Errorf("schedule reminder sweep: %w", err)
	}
	c.Start()
	p.cron = c
	p.running = true

	slog.Info("Reminder poller started", "schedule", p.schedule)
	return nil
}

func (p *Poller) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = false
	c := p.cron
	p.cron = nil
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Unlock()

	select {
	case <-c.Stop().Done():
		slog.Info("Reminder poller stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Poller) Health(ctx context.Context) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.ctx == nil {
		return errors.Internal("reminder poller not initialized")
	}
	if !p.running {
		return errors.Internal("reminder poller not running")
	}
	return nil
}

func (p *Poller) IsRunning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.running
}

func (p *Poller) LastRun() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastRun
}

// RunOnce sweeps immediately and delivers every due reminder. It
// returns how many were delivered.
func (p *Poller) RunOnce(ctx context.Context) int {
	now := p.now()
	reminders := p.sweeper.SweepReminders(now)

	p.mu.Lock()
	p.lastRun = now
	p.mu.Unlock()

	delivered := 0
	for _, r := range reminders {
		if err := p.notifier.Notify(ctx, r); err != nil {
			slog.Warn("Failed to deliver reminder", "callback", r.CallBack.ID, "error", err)
			continue
		}
		delivered++
	}
	if len(reminders) > 0 {
		slog.Debug("Reminder sweep finished", "due", len(reminders), "delivered", delivered)
	}
	return delivered
}
