package eventloop

import (
	"context"
	"log/slog"
	"sync"
	stdatomic "sync/atomic"

	"github.com/harunnryd/notedesk/internal/config"
	"github.com/harunnryd/notedesk/internal/errors"
)

// Loop runs posted functions one at a time on a single goroutine. All
// workspace state is mutated from inside the loop, so no other locking
// is needed around it.
type Loop struct {
	inbox   chan func()
	quit    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
	running stdatomic.Bool
}

func New(inboxSize int) *Loop {
	if inboxSize <= 0 {
		inboxSize = config.DefaultLoopInboxSize
	}
	return &Loop{
		inbox: make(chan func(), inboxSize),
		quit:  make(chan struct{}),
	}
}

func (l *Loop) Start() {
	if !l.running.CompareAndSwap(false, true) {
		return
	}
	l.wg.Add(1)
	go l.run()
}

func (l *Loop) run() {
	slog.Debug("Event loop started")
	defer l.wg.Done()

	for {
		select {
		case fn := <-l.inbox:
			l.invoke(fn)
		case <-l.quit:
			slog.Debug("Event loop stopping")
			return
		}
	}
}

func (l *Loop) invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Event handler panicked", "panic", r)
		}
	}()
	fn()
}

// Stop ends the loop after the handler currently running returns.
// Functions still queued are dropped.
func (l *Loop) Stop() {
	l.once.Do(func() {
		close(l.quit)
	})
	l.wg.Wait()
	l.running.Store(false)
}

func (l *Loop) IsRunning() bool {
	return l.running.Load()
}

// Post queues fn and returns immediately. It reports false when the loop
// has been stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.quit:
		return false
	default:
	}

	select {
	case l.inbox <- fn:
		return true
	case <-l.quit:
		return false
	}
}

// Do runs fn on the loop and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	if !l.Post(func() {
		defer close(done)
		fn()
	}) {
		return errors.Internal("event loop stopped")
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.quit:
		return errors.Internal("event loop stopped")
	}
}
