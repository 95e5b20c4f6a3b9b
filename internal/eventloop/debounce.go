package eventloop

import (
	"sync"
	"time"
)

// Debouncer delays fn until no Trigger has arrived for the configured
// quiet period. Only the last function of a burst runs.
type Debouncer struct {
	delay time.Duration
	post  func(func()) bool

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
	fn    func()
}

// NewDebouncer returns a trailing debouncer. When the quiet period ends
// the pending function is handed to post, normally Loop.Post.
func NewDebouncer(delay time.Duration, post func(func()) bool) *Debouncer {
	return &Debouncer{delay: delay, post: post}
}

func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	d.fn = fn
	if d.timer != nil {
		d.timer.Stop()
	}
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.fn == nil {
		d.mu.Unlock()
		return
	}
	fn := d.fn
	d.fn = nil
	d.timer = nil
	d.mu.Unlock()

	d.post(fn)
}

// Flush runs the pending function on the calling goroutine right away.
func (d *Debouncer) Flush() bool {
	fn := d.take()
	if fn == nil {
		return false
	}
	fn()
	return true
}

// Cancel drops the pending function without running it.
func (d *Debouncer) Cancel() {
	d.take()
}

func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fn != nil
}

func (d *Debouncer) take() func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	fn := d.fn
	d.fn = nil
	return fn
}
