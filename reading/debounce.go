package reading

import "time"

// Clock abstracts time for the debounce machinery so the reentrancy guard
// and stability filters are testable without real delays.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is the cancelable handle AfterFunc returns.
type Timer interface {
	Stop() bool
}

// RealClock is the production Clock backed by the time package.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

func (RealClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// DebounceState models the debouncer explicitly as a small state machine
// instead of relying on timer cancellation idioms.
type DebounceState int

const (
	DebounceIdle DebounceState = iota
	DebouncePending
	DebounceCommitting
)

// Debouncer collapses bursts of triggers into a single commit after a quiet
// period. Trigger during pending restarts the quiet period; trigger during
// commit is remembered and schedules a fresh cycle once the commit returns.
type Debouncer struct {
	clock Clock
	delay time.Duration
	fn    func()

	state     DebounceState
	timer     Timer
	retrigger bool
}

func NewDebouncer(clock Clock, delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{clock: clock, delay: delay, fn: fn}
}

func (d *Debouncer) State() DebounceState { return d.state }

// Trigger (re)arms the quiet period.
func (d *Debouncer) Trigger() {
	switch d.state {
	case DebounceCommitting:
		d.retrigger = true
	case DebouncePending:
		d.timer.Stop()
		fallthrough
	default:
		d.state = DebouncePending
		d.timer = d.clock.AfterFunc(d.delay, d.fire)
	}
}

// Flush commits a pending trigger immediately. Used when the session is
// about to end and waiting out the quiet period would lose the last value.
func (d *Debouncer) Flush() {
	if d.state != DebouncePending {
		return
	}
	d.timer.Stop()
	d.fire()
}

// Cancel drops any pending trigger without committing.
func (d *Debouncer) Cancel() {
	if d.state == DebouncePending {
		d.timer.Stop()
		d.state = DebounceIdle
	}
	d.retrigger = false
}

func (d *Debouncer) fire() {
	d.state = DebounceCommitting
	d.fn()
	d.state = DebounceIdle
	if d.retrigger {
		d.retrigger = false
		d.Trigger()
	}
}

// ManualClock is a logical test clock: time moves only through Advance.
type ManualClock struct {
	now    time.Time
	timers []*manualTimer
}

func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Unix(0, 0)}
}

func (c *ManualClock) Now() time.Time { return c.now }

func (c *ManualClock) AfterFunc(d time.Duration, fn func()) Timer {
	t := &manualTimer{at: c.now.Add(d), fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves logical time forward, firing due timers in schedule order.
func (c *ManualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
	for {
		fired := false
		for _, t := range c.timers {
			if !t.stopped && !t.fired && !t.at.After(c.now) {
				t.fired = true
				fired = true
				t.fn()
			}
		}
		if !fired {
			return
		}
	}
}

type manualTimer struct {
	at      time.Time
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}
