// Package timer implements the therapy countdown state machine.
//
// A Countdown moves Idle → Running → {Completed, Stopped}. While running
// it emits one Event per tick on a channel owned by that run; consumers
// (the session controller, and through it the UI) never share mutable
// state with the ticking goroutine. A new Start is required after a
// terminal event.
package timer

import (
	"sync"
	"time"
)

type EventKind int

const (
	// EventTick is emitted once per interval while the countdown runs.
	EventTick EventKind = iota
	// EventCompleted is emitted when the countdown reaches zero.
	EventCompleted
	// EventStopped is emitted when Stop ends the run early.
	EventStopped
)

// Event is one progress notification from a running countdown.
// Percent is floor(100 * elapsed / duration).
type Event struct {
	Kind      EventKind
	Remaining int
	Elapsed   int
	Percent   int
}

// Terminal reports whether the event ends the run.
func (e Event) Terminal() bool {
	return e.Kind == EventCompleted || e.Kind == EventStopped
}

// Countdown is a single-run-at-a-time countdown. Start while running is
// a guarded no-op, as is Stop while idle.
type Countdown struct {
	interval time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
}

// Option configures a Countdown.
type Option func(*Countdown)

// WithInterval overrides the one-second tick interval. Used by tests.
func WithInterval(d time.Duration) Option {
	return func(c *Countdown) {
		if d > 0 {
			c.interval = d
		}
	}
}

// New creates an idle Countdown.
func New(opts ...Option) *Countdown {
	c := &Countdown{interval: time.Second}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Running reports whether a countdown is actively ticking.
func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Start begins a countdown of the given whole number of seconds and
// returns the event channel for this run. Returns (nil, false) if a run
// is already active or seconds is not positive. The channel is buffered
// for the whole run and closed after the terminal event.
func (c *Countdown) Start(seconds int) (<-chan Event, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running || seconds <= 0 {
		return nil, false
	}
	c.running = true
	c.stopCh = make(chan struct{})

	// One slot per tick plus the terminal event, so the ticking
	// goroutine never blocks on a slow consumer.
	events := make(chan Event, seconds+1)
	go c.run(seconds, events, c.stopCh)
	return events, true
}

// Stop requests a cooperative stop of the active run. The goroutine
// observes it at its next wakeup and emits EventStopped with the elapsed
// seconds. No-op when idle.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	c.running = false
	close(c.stopCh)
}

// finish marks the countdown idle after a natural expiry.
func (c *Countdown) finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
}

func (c *Countdown) run(duration int, events chan<- Event, stop <-chan struct{}) {
	defer close(events)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	elapsed := 0
	for {
		select {
		case <-stop:
			events <- Event{
				Kind:      EventStopped,
				Remaining: duration - elapsed,
				Elapsed:   elapsed,
				Percent:   Percent(elapsed, duration),
			}
			return

		case <-ticker.C:
			elapsed++
			if elapsed >= duration {
				c.finish()
				events <- Event{
					Kind:      EventCompleted,
					Remaining: 0,
					Elapsed:   duration,
					Percent:   100,
				}
				return
			}
			events <- Event{
				Kind:      EventTick,
				Remaining: duration - elapsed,
				Elapsed:   elapsed,
				Percent:   Percent(elapsed, duration),
			}
		}
	}
}

// Percent computes floor(100 * elapsed / duration), clamped to [0, 100].
func Percent(elapsed, duration int) int {
	if duration <= 0 {
		return 0
	}
	p := 100 * elapsed / duration
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
