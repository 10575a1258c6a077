package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastCountdown() *Countdown {
	return New(WithInterval(time.Millisecond))
}

// collect drains the event channel until it closes or the timeout expires.
func collect(t *testing.T, events <-chan Event) []Event {
	t.Helper()
	var got []Event
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return got
			}
			got = append(got, ev)
		case <-deadline:
			t.Fatal("timed out waiting for countdown events")
		}
	}
}

func TestCountdown_RunsToCompletion(t *testing.T) {
	c := fastCountdown()

	events, ok := c.Start(3)
	require.True(t, ok)

	got := collect(t, events)
	require.Len(t, got, 3)

	assert.Equal(t, Event{Kind: EventTick, Remaining: 2, Elapsed: 1, Percent: 33}, got[0])
	assert.Equal(t, Event{Kind: EventTick, Remaining: 1, Elapsed: 2, Percent: 66}, got[1])
	assert.Equal(t, Event{Kind: EventCompleted, Remaining: 0, Elapsed: 3, Percent: 100}, got[2])

	assert.False(t, c.Running(), "countdown should be idle after completion")
}

func TestCountdown_RemainingMonotonicallyDecreases(t *testing.T) {
	c := fastCountdown()

	events, ok := c.Start(10)
	require.True(t, ok)

	prev := 10
	for ev := range events {
		assert.Less(t, ev.Remaining, prev, "remaining must strictly decrease")
		prev = ev.Remaining
	}
	assert.Equal(t, 0, prev)
}

func TestCountdown_StopEmitsElapsed(t *testing.T) {
	c := New(WithInterval(10 * time.Millisecond))

	events, ok := c.Start(1000)
	require.True(t, ok)

	// Let a few ticks through, then stop.
	var ticks []Event
	for len(ticks) < 3 {
		ev := <-events
		require.Equal(t, EventTick, ev.Kind)
		ticks = append(ticks, ev)
	}
	c.Stop()

	rest := collect(t, events)
	require.NotEmpty(t, rest)
	last := rest[len(rest)-1]
	assert.Equal(t, EventStopped, last.Kind)
	assert.GreaterOrEqual(t, last.Elapsed, 3)
	assert.Less(t, last.Elapsed, 1000)
	assert.Equal(t, 1000-last.Elapsed, last.Remaining)
	assert.False(t, c.Running())
}

func TestCountdown_StartWhileRunningIsNoOp(t *testing.T) {
	c := New(WithInterval(10 * time.Millisecond))

	events, ok := c.Start(1000)
	require.True(t, ok)

	_, ok = c.Start(5)
	assert.False(t, ok, "second start must be rejected while running")

	c.Stop()
	collect(t, events)
}

func TestCountdown_StopWhileIdleIsNoOp(t *testing.T) {
	c := fastCountdown()
	c.Stop() // must not panic
	assert.False(t, c.Running())
}

func TestCountdown_RestartAfterTerminalState(t *testing.T) {
	c := fastCountdown()

	events, ok := c.Start(2)
	require.True(t, ok)
	got := collect(t, events)
	require.Equal(t, EventCompleted, got[len(got)-1].Kind)

	// A fresh start after completion is legal.
	events, ok = c.Start(2)
	require.True(t, ok)
	got = collect(t, events)
	assert.Equal(t, EventCompleted, got[len(got)-1].Kind)
}

func TestCountdown_RejectsNonPositiveDuration(t *testing.T) {
	c := fastCountdown()
	_, ok := c.Start(0)
	assert.False(t, ok)
	_, ok = c.Start(-5)
	assert.False(t, ok)
}

func TestPercent_FloorDivision(t *testing.T) {
	assert.Equal(t, 0, Percent(0, 3))
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 66, Percent(2, 3))
	assert.Equal(t, 100, Percent(3, 3))
	assert.Equal(t, 16, Percent(1, 6))
	assert.Equal(t, 0, Percent(1, 0), "zero duration clamps to 0")
	assert.Equal(t, 100, Percent(7, 3), "overshoot clamps to 100")
}
