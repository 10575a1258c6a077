package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/emirirr/terapi/internal/domain"
	"github.com/emirirr/terapi/internal/notify"
	"github.com/emirirr/terapi/internal/timer"
	"github.com/google/uuid"
)

// Selection is the therapy configuration for one session run.
type Selection struct {
	Therapy         domain.TherapyType
	Mode            domain.TherapyMode
	DurationSeconds int
}

// SessionEvent is a controller-level progress or terminal notification.
// On terminal events Record holds the appended history row; LogErr is
// set instead when the append failed. The run still terminates either
// way — a logging failure never orphans a running session.
type SessionEvent struct {
	RunID     string
	Kind      timer.EventKind
	Remaining int
	Elapsed   int
	Percent   int
	Record    *domain.SessionRecord
	LogErr    error
}

// SessionController owns the single active countdown, translates timer
// events for the UI, and writes exactly one history row when a run ends.
type SessionController struct {
	history  HistoryService
	notifier notify.Notifier
	log      *slog.Logger

	countdown *timer.Countdown

	mu    sync.Mutex
	runID string
}

// ControllerOption configures a SessionController.
type ControllerOption func(*SessionController)

// WithCountdown substitutes the countdown, letting tests shorten the
// tick interval.
func WithCountdown(c *timer.Countdown) ControllerOption {
	return func(sc *SessionController) { sc.countdown = c }
}

func NewSessionController(history HistoryService, notifier notify.Notifier, log *slog.Logger, opts ...ControllerOption) *SessionController {
	sc := &SessionController{
		history:   history,
		notifier:  notifier,
		log:       log,
		countdown: timer.New(),
	}
	for _, opt := range opts {
		opt(sc)
	}
	return sc
}

// Active reports whether a session run is in progress.
func (sc *SessionController) Active() bool {
	return sc.countdown.Running()
}

// Start begins a session run for the given selection and user (nil for
// an unauthenticated session). Returns ErrSessionActive if a run is
// already in progress. The returned channel delivers every tick and one
// terminal event, then closes.
func (sc *SessionController) Start(sel Selection, user *domain.User) (<-chan SessionEvent, error) {
	if sel.DurationSeconds <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %d", sel.DurationSeconds)
	}
	if !domain.ValidTherapyTypes[string(sel.Therapy)] {
		return nil, fmt.Errorf("unknown therapy type %q", sel.Therapy)
	}
	if !domain.ValidTherapyModes[string(sel.Mode)] {
		return nil, fmt.Errorf("unknown therapy mode %q", sel.Mode)
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()

	ticks, ok := sc.countdown.Start(sel.DurationSeconds)
	if !ok {
		return nil, ErrSessionActive
	}

	runID := uuid.New().String()
	sc.runID = runID

	var userID *int64
	if user != nil {
		id := user.ID
		userID = &id
	}

	events := make(chan SessionEvent, sel.DurationSeconds+1)
	go sc.pump(runID, sel, userID, ticks, events)

	sc.log.Info("session started",
		"run_id", runID,
		"therapy", string(sel.Therapy),
		"mode", string(sel.Mode),
		"duration_s", sel.DurationSeconds)

	return events, nil
}

// Stop requests a cooperative stop of the active run. No-op when idle.
func (sc *SessionController) Stop() {
	sc.countdown.Stop()
}

// pump forwards timer events to the UI channel and finalizes the run on
// the terminal event.
func (sc *SessionController) pump(runID string, sel Selection, userID *int64, ticks <-chan timer.Event, events chan<- SessionEvent) {
	defer close(events)

	for ev := range ticks {
		out := SessionEvent{
			RunID:     runID,
			Kind:      ev.Kind,
			Remaining: ev.Remaining,
			Elapsed:   ev.Elapsed,
			Percent:   ev.Percent,
		}
		if ev.Terminal() {
			out.Record, out.LogErr = sc.finalize(runID, sel, userID, ev)
		}
		events <- out
	}
}

// finalize appends the history row for a finished run and fires the
// completion notice. Completion logs the full requested duration;
// manual stop logs the elapsed seconds actually delivered.
func (sc *SessionController) finalize(runID string, sel Selection, userID *int64, ev timer.Event) (*domain.SessionRecord, error) {
	status := domain.StatusCompleted
	duration := sel.DurationSeconds
	if ev.Kind == timer.EventStopped {
		status = domain.StatusStopped
		duration = ev.Elapsed
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rec, err := sc.history.Append(ctx, &domain.SessionRecord{
		TherapyType:     sel.Therapy,
		Mode:            sel.Mode,
		DurationSeconds: duration,
		Status:          status,
		UserID:          userID,
	})
	if err != nil {
		sc.log.Error("recording session outcome failed",
			"run_id", runID, "status", string(status), "error", err)
	} else {
		sc.log.Info("session ended",
			"run_id", runID, "status", string(status), "duration_s", duration)
	}

	sc.notify(runID, sel, status, duration)
	return rec, err
}

// notify fires the one-shot session notice. Failures are logged once
// and swallowed; notification can never abort the terminal transition.
func (sc *SessionController) notify(runID string, sel Selection, status domain.SessionStatus, duration int) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var err error
	if status == domain.StatusCompleted {
		err = sc.notifier.SessionCompleted(ctx, sel.Therapy.Label(), duration)
	} else {
		err = sc.notifier.SessionStopped(ctx, sel.Therapy.Label(), duration)
	}
	if err != nil {
		sc.log.Warn("session notification failed", "run_id", runID, "error", err)
	}
}
