package cli

import (
	"context"
	"testing"

	"github.com/emirirr/terapi/internal/domain"
	"github.com/emirirr/terapi/internal/service"
	"github.com/emirirr/terapi/internal/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControlView_CountdownDisplay(t *testing.T) {
	state := &SharedState{App: newTestApp(t)}
	v := newControlView(state, service.Selection{
		Therapy: domain.TherapyChest, Mode: domain.ModeGentle, DurationSeconds: 90,
	})

	assert.Contains(t, v.View(), "Planned duration")

	v.phase = phaseRunning
	v.remaining = 85
	v.percent = 5
	view := v.View()
	assert.Contains(t, view, "01:25", "remaining time renders zero-padded MM:SS")
	assert.Contains(t, view, "5%")
	assert.Contains(t, view, "stop")
}

func TestControlView_StoppedOutcome(t *testing.T) {
	state := &SharedState{App: newTestApp(t)}
	v := newControlView(state, service.Selection{
		Therapy: domain.TherapyArm, Mode: domain.ModeManual, DurationSeconds: 120,
	})

	elapsed := 37
	updated, _ := v.Update(controlEventMsg{ok: true, ev: service.SessionEvent{
		Kind:    timer.EventStopped,
		Elapsed: elapsed,
		Record: &domain.SessionRecord{
			Status: domain.StatusStopped, DurationSeconds: elapsed,
		},
	}})
	v = updated.(*controlView)

	assert.Equal(t, phaseDone, v.phase)
	view := v.View()
	assert.Contains(t, view, "Session stopped")
	assert.Contains(t, view, "37s")
	assert.Contains(t, view, "2m", "planned duration shown alongside")
}

func TestControlView_LogErrorSurfaces(t *testing.T) {
	state := &SharedState{App: newTestApp(t)}
	v := newControlView(state, service.Selection{
		Therapy: domain.TherapyChest, Mode: domain.ModeGentle, DurationSeconds: 60,
	})

	updated, _ := v.Update(controlEventMsg{ok: true, ev: service.SessionEvent{
		Kind:   timer.EventCompleted,
		LogErr: assert.AnError,
	}})
	v = updated.(*controlView)

	assert.Contains(t, v.View(), "Recording the session failed")
}

// TestApp_SessionEndToEnd walks the full scenario: Ada registers, signs
// in, runs a one-minute chest session to completion, and the history
// holds exactly one completed record owned by her.
func TestApp_SessionEndToEnd(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	ada, err := app.Auth.Register(ctx, service.RegisterInput{
		Name: "Ada", Surname: "Lovelace", SerialNumber: "SN001", Password: "hunter2",
	})
	require.NoError(t, err)

	d, state := newTestDriver(t, app)
	signIn(d, "SN001", "hunter2")
	require.NotNil(t, state.CurrentUser)

	// Pre-seed the selection so the setup form defaults to one minute.
	state.LastSelection = service.Selection{
		Therapy: domain.TherapyChest, Mode: domain.ModeGentle, DurationSeconds: 60,
	}

	// Dashboard → therapy setup.
	d.PressEnter()
	assert.Contains(t, d.View(), "THERAPY SETUP")

	// Accept type, mode, and duration defaults.
	d.PressEnter()
	d.PressEnter()
	d.PressEnter()
	assert.Contains(t, d.View(), "SESSION CONTROL")

	// Start; the millisecond countdown drains to completion synchronously.
	d.PressEnter()
	assert.Contains(t, d.View(), "Session complete")

	// Return to the dashboard.
	d.PressEnter()
	assert.Contains(t, d.View(), "Welcome")

	records, err := app.History.ListWithOwners(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.StatusCompleted, records[0].Status)
	assert.Equal(t, 60, records[0].DurationSeconds)
	require.NotNil(t, records[0].UserID)
	assert.Equal(t, ada.ID, *records[0].UserID)
	assert.Equal(t, "Ada", records[0].OwnerName)
}

func TestApp_SecondStartWhileRunningShowsError(t *testing.T) {
	app := newTestApp(t)

	// Hold the controller busy with a long real-time run.
	_, err := app.Controller.Start(service.Selection{
		Therapy: domain.TherapyChest, Mode: domain.ModeManual, DurationSeconds: 3600,
	}, nil)
	require.NoError(t, err)
	defer app.Controller.Stop()

	state := &SharedState{App: app}
	v := newControlView(state, service.Selection{
		Therapy: domain.TherapyChest, Mode: domain.ModeGentle, DurationSeconds: 60,
	})

	updated, _ := v.Update(controlStartedMsg{err: service.ErrSessionActive})
	v = updated.(*controlView)

	assert.Equal(t, phaseReady, v.phase)
	assert.Contains(t, v.View(), service.ErrSessionActive.Error())
}
