package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/emirirr/terapi/internal/cli/formatter"
	"github.com/emirirr/terapi/internal/domain"
	"github.com/emirirr/terapi/internal/service"
	"github.com/emirirr/terapi/internal/timer"
)

// controlPhase tracks the lifecycle of the session control screen.
type controlPhase int

const (
	phaseReady controlPhase = iota
	phaseRunning
	phaseDone
)

// controlStartedMsg carries the controller's event channel after Start.
type controlStartedMsg struct {
	events <-chan service.SessionEvent
	err    error
}

// controlEventMsg delivers one controller event; ok is false when the
// channel has closed.
type controlEventMsg struct {
	ev service.SessionEvent
	ok bool
}

// controlView drives one therapy run: countdown display, stop key, and
// the final outcome. It consumes controller events only and never
// touches the timer directly.
type controlView struct {
	state *SharedState
	sel   service.Selection

	phase  controlPhase
	events <-chan service.SessionEvent

	remaining int
	percent   int

	outcome *domain.SessionRecord
	logErr  error
	errMsg  string
}

func newControlView(state *SharedState, sel service.Selection) *controlView {
	return &controlView{
		state:     state,
		sel:       sel,
		remaining: sel.DurationSeconds,
	}
}

func (v *controlView) ID() ViewID    { return ViewControl }
func (v *controlView) Title() string { return "Session" }

func (v *controlView) ShortHelp() []key.Binding {
	switch v.phase {
	case phaseRunning:
		return []key.Binding{
			key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		}
	case phaseDone:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
		}
	default:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		}
	}
}

func (v *controlView) Init() tea.Cmd { return nil }

func (v *controlView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)

	case controlStartedMsg:
		if msg.err != nil {
			v.phase = phaseReady
			v.errMsg = msg.err.Error()
			return v, nil
		}
		v.events = msg.events
		return v, waitControlEvent(v.events)

	case controlEventMsg:
		if !msg.ok {
			// Channel closed; the terminal event has already been seen.
			v.phase = phaseDone
			return v, nil
		}
		ev := msg.ev
		v.remaining = ev.Remaining
		v.percent = ev.Percent
		if ev.Kind == timer.EventCompleted || ev.Kind == timer.EventStopped {
			v.outcome = ev.Record
			v.logErr = ev.LogErr
			v.phase = phaseDone
		}
		return v, waitControlEvent(v.events)
	}

	return v, nil
}

func (v *controlView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch v.phase {
	case phaseReady:
		switch {
		case msg.Type == tea.KeyEnter, msg.String() == "s":
			v.phase = phaseRunning
			v.errMsg = ""
			return v, v.start()
		case msg.Type == tea.KeyEsc:
			return v, popView()
		}

	case phaseRunning:
		if msg.String() == "s" || msg.Type == tea.KeyEsc {
			v.state.App.Controller.Stop()
		}

	case phaseDone:
		if msg.Type == tea.KeyEnter || msg.Type == tea.KeyEsc {
			return v, tea.Batch(popView(), func() tea.Msg { return refreshViewMsg{} })
		}
	}
	return v, nil
}

func (v *controlView) start() tea.Cmd {
	app := v.state.App
	sel := v.sel
	user := v.state.CurrentUser
	return func() tea.Msg {
		events, err := app.Controller.Start(sel, user)
		return controlStartedMsg{events: events, err: err}
	}
}

// waitControlEvent blocks on the controller channel as a tea.Cmd, so
// every tick arrives as a message instead of a cross-goroutine mutation.
func waitControlEvent(events <-chan service.SessionEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		return controlEventMsg{ev: ev, ok: ok}
	}
}

func (v *controlView) View() string {
	var b strings.Builder

	b.WriteString("\n  " + formatter.Header("Session Control") + "\n\n")
	b.WriteString(fmt.Sprintf("  %s  %s  %s\n\n",
		formatter.TherapyBadge(v.sel.Therapy),
		formatter.Dim("·"),
		v.sel.Mode.Label()))

	switch v.phase {
	case phaseReady:
		if v.errMsg != "" {
			b.WriteString("  " + formatter.StyleRed.Render(v.errMsg) + "\n\n")
		}
		b.WriteString(fmt.Sprintf("  Planned duration: %s\n\n",
			formatter.Bold(formatter.FormatSeconds(v.sel.DurationSeconds))))
		b.WriteString("  " + formatter.Dim("Press Enter to start."))

	case phaseRunning:
		b.WriteString("  " + formatter.StyleBold.Render(formatter.FormatClock(v.remaining)) + "\n\n")
		b.WriteString("  " + formatter.RenderProgress(v.percent, 32) + "\n\n")
		b.WriteString("  " + formatter.Dim("Press 's' to stop."))

	case phaseDone:
		b.WriteString(v.renderOutcome())
	}

	b.WriteString("\n")
	return b.String()
}

func (v *controlView) renderOutcome() string {
	var b strings.Builder

	switch {
	case v.outcome != nil && v.outcome.Status == domain.StatusCompleted:
		b.WriteString("  " + formatter.StyleGreen.Render("Session complete.") + "\n\n")
		b.WriteString(fmt.Sprintf("  Delivered %s of %s.\n",
			formatter.Bold(formatter.FormatSeconds(v.outcome.DurationSeconds)),
			v.sel.Therapy.Label()))
	case v.outcome != nil:
		b.WriteString("  " + formatter.StyleYellow.Render("Session stopped.") + "\n\n")
		b.WriteString(fmt.Sprintf("  Delivered %s of the planned %s.\n",
			formatter.Bold(formatter.FormatSeconds(v.outcome.DurationSeconds)),
			formatter.FormatSeconds(v.sel.DurationSeconds)))
	default:
		b.WriteString("  " + formatter.StyleYellow.Render("Session ended.") + "\n")
	}

	if v.logErr != nil {
		b.WriteString("\n  " + formatter.StyleRed.Render("Recording the session failed: "+v.logErr.Error()) + "\n")
	}

	b.WriteString("\n  " + formatter.Dim("Press Enter to return."))
	return b.String()
}
