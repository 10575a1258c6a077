package cli

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/emirirr/terapi/internal/cli/formatter"
	"github.com/emirirr/terapi/internal/domain"
	"github.com/emirirr/terapi/internal/service"
)

const defaultDurationMinutes = 20

// setupView collects the therapy type, mode, and duration for a run.
type setupView struct {
	state   *SharedState
	form    *huh.Form
	therapy string
	mode    string
	minutes string
}

func newSetupView(state *SharedState) *setupView {
	v := &setupView{
		state:   state,
		therapy: string(domain.TherapyChest),
		mode:    string(domain.ModeGentle),
		minutes: strconv.Itoa(defaultDurationMinutes),
	}

	// Re-offer the previous selection as the starting point.
	if last := state.LastSelection; last.DurationSeconds > 0 {
		v.therapy = string(last.Therapy)
		v.mode = string(last.Mode)
		v.minutes = strconv.Itoa(last.DurationSeconds / 60)
	}

	v.form = setupForm(&v.therapy, &v.mode, &v.minutes)
	return v
}

func (v *setupView) ID() ViewID    { return ViewSetup }
func (v *setupView) Title() string { return "Therapy Setup" }

func (v *setupView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *setupView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *setupView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		return v, popView()
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		sel := service.Selection{
			Therapy:         domain.TherapyType(v.therapy),
			Mode:            domain.TherapyMode(v.mode),
			DurationSeconds: parseDurationMinutes(v.minutes),
		}
		v.state.LastSelection = sel
		return v, replaceView(newControlView(v.state, sel))
	}

	return v, cmd
}

func (v *setupView) View() string {
	return "\n  " + formatter.Header("Therapy Setup") + "\n" + v.form.View()
}
