package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/emirirr/terapi/internal/cli/formatter"
)

// dashboardEntry is one selectable item on the dashboard menu.
type dashboardEntry struct {
	label  string
	action func(v *dashboardView) tea.Cmd
}

// dashboardView is the home screen after login. The menu depends on the
// logged-in user's role.
type dashboardView struct {
	state   *SharedState
	entries []dashboardEntry
	cursor  int
}

func newDashboardView(state *SharedState) *dashboardView {
	v := &dashboardView{state: state}

	v.entries = []dashboardEntry{
		{label: "Start therapy session", action: func(v *dashboardView) tea.Cmd {
			return pushView(newSetupView(v.state))
		}},
		{label: "Session history", action: func(v *dashboardView) tea.Cmd {
			return pushView(newHistoryView(v.state, v.state.IsAdmin()))
		}},
	}
	if state.IsAdmin() {
		v.entries = append(v.entries, dashboardEntry{
			label: "Registered users", action: func(v *dashboardView) tea.Cmd {
				return pushView(newUsersView(v.state))
			}})
	}
	v.entries = append(v.entries, dashboardEntry{
		label: "Log out", action: func(v *dashboardView) tea.Cmd {
			v.state.ClearSession()
			return resetView(newLoginView(v.state))
		}})

	return v
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Dashboard" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "select")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (v *dashboardView) Init() tea.Cmd { return nil }

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.entries)-1 {
				v.cursor++
			}
		case "enter":
			return v, v.entries[v.cursor].action(v)
		}
	}
	return v, nil
}

func (v *dashboardView) View() string {
	var b strings.Builder

	b.WriteString("\n")
	if u := v.state.CurrentUser; u != nil {
		b.WriteString(fmt.Sprintf("  Welcome, %s.\n\n", formatter.Bold(u.FullName())))
	}

	for i, e := range v.entries {
		cursor := "  "
		style := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			style = formatter.StyleBold
		}
		b.WriteString("  " + cursor + style.Render(e.label) + "\n")
	}

	return b.String()
}
