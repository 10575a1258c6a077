package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/emirirr/terapi/internal/cli/formatter"
	"github.com/emirirr/terapi/internal/domain"
)

// usersLoadedMsg signals that the user list has been loaded.
type usersLoadedMsg struct {
	users []*domain.User
	err   error
}

// usersView is the admin screen listing registered users. Password
// digests are stripped before the rows ever reach this view.
type usersView struct {
	state   *SharedState
	loading bool
	err     error
	users   []*domain.User
}

func newUsersView(state *SharedState) *usersView {
	return &usersView{state: state, loading: true}
}

func (v *usersView) ID() ViewID    { return ViewUsers }
func (v *usersView) Title() string { return "Users" }

func (v *usersView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *usersView) Init() tea.Cmd {
	return v.loadData()
}

func (v *usersView) loadData() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		users, err := app.Auth.ListUsers(context.Background())
		return usersLoadedMsg{users: users, err: err}
	}
}

func (v *usersView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case usersLoadedMsg:
		v.loading = false
		v.err = msg.err
		v.users = msg.users
		return v, nil

	case refreshViewMsg:
		v.loading = true
		return v, v.loadData()

	case tea.KeyMsg:
		if msg.String() == "r" {
			v.loading = true
			return v, v.loadData()
		}
	}
	return v, nil
}

func (v *usersView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	var b strings.Builder
	b.WriteString("\n")

	rows := make([][]string, 0, len(v.users))
	for _, u := range v.users {
		rows = append(rows, []string{
			strconv.FormatInt(u.ID, 10),
			u.Name,
			u.Surname,
			u.SerialNumber,
			formatter.RoleBadge(u.Role),
			u.CreatedAt.Local().Format("2006-01-02"),
		})
	}
	b.WriteString(indent(formatter.RenderTable(
		[]string{"ID", "NAME", "SURNAME", "SERIAL", "ROLE", "REGISTERED"},
		rows, []formatter.ColumnAlignment{formatter.AlignRight})))
	return b.String()
}
