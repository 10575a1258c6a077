package cli

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/emirirr/terapi/internal/cli/formatter"
	"github.com/emirirr/terapi/internal/domain"
	"github.com/emirirr/terapi/internal/service"
)

// loginResultMsg carries the outcome of an authentication attempt.
type loginResultMsg struct {
	user *domain.User
	err  error
}

// loginView is the entry screen: serial number + password.
type loginView struct {
	state    *SharedState
	form     *huh.Form
	serial   string
	password string

	submitting bool
	errMsg     string
}

func newLoginView(state *SharedState) *loginView {
	v := &loginView{state: state}
	v.form = loginForm(&v.serial, &v.password)
	return v
}

func (v *loginView) ID() ViewID    { return ViewLogin }
func (v *loginView) Title() string { return "Login" }

func (v *loginView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "sign in")),
		key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "register")),
		key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (v *loginView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *loginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+r" {
			return v, pushView(newRegisterView(v.state))
		}

	case loginResultMsg:
		v.submitting = false
		if msg.err != nil {
			if errors.Is(msg.err, service.ErrInvalidCredentials) {
				v.errMsg = "Invalid serial number or password."
			} else {
				v.errMsg = "Sign-in failed: " + msg.err.Error()
			}
			v.resetForm()
			return v, v.form.Init()
		}
		v.state.SetCurrentUser(msg.user)
		return v, resetView(newDashboardView(v.state))
	}

	if v.submitting {
		return v, nil
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		v.submitting = true
		v.errMsg = ""
		return v, v.authenticate()
	}

	return v, cmd
}

func (v *loginView) authenticate() tea.Cmd {
	app := v.state.App
	serial, password := v.serial, v.password
	return func() tea.Msg {
		user, err := app.Auth.Authenticate(context.Background(), serial, password)
		return loginResultMsg{user: user, err: err}
	}
}

// resetForm rebuilds the huh form after a failed attempt; the serial is
// kept, the password is cleared.
func (v *loginView) resetForm() {
	v.password = ""
	v.form = loginForm(&v.serial, &v.password)
}

func (v *loginView) View() string {
	var b []string
	b = append(b, "")
	b = append(b, "  "+formatter.Header("Sign In"))
	if v.errMsg != "" {
		b = append(b, "  "+formatter.StyleRed.Render(v.errMsg))
	}
	if v.submitting {
		b = append(b, "  "+formatter.Dim("Checking credentials..."))
	} else {
		b = append(b, v.form.View())
	}
	return joinLines(b)
}
