package cli

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/emirirr/terapi/internal/cli/formatter"
	"github.com/emirirr/terapi/internal/repository"
	"github.com/emirirr/terapi/internal/service"
)

// registerResultMsg carries the outcome of a registration attempt.
type registerResultMsg struct {
	err error
}

// registerView creates a new user account bound to a device serial.
type registerView struct {
	state    *SharedState
	form     *huh.Form
	name     string
	surname  string
	serial   string
	password string

	submitting bool
	errMsg     string
	doneMsg    string
}

func newRegisterView(state *SharedState) *registerView {
	v := &registerView{state: state}
	v.form = registerForm(&v.name, &v.surname, &v.serial, &v.password)
	return v
}

func (v *registerView) ID() ViewID    { return ViewRegister }
func (v *registerView) Title() string { return "Register" }

func (v *registerView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next field")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to login")),
	}
}

func (v *registerView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *registerView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return v, popView()
		}
		// After a successful registration any key returns to login.
		if v.doneMsg != "" {
			return v, popView()
		}

	case registerResultMsg:
		v.submitting = false
		if msg.err != nil {
			switch {
			case errors.Is(msg.err, repository.ErrDuplicateSerial):
				v.errMsg = "That serial number is already registered."
			case errors.Is(msg.err, service.ErrMissingField):
				v.errMsg = "All fields are required."
			default:
				v.errMsg = "Registration failed: " + msg.err.Error()
			}
			v.form = registerForm(&v.name, &v.surname, &v.serial, &v.password)
			return v, v.form.Init()
		}
		v.doneMsg = "Account created. Press any key to sign in."
		return v, nil
	}

	if v.submitting || v.doneMsg != "" {
		return v, nil
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		if !v.state.App.Config.SerialAllowed(v.serial) {
			v.errMsg = "That serial number is not in the allowed device list."
			v.form = registerForm(&v.name, &v.surname, &v.serial, &v.password)
			return v, v.form.Init()
		}
		v.submitting = true
		v.errMsg = ""
		return v, v.register()
	}

	return v, cmd
}

func (v *registerView) register() tea.Cmd {
	app := v.state.App
	in := service.RegisterInput{
		Name:         v.name,
		Surname:      v.surname,
		SerialNumber: v.serial,
		Password:     v.password,
	}
	return func() tea.Msg {
		_, err := app.Auth.Register(context.Background(), in)
		return registerResultMsg{err: err}
	}
}

func (v *registerView) View() string {
	var b []string
	b = append(b, "")
	b = append(b, "  "+formatter.Header("New Account"))
	if v.errMsg != "" {
		b = append(b, "  "+formatter.StyleRed.Render(v.errMsg))
	}
	switch {
	case v.doneMsg != "":
		b = append(b, "  "+formatter.StyleGreen.Render(v.doneMsg))
	case v.submitting:
		b = append(b, "  "+formatter.Dim("Creating account..."))
	default:
		b = append(b, v.form.View())
	}
	return joinLines(b)
}
