package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/emirirr/terapi/internal/cli/formatter"
	"github.com/emirirr/terapi/internal/domain"
)

// terapiHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func terapiHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// validateRequired rejects empty or whitespace-only input.
func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// validateDurationMinutes accepts a positive whole number of minutes.
func validateDurationMinutes(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number of minutes")
	}
	return nil
}

// parseDurationMinutes converts validated form input to seconds.
func parseDurationMinutes(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return 0
	}
	return v * 60
}

// loginForm builds the serial/password form.
func loginForm(serial, password *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Device Serial Number").
				Placeholder("e.g. TRP-1042").
				Value(serial).
				Validate(validateRequired("serial number")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(password).
				Validate(validateRequired("password")),
		),
	).WithTheme(terapiHuhTheme()).WithShowHelp(false)
}

// registerForm builds the new-user form.
func registerForm(name, surname, serial, password *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(name).
				Validate(validateRequired("name")),
			huh.NewInput().
				Title("Surname").
				Value(surname).
				Validate(validateRequired("surname")),
			huh.NewInput().
				Title("Device Serial Number").
				Placeholder("printed on the device label").
				Value(serial).
				Validate(validateRequired("serial number")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(password).
				Validate(validateRequired("password")),
		),
	).WithTheme(terapiHuhTheme()).WithShowHelp(false)
}

// setupForm builds the therapy selection form: type, mode, duration.
func setupForm(therapy, mode, minutes *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Therapy Type").
				Options(
					huh.NewOption(domain.TherapyChest.Label(), string(domain.TherapyChest)),
					huh.NewOption(domain.TherapyArm.Label(), string(domain.TherapyArm)),
					huh.NewOption(domain.TherapyLeg.Label(), string(domain.TherapyLeg)),
				).
				Value(therapy),
			huh.NewSelect[string]().
				Title("Mode").
				Options(
					huh.NewOption(domain.ModeGentle.Label(), string(domain.ModeGentle)),
					huh.NewOption(domain.ModeMedium.Label(), string(domain.ModeMedium)),
					huh.NewOption(domain.ModeIntense.Label(), string(domain.ModeIntense)),
					huh.NewOption(domain.ModeManual.Label(), string(domain.ModeManual)),
				).
				Value(mode),
			huh.NewInput().
				Title("Duration (minutes)").
				Value(minutes).
				Validate(validateDurationMinutes),
		),
	).WithTheme(terapiHuhTheme()).WithShowHelp(false)
}
