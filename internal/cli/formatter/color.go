package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/emirirr/terapi/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// StatusPill returns a colored indicator for a session outcome.
func StatusPill(status domain.SessionStatus) string {
	switch status {
	case domain.StatusCompleted:
		return StyleGreen.Render("✔ Completed")
	case domain.StatusStopped:
		return StyleYellow.Render("⊘ Stopped")
	default:
		return StyleDim.Render(string(status))
	}
}

// RoleBadge returns a colored role label for the users screen.
func RoleBadge(role domain.Role) string {
	if role == domain.RoleAdmin {
		return StylePurple.Render("ADMIN")
	}
	return StyleDim.Render("user")
}

// TherapyBadge returns the therapy type display label, colored per type.
func TherapyBadge(t domain.TherapyType) string {
	switch t {
	case domain.TherapyChest:
		return StyleBlue.Render(t.Label())
	case domain.TherapyArm:
		return StyleGreen.Render(t.Label())
	case domain.TherapyLeg:
		return StyleYellow.Render(t.Label())
	default:
		return StyleDim.Render(string(t))
	}
}
