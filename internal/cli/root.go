package cli

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/emirirr/terapi/internal/config"
	"github.com/emirirr/terapi/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Auth       service.AuthService
	History    service.HistoryService
	Controller *service.SessionController
	Config     *config.Config
	Log        *slog.Logger

	// IsInteractive reports whether stdin is a terminal. The TUI refuses
	// to start without one; the report subcommands still work.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "terapi" command. The bare command
// launches the TUI; subcommands print read-only reports.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "terapi",
		Short: "Therapy device session console",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("the session console needs an interactive terminal; use the history or users subcommands instead")
			}
			p := tea.NewProgram(newAppModel(app), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}

	root.AddCommand(
		newHistoryCmd(app),
		newUsersCmd(app),
	)

	return root
}
