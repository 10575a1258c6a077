package cli

import (
	"context"
	"strconv"

	"github.com/emirirr/terapi/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newUsersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "Print the registered users",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := app.Auth.ListUsers(context.Background())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(users))
			for _, u := range users {
				rows = append(rows, []string{
					strconv.FormatInt(u.ID, 10),
					u.Name,
					u.Surname,
					u.SerialNumber,
					string(u.Role),
					u.CreatedAt.Local().Format("2006-01-02"),
				})
			}
			cmd.Println(formatter.RenderTable(
				[]string{"ID", "NAME", "SURNAME", "SERIAL", "ROLE", "REGISTERED"},
				rows,
				[]formatter.ColumnAlignment{formatter.AlignRight}))
			return nil
		},
	}
}
