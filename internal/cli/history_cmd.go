package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/emirirr/terapi/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var withOwners bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the session history, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if withOwners {
				return printOwnedHistory(ctx, cmd, app)
			}

			records, err := app.History.List(ctx)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				cmd.Println("No sessions recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, r := range records {
				rows = append(rows, []string{
					strconv.FormatInt(r.ID, 10),
					r.TherapyType.Label(),
					r.Mode.Label(),
					formatter.FormatSeconds(r.DurationSeconds),
					string(r.Status),
					r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				})
			}
			cmd.Println(formatter.RenderTable(
				[]string{"ID", "THERAPY", "MODE", "DURATION", "STATUS", "WHEN"},
				rows,
				[]formatter.ColumnAlignment{formatter.AlignRight, formatter.AlignLeft,
					formatter.AlignLeft, formatter.AlignRight}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&withOwners, "owners", false, "Include the owning user's name on each row")
	return cmd
}

func printOwnedHistory(ctx context.Context, cmd *cobra.Command, app *App) error {
	records, err := app.History.ListWithOwners(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		cmd.Println("No sessions recorded yet.")
		return nil
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		owner := "-"
		if r.UserID != nil {
			owner = fmt.Sprintf("%s %s", r.OwnerName, r.OwnerSurname)
		}
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			owner,
			r.TherapyType.Label(),
			r.Mode.Label(),
			formatter.FormatSeconds(r.DurationSeconds),
			string(r.Status),
			r.Timestamp.Local().Format("2006-01-02 15:04:05"),
		})
	}
	cmd.Println(formatter.RenderTable(
		[]string{"ID", "OWNER", "THERAPY", "MODE", "DURATION", "STATUS", "WHEN"},
		rows,
		[]formatter.ColumnAlignment{formatter.AlignRight, formatter.AlignLeft, formatter.AlignLeft,
			formatter.AlignLeft, formatter.AlignRight}))
	return nil
}
