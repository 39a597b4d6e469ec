package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"discipline/internal/engine"
	"discipline/internal/ui"
)

func newLogCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "log <task-or-stage-id>",
		Short: "Toggle a completion for a day",
		Long: `Toggle the completion of a task or campaign stage on a calendar day.

Logging is a toggle: running it again on the same day undoes the entry.
Stats are always re-derived from the log, so an undo also takes back the
XP and attribute credit.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("task or stage id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if date == "" {
				date = engine.Today(time.Now())
			}
			id := args[0]

			before, err := svc.Stats(ctx)
			if err != nil {
				return err
			}
			added, err := svc.Toggle(ctx, date, id)
			if err != nil {
				return err
			}
			after, err := svc.Stats(ctx)
			if err != nil {
				return err
			}

			name := id
			catalog, err := svc.Catalog(ctx)
			if err == nil {
				if idx, ierr := engine.BuildIndex(catalog); ierr == nil {
					if item, ok := idx[id]; ok {
						name = item.Task.Name
						if item.Stage != nil {
							name = item.Task.Name + " / " + item.Stage.Name
						}
					}
				}
			}

			delta := after.XP - before.XP
			if added {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
					ui.Good.Render(ui.IconDone+" Logged"), name, ui.Muted.Render(fmt.Sprintf("(%+d XP, %s)", delta, date)))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
					ui.Warn.Render("↩ Unlogged"), name, ui.Muted.Render(fmt.Sprintf("(%+d XP, %s)", delta, date)))
			}
			if after.Level > before.Level {
				fmt.Fprintln(cmd.OutOrStdout(), ui.BadgeLevelUp+" "+ui.Gold.Render(fmt.Sprintf("Level %d → %d", before.Level, after.Level)))
			}
			if after.Level < before.Level {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+fmt.Sprintf(" Level %d → %d", before.Level, after.Level)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to log on (YYYY-MM-DD, default today)")

	return cmd
}
