package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"discipline/internal/engine"
	"discipline/internal/ui"
)

func newListCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all tasks with their completion state for a day",
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
			if _, err := time.Parse(engine.DateLayout, date); err != nil {
				return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", date)
			}

			catalog, err := svc.Catalog(ctx)
			if err != nil {
				return err
			}
			log, err := svc.Log(ctx)
			if err != nil {
				return err
			}
			done := engine.CompletedOn(log, date)

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconScroll, "Quests for "+date))

			sections := []struct {
				title string
				kind  engine.TaskType
			}{
				{"Daily basics", engine.TaskBasic},
				{"Disciplines", engine.TaskConstant},
				{"Vices to avoid", engine.TaskNegative},
			}
			for _, sec := range sections {
				fmt.Fprintln(cmd.OutOrStdout(), "")
				fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(sec.title))
				for _, t := range catalog {
					if t.Type != sec.kind {
						continue
					}
					mark := ui.Muted.Render("·")
					if done[t.ID] {
						if t.Type == engine.TaskNegative {
							mark = ui.Bad.Render("x")
						} else {
							mark = ui.Good.Render("✓")
						}
					}
					fmt.Fprintf(cmd.OutOrStdout(), " %s %s %s\n", mark, t.Name, ui.Dim.Render("("+t.ID+")"))
				}
			}

			for i := range catalog {
				t := &catalog[i]
				if t.Type != engine.TaskTemporary {
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), "")
				fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconMap+" "+t.Name)+" "+ui.Dim.Render("("+t.ID+")"))
				if len(t.Stages) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(" (no stages yet)"))
					continue
				}
				for _, s := range t.Stages {
					state := engine.StageStateOf(t, s, log, engine.Today(time.Now()))
					fmt.Fprintf(cmd.OutOrStdout(), " %s %s %s %s\n",
						ui.Muted.Render(s.Date), s.Name,
						ui.StageStatusText(string(state)),
						ui.Dim.Render("("+s.ID+")"))
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to inspect (YYYY-MM-DD, default today)")

	return cmd
}
