package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"discipline/internal/engine"
	"discipline/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show hero stats, title, and campaign progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			stats, err := svc.Stats(ctx)
			if err != nil {
				return err
			}
			title := engine.ResolveTitle(stats)
			profile, err := svc.Profile(ctx)
			if err != nil {
				return err
			}

			heading := "Hero Status"
			if profile != nil {
				heading = profile.Name + " the " + profile.ClassName
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconHero, heading))
			if profile == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No profile yet. Create one with `dh init <name>`."))
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Title", ui.Gold.Render(title.String())))
			cur, span := engine.LevelProgress(stats.XP)
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Level", fmt.Sprintf("%d  %s", stats.Level, ui.XPBar(cur, span, 20))))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Total XP", stats.XP))
			fmt.Fprintln(cmd.OutOrStdout(), "")

			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render("📊 Attributes"))
			for _, c := range engine.Categories {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s %-12s %d\n", ui.CategoryIcon(string(c)), c, stats.Score(c))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "")

			catalog, err := svc.Catalog(ctx)
			if err != nil {
				return err
			}
			log, err := svc.Log(ctx)
			if err != nil {
				return err
			}

			printed := false
			for i := range catalog {
				t := &catalog[i]
				if t.Type != engine.TaskTemporary || len(t.Stages) == 0 {
					continue
				}
				if !printed {
					fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconMap+" Campaigns"))
					printed = true
				}
				p := engine.StageProgress(t, log)
				fmt.Fprintf(cmd.OutOrStdout(), "- %s %s %s\n",
					ui.Key.Render(t.Name),
					ui.XPBar(p.Completed, p.Total, 12),
					ui.Muted.Render(fmt.Sprintf("%d%%", p.Percent)))
			}
			if printed {
				fmt.Fprintln(cmd.OutOrStdout(), "")
			}

			return nil
		},
	}

	return cmd
}
