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

func newCampaignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Manage staged campaigns",
	}
	cmd.AddCommand(
		newCampaignAddCmd(),
		newCampaignShowCmd(),
		newStageAddCmd(),
		newStageUpdateCmd(),
		newStageRmCmd(),
	)
	return cmd
}

func newCampaignAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a new campaign",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
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

			t, err := svc.AddProject(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Good.Render(ui.IconMap+" Campaign created"), t.Name, ui.Dim.Render("("+t.ID+")"))
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
				ui.Muted.Render("💡 Add stages with:"),
				ui.Key.Render(fmt.Sprintf("dh campaign stage %s \"First step\" --date YYYY-MM-DD", t.ID)))
			return nil
		},
	}

	return cmd
}

func newCampaignShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <campaign-id>",
		Short: "Show a campaign's stages and progress",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("campaign id is required")
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

			catalog, err := svc.Catalog(ctx)
			if err != nil {
				return err
			}
			task := engine.FindTask(catalog, args[0])
			if task == nil {
				return fmt.Errorf("campaign %s not found", args[0])
			}
			if task.Type != engine.TaskTemporary {
				return fmt.Errorf("%s is not a campaign", args[0])
			}
			log, err := svc.Log(ctx)
			if err != nil {
				return err
			}

			p := engine.StageProgress(task, log)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconMap, task.Name))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Progress", fmt.Sprintf("%s %d/%d (%d%%)",
				ui.XPBar(p.Completed, p.Total, 16), p.Completed, p.Total, p.Percent)))
			fmt.Fprintln(cmd.OutOrStdout(), "")

			today := engine.Today(time.Now())
			for _, s := range task.Stages {
				state := engine.StageStateOf(task, s, log, today)
				dep := ""
				if s.DependsOn != "" {
					dep = ui.Dim.Render(" after " + s.DependsOn)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "- %s %s %s%s %s\n",
					ui.Muted.Render(s.Date), s.Name, ui.StageStatusText(string(state)), dep,
					ui.Dim.Render("("+s.ID+")"))
			}
			return nil
		},
	}

	return cmd
}

func newStageAddCmd() *cobra.Command {
	var date string
	var difficulty string
	var after string

	cmd := &cobra.Command{
		Use:   "stage <campaign-id> <name>",
		Short: "Add a stage to a campaign",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("campaign id and stage name are required")
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

			diff, err := parseDifficultyFlag(difficulty)
			if err != nil {
				return err
			}
			s, err := svc.AddStage(ctx, args[0], engine.StageInput{
				Name:       args[1],
				Date:       date,
				Difficulty: diff,
				DependsOn:  after,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %s %s\n",
				ui.Good.Render("➕ Stage added"), s.Name, s.Date, ui.Dim.Render("("+s.ID+")"))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Scheduled date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&difficulty, "diff", "d", "", "Difficulty (easy|medium|hard|epic)")
	cmd.Flags().StringVar(&after, "after", "", "Sibling stage id this one depends on")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newStageUpdateCmd() *cobra.Command {
	var name string
	var date string
	var difficulty string
	var after string

	cmd := &cobra.Command{
		Use:   "restage <campaign-id> <stage-id>",
		Short: "Edit a stage (rename, reschedule, rewire)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("campaign id and stage id are required")
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

			diff, err := parseDifficultyFlag(difficulty)
			if err != nil {
				return err
			}
			s, err := svc.UpdateStage(ctx, args[0], args[1], engine.StageInput{
				Name:       name,
				Date:       date,
				Difficulty: diff,
				DependsOn:  after,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %s\n", ui.Good.Render("✏ Stage updated"), s.Name, s.Date)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New stage name")
	cmd.Flags().StringVar(&date, "date", "", "New scheduled date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&difficulty, "diff", "d", "", "New difficulty (easy|medium|hard|epic)")
	cmd.Flags().StringVar(&after, "after", "", `New sibling dependency ("none" clears it)`)

	return cmd
}

func newStageRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unstage <campaign-id> <stage-id>",
		Short: "Remove a stage from a campaign",
		Long: `Remove a stage. Stages depending on it are not removed; they stay
permanently locked until rewired with restage --after <stage-id>, or
unblocked with restage --after none.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("campaign id and stage id are required")
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

			if err := svc.DeleteStage(ctx, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render("🗑 Stage removed"), args[1])
			return nil
		},
	}

	return cmd
}

func parseDifficultyFlag(raw string) (engine.Difficulty, error) {
	if raw == "" {
		return "", nil
	}
	d, ok := engine.ParseDifficulty(raw)
	if !ok {
		return "", fmt.Errorf("invalid difficulty %q (want easy|medium|hard|epic)", raw)
	}
	return d, nil
}
