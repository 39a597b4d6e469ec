package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"discipline/internal/engine"
	"discipline/internal/ui"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage custom tasks",
	}
	cmd.AddCommand(newTaskAddCmd(), newTaskRmCmd())
	return cmd
}

func newTaskAddCmd() *cobra.Command {
	var kind string
	var categories []string
	var difficulty string
	var penalty int

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a custom task",
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

			var taskType engine.TaskType
			switch kind {
			case "basic":
				taskType = engine.TaskBasic
			case "constant":
				taskType = engine.TaskConstant
			case "negative":
				taskType = engine.TaskNegative
			default:
				return fmt.Errorf("invalid type %q (want basic|constant|negative; campaigns go through `dh campaign add`)", kind)
			}

			var cats []engine.Category
			for _, raw := range categories {
				c, ok := engine.ParseCategory(raw)
				if !ok {
					return fmt.Errorf("invalid category %q (want physical|intellect|health|professional)", raw)
				}
				cats = append(cats, c)
			}

			var diff engine.Difficulty
			if difficulty != "" {
				d, ok := engine.ParseDifficulty(difficulty)
				if !ok {
					return fmt.Errorf("invalid difficulty %q (want easy|medium|hard|epic)", difficulty)
				}
				diff = d
			}

			t, err := svc.AddTask(ctx, engine.CreateTaskInput{
				Name:       args[0],
				Type:       taskType,
				Categories: cats,
				Difficulty: diff,
				Penalty:    penalty,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Good.Render("➕ Added"), t.Name, ui.Dim.Render("("+t.ID+")"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", "constant", "Task type (basic|constant|negative)")
	cmd.Flags().StringSliceVarP(&categories, "category", "c", []string{"physical"}, "Attribute categories credited per completion")
	cmd.Flags().StringVarP(&difficulty, "diff", "d", "", "Difficulty (easy|medium|hard|epic, default flat XP)")
	cmd.Flags().IntVar(&penalty, "penalty", 0, "XP penalty for negative tasks (default 15)")

	return cmd
}

func newTaskRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a custom task",
		Long: `Delete a custom task. Built-in tasks cannot be deleted.

Log entries pointing at the deleted task are kept but stop counting
toward stats. Re-creating a task never revives old credit: new tasks get
fresh ids.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
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

			if err := svc.DeleteTask(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render("🗑 Deleted"), args[0])
			return nil
		},
	}

	return cmd
}
