package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"discipline/internal/engine"
	"discipline/internal/tui"
)

func newFocusCmd() *cobra.Command {
	var minutes int

	cmd := &cobra.Command{
		Use:   "focus <task-id>",
		Short: "Run a focus timer and log the task when it finishes",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("task id is required")
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
				return fmt.Errorf("task %s not found", args[0])
			}
			if task.Type == engine.TaskTemporary {
				return errors.New("campaigns have no focus timer; log their stages instead")
			}
			if task.Type == engine.TaskNegative {
				return errors.New("vices are avoided, not focused on")
			}

			seconds := 25 * 60
			if s, ok := engine.FocusDurations[task.ID]; ok {
				seconds = s
			}
			if minutes > 0 {
				seconds = minutes * 60
			}

			return tui.RunFocus(ctx, svc, *task, seconds, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "Session length in minutes (default per task)")

	return cmd
}
