package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"discipline/internal/engine"
	"discipline/internal/oracle"
	"discipline/internal/ui"
)

func newAdviceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advice",
		Short: "Ask the oracle for counsel on your current stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, cleanup, err := openDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			svc := engine.NewService(db)
			stats, err := svc.Stats(ctx)
			if err != nil {
				return err
			}
			profile, err := svc.Profile(ctx)
			if err != nil {
				return err
			}

			o, err := oracle.New(cfg.Oracle.APIKey, cfg.Oracle.Model)
			if err != nil {
				return err
			}

			if profile == nil {
				ui.Logger.Warn("no profile found, the counsel will be generic; run `dh init <name>`")
			}

			advice := o.Advise(ctx, stats, profile)
			if advice == oracle.Fallback {
				ui.Logger.Warn("the oracle could not be reached", "model", cfg.Oracle.Model)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconCrystal, "The Oracle speaks"))
			fmt.Fprintln(cmd.OutOrStdout(), advice)
			return nil
		},
	}

	return cmd
}
