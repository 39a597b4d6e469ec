package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"discipline/internal/ui"
)

func newInitCmd() *cobra.Command {
	var age int
	var class string

	cmd := &cobra.Command{
		Use:   "init <name>",
		Short: "Create your hero profile",
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

			existing, err := svc.Profile(ctx)
			if err != nil {
				return err
			}
			if err := svc.SaveProfile(ctx, args[0], age, class); err != nil {
				return err
			}

			verb := "Welcome"
			if existing != nil {
				verb = "Profile updated. Welcome back"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s, %s the %s!\n",
				ui.Good.Render(ui.IconHero), verb, ui.Key.Render(args[0]), ui.Gold.Render(class))
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Run `dh list` to see your quests, `dh board` for the week view."))
			return nil
		},
	}

	cmd.Flags().IntVar(&age, "age", 0, "Your age")
	cmd.Flags().StringVar(&class, "class", "Adventurer", "Character class name")

	return cmd
}
