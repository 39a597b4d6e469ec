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

func newChallengeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "challenge",
		Aliases: []string{"chal"},
		Short:   "Track streak and avoidance challenges",
	}
	cmd.AddCommand(newChallengeListCmd(), newChallengeAcceptCmd(), newChallengeClaimCmd())
	return cmd
}

func newChallengeListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List challenges and their standing",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			challenges, err := svc.Challenges(ctx)
			if err != nil {
				return err
			}
			log, err := svc.Log(ctx)
			if err != nil {
				return err
			}
			today := engine.Today(time.Now())

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconTrophy, "Challenges"))
			for _, ch := range challenges {
				icon := ui.IconFire
				if ch.Type == engine.ChallengeAvoidance {
					icon = ui.IconHero
				}
				line := fmt.Sprintf("%s %s %s %s",
					icon, ui.Key.Render(ch.Title),
					ui.ChallengeStatusText(string(ch.Status)),
					ui.Muted.Render(fmt.Sprintf("(+%d XP)", ch.RewardXP)))
				if ch.Status == engine.ChallengeActive {
					ev := engine.EvaluateChallenge(ch, log, today)
					line += " " + ui.XPBar(ev.Progress, ch.DurationDays, 10)
					if ev.Broken {
						line += " " + ui.BadgeBroken
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), "- "+line)
				fmt.Fprintln(cmd.OutOrStdout(), "  "+ui.Dim.Render(ch.Description+" ["+ch.ID+"]"))
			}
			return nil
		},
	}

	return cmd
}

func newChallengeAcceptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accept <challenge-id>",
		Short: "Accept an available challenge",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("challenge id is required")
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

			ch, changed, err := svc.AcceptChallenge(ctx, args[0], time.Now())
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s is already %s.\n",
					ui.Muted.Render("—"), ch.Title, ch.Status)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Good.Render(ui.IconScroll+" Accepted"), ch.Title,
				ui.Muted.Render("(clock starts "+ch.StartDate+")"))
			return nil
		},
	}

	return cmd
}

func newChallengeClaimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim <challenge-id>",
		Short: "Claim the reward of a finished challenge",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("challenge id is required")
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

			ch, ev, changed, err := svc.ClaimChallenge(ctx, args[0], time.Now())
			if err != nil {
				return err
			}
			if !changed {
				switch {
				case ch.Status == engine.ChallengeCompleted:
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s was already claimed.\n", ui.Muted.Render("—"), ch.Title)
				case ch.Status != engine.ChallengeActive:
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s is not active.\n", ui.Muted.Render("—"), ch.Title)
				case ev.Broken:
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s: streak broke at %d/%d days.\n",
						ui.Bad.Render(ui.IconSkull), ch.Title, ev.Progress, ch.DurationDays)
				default:
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d/%d days, keep going.\n",
						ui.Warn.Render(ui.IconTimer), ch.Title, ev.Progress, ch.DurationDays)
				}
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Gold.Render(ui.IconTrophy+" Completed"), ch.Title,
				ui.Gold.Render(fmt.Sprintf("+%d XP", ch.RewardXP)))
			return nil
		},
	}

	return cmd
}
