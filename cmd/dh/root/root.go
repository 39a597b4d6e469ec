package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"discipline/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "dh",
	Short:         "Discipline Hero — gamified habit tracker",
	Long:          "Discipline Hero is a local-first CLI/TUI habit and quest tracker with RPG progression mechanics.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newInitCmd(),
		newStatusCmd(),
		newListCmd(),
		newLogCmd(),
		newTaskCmd(),
		newCampaignCmd(),
		newChallengeCmd(),
		newAdviceCmd(),
		newFocusCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconSkull+" "+err.Error()))
		os.Exit(1)
	}
}
