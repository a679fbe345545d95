// ABOUTME: Root command wiring for the Wellness CLI
// ABOUTME: Registers all subcommands and handles global execution
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wellness",
		Short: "Track water, steps, and sleep with an offline-first cache",
		Long: `Wellness tracks your daily water intake, steps, and sleep.

Every record lands in a local per-user cache first, so logging works
offline. Records sync to the cloud in the background and catch up the
next time you sign in.

Quick start:
  wellness login alice
  wellness log water 500
  wellness log steps 8000
  wellness log sleep --hours 7.5
  wellness status`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewLoginCmd())
	cmd.AddCommand(NewLogoutCmd())
	cmd.AddCommand(NewLogCmd())
	cmd.AddCommand(NewStatusCmd())
	cmd.AddCommand(NewGoalsCmd())
	cmd.AddCommand(NewSyncCmd())
	cmd.AddCommand(NewResetCmd())
	cmd.AddCommand(NewInsightCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
