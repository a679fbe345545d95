// ABOUTME: Reset commands wiping local cache data and, separately, cloud data
// ABOUTME: Both destructive paths require an explicit --confirm flag
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	resetConfirm       bool
	resetRemoteConfirm bool
)

// NewResetCmd creates the reset command group
func NewResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all local data for the signed-in owner",
		Long: `Delete all locally cached data for the signed-in owner: events,
aggregates, and goals. Cloud data is NOT touched; use 'reset remote'
for that.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !resetConfirm {
				return fmt.Errorf("this deletes all local data; re-run with --confirm")
			}

			stack, err := openStack()
			if err != nil {
				return err
			}
			defer stack.Close()

			if err := stack.repo.ResetAllData(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Local data deleted (cloud untouched)")
			return nil
		},
	}

	cmd.Flags().BoolVar(&resetConfirm, "confirm", false, "Confirm the local deletion")
	cmd.AddCommand(newResetRemoteCmd())
	return cmd
}

func newResetRemoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Delete all cloud data for the signed-in owner",
		Long: `Delete everything the signed-in owner stores in the cloud. This is
the account-deletion path; the local cache stays on disk.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !resetRemoteConfirm {
				return fmt.Errorf("this deletes all cloud data; re-run with --confirm")
			}

			stack, err := openStack()
			if err != nil {
				return err
			}
			defer stack.Close()

			if err := stack.repo.PurgeRemote(); err != nil {
				return fmt.Errorf("cloud purge failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Cloud data deleted")
			return nil
		},
	}

	cmd.Flags().BoolVar(&resetRemoteConfirm, "confirm", false, "Confirm the cloud deletion")
	return cmd
}
