// ABOUTME: Sync commands for pushing pending records to the remote store
// ABOUTME: Provides manual catch-up and a pending/connectivity status view
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewSyncCmd creates the sync command group
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Manage cloud synchronization",
		Long: `Manage synchronization with the cloud store.

Records logged offline stay in the local cache marked pending. They
replay to the cloud in the order they occurred on the next login, or
immediately with 'sync now'.`,
	}

	cmd.AddCommand(newSyncNowCmd())
	cmd.AddCommand(newSyncStatusCmd())

	return cmd
}

func newSyncNowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Push all pending records to the cloud",
		RunE: func(cmd *cobra.Command, args []string) error {
			stack, err := openStack()
			if err != nil {
				return err
			}
			defer stack.Close()

			events, aggregates, goalsPending, err := stack.repo.PendingCounts()
			if err != nil {
				return err
			}
			if events == 0 && aggregates == 0 && !goalsPending {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing pending")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Syncing %d events, %d aggregates...\n", events, aggregates)
			if err := stack.repo.SyncLocalToRemote(context.Background()); err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Sync complete")
			return nil
		},
	}
}

func newSyncStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show pending records and cloud connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			stack, err := openStack()
			if err != nil {
				return err
			}
			defer stack.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Owner: %s\n", stack.sessions.OwnerID())

			if stack.charm == nil {
				fmt.Fprintln(out, "Cloud: unreachable (running cache-only)")
			} else if id, err := stack.charm.ID(); err != nil {
				fmt.Fprintf(out, "Cloud: not linked (%v)\n", err)
			} else {
				fmt.Fprintf(out, "Cloud: connected as %s on %s\n", id, stack.cfg.CharmHost)
			}

			events, aggregates, goalsPending, err := stack.repo.PendingCounts()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Pending: %d events, %d aggregates", events, aggregates)
			if goalsPending {
				fmt.Fprint(out, ", goals")
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}
