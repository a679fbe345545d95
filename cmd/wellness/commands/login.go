// ABOUTME: Login and logout commands driving the session lifecycle
// ABOUTME: Persists the owner marker and runs the catch-up sync on sign-in
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/wellness-standalone/internal/session"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <owner>",
		Short: "Sign in as an owner",
		Long: `Sign in as an owner. Opens that owner's local cache and starts a
catch-up sync that pushes any records logged while offline.

Switching owners requires an explicit logout first; caches never mix.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ownerID := args[0]

			current, err := session.LoadCurrentOwner()
			if err != nil {
				return err
			}
			if current != "" && current != ownerID {
				return fmt.Errorf("%s is signed in; run 'wellness logout' first", current)
			}

			if err := session.SaveCurrentOwner(ownerID); err != nil {
				return err
			}

			// Open the full stack once so sign-in errors surface now and
			// the catch-up sync gets a chance to run.
			stack, err := openStack()
			if err != nil {
				_ = session.ClearCurrentOwner()
				return err
			}
			defer stack.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", ownerID)
			return nil
		},
	}
}

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out the current owner",
		Long:  `Sign out. The local cache stays on disk; signing back in picks it up.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := session.LoadCurrentOwner()
			if err != nil {
				return err
			}
			if current == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
				return nil
			}
			if err := session.ClearCurrentOwner(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed out %s\n", current)
			return nil
		},
	}
}
