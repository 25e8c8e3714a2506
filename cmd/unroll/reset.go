package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/unroll/internal/cli"
)

func resetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the sample subscriptions and default settings",
		Long: `Reset replaces every tracked subscription with the sample set and puts the
preferences back to their defaults.

The replaced state is saved as an automatic checkpoint first, so it can be
brought back with 'unroll checkpoint restore'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()

			out := cmd.OutOrStdout()
			count := len(sess.store.Subscriptions())

			// Confirm with user unless --force is used
			if !force {
				fmt.Fprintf(out, "This will replace %d tracked subscriptions and your preferences.\n", count)
				ok, confirmErr := cli.NewConfirmer(cmd.InOrStdin(), out).Confirm(cmd.Context(), "Are you sure you want to continue?")
				if confirmErr != nil {
					return confirmErr
				}
				if !ok {
					fmt.Fprintln(out, "Reset canceled.")
					return nil
				}
			}

			manager, err := sess.db.NewCheckpointManager()
			if err != nil {
				return fmt.Errorf("failed to create checkpoint manager: %w", err)
			}
			defer manager.Close()

			backup, err := manager.AutoCheckpoint(cmd.Context(), "reset")
			if err != nil {
				return fmt.Errorf("failed to save state before reset: %w", err)
			}

			if err := sess.store.Reset(cmd.Context()); err != nil {
				sess.flushNotifications(out)
				return fmt.Errorf("failed to reset: %w", err)
			}

			fmt.Fprintln(out, cli.FormatSuccess("Reset to the sample subscriptions and default settings"))
			fmt.Fprintf(out, "  Previous state saved as checkpoint %s\n", cli.InfoStyle.Render(backup.ID))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}
