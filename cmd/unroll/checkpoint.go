package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/unroll/internal/cli"
	"github.com/Veraticus/unroll/internal/storage"
)

func checkpointCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkpoint",
		Short: "Manage database checkpoints",
		Long: `Create, list, restore, and delete database checkpoints.

Checkpoints save your subscriptions and settings before risky changes, and
restore them if needed.`,
		Example: `  # Save the current state before a clean-up
  unroll checkpoint create --tag "before-cleanup"

  # List all checkpoints
  unroll checkpoint list

  # Restore from a checkpoint
  unroll checkpoint restore before-cleanup

  # Delete an old checkpoint
  unroll checkpoint delete before-cleanup`,
	}

	cmd.AddCommand(createCheckpointCmd())
	cmd.AddCommand(listCheckpointsCmd())
	cmd.AddCommand(restoreCheckpointCmd())
	cmd.AddCommand(deleteCheckpointCmd())

	return cmd
}

// withCheckpoints opens storage and a checkpoint manager for the duration of fn.
func withCheckpoints(ctx context.Context, fn func(*storage.CheckpointManager) error) error {
	db, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	manager, err := db.NewCheckpointManager()
	if err != nil {
		return fmt.Errorf("failed to create checkpoint manager: %w", err)
	}
	defer manager.Close()

	return fn(manager)
}

func findCheckpoint(ctx context.Context, manager *storage.CheckpointManager, id string) (*storage.CheckpointInfo, error) {
	checkpoints, err := manager.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkpoints: %w", err)
	}
	for i := range checkpoints {
		if checkpoints[i].ID == id {
			return &checkpoints[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", storage.ErrCheckpointNotFound, id)
}

func createCheckpointCmd() *cobra.Command {
	var tag string
	var description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new checkpoint",
		Long:  `Create a snapshot of the current subscriptions and settings.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCheckpoints(cmd.Context(), func(manager *storage.CheckpointManager) error {
				info, err := manager.Create(cmd.Context(), tag, description)
				if err != nil {
					return fmt.Errorf("failed to create checkpoint: %w", err)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s Created checkpoint %s (%s)\n",
					cli.SuccessStyle.Render(cli.SuccessIcon),
					cli.InfoStyle.Render(info.ID),
					formatFileSize(info.FileSize))

				if info.Description != "" {
					fmt.Fprintf(out, "  Description: %s\n", info.Description)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "Checkpoint tag/name (auto-generated if not provided)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Description of the checkpoint")

	return cmd
}

func listCheckpointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all checkpoints",
		Long:  `Display all available checkpoints with their metadata.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCheckpoints(cmd.Context(), func(manager *storage.CheckpointManager) error {
				checkpoints, err := manager.List(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list checkpoints: %w", err)
				}

				out := cmd.OutOrStdout()
				if len(checkpoints) == 0 {
					fmt.Fprintln(out, cli.SubtitleStyle.Render("No checkpoints found."))
					return nil
				}

				printCheckpoints(out, checkpoints, time.Now())
				return nil
			})
		},
	}
}

func printCheckpoints(out io.Writer, checkpoints []storage.CheckpointInfo, now time.Time) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, strings.Join([]string{
		cli.HeaderStyle.Render("NAME"),
		cli.HeaderStyle.Render("CREATED"),
		cli.HeaderStyle.Render("SIZE"),
		cli.HeaderStyle.Render("KEYS"),
		cli.HeaderStyle.Render("TYPE"),
	}, "\t"))

	for _, cp := range checkpoints {
		typeLabel := "manual"
		if cp.IsAuto {
			typeLabel = "auto"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			cli.InfoStyle.Render(cp.ID),
			formatRelativeTime(cp.CreatedAt, now),
			formatFileSize(cp.FileSize),
			cp.KeyCount,
			cli.SubtleStyle.Render(typeLabel),
		)
	}

	_ = w.Flush()
}

func restoreCheckpointCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "restore <checkpoint-id>",
		Short: "Restore subscriptions and settings from a checkpoint",
		Long: `Replace the current subscriptions and settings with a checkpoint.

The state being replaced is saved as an automatic checkpoint first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checkpointID := args[0]
			out := cmd.OutOrStdout()

			return withCheckpoints(cmd.Context(), func(manager *storage.CheckpointManager) error {
				info, err := findCheckpoint(cmd.Context(), manager, checkpointID)
				if err != nil {
					return fmt.Errorf("failed to get checkpoint info: %w", err)
				}

				// Confirm unless force flag is set
				if !force {
					fmt.Fprintf(out, "%s This will replace your subscriptions and settings with checkpoint %s.\n",
						cli.WarningStyle.Render(cli.WarningIcon),
						cli.InfoStyle.Render(checkpointID))
					fmt.Fprintf(out, "  Created: %s\n", info.CreatedAt.Format("2006-01-02 15:04:05"))
					if info.Description != "" {
						fmt.Fprintf(out, "  Description: %s\n", info.Description)
					}

					ok, err := cli.NewConfirmer(cmd.InOrStdin(), out).Confirm(cmd.Context(), "Continue?")
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintln(out, cli.SubtitleStyle.Render("Restore cancelled."))
						return nil
					}
				}

				if err := manager.Restore(cmd.Context(), checkpointID); err != nil {
					return fmt.Errorf("failed to restore checkpoint: %w", err)
				}

				fmt.Fprintf(out, "%s Restored from checkpoint %s\n",
					cli.SuccessStyle.Render(cli.SuccessIcon),
					cli.InfoStyle.Render(checkpointID))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

func deleteCheckpointCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <checkpoint-id>",
		Short: "Delete a checkpoint",
		Long:  `Permanently remove a checkpoint.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checkpointID := args[0]
			out := cmd.OutOrStdout()

			return withCheckpoints(cmd.Context(), func(manager *storage.CheckpointManager) error {
				info, err := findCheckpoint(cmd.Context(), manager, checkpointID)
				if err != nil {
					return fmt.Errorf("failed to get checkpoint info: %w", err)
				}

				// Confirm unless force flag is set
				if !force {
					fmt.Fprintf(out, "%s This will permanently delete checkpoint %s.\n",
						cli.WarningStyle.Render(cli.WarningIcon),
						cli.InfoStyle.Render(checkpointID))
					fmt.Fprintf(out, "  Created: %s\n", info.CreatedAt.Format("2006-01-02 15:04:05"))
					fmt.Fprintf(out, "  Size: %s\n", formatFileSize(info.FileSize))

					ok, err := cli.NewConfirmer(cmd.InOrStdin(), out).Confirm(cmd.Context(), "Continue?")
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintln(out, cli.SubtitleStyle.Render("Deletion cancelled."))
						return nil
					}
				}

				if err := manager.Delete(cmd.Context(), checkpointID); err != nil {
					return fmt.Errorf("failed to delete checkpoint: %w", err)
				}

				fmt.Fprintf(out, "%s Deleted checkpoint %s\n",
					cli.SuccessStyle.Render(cli.SuccessIcon),
					cli.InfoStyle.Render(checkpointID))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}
