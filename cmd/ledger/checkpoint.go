package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/storage"
)

func (a *app) checkpointCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkpoint",
		Short: "Manage database checkpoints",
		Long: `Create, list, restore, and delete database checkpoints.

Checkpoints allow you to save the current state of your ledger before making
risky changes, and restore to a previous state if needed. Imports take an
automatic checkpoint; only the newest few automatic ones are kept.`,
		Example: `  # Create a checkpoint before a cleanup
  ledger checkpoint create --tag "before-cleanup"

  # List all checkpoints
  ledger checkpoint list

  # Restore from a checkpoint
  ledger checkpoint restore before-cleanup

  # Delete an old checkpoint
  ledger checkpoint delete old-checkpoint`,
	}

	cmd.AddCommand(a.createCheckpointCmd())
	cmd.AddCommand(a.listCheckpointsCmd())
	cmd.AddCommand(a.restoreCheckpointCmd())
	cmd.AddCommand(a.deleteCheckpointCmd())

	return cmd
}

// withCheckpoints opens the store and hands fn a checkpoint manager for it.
func (a *app) withCheckpoints(cmd *cobra.Command, fn func(ctx context.Context, manager *storage.CheckpointManager) error) error {
	return a.withStorage(cmd, func(ctx context.Context, store *storage.SQLiteStorage) error {
		manager, err := a.checkpointManager(store)
		if err != nil {
			return err
		}
		return fn(ctx, manager)
	})
}

func (a *app) createCheckpointCmd() *cobra.Command {
	var tag string
	var description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new checkpoint",
		Long:  `Create a snapshot of the current database state.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withCheckpoints(cmd, func(ctx context.Context, manager *storage.CheckpointManager) error {
				info, err := manager.Create(ctx, tag, description)
				if err != nil {
					return fmt.Errorf("failed to create checkpoint: %w", err)
				}

				writeln(cmd.OutOrStdout(), fmt.Sprintf("%s Created checkpoint %s (%s)",
					cli.SuccessStyle.Render(cli.SuccessIcon),
					cli.InfoStyle.Render(info.ID),
					formatFileSize(info.FileSize)))
				if info.Description != "" {
					writeln(cmd.OutOrStdout(), "  Description: "+info.Description)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "Checkpoint tag/name (auto-generated if not provided)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Description of the checkpoint")

	return cmd
}

func (a *app) listCheckpointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all checkpoints",
		Long:  `Display all available checkpoints with their metadata, newest first.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withCheckpoints(cmd, func(ctx context.Context, manager *storage.CheckpointManager) error {
				checkpoints, err := manager.List(ctx)
				if err != nil {
					return fmt.Errorf("failed to list checkpoints: %w", err)
				}

				if len(checkpoints) == 0 {
					writeln(cmd.OutOrStdout(), cli.SubtitleStyle.Render("No checkpoints found."))
					return nil
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

				headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
				fmt.Fprintln(w, strings.Join([]string{
					headerStyle.Render("NAME"),
					headerStyle.Render("CREATED"),
					headerStyle.Render("SIZE"),
					headerStyle.Render("EXPENSES"),
					headerStyle.Render("CATEGORIES"),
					headerStyle.Render("TYPE"),
				}, "\t"))

				for _, cp := range checkpoints {
					typeLabel := "manual"
					if cp.IsAuto {
						typeLabel = "auto"
					}

					fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
						cli.InfoStyle.Render(cp.ID),
						formatRelativeTime(cp.CreatedAt),
						formatFileSize(cp.FileSize),
						cp.Expenses,
						cp.Categories,
						cli.SubtitleStyle.Render(typeLabel),
					)
				}

				return w.Flush()
			})
		},
	}
}

func (a *app) restoreCheckpointCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "restore <checkpoint-id>",
		Short: "Restore database from a checkpoint",
		Long:  `Replace the current database with a checkpoint.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checkpointID := args[0]

			return a.withCheckpoints(cmd, func(ctx context.Context, manager *storage.CheckpointManager) error {
				info, err := manager.GetCheckpointInfo(ctx, checkpointID)
				if err != nil {
					return fmt.Errorf("failed to get checkpoint info: %w", err)
				}

				if !force {
					out := cmd.OutOrStdout()
					writeln(out, fmt.Sprintf("%s This will replace your current database with checkpoint %s.",
						cli.WarningStyle.Render(cli.WarningIcon),
						cli.InfoStyle.Render(checkpointID)))
					writeln(out, "  Created: "+info.CreatedAt.Format("2006-01-02 15:04:05"))
					if info.Description != "" {
						writeln(out, "  Description: "+info.Description)
					}

					ok, err := cli.Confirm(ctx, cli.NewNonBlockingReader(cmd.InOrStdin()), out, "Continue?")
					if err != nil {
						return err
					}
					if !ok {
						writeln(out, cli.SubtitleStyle.Render("Restore cancelled."))
						return nil
					}
				}

				// Restore closes the store's connection before swapping the file.
				if err := manager.Restore(ctx, checkpointID); err != nil {
					return fmt.Errorf("failed to restore checkpoint: %w", err)
				}

				writeln(cmd.OutOrStdout(), fmt.Sprintf("%s Restored from checkpoint %s",
					cli.SuccessStyle.Render(cli.SuccessIcon),
					cli.InfoStyle.Render(checkpointID)))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

func (a *app) deleteCheckpointCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <checkpoint-id>",
		Short: "Delete a checkpoint",
		Long:  `Permanently delete a checkpoint.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checkpointID := args[0]

			return a.withCheckpoints(cmd, func(ctx context.Context, manager *storage.CheckpointManager) error {
				info, err := manager.GetCheckpointInfo(ctx, checkpointID)
				if err != nil {
					return fmt.Errorf("failed to get checkpoint info: %w", err)
				}

				if !force {
					out := cmd.OutOrStdout()
					writeln(out, fmt.Sprintf("%s This will permanently delete checkpoint %s.",
						cli.WarningStyle.Render(cli.WarningIcon),
						cli.InfoStyle.Render(checkpointID)))
					writeln(out, "  Created: "+info.CreatedAt.Format("2006-01-02 15:04:05"))
					writeln(out, "  Size: "+formatFileSize(info.FileSize))

					ok, err := cli.Confirm(ctx, cli.NewNonBlockingReader(cmd.InOrStdin()), out, "Continue?")
					if err != nil {
						return err
					}
					if !ok {
						writeln(out, cli.SubtitleStyle.Render("Deletion cancelled."))
						return nil
					}
				}

				if err := manager.Delete(ctx, checkpointID); err != nil {
					return fmt.Errorf("failed to delete checkpoint: %w", err)
				}

				writeln(cmd.OutOrStdout(), fmt.Sprintf("%s Deleted checkpoint %s",
					cli.SuccessStyle.Render(cli.SuccessIcon),
					cli.InfoStyle.Render(checkpointID)))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}
