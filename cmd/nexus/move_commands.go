package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nexus/internal/pendency"
)

func newMoveCommand(ctx *commandContext) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "move <numero> <folder>",
		Short: "Move a pendency to another status folder",
		Long: "Move a pendency to another status folder. Valid folders: " +
			strings.Join(pendency.Folders, ", ") + ".",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			if err := s.Move(args[0], args[1], reason, ctx.actor()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pendência %s movida para %s\n", args[0], args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Reason recorded in the audit history")
	return cmd
}

func newArchiveCommand(ctx *commandContext) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "archive <numero>",
		Short: "Archive a pendency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			if err := s.Archive(args[0], reason, ctx.actor()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pendência %s arquivada\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Reason recorded in the audit history")
	return cmd
}

func newCloseCommand(ctx *commandContext) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "close <numero>",
		Short: "Close a pendency (archived with a FECHADA history entry)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			if err := s.Close(args[0], reason, ctx.actor()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pendência %s fechada\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Reason recorded in the audit history")
	return cmd
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	var (
		reason string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "delete <numero>",
		Short: "Permanently delete a pendency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("deletion is permanent and has no recovery path; pass --force to confirm")
			}
			s, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			if err := s.Delete(args[0], reason); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pendência %s removida permanentemente\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Reason logged with the deletion")
	cmd.Flags().BoolVar(&force, "force", false, "Confirm permanent deletion")
	return cmd
}
