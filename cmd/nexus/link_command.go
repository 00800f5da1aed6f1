package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLinkCommand(ctx *commandContext) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "link <numero> <proposal-code>",
		Short: "Link a generated proposal document to a pendency",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			if err := s.LinkProposal(args[0], args[1], file, ctx.actor()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Proposta %s vinculada à pendência %s\n", args[1], args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Document file name (defaults to <code>.pdf)")
	return cmd
}
