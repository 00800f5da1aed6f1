package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newNoteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "note <numero> <text>",
		Short: "Replace the free-text notes of a pendency",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			text := strings.Join(args[1:], " ")
			if err := s.ReplaceObservation(args[0], text, ctx.actor()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Observações de %s atualizadas\n", args[0])
			return nil
		},
	}
}
