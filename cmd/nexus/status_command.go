package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "status <numero> <situacao>",
		Short: "Advance a pendency to another pipeline stage",
		Long: "Changes the commercial situation of a pendency and, with --note, " +
			"records new notes in the same call.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			if err := s.UpdateSituation(args[0], args[1], note, ctx.actor()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Situação de %s alterada para %s\n", args[0], args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "replace the notes alongside the stage change")
	return cmd
}
