package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newNormalizeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize",
		Short: "Rewrite legacy records into the canonical shape and repair duplicates",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			result, err := s.NormalizeAll()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scanned:            %d\n", result.Scanned)
			fmt.Fprintf(out, "Rewritten:          %d\n", result.Rewritten)
			fmt.Fprintf(out, "Duplicates removed: %d\n", result.DuplicatesRemoved)
			return nil
		},
	}
}
