package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTransferCommand(ctx *commandContext) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "transfer <numero> <to-user>",
		Short: "Reassign a pendency to another user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.ensureStore()
			if err != nil {
				return err
			}

			// When a login sheet is configured, reject transfers to names it
			// does not know about.
			if svc, dirErr := ctx.ensureDirectory(); dirErr == nil {
				if _, ok := svc.Lookup(args[1]); !ok {
					return fmt.Errorf("usuário %q não consta na planilha de logins", args[1])
				}
			}

			if err := s.Transfer(args[0], args[1], reason, ctx.actor()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pendência %s transferida para %s\n", args[0], args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Reason recorded in the audit history")
	return cmd
}
