package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"nexus/internal/store"
)

func newUpdateCommand(ctx *commandContext) *cobra.Command {
	var (
		flags  = map[string]*string{}
		expect string
	)
	for _, name := range []string{"user", "sector", "equipment", "situation", "status", "priority", "response-days"} {
		flags[name] = new(string)
	}

	cmd := &cobra.Command{
		Use:   "update <numero>",
		Short: "Update fields of a pendency",
		Long: "Update fields of a pendency. Situation and status changes are appended to the " +
			"audit history. Pass --expect with the last-modified stamp from a previous read to " +
			"fail instead of overwriting someone else's change.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.ensureStore()
			if err != nil {
				return err
			}

			changes := store.Update{}
			assign := map[string]**string{
				"user":          &changes.User,
				"sector":        &changes.Sector,
				"equipment":     &changes.Equipment,
				"situation":     &changes.Situation,
				"status":        &changes.Status,
				"priority":      &changes.Priority,
				"response-days": &changes.ResponseDays,
			}
			touched := false
			for name, dest := range assign {
				if cmd.Flags().Changed(name) {
					*dest = flags[name]
					touched = true
				}
			}
			if !touched {
				return errors.New("nothing to update; pass at least one field flag")
			}

			err = s.Update(args[0], changes, ctx.actor(), expect)
			var conflict *store.ConflictError
			if errors.As(err, &conflict) {
				return fmt.Errorf("pendência %s foi modificada por %s em %s; recarregue antes de salvar",
					conflict.Number, conflict.ModifiedBy, conflict.ModifiedAt)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Pendência %s atualizada\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(flags["user"], "user", "", "Responsible user")
	cmd.Flags().StringVar(flags["sector"], "sector", "", "Responsible sector")
	cmd.Flags().StringVar(flags["equipment"], "equipment", "", "Equipment of interest")
	cmd.Flags().StringVar(flags["situation"], "situation", "", "Pipeline stage")
	cmd.Flags().StringVar(flags["status"], "status", "", "Record status")
	cmd.Flags().StringVar(flags["priority"], "priority", "", "Priority: baixa, normal, or alta")
	cmd.Flags().StringVar(flags["response-days"], "response-days", "", "Expected response window in days")
	cmd.Flags().StringVar(&expect, "expect", "", "Last-modified stamp from the previous read")

	return cmd
}
