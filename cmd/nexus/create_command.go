package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nexus/internal/store"
)

func newCreateCommand(ctx *commandContext) *cobra.Command {
	var req store.CreateRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new pendency in the ATIVAS folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			if req.User == "" {
				req.User = ctx.actor()
			}

			result, err := s.Create(req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Pendência %s registrada para %s (%s)\n", result.Number, result.User, result.Sector)
			fmt.Fprintf(out, "Arquivo: %s\n", result.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.User, "user", "", "Responsible user (defaults to --actor)")
	cmd.Flags().StringVar(&req.Sector, "sector", "", "Responsible sector")
	cmd.Flags().StringVar(&req.ClientName, "client", "", "Client legal name")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "Client phone")
	cmd.Flags().StringVar(&req.TaxID, "cnpj", "", "Client CNPJ")
	cmd.Flags().StringVar(&req.StateRegistration, "ie", "", "Client state registration")
	cmd.Flags().StringVar(&req.Address, "address", "", "Client address")
	cmd.Flags().StringVar(&req.Equipment, "equipment", "", "Equipment of interest")
	cmd.Flags().StringVar(&req.Observations, "notes", "", "Free-text notes")
	cmd.Flags().StringVar(&req.Priority, "priority", "", "Priority: baixa, normal, or alta")
	cmd.Flags().StringVar(&req.ResponseDays, "response-days", "", "Expected response window in days")
	_ = cmd.MarkFlagRequired("sector")

	return cmd
}
