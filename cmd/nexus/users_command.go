package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newUsersCommand(ctx *commandContext) *cobra.Command {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Query the shared login sheet",
	}

	var sector string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List users, optionally restricted to a sector",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureDirectory()
			if err != nil {
				return err
			}

			var rows [][]string
			if sector != "" {
				for _, u := range svc.UsersInSector(sector) {
					rows = append(rows, []string{strconv.Itoa(u.Code), u.Name, u.Sector, u.Role, strconv.Itoa(u.Level)})
				}
			} else {
				for _, sec := range svc.Sectors() {
					for _, u := range svc.UsersInSector(sec) {
						rows = append(rows, []string{strconv.Itoa(u.Code), u.Name, u.Sector, u.Role, strconv.Itoa(u.Level)})
					}
				}
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nenhum usuário encontrado")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Código", "Nome", "Setor", "Função", "Nível"},
				rows,
				nil,
			))
			return nil
		},
	}
	listCmd.Flags().StringVar(&sector, "sector", "", "Restrict to one sector")

	lookupCmd := &cobra.Command{
		Use:   "lookup <name-or-code>",
		Short: "Look one user up by name or code, accent-insensitive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureDirectory()
			if err != nil {
				return err
			}
			u, ok := svc.Lookup(args[0])
			if !ok {
				return fmt.Errorf("usuário %q não consta na planilha de logins", args[0])
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Código:  %d\n", u.Code)
			fmt.Fprintf(out, "Nome:    %s\n", u.Name)
			fmt.Fprintf(out, "Setor:   %s\n", dash(u.Sector))
			fmt.Fprintf(out, "Função:  %s\n", dash(u.Role))
			fmt.Fprintf(out, "Nível:   %d\n", u.Level)
			fmt.Fprintf(out, "Telefone: %s\n", dash(u.Phone))
			fmt.Fprintf(out, "Email:   %s\n", dash(u.Email))
			return nil
		},
	}

	usersCmd.AddCommand(listCmd)
	usersCmd.AddCommand(lookupCmd)
	return usersCmd
}
