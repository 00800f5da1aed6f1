package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"nexus/internal/store"
)

const dateFlagLayout = "2006-01-02"

func newListCommand(ctx *commandContext) *cobra.Command {
	var (
		filter   store.ListFilter
		fromFlag string
		toFlag   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pendencies, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.ensureStore()
			if err != nil {
				return err
			}

			if filter.From, err = parseDateFlag(fromFlag); err != nil {
				return err
			}
			if filter.To, err = parseDateFlag(toFlag); err != nil {
				return err
			}

			records, err := s.List(filter)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nenhuma pendência encontrada")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, record := range records {
				rows = append(rows, []string{
					record.Number,
					displayTime(record.CreatedAt),
					truncate(record.Client.LegalName, 30),
					record.ResponsibleUser(),
					record.Sector,
					record.Situation,
					string(record.Status),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Número", "Criada em", "Cliente", "Usuário", "Setor", "Situação", "Status"},
				rows,
				nil,
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Status, "status", "", "Filter by status (Todas for all)")
	cmd.Flags().StringVar(&filter.Situation, "situation", "", "Filter by pipeline stage (Todas for all)")
	cmd.Flags().StringVar(&filter.User, "user", "", "Filter by responsible user (Todos for all)")
	cmd.Flags().StringVar(&filter.Sector, "sector", "", "Filter by sector (Todos for all)")
	cmd.Flags().BoolVar(&filter.ActiveOnly, "active", false, "Only the ATIVAS folder")
	cmd.Flags().StringVar(&fromFlag, "from", "", "Creation date lower bound (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toFlag, "to", "", "Creation date upper bound (YYYY-MM-DD)")

	return cmd
}

func parseDateFlag(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateFlagLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}
