package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var withHistory bool

	cmd := &cobra.Command{
		Use:   "show <numero>",
		Short: "Show one pendency in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.ensureStore()
			if err != nil {
				return err
			}

			record, err := s.Get(args[0])
			if err != nil {
				return err
			}
			if record == nil {
				return fmt.Errorf("pendência %s não encontrada", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Número:        %s\n", record.Number)
			fmt.Fprintf(out, "Criada em:     %s\n", displayTime(record.CreatedAt))
			fmt.Fprintf(out, "Atualizada em: %s\n", displayTime(record.UpdatedAt))
			fmt.Fprintf(out, "Usuário:       %s\n", dash(record.ResponsibleUser()))
			fmt.Fprintf(out, "Setor:         %s\n", dash(record.Sector))
			fmt.Fprintf(out, "Cliente:       %s\n", dash(record.Client.LegalName))
			fmt.Fprintf(out, "Telefone:      %s\n", dash(record.Client.Phone))
			fmt.Fprintf(out, "CNPJ:          %s\n", dash(record.Client.TaxID))
			fmt.Fprintf(out, "Equipamento:   %s\n", dash(record.Equipment))
			fmt.Fprintf(out, "Situação:      %s\n", dash(record.Situation))
			fmt.Fprintf(out, "Status:        %s\n", dash(string(record.Status)))
			fmt.Fprintf(out, "Prioridade:    %s\n", dash(record.Priority))
			fmt.Fprintf(out, "Observações:   %s\n", dash(record.Observations))

			if len(record.Proposals) > 0 {
				fmt.Fprintln(out, "Propostas:")
				for _, proposal := range record.Proposals {
					fmt.Fprintf(out, "  %s (%s) %s\n", proposal.Code, displayTime(proposal.Date), proposal.File)
				}
			}

			fmt.Fprintf(out, "Última modificação: %s por %s\n",
				record.Metadata.LastModified, dash(record.Metadata.ModifiedBy))

			if withHistory {
				fmt.Fprintln(out, "Histórico:")
				for _, entry := range record.History {
					if entry.PreviousStatus != "" {
						fmt.Fprintf(out, "  %s  %s → %s (%s)\n",
							displayTime(entry.Date), entry.PreviousStatus, entry.NewStatus, entry.User)
						continue
					}
					fmt.Fprintf(out, "  %s  %s\n", displayTime(entry.Date), entry.NewStatus)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withHistory, "history", false, "Include the audit history")
	return cmd
}
