package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"nexus/internal/pendency"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the record population",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.ensureStore()
			if err != nil {
				return err
			}

			stats, err := s.Stats()
			if err != nil {
				return err
			}
			counts, err := s.FolderCounts()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total: %d (com proposta: %d, sem proposta: %d)\n\n",
				stats.Total, stats.WithProposal, stats.WithoutProposal)

			folderRows := make([][]string, 0, len(pendency.Folders))
			for _, folder := range pendency.Folders {
				folderRows = append(folderRows, []string{folder, strconv.Itoa(counts[folder])})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Pasta", "Registros"},
				folderRows,
				[]columnAlignment{alignLeft, alignRight},
			))

			fmt.Fprintln(out)
			fmt.Fprintln(out, renderTable(
				[]string{"Status", "Registros"},
				sortedCountRows(stats.ByStatus),
				[]columnAlignment{alignLeft, alignRight},
			))

			fmt.Fprintln(out)
			fmt.Fprintln(out, renderTable(
				[]string{"Usuário", "Registros"},
				sortedCountRows(stats.ByUser),
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}
}

// sortedCountRows orders by count descending, then name, for stable output.
func sortedCountRows(counts map[string]int) [][]string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, strconv.Itoa(counts[name])})
	}
	return rows
}
