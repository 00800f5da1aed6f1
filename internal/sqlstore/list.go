package sqlstore

import (
	"fmt"

	"nexus/internal/pendency"
	"nexus/internal/store"
)

// List returns matching records sorted by creation date, newest first. The
// date window prunes rows by the creation day encoded in the numero before
// any JSON column is decoded, mirroring the folder-tree file-name cut.
func (s *Store) List(filter store.ListFilter) ([]*pendency.Pendency, error) {
	query := "SELECT " + recordColumns + " FROM pendencias"
	var (
		conds []string
		args  []any
	)
	if filter.ActiveOnly {
		conds = append(conds, "pasta = ?")
		args = append(args, pendency.FolderActive)
	}
	if !filter.From.IsZero() {
		conds = append(conds, "numero >= ?")
		args = append(args, pendency.DatePrefix(filter.From)+"0000")
	}
	if !filter.To.IsZero() {
		conds = append(conds, "numero <= ?")
		args = append(args, pendency.DatePrefix(filter.To)+"9999")
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY data_criacao DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pendencias: %w", err)
	}
	defer rows.Close()

	var results []*pendency.Pendency
	for rows.Next() {
		record, _, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pendency: %w", err)
		}
		if !matches(filter.Status, "Todas", string(record.Status)) {
			continue
		}
		if !matches(filter.Situation, "Todas", record.Situation) {
			continue
		}
		if !matches(filter.User, "Todos", record.ResponsibleUser()) {
			continue
		}
		if !matches(filter.Sector, "Todos", record.Sector) {
			continue
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pendencias: %w", err)
	}
	return results, nil
}

func matches(filter, allLabel, value string) bool {
	return filter == "" || filter == allLabel || filter == value
}

// Stats aggregates counts over every row.
func (s *Store) Stats() (store.Stats, error) {
	records, err := s.List(store.ListFilter{})
	if err != nil {
		return store.Stats{}, err
	}

	stats := store.Stats{
		ByStatus: make(map[string]int),
		ByUser:   make(map[string]int),
	}
	for _, record := range records {
		stats.Total++

		status := string(record.Status)
		if status == "" {
			status = "Sem Status"
		}
		stats.ByStatus[status]++

		user := record.ResponsibleUser()
		if user == "" {
			user = "Sem Usuário"
		}
		stats.ByUser[user]++

		if len(record.Proposals) > 0 {
			stats.WithProposal++
		} else {
			stats.WithoutProposal++
		}
	}
	return stats, nil
}

// FolderCounts returns the number of records per status folder.
func (s *Store) FolderCounts() (map[string]int, error) {
	counts := make(map[string]int, len(pendency.Folders))
	for _, folder := range pendency.Folders {
		counts[folder] = 0
	}

	rows, err := s.db.Query("SELECT pasta, COUNT(1) FROM pendencias GROUP BY pasta")
	if err != nil {
		return nil, fmt.Errorf("count pendencias: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			folder string
			n      int
		)
		if err := rows.Scan(&folder, &n); err != nil {
			return nil, fmt.Errorf("scan folder count: %w", err)
		}
		counts[folder] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folder counts: %w", err)
	}
	return counts, nil
}
