package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"nexus/internal/pendency"
)

// ListFilter narrows a listing. Zero values mean "no restriction"; the
// literal "Todas"/"Todos" selector values from the historical UI are honored
// as well. From and To bound the creation day encoded in the numero and are
// applied before any file is opened.
type ListFilter struct {
	Status     string
	Situation  string
	User       string
	Sector     string
	ActiveOnly bool
	From       time.Time
	To         time.Time
}

func filterUnset(value string, allLabel string) bool {
	return value == "" || value == allLabel
}

// List returns matching records sorted by creation date, newest first.
// Unreadable files are logged and skipped rather than failing the listing.
func (s *Store) List(filter ListFilter) ([]*pendency.Pendency, error) {
	folders := pendency.Folders
	if filter.ActiveOnly {
		folders = []string{pendency.FolderActive}
	}

	hasWindow := !filter.From.IsZero() || !filter.To.IsZero()
	var results []*pendency.Pendency

	for _, folder := range folders {
		dir := filepath.Join(s.root, folder)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("scan %s: %w", folder, err)
		}

		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasSuffix(name, ".json") {
				continue
			}
			stem := strings.TrimSuffix(name, ".json")

			// Cheap date cut on the file name before opening anything.
			if hasWindow {
				day, ok := pendency.NumberDate(stem)
				if !ok {
					continue
				}
				if !filter.From.IsZero() && day.Before(truncateDay(filter.From)) {
					continue
				}
				if !filter.To.IsZero() && day.After(truncateDay(filter.To)) {
					continue
				}
			}

			record, err := pendency.ReadFile(filepath.Join(dir, name))
			if err != nil {
				s.logger.Warn("skipping unreadable pendency",
					slog.String("file", name),
					slog.String("folder", folder),
					slog.Any("error", err))
				continue
			}

			if !filterUnset(filter.Status, "Todas") && string(record.Status) != filter.Status {
				continue
			}
			if !filterUnset(filter.Situation, "Todas") && record.Situation != filter.Situation {
				continue
			}
			if !filterUnset(filter.User, "Todos") && record.ResponsibleUser() != filter.User {
				continue
			}
			if !filterUnset(filter.Sector, "Todos") && record.Sector != filter.Sector {
				continue
			}
			results = append(results, record)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CreatedAt > results[j].CreatedAt
	})
	return results, nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// Stats summarizes the record population.
type Stats struct {
	Total           int
	ByStatus        map[string]int
	ByUser          map[string]int
	WithProposal    int
	WithoutProposal int
}

// Stats aggregates counts over every folder.
func (s *Store) Stats() (Stats, error) {
	records, err := s.List(ListFilter{})
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
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

// FolderCounts returns the number of record files per status folder.
func (s *Store) FolderCounts() (map[string]int, error) {
	counts := make(map[string]int, len(pendency.Folders))
	for _, folder := range pendency.Folders {
		entries, err := os.ReadDir(filepath.Join(s.root, folder))
		if err != nil {
			if os.IsNotExist(err) {
				counts[folder] = 0
				continue
			}
			return nil, fmt.Errorf("scan %s: %w", folder, err)
		}
		n := 0
		for _, entry := range entries {
			if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
				n++
			}
		}
		counts[folder] = n
	}
	return counts, nil
}
