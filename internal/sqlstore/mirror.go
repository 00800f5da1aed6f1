package sqlstore

import (
	"fmt"
	"log/slog"

	"nexus/internal/store"
)

// Mirror replaces the database content with a snapshot of the folder tree.
// The swap happens in one transaction so readers never observe a half-synced
// replica.
func (s *Store) Mirror(items []store.Located) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin mirror tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM pendencias"); err != nil {
		return fmt.Errorf("clear mirror: %w", err)
	}
	for _, item := range items {
		args, err := recordArgs(item.Record, item.Folder)
		if err != nil {
			return fmt.Errorf("encode pendency %s: %w", item.Record.Number, err)
		}
		if _, err := tx.Exec(insertSQL, args...); err != nil {
			return fmt.Errorf("mirror pendency %s: %w", item.Record.Number, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit mirror tx: %w", err)
	}

	s.logger.Debug("mirror synced", slog.Int("records", len(items)))
	return nil
}
