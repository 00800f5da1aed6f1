package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"nexus/internal/pendency"
)

// Archive moves a record to ARQUIVADAS.
func (s *Store) Archive(number, reason, actor string) error {
	return s.Move(number, pendency.FolderArchived, reason, actor)
}

// Close closes a record. Closing is an archival move whose history entry is
// labeled FECHADA instead of ARQUIVADA.
func (s *Store) Close(number, reason, actor string) error {
	return s.move(number, pendency.FolderArchived, reason, actor, "FECHADA")
}

// Move transitions a record to another status folder, keeping the status
// field and the containing folder in step.
func (s *Store) Move(number, targetFolder, reason, actor string) error {
	return s.move(number, targetFolder, reason, actor, "")
}

// move writes the record into the destination folder first and unlinks the
// source after. A crash between the two steps leaves a duplicate numero that
// Get shadows by folder precedence and NormalizeAll cleans up.
func (s *Store) move(number, targetFolder, reason, actor, forcedLabel string) error {
	if !pendency.IsFolder(targetFolder) {
		return fmt.Errorf("%w: unknown status folder %q", ErrValidation, targetFolder)
	}

	record, sourcePath, sourceFolder, err := s.load(number)
	if err != nil {
		return err
	}
	if sourceFolder == targetFolder {
		return nil
	}

	ApplyMove(record, sourceFolder, targetFolder, reason, actor, forcedLabel, s.now())

	targetPath := filepath.Join(s.root, targetFolder, number+".json")
	if err := pendency.WriteFile(targetPath, record); err != nil {
		return fmt.Errorf("write pendency %s to %s: %w", number, targetFolder, err)
	}
	if err := os.Remove(sourcePath); err != nil {
		s.logger.Error("stale copy left after move",
			slog.String("numero", number),
			slog.String("folder", sourceFolder),
			slog.Any("error", err))
		return fmt.Errorf("remove source of %s: %w", number, err)
	}

	s.logger.Info("pendency moved",
		slog.String("numero", number),
		slog.String("from", sourceFolder),
		slog.String("to", targetFolder))
	return nil
}

// Delete permanently unlinks a record from whichever folder holds it. There
// is no tombstone and no recovery path.
func (s *Store) Delete(number, reason string) error {
	_, path, folder, err := s.load(number)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("DELETADA PERMANENTEMENTE - Removida de %s", folder)
	if strings.TrimSpace(reason) != "" {
		message += " - Motivo: " + reason
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete pendency %s: %w", number, err)
	}

	s.logger.Info("pendency deleted",
		slog.String("numero", number),
		slog.String("folder", folder),
		slog.String("motivo", message))
	return nil
}
