package sqlstore

import (
	"fmt"
	"log/slog"
	"strings"

	"nexus/internal/pendency"
	"nexus/internal/store"
)

// Update applies field changes to a record under the optimistic-concurrency
// protocol, mirroring the file-backed store.
func (s *Store) Update(number string, changes store.Update, actor string, expectedLastModified string) error {
	record, folder, err := s.load(number)
	if err != nil {
		return err
	}
	if err := store.CheckConflict(record, expectedLastModified); err != nil {
		return err
	}

	store.ApplyChanges(record, changes, actor, s.now())
	if err := s.save(record, folder); err != nil {
		return err
	}

	s.logger.Info("pendency updated", slog.String("numero", number), slog.String("usuario", actor))
	return nil
}

// ReplaceObservation swaps the free-text notes wholesale, logging the edit
// to history. Replacing with identical text is a successful no-op.
func (s *Store) ReplaceObservation(number, text, actor string) error {
	record, folder, err := s.load(number)
	if err != nil {
		return err
	}
	if !store.ApplyObservation(record, text, actor, s.now()) {
		return nil
	}
	return s.save(record, folder)
}

// LinkProposal appends an external document reference.
func (s *Store) LinkProposal(number, code, file, actor string) error {
	record, folder, err := s.load(number)
	if err != nil {
		return err
	}
	store.ApplyProposal(record, code, file, actor, s.now())
	return s.save(record, folder)
}

// Transfer reassigns the responsible user, recording the handover in history.
func (s *Store) Transfer(number, toUser, reason, actor string) error {
	record, folder, err := s.load(number)
	if err != nil {
		return err
	}

	fromUser := record.ResponsibleUser()
	store.ApplyTransfer(record, toUser, reason, actor, s.now())
	if err := s.save(record, folder); err != nil {
		return err
	}

	s.logger.Info("pendency transferred",
		slog.String("numero", number),
		slog.String("from", fromUser),
		slog.String("to", toUser))
	return nil
}

// Archive moves a record to ARQUIVADAS.
func (s *Store) Archive(number, reason, actor string) error {
	return s.Move(number, pendency.FolderArchived, reason, actor)
}

// CloseRecord closes a record: an archival move whose history entry is
// labeled FECHADA instead of ARQUIVADA. Named apart from Close, which shuts
// the database handle.
func (s *Store) CloseRecord(number, reason, actor string) error {
	return s.move(number, pendency.FolderArchived, reason, actor, "FECHADA")
}

// Move transitions a record to another status folder. The row's pasta column
// and status field change together, so the partition invariant holds by
// construction.
func (s *Store) Move(number, targetFolder, reason, actor string) error {
	return s.move(number, targetFolder, reason, actor, "")
}

func (s *Store) move(number, targetFolder, reason, actor, forcedLabel string) error {
	if !pendency.IsFolder(targetFolder) {
		return fmt.Errorf("%w: unknown status folder %q", store.ErrValidation, targetFolder)
	}

	record, sourceFolder, err := s.load(number)
	if err != nil {
		return err
	}
	if sourceFolder == targetFolder {
		return nil
	}

	store.ApplyMove(record, sourceFolder, targetFolder, reason, actor, forcedLabel, s.now())
	if err := s.save(record, targetFolder); err != nil {
		return err
	}

	s.logger.Info("pendency moved",
		slog.String("numero", number),
		slog.String("from", sourceFolder),
		slog.String("to", targetFolder))
	return nil
}

// Delete permanently removes a record. There is no tombstone and no recovery
// path.
func (s *Store) Delete(number, reason string) error {
	_, folder, err := s.load(number)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("DELETADA PERMANENTEMENTE - Removida de %s", folder)
	if strings.TrimSpace(reason) != "" {
		message += " - Motivo: " + reason
	}

	if _, err := s.db.Exec("DELETE FROM pendencias WHERE numero = ?", number); err != nil {
		return fmt.Errorf("delete pendency %s: %w", number, err)
	}

	s.logger.Info("pendency deleted",
		slog.String("numero", number),
		slog.String("folder", folder),
		slog.String("motivo", message))
	return nil
}
