package store

import (
	"fmt"
	"log/slog"
	"strings"

	"nexus/internal/pendency"
)

// Update describes the field changes applied by Store.Update. Nil pointers
// leave the stored value untouched. Seller is the historical alias for User
// kept for callers that still speak the old field name.
type Update struct {
	User         *string
	Seller       *string
	Sector       *string
	Equipment    *string
	Situation    *string
	Status       *string
	Priority     *string
	ResponseDays *string
	Client       *pendency.Client
}

func (u Update) user() *string {
	if u.User != nil {
		return u.User
	}
	return u.Seller
}

// Update applies field changes to a record under the optimistic-concurrency
// protocol. When expectedLastModified is non-empty and the stored record was
// modified after it, nothing is written and a ConflictError is returned
// naming the conflicting modifier.
func (s *Store) Update(number string, changes Update, actor string, expectedLastModified string) error {
	record, path, _, err := s.load(number)
	if err != nil {
		return err
	}
	if err := CheckConflict(record, expectedLastModified); err != nil {
		return err
	}

	ApplyChanges(record, changes, actor, s.now())
	if err := pendency.WriteFile(path, record); err != nil {
		return fmt.Errorf("write pendency %s: %w", number, err)
	}

	s.logger.Info("pendency updated", slog.String("numero", number), slog.String("usuario", actor))
	return nil
}

// ReplaceObservation swaps the free-text notes wholesale, logging the edit to
// history. Replacing with identical text is a successful no-op.
func (s *Store) ReplaceObservation(number, text, actor string) error {
	record, path, _, err := s.load(number)
	if err != nil {
		return err
	}
	if !ApplyObservation(record, text, actor, s.now()) {
		return nil
	}
	if err := pendency.WriteFile(path, record); err != nil {
		return fmt.Errorf("write pendency %s: %w", number, err)
	}
	return nil
}

// LinkProposal appends an external document reference. The caller remains
// responsible for any pipeline-stage change that should accompany it.
func (s *Store) LinkProposal(number, code, file, actor string) error {
	record, path, _, err := s.load(number)
	if err != nil {
		return err
	}
	ApplyProposal(record, code, file, actor, s.now())
	if err := pendency.WriteFile(path, record); err != nil {
		return fmt.Errorf("write pendency %s: %w", number, err)
	}
	return nil
}

// Transfer reassigns the responsible user, recording the handover in history.
func (s *Store) Transfer(number, toUser, reason, actor string) error {
	record, path, _, err := s.load(number)
	if err != nil {
		return err
	}

	fromUser := record.ResponsibleUser()
	ApplyTransfer(record, toUser, reason, actor, s.now())
	if err := pendency.WriteFile(path, record); err != nil {
		return fmt.Errorf("write pendency %s: %w", number, err)
	}

	s.logger.Info("pendency transferred",
		slog.String("numero", number),
		slog.String("from", fromUser),
		slog.String("to", toUser))
	return nil
}

// UpdateSituation changes the pipeline stage and, when observation is
// non-empty, records it as the new notes text in the same call.
func (s *Store) UpdateSituation(number, situation, observation, actor string) error {
	situation = strings.TrimSpace(situation)
	if situation == "" {
		return fmt.Errorf("%w: empty situation", ErrValidation)
	}
	if err := s.Update(number, Update{Situation: &situation}, actor, ""); err != nil {
		return err
	}
	if observation = strings.TrimSpace(observation); observation != "" {
		return s.ReplaceObservation(number, observation, actor)
	}
	return nil
}
