package store

import (
	"fmt"
	"strings"
	"time"

	"nexus/internal/pendency"
)

// The helpers in this file mutate an in-memory record without touching any
// storage medium. Both the file-backed store and the SQLite store apply them
// so the two media share identical history and metadata semantics.

// CheckConflict implements the optimistic-concurrency protocol: it returns a
// ConflictError when the record was modified strictly after the caller's last
// read. An empty expected stamp skips the check.
func CheckConflict(record *pendency.Pendency, expectedLastModified string) error {
	if expectedLastModified == "" {
		return nil
	}
	if record.Metadata.LastModified > expectedLastModified {
		return &ConflictError{
			Number:     record.Number,
			ModifiedBy: record.Metadata.ModifiedBy,
			ModifiedAt: record.Metadata.LastModified,
		}
	}
	return nil
}

// ApplyChanges applies field changes to a record. Situation and status
// changes each append an audit history entry; empty or unchanged situation
// values are ignored. Metadata is bumped unconditionally.
func ApplyChanges(record *pendency.Pendency, changes Update, actor string, now time.Time) {
	stamp := pendency.Timestamp(now)

	if value := changes.Situation; value != nil {
		next := strings.TrimSpace(*value)
		if next != "" && next != record.Situation {
			record.AppendHistory(pendency.HistoryEntry{
				Date:           stamp,
				PreviousStatus: record.Situation,
				NewStatus:      next,
				User:           actor,
			})
			record.Situation = next
		}
	}

	if value := changes.Status; value != nil {
		next := strings.TrimSpace(*value)
		if next != "" && next != string(record.Status) {
			record.AppendHistory(pendency.HistoryEntry{
				Date:      stamp,
				NewStatus: fmt.Sprintf("Status: %s → %s (%s)", record.Status, next, actor),
				User:      actor,
			})
			record.Status = pendency.Status(next)
		}
	}

	if value := changes.user(); value != nil {
		record.User = *value
		record.LegacyUser = ""
	}
	if value := changes.Sector; value != nil {
		record.Sector = *value
	}
	if value := changes.Equipment; value != nil {
		record.Equipment = *value
	}
	if value := changes.Priority; value != nil {
		record.Priority = *value
	}
	if value := changes.ResponseDays; value != nil {
		record.ResponseDays = *value
	}
	if changes.Client != nil {
		record.Client = *changes.Client
	}

	record.Touch(now, actor)
}

// ApplyObservation replaces the notes text, logging the edit to history. It
// reports false when the text is unchanged and nothing was applied.
func ApplyObservation(record *pendency.Pendency, text, actor string, now time.Time) bool {
	if record.Observations == text {
		return false
	}
	record.AppendHistory(pendency.HistoryEntry{
		Date:      pendency.Timestamp(now),
		NewStatus: fmt.Sprintf("Observações editadas (%s)", actor),
		User:      actor,
	})
	record.Observations = text
	record.Touch(now, actor)
	return true
}

// ApplyProposal appends an external document link plus its history entry.
func ApplyProposal(record *pendency.Pendency, code, file, actor string, now time.Time) {
	stamp := pendency.Timestamp(now)
	if strings.TrimSpace(file) == "" {
		file = code + ".pdf"
	}
	record.Proposals = append(record.Proposals, pendency.ProposalLink{
		Code: code,
		Date: stamp,
		File: file,
	})
	record.AppendHistory(pendency.HistoryEntry{
		Date:      stamp,
		NewStatus: fmt.Sprintf("Proposta gerada: %s", code),
		User:      actor,
	})
	record.Touch(now, actor)
}

// ApplyTransfer reassigns the responsible user and records the handover. The
// metadata modifier becomes the destination user, matching the historical
// behavior.
func ApplyTransfer(record *pendency.Pendency, toUser, reason, actor string, now time.Time) {
	fromUser := record.ResponsibleUser()
	record.User = toUser
	record.LegacyUser = ""

	message := fmt.Sprintf("TRANSFERIDO de %s para %s", fromUser, toUser)
	if strings.TrimSpace(reason) != "" {
		message += " - Motivo: " + reason
	}
	record.AppendHistory(pendency.HistoryEntry{
		Date:      pendency.Timestamp(now),
		NewStatus: fmt.Sprintf("%s (%s)", message, actor),
		User:      actor,
	})
	record.Touch(now, toUser)
}

// ApplyMove rewrites the record for a transition into targetFolder: the move
// history entry, the status field, and the last-modified stamp. The modifier
// is deliberately left alone, matching the historical move behavior.
func ApplyMove(record *pendency.Pendency, sourceFolder, targetFolder, reason, actor, forcedLabel string, now time.Time) {
	label := forcedLabel
	if label == "" {
		if targetFolder == pendency.FolderArchived {
			label = "ARQUIVADA"
		} else {
			label = "MOVIDA"
		}
	}

	message := fmt.Sprintf("%s - Movida de %s para %s", label, sourceFolder, targetFolder)
	if strings.TrimSpace(reason) != "" {
		message += " - Motivo: " + reason
	}

	stamp := pendency.Timestamp(now)
	record.AppendHistory(pendency.HistoryEntry{
		Date:      stamp,
		NewStatus: fmt.Sprintf("%s (%s)", message, actor),
		User:      actor,
	})
	record.UpdatedAt = stamp
	record.Metadata.LastModified = stamp
	if status, ok := pendency.StatusForFolder(targetFolder); ok {
		record.Status = status
	}
}

// NewRecord assembles a fresh record from a create request. The caller is
// responsible for validation and for assigning the numero.
func NewRecord(number string, req CreateRequest, defaultSituation string, now time.Time) *pendency.Pendency {
	stamp := pendency.Timestamp(now)

	priority := strings.TrimSpace(req.Priority)
	if priority == "" {
		priority = pendency.PriorityNormal
	}

	user := strings.TrimSpace(req.User)
	sector := strings.TrimSpace(req.Sector)

	return &pendency.Pendency{
		Number:       number,
		CreatedAt:    stamp,
		UpdatedAt:    stamp,
		User:         user,
		Sector:       sector,
		Client:       pendency.NewClient(req.ClientName, req.Phone, req.TaxID, req.StateRegistration, req.Address),
		Equipment:    req.Equipment,
		Situation:    defaultSituation,
		Status:       pendency.StatusActive,
		Priority:     priority,
		ResponseDays: req.ResponseDays,
		Origin:       "manual",
		Observations: req.Observations,
		History: []pendency.HistoryEntry{{
			Date:      stamp,
			NewStatus: fmt.Sprintf("Pendência registrada no setor %s.", sector),
			User:      user,
		}},
		Metadata: pendency.Metadata{
			Version:      pendency.MetadataVersion,
			LastModified: stamp,
			ModifiedBy:   user,
		},
	}
}
