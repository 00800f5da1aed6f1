package store

import "nexus/internal/pendency"

// Backend is the storage surface shared by the file-backed store and the
// alternate SQLite implementation in internal/sqlstore. Callers that only
// need record CRUD can take a Backend and stay agnostic of the medium.
type Backend interface {
	Create(req CreateRequest) (*CreateResult, error)
	Get(number string) (*pendency.Pendency, error)
	Update(number string, changes Update, actor string, expectedLastModified string) error
	ReplaceObservation(number, text, actor string) error
	LinkProposal(number, code, file, actor string) error
	Transfer(number, toUser, reason, actor string) error
	Move(number, targetFolder, reason, actor string) error
	Delete(number, reason string) error
	List(filter ListFilter) ([]*pendency.Pendency, error)
	Stats() (Stats, error)
}

var _ Backend = (*Store)(nil)
