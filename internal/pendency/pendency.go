package pendency

import (
	"encoding/json"
	"strings"
	"time"
)

// Status is the operational state of a record. It is always kept in the same
// equivalence class as the folder the record file lives in.
type Status string

const (
	StatusActive   Status = "Ativa"
	StatusArchived Status = "Arquivada"
	StatusCanceled Status = "Cancelada"
	StatusDone     Status = "Concluída"
	StatusOverdue  Status = "Em Atraso"
)

// Folder names under the storage root, one per operational status.
const (
	FolderActive   = "ATIVAS"
	FolderArchived = "ARQUIVADAS"
	FolderCanceled = "CANCELADAS"
	FolderDone     = "CONCLUÍDAS"
	FolderOverdue  = "EM ATRASO"
)

// Folders lists every status folder in lookup precedence order. Reads and the
// number generator scan folders in this order, so a crash-window duplicate
// always resolves deterministically (ATIVAS wins).
var Folders = []string{FolderActive, FolderArchived, FolderCanceled, FolderDone, FolderOverdue}

var folderStatus = map[string]Status{
	FolderActive:   StatusActive,
	FolderArchived: StatusArchived,
	FolderCanceled: StatusCanceled,
	FolderDone:     StatusDone,
	FolderOverdue:  StatusOverdue,
}

var statusFolder = func() map[Status]string {
	m := make(map[Status]string, len(folderStatus))
	for folder, status := range folderStatus {
		m[status] = folder
	}
	return m
}()

// StatusForFolder maps a status folder name to its operational status.
func StatusForFolder(folder string) (Status, bool) {
	status, ok := folderStatus[folder]
	return status, ok
}

// FolderForStatus maps an operational status to its folder name.
func FolderForStatus(status Status) (string, bool) {
	folder, ok := statusFolder[status]
	return folder, ok
}

// IsFolder reports whether name is one of the five status folders.
func IsFolder(name string) bool {
	_, ok := folderStatus[name]
	return ok
}

// Priority levels carried by the prioridade field.
const (
	PriorityLow    = "baixa"
	PriorityNormal = "normal"
	PriorityHigh   = "alta"
)

// TimeLayout is the timestamp format used everywhere in record files. The
// width is fixed so lexicographic order equals chronological order, which the
// optimistic-concurrency check depends on.
const TimeLayout = "2006-01-02T15:04:05.000000"

// Timestamp formats t in the record timestamp layout.
func Timestamp(t time.Time) string {
	return t.Format(TimeLayout)
}

// Client is the embedded customer sub-document. All fields are free text;
// absent values are stored as the historical placeholder "-".
type Client struct {
	LegalName         string `json:"razao_social"`
	Phone             string `json:"telefone"`
	TaxID             string `json:"cnpj"`
	City              string `json:"cidade"`
	Contact           string `json:"contato"`
	Email             string `json:"email"`
	StateRegistration string `json:"inscricao_estadual"`
	Address           string `json:"endereco"`
}

// Placeholder is stored in client fields that were never filled in.
const Placeholder = "-"

func orPlaceholder(value string) string {
	if strings.TrimSpace(value) == "" {
		return Placeholder
	}
	return value
}

// NewClient builds a client sub-document with placeholders for blank fields.
func NewClient(legalName, phone, taxID, stateRegistration, address string) Client {
	return Client{
		LegalName:         orPlaceholder(legalName),
		Phone:             orPlaceholder(phone),
		TaxID:             orPlaceholder(taxID),
		City:              Placeholder,
		Contact:           Placeholder,
		Email:             Placeholder,
		StateRegistration: stateRegistration,
		Address:           address,
	}
}

// HistoryEntry is one append-only audit record. The canonical shape is the
// first four fields; the legacy fields appear only in files written by old
// versions of the system and are rewritten by the normalization pass.
type HistoryEntry struct {
	Date           string `json:"data"`
	PreviousStatus string `json:"status_anterior"`
	NewStatus      string `json:"status_novo"`
	User           string `json:"usuario"`

	LegacyKind              string `json:"tipo,omitempty"`
	LegacyPreviousSituation string `json:"situacao_anterior,omitempty"`
	LegacyNewSituation      string `json:"situacao_nova,omitempty"`
	LegacyObservation       string `json:"observacao,omitempty"`
}

// ProposalLink references an external commercial document tied to a record.
type ProposalLink struct {
	Code string `json:"codigo"`
	Date string `json:"data"`
	File string `json:"arquivo"`
}

// Metadata mirrors the record's last mutation and is the authoritative input
// to the optimistic-concurrency check.
type Metadata struct {
	Version      string `json:"versao"`
	LastModified string `json:"ultima_modificacao"`
	ModifiedBy   string `json:"modificado_por"`
}

// MetadataVersion is written into new records.
const MetadataVersion = "1.0"

// Pendency is the aggregate sales-lead record.
type Pendency struct {
	Number       string            `json:"numero"`
	CreatedAt    string            `json:"data_criacao"`
	UpdatedAt    string            `json:"data_atualizacao"`
	User         string            `json:"usuario"`
	LegacyUser   string            `json:"vendedor,omitempty"`
	Sector       string            `json:"setor"`
	Client       Client            `json:"cliente"`
	Equipment    string            `json:"equipamento"`
	Situation    string            `json:"situacao"`
	Status       Status            `json:"status"`
	Priority     string            `json:"prioridade"`
	ResponseDays string            `json:"prazo_resposta"`
	Origin       string            `json:"origem"`
	Observations string            `json:"observacoes"`
	History      []HistoryEntry    `json:"historico"`
	Proposals    []ProposalLink    `json:"propostas_vinculadas"`
	Attachments  []json.RawMessage `json:"anexos"`
	Tags         []string          `json:"tags"`
	Metadata     Metadata          `json:"metadata"`
}

// ResponsibleUser returns the canonical responsible user, falling back to the
// pre-rename vendedor field for records not yet normalized.
func (p *Pendency) ResponsibleUser() string {
	if strings.TrimSpace(p.User) != "" {
		return p.User
	}
	return p.LegacyUser
}

// AppendHistory appends one audit entry. History entries are never reordered
// or removed by normal operation.
func (p *Pendency) AppendHistory(entry HistoryEntry) {
	p.History = append(p.History, entry)
}

// Touch bumps the mutation timestamps and records the acting user.
func (p *Pendency) Touch(now time.Time, actor string) {
	stamp := Timestamp(now)
	p.UpdatedAt = stamp
	p.Metadata.LastModified = stamp
	if strings.TrimSpace(actor) != "" {
		p.Metadata.ModifiedBy = actor
	}
}
