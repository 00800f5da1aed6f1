package sqlstore

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"nexus/internal/pendency"
	"nexus/internal/store"
)

const recordColumns = "numero, pasta, data_criacao, data_atualizacao, usuario, vendedor, setor, equipamento, situacao, status, prioridade, prazo_resposta, origem, observacoes, cliente_json, historico_json, propostas_json, anexos_json, tags_json, meta_versao, meta_ultima_modificacao, meta_modificado_por"

func scanRecord(scanner interface{ Scan(dest ...any) error }) (*pendency.Pendency, string, error) {
	var (
		record    pendency.Pendency
		folder    string
		status    string
		cliente   string
		historico string
		propostas string
		anexos    string
		tags      string
	)

	if err := scanner.Scan(
		&record.Number,
		&folder,
		&record.CreatedAt,
		&record.UpdatedAt,
		&record.User,
		&record.LegacyUser,
		&record.Sector,
		&record.Equipment,
		&record.Situation,
		&status,
		&record.Priority,
		&record.ResponseDays,
		&record.Origin,
		&record.Observations,
		&cliente,
		&historico,
		&propostas,
		&anexos,
		&tags,
		&record.Metadata.Version,
		&record.Metadata.LastModified,
		&record.Metadata.ModifiedBy,
	); err != nil {
		return nil, "", err
	}
	record.Status = pendency.Status(status)

	for _, col := range []struct {
		name string
		raw  string
		dest any
	}{
		{"cliente_json", cliente, &record.Client},
		{"historico_json", historico, &record.History},
		{"propostas_json", propostas, &record.Proposals},
		{"anexos_json", anexos, &record.Attachments},
		{"tags_json", tags, &record.Tags},
	} {
		if col.raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(col.raw), col.dest); err != nil {
			return nil, "", fmt.Errorf("decode %s of %s: %w", col.name, record.Number, err)
		}
	}

	if record.History == nil {
		record.History = []pendency.HistoryEntry{}
	}
	if record.Proposals == nil {
		record.Proposals = []pendency.ProposalLink{}
	}
	if record.Attachments == nil {
		record.Attachments = []json.RawMessage{}
	}
	if record.Tags == nil {
		record.Tags = []string{}
	}
	return &record, folder, nil
}

func recordArgs(record *pendency.Pendency, folder string) ([]any, error) {
	cliente, err := json.Marshal(record.Client)
	if err != nil {
		return nil, fmt.Errorf("encode cliente: %w", err)
	}
	historico, err := json.Marshal(record.History)
	if err != nil {
		return nil, fmt.Errorf("encode historico: %w", err)
	}
	propostas, err := json.Marshal(record.Proposals)
	if err != nil {
		return nil, fmt.Errorf("encode propostas: %w", err)
	}
	anexos, err := json.Marshal(record.Attachments)
	if err != nil {
		return nil, fmt.Errorf("encode anexos: %w", err)
	}
	tags, err := json.Marshal(record.Tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}

	return []any{
		record.Number,
		folder,
		record.CreatedAt,
		record.UpdatedAt,
		record.User,
		record.LegacyUser,
		record.Sector,
		record.Equipment,
		record.Situation,
		string(record.Status),
		record.Priority,
		record.ResponseDays,
		record.Origin,
		record.Observations,
		string(cliente),
		string(historico),
		string(propostas),
		string(anexos),
		string(tags),
		record.Metadata.Version,
		record.Metadata.LastModified,
		record.Metadata.ModifiedBy,
	}, nil
}

const insertSQL = "INSERT INTO pendencias (" + recordColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"

const updateSQL = `UPDATE pendencias SET
    pasta = ?,
    data_criacao = ?,
    data_atualizacao = ?,
    usuario = ?,
    vendedor = ?,
    setor = ?,
    equipamento = ?,
    situacao = ?,
    status = ?,
    prioridade = ?,
    prazo_resposta = ?,
    origem = ?,
    observacoes = ?,
    cliente_json = ?,
    historico_json = ?,
    propostas_json = ?,
    anexos_json = ?,
    tags_json = ?,
    meta_versao = ?,
    meta_ultima_modificacao = ?,
    meta_modificado_por = ?
WHERE numero = ?`

func (s *Store) insert(record *pendency.Pendency, folder string) error {
	args, err := recordArgs(record, folder)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(insertSQL, args...)
	return err
}

// save rewrites the full row behind record.Number.
func (s *Store) save(record *pendency.Pendency, folder string) error {
	args, err := recordArgs(record, folder)
	if err != nil {
		return err
	}
	// Shift numero from the leading insert position to the WHERE clause.
	args = append(args[1:], args[0])
	res, err := s.db.Exec(updateSQL, args...)
	if err != nil {
		return fmt.Errorf("save pendency %s: %w", record.Number, err)
	}
	if affected, affErr := res.RowsAffected(); affErr == nil && affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// load reads the record behind number together with its status folder.
func (s *Store) load(number string) (*pendency.Pendency, string, error) {
	row := s.db.QueryRow("SELECT "+recordColumns+" FROM pendencias WHERE numero = ?", number)
	record, folder, err := scanRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, "", store.ErrNotFound
		}
		return nil, "", fmt.Errorf("read pendency %s: %w", number, err)
	}
	return record, folder, nil
}
