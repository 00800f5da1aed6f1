package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"nexus/internal/pendency"
	"nexus/internal/testsupport"
)

func TestNormalizeAllRewritesLegacyRecords(t *testing.T) {
	s := newTestStore(t)

	payload := `{
  "numero": "2505190001",
  "data_criacao": "2025-05-19T08:00:00.000000",
  "data_atualizacao": "2025-05-19T08:00:00.000000",
  "usuario": "",
  "vendedor": "Carlos",
  "setor": "Vendas",
  "situacao": "",
  "status": "Ativa",
  "historico": [
    {"data": "2025-05-19T08:00:00.000000", "status_anterior": "", "status_novo": "Situação: Novo contato → Proposta enviada (Carlos)", "usuario": ""}
  ],
  "metadata": {"versao": "1.0", "ultima_modificacao": "2025-05-19T08:00:00.000000", "modificado_por": "Carlos"}
}`
	testsupport.WriteRecordJSON(t, s.Root(), pendency.FolderActive, "2505190001", payload)

	result, err := s.NormalizeAll()
	if err != nil {
		t.Fatalf("NormalizeAll failed: %v", err)
	}
	if result.Scanned != 1 || result.Rewritten != 1 {
		t.Fatalf("unexpected result: %#v", result)
	}

	record, err := s.Get("2505190001")
	if err != nil || record == nil {
		t.Fatalf("Get failed: %v", err)
	}
	if record.User != "Carlos" || record.LegacyUser != "" {
		t.Errorf("vendedor migration failed: %#v", record)
	}
	if record.Situation != "Proposta enviada" {
		t.Errorf("situation = %q", record.Situation)
	}
	if record.History[0].PreviousStatus != "Novo contato" {
		t.Errorf("history entry = %#v", record.History[0])
	}
	if record.Metadata.Version != pendency.MetadataVersion {
		t.Errorf("metadata version = %q", record.Metadata.Version)
	}

	// A second pass over canonical records rewrites nothing.
	again, err := s.NormalizeAll()
	if err != nil {
		t.Fatalf("second NormalizeAll failed: %v", err)
	}
	if again.Rewritten != 0 || again.DuplicatesRemoved != 0 {
		t.Fatalf("second pass must be a no-op: %#v", again)
	}
}

func TestNormalizeAllRemovesCrashDuplicates(t *testing.T) {
	s := newTestStore(t)
	result := testsupport.CreatePendency(t, s, "Maria", "Vendas", "ACME Ltda")

	// Simulate a move that crashed after writing the destination: the same
	// numero sits in two folders, the source copy carrying the older stamp.
	stale := `{
  "numero": "` + result.Number + `",
  "data_criacao": "2025-05-20T08:00:00.000000",
  "data_atualizacao": "2025-05-20T08:00:00.000000",
  "usuario": "Maria",
  "setor": "Vendas",
  "situacao": "Novo contato",
  "status": "Arquivada",
  "historico": [],
  "metadata": {"versao": "2.0", "ultima_modificacao": "2000-01-01T00:00:00.000000", "modificado_por": "Maria"}
}`
	stalePath := testsupport.WriteRecordJSON(t, s.Root(), pendency.FolderArchived, result.Number, stale)

	outcome, err := s.NormalizeAll()
	if err != nil {
		t.Fatalf("NormalizeAll failed: %v", err)
	}
	if outcome.DuplicatesRemoved != 1 {
		t.Fatalf("expected one duplicate removed: %#v", outcome)
	}
	if _, err := os.Stat(stalePath); !os.IsNotExist(err) {
		t.Fatal("stale copy must be deleted")
	}
	if _, err := os.Stat(filepath.Join(s.Root(), pendency.FolderActive, result.Number+".json")); err != nil {
		t.Fatalf("fresh copy must survive: %v", err)
	}
}

func TestSnapshotPairsRecordsWithFolders(t *testing.T) {
	s := newTestStore(t)
	active := testsupport.CreatePendency(t, s, "Maria", "Vendas", "ACME Ltda")
	archived := testsupport.CreatePendency(t, s, "Maria", "Vendas", "Beta SA")
	if err := s.Archive(archived.Number, "", "Maria"); err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	items, err := s.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	folders := make(map[string]string, len(items))
	for _, item := range items {
		folders[item.Record.Number] = item.Folder
	}
	if folders[active.Number] != pendency.FolderActive {
		t.Errorf("active folder = %q", folders[active.Number])
	}
	if folders[archived.Number] != pendency.FolderArchived {
		t.Errorf("archived folder = %q", folders[archived.Number])
	}
}
