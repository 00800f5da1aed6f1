package sqlstore_test

import (
	"errors"
	"testing"
	"time"

	"nexus/internal/pendency"
	"nexus/internal/sqlstore"
	"nexus/internal/store"
	"nexus/internal/testsupport"
)

var testDay = time.Date(2025, 5, 20, 9, 0, 0, 0, time.Local)

func newTestStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	return testsupport.MustOpenSQLStore(t, cfg, sqlstore.WithClock(testsupport.FixedClock(testDay)))
}

func TestOpenInitializesSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenSQLStore(t, cfg)

	// Reopening the same file must accept the existing schema version.
	again, err := sqlstore.Open(cfg.Database.Path, cfg.Pipeline.Situations)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	_ = again.Close()
	_ = s
}

func TestCreateMirrorsFileStoreSemantics(t *testing.T) {
	s := newTestStore(t)

	result := testsupport.CreatePendency(t, s, "Maria", "Vendas", "ACME Ltda")
	if result.Number != "2505200001" {
		t.Fatalf("numero = %s", result.Number)
	}

	record, err := s.Get(result.Number)
	if err != nil || record == nil {
		t.Fatalf("Get failed: %v", err)
	}
	if record.Status != pendency.StatusActive || record.Situation != "Novo contato" {
		t.Fatalf("unexpected record: %#v", record)
	}
	if len(record.History) != 1 || record.History[0].NewStatus != "Pendência registrada no setor Vendas." {
		t.Fatalf("history seed = %#v", record.History)
	}

	second := testsupport.CreatePendency(t, s, "Carlos", "Vendas", "Beta SA")
	if second.Number != "2505200002" {
		t.Fatalf("second numero = %s", second.Number)
	}
}

func TestGetReturnsNilForUnknownNumber(t *testing.T) {
	s := newTestStore(t)

	record, err := s.Get("2505209999")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil, got %#v", record)
	}
}

func TestUpdateConflictProtocol(t *testing.T) {
	s := newTestStore(t)
	result := testsupport.CreatePendency(t, s, "Maria", "Vendas", "ACME Ltda")

	original, _ := s.Get(result.Number)
	firstStamp := original.Metadata.LastModified

	situation := "Proposta enviada"
	if err := s.Update(result.Number, store.Update{Situation: &situation}, "Carlos", firstStamp); err != nil {
		t.Fatalf("first update failed: %v", err)
	}

	another := "Em negociação"
	err := s.Update(result.Number, store.Update{Situation: &another}, "Maria", firstStamp)
	if !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	record, _ := s.Get(result.Number)
	if record.Situation != "Proposta enviada" {
		t.Fatalf("losing write changed the row: %q", record.Situation)
	}
}

func TestMoveChangesFolderAndStatus(t *testing.T) {
	s := newTestStore(t)
	result := testsupport.CreatePendency(t, s, "Maria", "Vendas", "ACME Ltda")

	if err := s.Move(result.Number, pendency.FolderDone, "venda fechada", "Maria"); err != nil {
		t.Fatalf("Move failed: %v", err)
	}

	record, _ := s.Get(result.Number)
	if record.Status != pendency.StatusDone {
		t.Errorf("status = %q", record.Status)
	}
	last := record.History[len(record.History)-1]
	if last.NewStatus != "MOVIDA - Movida de ATIVAS para CONCLUÍDAS - Motivo: venda fechada (Maria)" {
		t.Errorf("history entry = %q", last.NewStatus)
	}

	counts, err := s.FolderCounts()
	if err != nil {
		t.Fatalf("FolderCounts failed: %v", err)
	}
	if counts[pendency.FolderActive] != 0 || counts[pendency.FolderDone] != 1 {
		t.Fatalf("counts = %#v", counts)
	}
}

func TestCloseRecordUsesFechadaLabel(t *testing.T) {
	s := newTestStore(t)
	result := testsupport.CreatePendency(t, s, "Maria", "Vendas", "ACME Ltda")

	if err := s.CloseRecord(result.Number, "", "Maria"); err != nil {
		t.Fatalf("CloseRecord failed: %v", err)
	}

	record, _ := s.Get(result.Number)
	last := record.History[len(record.History)-1]
	if last.NewStatus != "FECHADA - Movida de ATIVAS para ARQUIVADAS (Maria)" {
		t.Errorf("history entry = %q", last.NewStatus)
	}
}

func TestDeleteRemovesRow(t *testing.T) {
	s := newTestStore(t)
	result := testsupport.CreatePendency(t, s, "Maria", "Vendas", "ACME Ltda")

	if err := s.Delete(result.Number, "duplicada"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	record, err := s.Get(result.Number)
	if err != nil || record != nil {
		t.Fatalf("expected gone, got %#v (err %v)", record, err)
	}
	if err := s.Delete(result.Number, ""); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListFiltersAndWindow(t *testing.T) {
	s := newTestStore(t)
	mine := testsupport.CreatePendency(t, s, "Maria", "Vendas", "ACME Ltda")
	other := testsupport.CreatePendency(t, s, "Carlos", "Assistência", "Beta SA")
	if err := s.Move(other.Number, pendency.FolderArchived, "", "Carlos"); err != nil {
		t.Fatalf("Move failed: %v", err)
	}

	records, err := s.List(store.ListFilter{User: "Maria"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 || records[0].Number != mine.Number {
		t.Fatalf("user filter failed: %#v", records)
	}

	records, err = s.List(store.ListFilter{ActiveOnly: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 || records[0].Number != mine.Number {
		t.Fatalf("active filter failed: %#v", records)
	}

	day := time.Date(2025, 5, 21, 0, 0, 0, 0, time.Local)
	records, err = s.List(store.ListFilter{From: day})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("window filter failed: %#v", records)
	}
}

func TestMirrorReplacesContent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	files := testsupport.MustOpenStore(t, cfg, store.WithClock(testsupport.FixedClock(testDay)))
	mirror := testsupport.MustOpenSQLStore(t, cfg)

	testsupport.CreatePendency(t, files, "Maria", "Vendas", "ACME Ltda")
	archived := testsupport.CreatePendency(t, files, "Maria", "Vendas", "Beta SA")
	if err := files.Archive(archived.Number, "", "Maria"); err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	items, err := files.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if err := mirror.Mirror(items); err != nil {
		t.Fatalf("Mirror failed: %v", err)
	}

	stats, err := mirror.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 2 {
		t.Fatalf("total = %d", stats.Total)
	}

	// Deleting from the tree and re-mirroring drops the row.
	if err := files.Delete(archived.Number, ""); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	items, _ = files.Snapshot()
	if err := mirror.Mirror(items); err != nil {
		t.Fatalf("second Mirror failed: %v", err)
	}
	record, err := mirror.Get(archived.Number)
	if err != nil || record != nil {
		t.Fatalf("expected row gone, got %#v (err %v)", record, err)
	}
}
