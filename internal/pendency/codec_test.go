package pendency_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"nexus/internal/pendency"
)

func sampleRecord() *pendency.Pendency {
	stamp := pendency.Timestamp(time.Date(2025, 5, 20, 14, 30, 0, 0, time.Local))
	return &pendency.Pendency{
		Number:    "2505200001",
		CreatedAt: stamp,
		UpdatedAt: stamp,
		User:      "Maria",
		Sector:    "Vendas",
		Client:    pendency.NewClient("ACME Ltda", "", "", "", ""),
		Situation: "Novo contato",
		Status:    pendency.StatusActive,
		Priority:  pendency.PriorityNormal,
		Metadata: pendency.Metadata{
			Version:      "2.0",
			LastModified: stamp,
			ModifiedBy:   "Maria",
		},
	}
}

func TestEncodeCanonicalForm(t *testing.T) {
	data, err := pendency.Encode(sampleRecord())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	text := string(data)
	if !strings.HasSuffix(text, "\n") {
		t.Error("expected trailing newline")
	}
	if !strings.Contains(text, "\n  \"numero\": \"2505200001\"") {
		t.Errorf("expected two-space indent, got:\n%s", text)
	}
	// Nil collections serialize as empty, never null.
	for _, key := range []string{"\"historico\": []", "\"propostas_vinculadas\": []", "\"anexos\": []", "\"tags\": []"} {
		if !strings.Contains(text, key) {
			t.Errorf("expected %s in output", key)
		}
	}
	if strings.Contains(text, "vendedor") {
		t.Error("empty legacy vendedor field must be omitted")
	}
}

func TestDecodeRejectsBadNumero(t *testing.T) {
	_, err := pendency.Decode([]byte(`{"numero": "abc"}`))
	if !errors.Is(err, pendency.ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
	_, err = pendency.Decode([]byte(`not json`))
	if !errors.Is(err, pendency.ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestWriteFileLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "2505200001.json")

	if err := pendency.WriteFile(path, sampleRecord()); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "2505200001.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("expected a single record file, got %v", names)
	}

	record, err := pendency.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if record.Number != "2505200001" || record.Client.LegalName != "ACME Ltda" {
		t.Fatalf("unexpected round trip: %#v", record)
	}
	if record.Client.Phone != pendency.Placeholder {
		t.Fatalf("expected placeholder phone, got %q", record.Client.Phone)
	}
}
