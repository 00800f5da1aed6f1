package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteRecordJSON drops a raw record payload into a status folder, creating
// the folder as needed. Tests use it to seed legacy or malformed files that
// the store API would never produce.
func WriteRecordJSON(t testing.TB, root, folder, numero, payload string) string {
	t.Helper()

	dir := filepath.Join(root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, numero+".json")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteUsersCSV writes a semicolon-delimited login sheet to a temp file and
// returns its path. Each row is passed through verbatim, so callers control
// the header line.
func WriteUsersCSV(t testing.TB, rows ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "usuarios.csv")
	content := ""
	for _, row := range rows {
		content += row + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
