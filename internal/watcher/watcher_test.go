package watcher_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"nexus/internal/pendency"
	"nexus/internal/watcher"
)

func writeRecord(t *testing.T, root, folder, numero string) string {
	t.Helper()
	dir := filepath.Join(root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, numero+".json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestFirstCheckReportsChange(t *testing.T) {
	root := t.TempDir()
	writeRecord(t, root, pendency.FolderActive, "2505200001")

	d := watcher.New(root, false)
	changes := d.Check()
	if !changes.Any || !changes.Folders[pendency.FolderActive] {
		t.Fatalf("first check must report the unknown folder as changed: %#v", changes)
	}
}

func TestStableFolderReportsNoChange(t *testing.T) {
	root := t.TempDir()
	writeRecord(t, root, pendency.FolderActive, "2505200001")

	d := watcher.New(root, false)
	d.Check()

	changes := d.Check()
	if changes.Any {
		t.Fatalf("unchanged folder reported as changed: %#v", changes)
	}
}

func TestNewFileChangesFingerprint(t *testing.T) {
	root := t.TempDir()
	writeRecord(t, root, pendency.FolderActive, "2505200001")

	d := watcher.New(root, false)
	d.Check()

	writeRecord(t, root, pendency.FolderActive, "2505200002")
	changes := d.Check()
	if !changes.Folders[pendency.FolderActive] {
		t.Fatal("added file not detected")
	}
}

func TestDeletedFileChangesFingerprint(t *testing.T) {
	root := t.TempDir()
	path := writeRecord(t, root, pendency.FolderActive, "2505200001")
	writeRecord(t, root, pendency.FolderActive, "2505200002")

	d := watcher.New(root, false)
	d.Check()

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	changes := d.Check()
	if !changes.Folders[pendency.FolderActive] {
		t.Fatal("deleted file not detected")
	}
}

func TestTouchedFileChangesFingerprint(t *testing.T) {
	root := t.TempDir()
	path := writeRecord(t, root, pendency.FolderActive, "2505200001")

	d := watcher.New(root, false)
	d.Check()

	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	changes := d.Check()
	if !changes.Folders[pendency.FolderActive] {
		t.Fatal("mtime bump not detected")
	}
}

func TestArchivedFolderOnlyWhenEnabled(t *testing.T) {
	root := t.TempDir()
	writeRecord(t, root, pendency.FolderActive, "2505200001")
	writeRecord(t, root, pendency.FolderArchived, "2505190001")

	d := watcher.New(root, false)
	d.Check()
	writeRecord(t, root, pendency.FolderArchived, "2505190002")
	if changes := d.Check(); changes.Any {
		t.Fatalf("archived folder must be ignored when disabled: %#v", changes)
	}

	d.SetMonitorArchived(true)
	d.Check() // re-primes after the scope change
	writeRecord(t, root, pendency.FolderArchived, "2505190003")
	changes := d.Check()
	if !changes.Folders[pendency.FolderArchived] {
		t.Fatal("archived change not detected after enabling")
	}
}

func TestMissingFolderIsQuiet(t *testing.T) {
	d := watcher.New(filepath.Join(t.TempDir(), "nonexistent"), true)
	d.Check()
	if changes := d.Check(); changes.Any {
		t.Fatalf("missing folders must fingerprint stably: %#v", changes)
	}
}

func TestFolderCountsIncludesTotal(t *testing.T) {
	root := t.TempDir()
	writeRecord(t, root, pendency.FolderActive, "2505200001")
	writeRecord(t, root, pendency.FolderArchived, "2505190001")

	counts := watcher.New(root, true).FolderCounts()
	if counts[pendency.FolderActive] != 1 || counts[pendency.FolderArchived] != 1 {
		t.Fatalf("counts = %#v", counts)
	}
	if counts["total"] != 2 {
		t.Fatalf("total = %d", counts["total"])
	}
}
