package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"nexus/internal/pendency"
)

// NormalizeResult reports what a maintenance pass touched.
type NormalizeResult struct {
	Scanned           int
	Rewritten         int
	DuplicatesRemoved int
}

// NormalizeAll walks every record and rewrites the ones that deviate from the
// canonical shape: legacy history entries, blank history fields, a missing
// situation, or a status field out of step with the containing folder. It
// also repairs crash-window duplicates by deleting the copy with the older
// last-modified stamp. The pass is idempotent: a second run rewrites nothing.
func (s *Store) NormalizeAll() (NormalizeResult, error) {
	var result NormalizeResult

	type located struct {
		path     string
		folder   string
		modified string
	}
	seen := make(map[string]located)

	for _, folder := range pendency.Folders {
		dir := filepath.Join(s.root, folder)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return result, fmt.Errorf("scan %s: %w", folder, err)
		}

		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasSuffix(name, ".json") {
				continue
			}
			path := filepath.Join(dir, name)

			record, err := pendency.ReadFile(path)
			if err != nil {
				s.logger.Warn("normalize skipping unreadable file",
					slog.String("file", name),
					slog.Any("error", err))
				continue
			}
			result.Scanned++

			number := record.Number
			if prev, dup := seen[number]; dup {
				// Two folders hold the same numero: a move crashed between
				// writing the destination and unlinking the source. Keep the
				// newer copy.
				stale := path
				if record.Metadata.LastModified > prev.modified {
					stale = prev.path
					seen[number] = located{path: path, folder: folder, modified: record.Metadata.LastModified}
				}
				if err := os.Remove(stale); err != nil {
					s.logger.Error("failed to remove duplicate",
						slog.String("numero", number),
						slog.Any("error", err))
					continue
				}
				result.DuplicatesRemoved++
				s.logger.Warn("removed duplicate pendency copy",
					slog.String("numero", number),
					slog.String("kept", seen[number].folder))
				if stale == path {
					continue
				}
			} else {
				seen[number] = located{path: path, folder: folder, modified: record.Metadata.LastModified}
			}

			if !record.Normalize(folder) {
				continue
			}

			record.Metadata.Version = pendency.MetadataVersion
			record.Metadata.LastModified = pendency.Timestamp(s.now())
			if strings.TrimSpace(record.Metadata.ModifiedBy) == "" {
				record.Metadata.ModifiedBy = record.ResponsibleUser()
			}

			if err := pendency.WriteFile(path, record); err != nil {
				s.logger.Error("normalize rewrite failed",
					slog.String("numero", number),
					slog.Any("error", err))
				continue
			}
			result.Rewritten++
		}
	}

	s.logger.Info("normalization completed",
		slog.Int("scanned", result.Scanned),
		slog.Int("rewritten", result.Rewritten),
		slog.Int("duplicates_removed", result.DuplicatesRemoved))
	return result, nil
}

// Located pairs a record with the status folder currently holding it.
type Located struct {
	Record *pendency.Pendency
	Folder string
}

// Snapshot reads every record together with its containing folder, feeding
// the database mirror. Unreadable files are logged and skipped. A numero
// present in two folders appears once, resolved by folder precedence like
// Get.
func (s *Store) Snapshot() ([]Located, error) {
	seen := make(map[string]bool)
	var items []Located

	for _, folder := range pendency.Folders {
		dir := filepath.Join(s.root, folder)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("scan %s: %w", folder, err)
		}

		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasSuffix(name, ".json") {
				continue
			}
			record, err := pendency.ReadFile(filepath.Join(dir, name))
			if err != nil {
				s.logger.Warn("snapshot skipping unreadable file",
					slog.String("file", name),
					slog.String("folder", folder),
					slog.Any("error", err))
				continue
			}
			if seen[record.Number] {
				continue
			}
			seen[record.Number] = true
			items = append(items, Located{Record: record, Folder: folder})
		}
	}
	return items, nil
}
