// Package watcher detects that another process changed the shared record
// tree, without any server or message bus: each monitored status folder is
// summarized into a cheap fingerprint and compared against the previous poll.
//
// The fingerprint hashes the file count together with the newest modification
// time over a bounded sample of files. Full-content hashing is too slow to
// run every few seconds on a network share; count plus max-mtime reliably
// catches create, update, and delete events at the expected volumes.
package watcher

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"nexus/internal/pendency"
)

// sampleLimit bounds how many files contribute their mtime to a fingerprint.
const sampleLimit = 100

// Changes aggregates the outcome of one poll.
type Changes struct {
	Folders map[string]bool
	Any     bool
}

// Detector keeps one fingerprint per monitored folder. ATIVAS is always
// monitored; ARQUIVADAS only when the caller opts in.
type Detector struct {
	root string

	mu              sync.Mutex
	monitorArchived bool
	fingerprints    map[string]string
}

// New returns a detector rooted at the storage directory.
func New(root string, monitorArchived bool) *Detector {
	return &Detector{
		root:            root,
		monitorArchived: monitorArchived,
		fingerprints:    make(map[string]string),
	}
}

func (d *Detector) monitored() []string {
	folders := []string{pendency.FolderActive}
	if d.monitorArchived {
		folders = append(folders, pendency.FolderArchived)
	}
	return folders
}

// Check fingerprints every monitored folder and reports which ones changed
// since the previous call. A folder with no stored fingerprint counts as
// changed, so the first poll after construction or Reset reports everything.
func (d *Detector) Check() Changes {
	d.mu.Lock()
	defer d.mu.Unlock()

	changes := Changes{Folders: make(map[string]bool)}
	for _, folder := range d.monitored() {
		current := fingerprintFolder(filepath.Join(d.root, folder))
		previous, known := d.fingerprints[folder]

		changed := !known || current != previous
		changes.Folders[folder] = changed
		if changed {
			changes.Any = true
			d.fingerprints[folder] = current
		}
	}
	return changes
}

// Reset clears all stored fingerprints; the next Check reports every
// monitored folder as changed, which callers treat as "assume changed".
func (d *Detector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fingerprints = make(map[string]string)
}

// SetMonitorArchived toggles ARQUIVADAS monitoring. Changing the monitoring
// scope resets the fingerprints so no folder is compared against a stamp
// taken under a different scope.
func (d *Detector) SetMonitorArchived(enabled bool) {
	d.mu.Lock()
	if d.monitorArchived == enabled {
		d.mu.Unlock()
		return
	}
	d.monitorArchived = enabled
	d.mu.Unlock()
	d.Reset()
}

// FolderCounts returns the record-file count per monitored folder plus a
// "total" entry.
func (d *Detector) FolderCounts() map[string]int {
	d.mu.Lock()
	folders := d.monitored()
	d.mu.Unlock()

	counts := make(map[string]int, len(folders)+1)
	total := 0
	for _, folder := range folders {
		n := countRecords(filepath.Join(d.root, folder))
		counts[folder] = n
		total += n
	}
	counts["total"] = total
	return counts
}

func countRecords(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	n := 0
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			n++
		}
	}
	return n
}

// fingerprintFolder summarizes a folder as hash(count, newest sampled mtime).
// A missing folder fingerprints as "" and an empty one as "0", matching the
// distinct states the comparison needs to tell apart.
func fingerprintFolder(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	var files []os.DirEntry
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			files = append(files, entry)
		}
	}
	if len(files) == 0 {
		return "0"
	}

	var newest int64
	sampled := files
	if len(sampled) > sampleLimit {
		sampled = sampled[:sampleLimit]
	}
	for _, entry := range sampled {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if mtime := info.ModTime().UnixNano(); mtime > newest {
			newest = mtime
		}
	}

	sum := sha256.Sum256([]byte(fmt.Sprintf("%d:%d", len(files), newest)))
	return hex.EncodeToString(sum[:])
}
