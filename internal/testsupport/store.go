package testsupport

import (
	"testing"
	"time"

	"nexus/internal/config"
	"nexus/internal/sqlstore"
	"nexus/internal/store"
)

// FixedClock pins the wall clock for deterministic numero assignment and
// timestamps. Successive calls advance by a millisecond so last-modified
// stamps stay strictly ordered.
func FixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		now := current
		current = current.Add(time.Millisecond)
		return now
	}
}

// MustOpenStore opens a folder-tree store for tests rooted in the config's
// storage directory.
func MustOpenStore(t testing.TB, cfg *config.Config, opts ...store.Option) *store.Store {
	t.Helper()

	s, err := store.Open(cfg.Paths.RootDir, cfg.Pipeline.Situations, opts...)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	return s
}

// MustOpenSQLStore opens a SQLite-backed store for tests and registers
// cleanup.
func MustOpenSQLStore(t testing.TB, cfg *config.Config, opts ...sqlstore.Option) *sqlstore.Store {
	t.Helper()

	s, err := sqlstore.Open(cfg.Database.Path, cfg.Pipeline.Situations, opts...)
	if err != nil {
		t.Fatalf("sqlstore.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

// CreatePendency registers a record for tests using the provided backend.
func CreatePendency(t testing.TB, backend store.Backend, user, sector, client string) *store.CreateResult {
	t.Helper()

	result, err := backend.Create(store.CreateRequest{
		User:       user,
		Sector:     sector,
		ClientName: client,
	})
	if err != nil {
		t.Fatalf("backend.Create: %v", err)
	}
	return result
}
