package sqlstore

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"nexus/internal/pendency"
	"nexus/internal/store"
)

// Store manages pendency persistence backed by SQLite.
type Store struct {
	db         *sql.DB
	path       string
	situations []string
	logger     *slog.Logger
	now        func() time.Time
}

var _ store.Backend = (*Store)(nil)

// Option customizes store construction.
type Option func(*Store)

// WithLogger attaches a logger for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the wall clock, used by tests to pin the numbering day.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open initializes or connects to the pendency database and verifies its
// schema. situations is the ordered commercial pipeline; its first entry is
// the default for new records.
func Open(dbPath string, situations []string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("%w: database path is required", store.ErrValidation)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	s := &Store{
		db:         db,
		path:       dbPath,
		situations: append([]string(nil), situations...),
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DefaultSituation returns the first configured pipeline stage.
func (s *Store) DefaultSituation() string {
	if len(s.situations) > 0 {
		return s.situations[0]
	}
	return pendency.DefaultFallbackSituation
}

// nextNumber assigns the next daily sequence number by scanning every
// numero sharing today's YYMMDD prefix, mirroring the folder-tree generator.
func (s *Store) nextNumber(now time.Time) (string, error) {
	prefix := pendency.DatePrefix(now)

	rows, err := s.db.Query("SELECT numero FROM pendencias WHERE numero LIKE ?", prefix+"%")
	if err != nil {
		return "", fmt.Errorf("scan numero prefix %s: %w", prefix, err)
	}
	defer rows.Close()

	max := 0
	for rows.Next() {
		var numero string
		if err := rows.Scan(&numero); err != nil {
			return "", fmt.Errorf("scan numero: %w", err)
		}
		if len(numero) != pendency.NumberLength {
			continue
		}
		suffix, convErr := strconv.Atoi(numero[len(prefix):])
		if convErr != nil {
			continue
		}
		if suffix > max {
			max = suffix
		}
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterate numeros: %w", err)
	}
	return fmt.Sprintf("%s%04d", prefix, max+1), nil
}

// Create registers a new pendency in the ATIVAS folder, assigning the next
// daily sequence number and seeding the audit history.
func (s *Store) Create(req store.CreateRequest) (*store.CreateResult, error) {
	user := strings.TrimSpace(req.User)
	if user == "" {
		return nil, fmt.Errorf("%w: responsible user is required", store.ErrValidation)
	}
	sector := strings.TrimSpace(req.Sector)
	if sector == "" {
		return nil, fmt.Errorf("%w: responsible sector is required", store.ErrValidation)
	}

	now := s.now()
	number, err := s.nextNumber(now)
	if err != nil {
		return nil, fmt.Errorf("assign numero: %w", err)
	}
	record := store.NewRecord(number, req, s.DefaultSituation(), now)

	if err := s.insert(record, pendency.FolderActive); err != nil {
		return nil, fmt.Errorf("insert pendency %s: %w", number, err)
	}

	s.logger.Info("pendency created",
		slog.String("numero", number),
		slog.String("usuario", user),
		slog.String("setor", sector))

	return &store.CreateResult{Number: number, User: user, Sector: sector, Path: s.path}, nil
}

// Get loads a record by numero. It returns (nil, nil) when no row holds the
// numero.
func (s *Store) Get(number string) (*pendency.Pendency, error) {
	record, _, err := s.load(number)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}
