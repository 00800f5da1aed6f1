package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"nexus/internal/pendency"
)

// Store manages pendency persistence on a shared folder tree.
type Store struct {
	root       string
	situations []string
	generator  *pendency.Generator
	logger     *slog.Logger
	now        func() time.Time
}

// Option customizes store construction.
type Option func(*Store)

// WithLogger attaches a logger for decode/IO diagnostics.
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

// Open ensures the status folder structure exists under root and returns a
// store bound to it. situations is the ordered commercial pipeline; its first
// entry is the default for new records.
func Open(root string, situations []string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("%w: storage root is required", ErrValidation)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root %q: %w", root, err)
	}
	for _, folder := range pendency.Folders {
		if err := os.MkdirAll(filepath.Join(root, folder), 0o755); err != nil {
			return nil, fmt.Errorf("create status folder %q: %w", folder, err)
		}
	}

	s := &Store{
		root:       root,
		situations: append([]string(nil), situations...),
		generator:  pendency.NewGenerator(root),
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Root returns the storage root directory.
func (s *Store) Root() string {
	return s.root
}

// DefaultSituation returns the first configured pipeline stage.
func (s *Store) DefaultSituation() string {
	if len(s.situations) > 0 {
		return s.situations[0]
	}
	return pendency.DefaultFallbackSituation
}

// CreateRequest carries the fields accepted when registering a pendency.
// Only User and Sector are required; blank client fields become placeholders.
type CreateRequest struct {
	User              string
	Sector            string
	ClientName        string
	Phone             string
	TaxID             string
	StateRegistration string
	Address           string
	Equipment         string
	Observations      string
	Priority          string
	ResponseDays      string
}

// CreateResult identifies a freshly created record.
type CreateResult struct {
	Number string
	User   string
	Sector string
	Path   string
}

// Create registers a new pendency in the ATIVAS folder, assigning the next
// daily sequence number and seeding the audit history.
func (s *Store) Create(req CreateRequest) (*CreateResult, error) {
	user := strings.TrimSpace(req.User)
	if user == "" {
		return nil, fmt.Errorf("%w: responsible user is required", ErrValidation)
	}
	sector := strings.TrimSpace(req.Sector)
	if sector == "" {
		return nil, fmt.Errorf("%w: responsible sector is required", ErrValidation)
	}

	now := s.now()
	number, err := s.generator.Next(now)
	if err != nil {
		return nil, fmt.Errorf("assign numero: %w", err)
	}
	record := NewRecord(number, req, s.DefaultSituation(), now)

	path := filepath.Join(s.root, pendency.FolderActive, number+".json")
	if err := pendency.WriteFile(path, record); err != nil {
		return nil, fmt.Errorf("write pendency %s: %w", number, err)
	}

	s.logger.Info("pendency created",
		slog.String("numero", number),
		slog.String("usuario", user),
		slog.String("setor", sector))

	return &CreateResult{Number: number, User: user, Sector: sector, Path: path}, nil
}

// Get loads a record by numero, scanning the status folders in precedence
// order. It returns (nil, nil) when no folder holds the numero.
func (s *Store) Get(number string) (*pendency.Pendency, error) {
	path, _, err := s.locate(number)
	if err != nil {
		if err == ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	record, err := pendency.ReadFile(path)
	if err != nil {
		s.logger.Warn("pendency unreadable", slog.String("numero", number), slog.Any("error", err))
		return nil, fmt.Errorf("read pendency %s: %w", number, err)
	}
	return record, nil
}

// locate finds the file currently holding number. Folders are scanned in
// precedence order so a crash-window duplicate resolves deterministically.
func (s *Store) locate(number string) (path string, folder string, err error) {
	for _, f := range pendency.Folders {
		candidate := filepath.Join(s.root, f, number+".json")
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, f, nil
		}
	}
	return "", "", ErrNotFound
}

// load reads the record behind number together with its location.
func (s *Store) load(number string) (*pendency.Pendency, string, string, error) {
	path, folder, err := s.locate(number)
	if err != nil {
		return nil, "", "", err
	}
	record, err := pendency.ReadFile(path)
	if err != nil {
		return nil, "", "", fmt.Errorf("read pendency %s: %w", number, err)
	}
	return record, path, folder, nil
}
