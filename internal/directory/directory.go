// Package directory serves user and sector lookups from the shared
// semicolon-delimited login sheet. It replaces the historical ambient global
// maps with an explicitly constructed service that callers inject and can
// reload when the sheet changes.
package directory

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Permission levels carried in the NIVEL_USUARIO column.
const (
	LevelReadOnly     = 1
	LevelOwnRecords   = 2
	LevelSector       = 3
	LevelUnrestricted = 4
)

// User is one row of the login sheet.
type User struct {
	Code     int
	Name     string
	Sector   string
	Phone    string
	Email    string
	Computer string
	Role     string
	Level    int
}

// Service resolves users and sectors from the CSV at path. All lookups are
// safe for concurrent use with Reload.
type Service struct {
	path string

	mu      sync.RWMutex
	byCode  map[int]User
	byName  map[string]User
	sectors map[string][]int
}

// New constructs a service bound to a CSV path. Call Load before lookups.
func New(path string) *Service {
	return &Service{
		path:    path,
		byCode:  make(map[int]User),
		byName:  make(map[string]User),
		sectors: make(map[string][]int),
	}
}

// Load parses the login sheet, replacing any previously loaded data.
func (s *Service) Load() error {
	if strings.TrimSpace(s.path) == "" {
		return errors.New("users csv path not configured")
	}

	file, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open users csv: %w", err)
	}
	defer file.Close()

	users, err := parseUsers(file)
	if err != nil {
		return err
	}

	byCode := make(map[int]User, len(users))
	byName := make(map[string]User, len(users))
	sectors := make(map[string][]int)
	for _, user := range users {
		byCode[user.Code] = user
		byName[foldName(user.Name)] = user
		if user.Sector != "" {
			sectors[user.Sector] = append(sectors[user.Sector], user.Code)
		}
	}

	s.mu.Lock()
	s.byCode = byCode
	s.byName = byName
	s.sectors = sectors
	s.mu.Unlock()
	return nil
}

// Reload re-reads the sheet; on failure the previous data stays in place.
func (s *Service) Reload() error {
	return s.Load()
}

// Lookup resolves a user by display name, tolerating case and accent
// differences.
func (s *Service) Lookup(name string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.byName[foldName(name)]
	return user, ok
}

// UsersInSector returns the users of a sector sorted by name.
func (s *Service) UsersInSector(sector string) []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	codes := s.sectors[sector]
	users := make([]User, 0, len(codes))
	for _, code := range codes {
		if user, ok := s.byCode[code]; ok {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users
}

// Sectors returns all known sector names sorted alphabetically.
func (s *Service) Sectors() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.sectors))
	for name := range s.sectors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns how many users are loaded.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byCode)
}

func parseUsers(r io.Reader) ([]User, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[canonicalColumn(name)] = i
	}

	var users []User
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		field := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		codeStr := field("CODIGO_USUARIO")
		if codeStr == "" {
			continue
		}
		code, err := strconv.Atoi(codeStr)
		if err != nil {
			continue
		}

		level := 0
		if levelStr := field("NIVEL_USUARIO"); levelStr != "" {
			if parsed, err := strconv.Atoi(levelStr); err == nil {
				level = parsed
			}
		}

		users = append(users, User{
			Code:     code,
			Name:     field("NOME_USUARIO"),
			Sector:   field("SETOR_USUARIO"),
			Phone:    field("TELEFONE_USUARIO"),
			Email:    field("E-MAIL_USUARIO"),
			Computer: field("COMPUTADOR_USUARIO"),
			Role:     field("CARGO_USUARIO"),
			Level:    level,
		})
	}
	return users, nil
}

// canonicalColumn strips the parenthesized variant some sheet exports use,
// e.g. "(NOME_USUARIO)" and "NOME_USUARIO" address the same column.
func canonicalColumn(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, "(")
	name = strings.TrimSuffix(name, ")")
	return strings.ToUpper(name)
}

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldName lowercases and strips accents so "José" matches "jose".
func foldName(name string) string {
	folded := strings.ToLower(strings.TrimSpace(name))
	stripped, _, err := transform.String(accentStripper, folded)
	if err != nil {
		return folded
	}
	return stripped
}
