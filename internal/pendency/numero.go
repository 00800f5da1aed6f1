package pendency

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// NumberLength is the total length of a record number: a six digit YYMMDD
// prefix followed by a four digit zero-padded daily sequence.
const NumberLength = 10

// ValidNumber reports whether value has the YYMMDDNNNN shape.
func ValidNumber(value string) bool {
	if len(value) != NumberLength {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	_, ok := NumberDate(value)
	return ok
}

// NumberDate extracts the creation date encoded in a record number or file
// stem. Two digit years 00-49 map to the 2000s, 50-99 to the 1900s.
func NumberDate(value string) (time.Time, bool) {
	if len(value) < 6 {
		return time.Time{}, false
	}
	yy, err := strconv.Atoi(value[0:2])
	if err != nil {
		return time.Time{}, false
	}
	mm, err := strconv.Atoi(value[2:4])
	if err != nil {
		return time.Time{}, false
	}
	dd, err := strconv.Atoi(value[4:6])
	if err != nil {
		return time.Time{}, false
	}
	year := 2000 + yy
	if yy >= 50 {
		year = 1900 + yy
	}
	if mm < 1 || mm > 12 || dd < 1 || dd > 31 {
		return time.Time{}, false
	}
	date := time.Date(year, time.Month(mm), dd, 0, 0, 0, 0, time.Local)
	if date.Day() != dd || date.Month() != time.Month(mm) {
		return time.Time{}, false
	}
	return date, true
}

// DatePrefix formats the YYMMDD number prefix for a calendar day.
func DatePrefix(t time.Time) string {
	return t.Format("060102")
}

// Generator produces collision-free daily sequence numbers by scanning every
// status folder for existing files with the current date prefix. No counter
// is cached: independent processes create records concurrently and only the
// directory listing reflects all of them.
type Generator struct {
	root string
}

// NewGenerator returns a generator rooted at the storage directory.
func NewGenerator(root string) *Generator {
	return &Generator{root: root}
}

// Next returns the next unused number for the calendar day of now.
func (g *Generator) Next(now time.Time) (string, error) {
	prefix := DatePrefix(now)
	highest := 0

	for _, folder := range Folders {
		entries, err := os.ReadDir(filepath.Join(g.root, folder))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", fmt.Errorf("scan %s: %w", folder, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			if !strings.HasSuffix(name, ".json") {
				continue
			}
			stem := strings.TrimSuffix(name, ".json")
			if len(stem) != NumberLength || !strings.HasPrefix(stem, prefix) {
				continue
			}
			suffix, err := strconv.Atoi(stem[6:])
			if err != nil {
				continue
			}
			if suffix > highest {
				highest = suffix
			}
		}
	}

	return fmt.Sprintf("%s%04d", prefix, highest+1), nil
}
