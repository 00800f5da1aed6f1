package pendency

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrDecode marks a file that exists but does not hold a valid pendency
// document. Callers treat such records as absent from listings.
var ErrDecode = errors.New("invalid pendency document")

// Decode parses and minimally validates an on-disk record.
func Decode(data []byte) (*Pendency, error) {
	var p Pendency
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if !ValidNumber(p.Number) {
		return nil, fmt.Errorf("%w: bad numero %q", ErrDecode, p.Number)
	}
	return &p, nil
}

// Encode renders a record in the canonical pretty-printed UTF-8 form.
func Encode(p *Pendency) ([]byte, error) {
	if p.History == nil {
		p.History = []HistoryEntry{}
	}
	if p.Proposals == nil {
		p.Proposals = []ProposalLink{}
	}
	if p.Attachments == nil {
		p.Attachments = []json.RawMessage{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode pendency %s: %w", p.Number, err)
	}
	return append(data, '\n'), nil
}

// ReadFile loads one record file.
func ReadFile(path string) (*Pendency, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// WriteFile persists a record through a temp file plus atomic rename so a
// failed write never clobbers the previous contents. The temp name carries a
// .tmp suffix to stay invisible to the *.json folder scans.
func WriteFile(path string, p *Pendency) error {
	data, err := Encode(p)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
