package pdfrows

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mfokkema/flaplog/internal/domain"
)

// LoadDump reads rows from a JSON dump written by a previous run with
// row dumping enabled. Useful for reprocessing a report without the
// original PDF, and for fixing tagging by hand.
func LoadDump(path string) ([]domain.RawRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read row dump: %w", err)
	}
	var rows []domain.RawRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse row dump %s: %w", path, err)
	}
	return rows, nil
}

// DumpRows writes tagged rows as JSON, the format LoadDump reads back.
func DumpRows(path string, rows []domain.RawRow) error {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("encode rows: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write row dump: %w", err)
	}
	return nil
}
