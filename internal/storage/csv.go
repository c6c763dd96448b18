package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// AppendRow appends one row to the CSV file at path, creating it with
// the header first when the file does not exist yet. The existence
// check happens before the file is opened, so any number of sequential
// appends writes the header exactly once. Concurrent processes writing
// the same path would race on that check; single-process usage is the
// supported mode.
func AppendRow(path string, header, row []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("csv: create output dir: %w", err)
	}

	_, statErr := os.Stat(path)
	exists := statErr == nil

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("csv: open %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	if !exists {
		if err := w.Write(header); err != nil {
			f.Close()
			return fmt.Errorf("csv: write header: %w", err)
		}
	}

	if err := w.Write(row); err != nil {
		f.Close()
		return fmt.Errorf("csv: write row: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("csv: flush: %w", err)
	}

	return f.Close()
}

// ReadRows reads a CSV file back, returning the header and data rows
// separately.
func ReadRows(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("csv: read %q: %w", path, err)
	}

	if len(records) == 0 {
		return nil, nil, nil
	}

	return records[0], records[1:], nil
}
