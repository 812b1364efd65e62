// Package tabular reads and writes the pipeline's CSV files as typed
// row slices.
package tabular

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jszwec/csvutil"
)

// ReadFile decodes a CSV file into a slice of row structs. Column
// binding follows the rows' csv tags.
func ReadFile[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var rows []T
	if err := csvutil.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return rows, nil
}

// WriteFile encodes rows as CSV, creating parent directories as needed.
func WriteFile[T any](path string, rows []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	data, err := csvutil.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
