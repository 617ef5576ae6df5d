package extract

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/wrowley/gridiron/internal/table"
)

// CSVWriter persists a table as a CSV file with canonical column order.
type CSVWriter struct {
	log zerolog.Logger
}

// NewCSVWriter creates a CSV writer.
func NewCSVWriter(log zerolog.Logger) *CSVWriter {
	return &CSVWriter{log: log.With().Str("component", "extract.writer").Logger()}
}

// Write saves the table to path, overwriting any existing file.
// Missing cells are written as empty strings.
func (w *CSVWriter) Write(t *table.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)

	names := t.ColumnNames()
	if err := cw.Write(names); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(names))
	for i := 0; i < t.RowCount(); i++ {
		for j, name := range names {
			col, _ := t.Col(name)
			cell := col.Text(i)
			if cell.Valid {
				record[j] = cell.Val
			} else {
				record[j] = ""
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}

	w.log.Info().
		Str("path", path).
		Int("rows", t.RowCount()).
		Int("columns", t.ColumnCount()).
		Msg("wrote cleaned data file")
	return nil
}
