// Package extract reads raw passing statistics into tables: CSV files on
// disk and, via the pfr subpackage, scraped HTML stat tables.
package extract

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/wrowley/gridiron/internal/table"
)

var (
	// ErrNotFound means the input file does not exist.
	ErrNotFound = errors.New("data file not found")
	// ErrEmpty means the input file has no header or no rows at all.
	ErrEmpty = errors.New("data file is empty")
	// ErrMalformed means the input could not be parsed as CSV.
	ErrMalformed = errors.New("data file is malformed")
)

// CSVSource reads tabular data from CSV files.
type CSVSource struct {
	log zerolog.Logger
}

// NewCSVSource creates a CSV source.
func NewCSVSource(log zerolog.Logger) *CSVSource {
	return &CSVSource{log: log.With().Str("component", "extract.csv").Logger()}
}

// Read loads a CSV file into a table. The first record is the header.
// It fails with ErrNotFound, ErrEmpty or ErrMalformed; core stages only
// ever see a valid table.
func (s *CSVSource) Read(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Error().Str("path", path).Msg("data file not found")
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are handled by the table layer

	header, err := r.Read()
	if err == io.EOF {
		s.log.Error().Str("path", path).Msg("data file is empty")
		return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
		}
		rows = append(rows, rec)
	}

	t, err := table.FromRecords(header, rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}

	s.log.Info().
		Str("path", path).
		Int("rows", t.RowCount()).
		Int("columns", t.ColumnCount()).
		Msg("loaded data file")
	return t, nil
}
