package transform

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/wrowley/gridiron/internal/table"
)

var (
	// ErrKeyColumnMissing means the player identity column is absent
	// from the input, which is an input-shape error rather than
	// something filtering can skip over.
	ErrKeyColumnMissing = errors.New("key column missing from input")
	// ErrAllRowsFiltered means every row had a missing identity value.
	// Terminal for the ETL pipeline: nothing downstream should run.
	ErrAllRowsFiltered = errors.New("all rows removed by identity filter")
)

// RowFilter drops rows whose key identity column holds the missing
// marker.
type RowFilter struct {
	keyColumn string
	log       zerolog.Logger
}

// NewRowFilter creates a row filter on the given identity column.
func NewRowFilter(keyColumn string, log zerolog.Logger) *RowFilter {
	return &RowFilter{
		keyColumn: keyColumn,
		log:       log.With().Str("component", "transform.filter").Str("key_column", keyColumn).Logger(),
	}
}

// Apply returns a new table without the rows whose identity value is
// missing, plus the number of rows dropped. An absent key column is
// ErrKeyColumnMissing; a result emptied by filtering is
// ErrAllRowsFiltered, reported distinctly from "no rows dropped".
func (f *RowFilter) Apply(t *table.Table) (*table.Table, int, error) {
	key, ok := t.Col(f.keyColumn)
	if !ok {
		return nil, 0, fmt.Errorf("%w: %q", ErrKeyColumnMissing, f.keyColumn)
	}

	before := t.RowCount()
	out := t.FilterRows(func(i int) bool {
		return !key.Missing(i)
	})
	dropped := before - out.RowCount()

	if before > 0 && out.RowCount() == 0 {
		return nil, dropped, fmt.Errorf("%w: %d rows dropped", ErrAllRowsFiltered, dropped)
	}

	if dropped > 0 {
		f.log.Info().Int("rows_dropped", dropped).Msg("dropped rows with missing identity values")
	} else {
		f.log.Info().Msg("no rows dropped due to missing identity values")
	}
	return out, dropped, nil
}
