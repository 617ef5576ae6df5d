package transform

import (
	"github.com/rs/zerolog"

	"github.com/wrowley/gridiron/internal/table"
)

// Coercer converts designated columns to numeric type. Parse failure is
// per-value, never per-column: a bad cell becomes the missing marker and
// every other cell in the column is unaffected.
type Coercer struct {
	log zerolog.Logger
}

// NewCoercer creates a numeric coercer.
func NewCoercer(log zerolog.Logger) *Coercer {
	return &Coercer{log: log.With().Str("component", "transform.coercer").Logger()}
}

// Apply returns a new table where each named column present in the input
// has been converted to numeric. Absent columns are skipped and logged;
// column lengths are always preserved.
func (c *Coercer) Apply(t *table.Table, columns []string) *table.Table {
	out := t.Clone()
	for _, name := range columns {
		col, ok := out.Col(name)
		if !ok {
			c.log.Warn().Str("column", name).Msg("column intended for numeric conversion not found")
			continue
		}
		if col.Kind == table.KindNumeric {
			continue
		}
		_ = out.ReplaceColumn(name, col.ToNumeric())
		c.log.Debug().Str("column", name).Msg("converted column to numeric")
	}
	return out
}
