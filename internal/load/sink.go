// Package load persists cleaned tables to PostgreSQL and reads them
// back for analysis.
package load

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/wrowley/gridiron/internal/table"
)

// ErrPersistence means the sink write or its verification query failed;
// the write is considered failed as a whole.
var ErrPersistence = errors.New("database load failed")

// Sink writes tables into PostgreSQL, replacing any prior content at the
// destination. The replace happens inside one transaction, so old
// content is either fully gone or fully intact, never partially visible.
type Sink struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewSink creates a database sink.
func NewSink(pool *pgxpool.Pool, log zerolog.Logger) *Sink {
	return &Sink{
		pool: pool,
		log:  log.With().Str("component", "load.sink").Logger(),
	}
}

// Replace writes the table to the named destination, dropping whatever
// was there before, and returns the verified post-write row count.
func (s *Sink) Replace(ctx context.Context, t *table.Table, destName string) (int64, error) {
	if t.ColumnCount() == 0 {
		return 0, fmt.Errorf("%w: table has no columns", ErrPersistence)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: begin: %v", ErrPersistence, err)
	}
	defer tx.Rollback(ctx)

	ident := pgx.Identifier{destName}.Sanitize()

	if _, err := tx.Exec(ctx, "DROP TABLE IF EXISTS "+ident); err != nil {
		return 0, fmt.Errorf("%w: drop %s: %v", ErrPersistence, destName, err)
	}

	if _, err := tx.Exec(ctx, createStatement(t, ident)); err != nil {
		return 0, fmt.Errorf("%w: create %s: %v", ErrPersistence, destName, err)
	}

	names := t.ColumnNames()
	rows := make([][]any, t.RowCount())
	for i := range rows {
		row := make([]any, len(names))
		for j, name := range names {
			col, _ := t.Col(name)
			row[j] = cellValue(col, i)
		}
		rows[i] = row
	}

	copied, err := tx.CopyFrom(ctx, pgx.Identifier{destName}, names, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("%w: copy into %s: %v", ErrPersistence, destName, err)
	}

	// Verify by counting rows before committing.
	var count int64
	if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM "+ident).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: verify %s: %v", ErrPersistence, destName, err)
	}
	if count != copied {
		return 0, fmt.Errorf("%w: %s holds %d rows, copied %d", ErrPersistence, destName, count, copied)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%w: commit: %v", ErrPersistence, err)
	}

	s.log.Info().
		Str("table", destName).
		Int64("rows", count).
		Msg("data loaded into database table")
	return count, nil
}

// createStatement maps column kinds to SQL types: numeric columns to
// double precision, everything else to text.
func createStatement(t *table.Table, ident string) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(ident)
	b.WriteString(" (")
	for i, name := range t.ColumnNames() {
		if i > 0 {
			b.WriteString(", ")
		}
		col, _ := t.Col(name)
		b.WriteString(pgx.Identifier{name}.Sanitize())
		if col.Kind == table.KindNumeric {
			b.WriteString(" double precision")
		} else {
			b.WriteString(" text")
		}
	}
	b.WriteString(")")
	return b.String()
}

func cellValue(col *table.Column, row int) any {
	if col.Kind == table.KindNumeric {
		v := col.Num(row)
		if !v.Valid {
			return nil
		}
		return v.Val
	}
	v := col.Text(row)
	if !v.Valid {
		return nil
	}
	return v.Val
}
