package load

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wrowley/gridiron/internal/table"
)

// Repository reads previously loaded tables back out of PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a table repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// RowCount returns the number of rows in the named table.
func (r *Repository) RowCount(ctx context.Context, name string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+pgx.Identifier{name}.Sanitize()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", name, err)
	}
	return count, nil
}

// ReadTable loads the named table into memory, preserving column order.
// double precision columns come back numeric, everything else as text.
func (r *Repository) ReadTable(ctx context.Context, name string) (*table.Table, error) {
	rows, err := r.pool.Query(ctx, "SELECT * FROM "+pgx.Identifier{name}.Sanitize())
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	names := make([]string, len(fields))
	numeric := make([]bool, len(fields))
	for i, f := range fields {
		names[i] = f.Name
		// float4/float8 OIDs
		numeric[i] = f.DataTypeOID == 700 || f.DataTypeOID == 701
	}

	textCells := make([][]table.Str, len(fields))
	numCells := make([][]table.Float, len(fields))

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", name, err)
		}
		for j, v := range values {
			if numeric[j] {
				cell := table.Float{}
				switch t := v.(type) {
				case float64:
					cell = table.Float{Val: t, Valid: true}
				case float32:
					cell = table.Float{Val: float64(t), Valid: true}
				}
				numCells[j] = append(numCells[j], cell)
				continue
			}
			cell := table.Str{}
			if s, ok := v.(string); ok {
				cell = table.Str{Val: s, Valid: true}
			}
			textCells[j] = append(textCells[j], cell)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	cols := make([]*table.Column, len(fields))
	for j := range fields {
		if numeric[j] {
			cols[j] = table.NewNumericColumn(names[j], numCells[j])
		} else {
			cols[j] = table.NewTextColumn(names[j], textCells[j])
		}
	}
	return table.New(cols...)
}
