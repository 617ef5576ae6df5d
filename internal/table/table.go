// Package table provides the in-memory tabular data model shared by the
// ETL and training stages: an ordered set of named, typed columns with an
// explicit per-cell missing marker.
package table

import (
	"fmt"
)

// Table is an ordered sequence of named columns of equal length.
// Row order is insertion order and is preserved by every operation
// except row filtering.
type Table struct {
	cols   []*Column
	byName map[string]int
}

// New creates a table from the given columns. All columns must have the
// same length and unique names.
func New(cols ...*Column) (*Table, error) {
	t := &Table{byName: make(map[string]int, len(cols))}
	for _, c := range cols {
		if err := t.AddColumn(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// FromRecords builds a text table from a CSV-style header and rows.
// Empty, "NA" and "NaN" cells become missing values. Short rows are
// padded with missing values; long rows are an error.
func FromRecords(header []string, rows [][]string) (*Table, error) {
	cols := make([]*Column, len(header))
	for j, name := range header {
		cells := make([]Str, len(rows))
		for i, row := range rows {
			if j >= len(row) {
				continue // missing
			}
			cells[i] = ParseStr(row[j])
		}
		cols[j] = NewTextColumn(name, cells)
	}
	for i, row := range rows {
		if len(row) > len(header) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", i, len(row), len(header))
		}
	}
	return New(cols...)
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	if len(t.cols) == 0 {
		return 0
	}
	return t.cols[0].Len()
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.cols)
}

// ColumnNames returns column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Has reports whether a column with the given name exists.
func (t *Table) Has(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Col returns the named column, or false if absent.
func (t *Table) Col(name string) (*Column, bool) {
	idx, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return t.cols[idx], true
}

// AddColumn appends a column. Its length must match the existing rows.
func (t *Table) AddColumn(c *Column) error {
	if _, exists := t.byName[c.Name]; exists {
		return fmt.Errorf("duplicate column %q", c.Name)
	}
	if len(t.cols) > 0 && c.Len() != t.RowCount() {
		return fmt.Errorf("column %q has %d rows, table has %d", c.Name, c.Len(), t.RowCount())
	}
	t.byName[c.Name] = len(t.cols)
	t.cols = append(t.cols, c)
	return nil
}

// ReplaceColumn swaps the named column in place, keeping its position.
func (t *Table) ReplaceColumn(name string, c *Column) error {
	idx, ok := t.byName[name]
	if !ok {
		return fmt.Errorf("no such column %q", name)
	}
	if c.Len() != t.RowCount() {
		return fmt.Errorf("column %q has %d rows, table has %d", c.Name, c.Len(), t.RowCount())
	}
	if c.Name != name {
		if _, exists := t.byName[c.Name]; exists {
			return fmt.Errorf("duplicate column %q", c.Name)
		}
		delete(t.byName, name)
		t.byName[c.Name] = idx
	}
	t.cols[idx] = c
	return nil
}

// Rename returns a new table with columns renamed per the given map.
// Columns whose name is not a map key are untouched; positions are
// preserved. Renaming to an existing name is an error.
func (t *Table) Rename(renames map[string]string) (*Table, error) {
	out := &Table{byName: make(map[string]int, len(t.cols))}
	for _, c := range t.cols {
		name := c.Name
		if newName, ok := renames[name]; ok {
			name = newName
		}
		cc := c.clone()
		cc.Name = name
		if err := out.AddColumn(cc); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{byName: make(map[string]int, len(t.cols))}
	for _, c := range t.cols {
		_ = out.AddColumn(c.clone())
	}
	return out
}

// FilterRows returns a new table containing only rows for which keep
// returns true, in their original order.
func (t *Table) FilterRows(keep func(row int) bool) *Table {
	n := t.RowCount()
	idx := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if keep(i) {
			idx = append(idx, i)
		}
	}
	return t.SelectRows(idx)
}

// SelectRows returns a new table containing the given rows in the given
// order.
func (t *Table) SelectRows(rows []int) *Table {
	out := &Table{byName: make(map[string]int, len(t.cols))}
	for _, c := range t.cols {
		_ = out.AddColumn(c.selectRows(rows))
	}
	return out
}

// Select returns a new table with only the named columns, in the given
// order.
func (t *Table) Select(names ...string) (*Table, error) {
	out := &Table{byName: make(map[string]int, len(names))}
	for _, name := range names {
		c, ok := t.Col(name)
		if !ok {
			return nil, fmt.Errorf("no such column %q", name)
		}
		if err := out.AddColumn(c.clone()); err != nil {
			return nil, err
		}
	}
	return out, nil
}
