package table

import (
	"math"
	"strconv"
)

// Kind is the semantic type of a column.
type Kind int

const (
	// KindText holds free-form strings (player names, teams).
	KindText Kind = iota
	// KindNumeric holds float64 values with a per-cell missing marker.
	KindNumeric
)

// Str is a text cell. Valid false is the missing marker.
type Str struct {
	Val   string
	Valid bool
}

// Float is a numeric cell. Valid false is the missing marker, distinct
// from zero and from any parsed value.
type Float struct {
	Val   float64
	Valid bool
}

// ParseStr normalizes a raw CSV cell. Empty, "NA" and "NaN" are missing.
func ParseStr(raw string) Str {
	if raw == "" || raw == "NA" || raw == "NaN" {
		return Str{}
	}
	return Str{Val: raw, Valid: true}
}

// ParseFloat parses a cell into a numeric value. Unparsable input and
// NaN both map to the missing marker, never to an error.
func ParseFloat(raw string) Float {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return Float{}
	}
	return Float{Val: v, Valid: true}
}

// Column is a single named column of one kind. Exactly one of the two
// backing slices is populated, matching Kind.
type Column struct {
	Name string
	Kind Kind

	text []Str
	nums []Float
}

// NewTextColumn creates a text column.
func NewTextColumn(name string, cells []Str) *Column {
	return &Column{Name: name, Kind: KindText, text: cells}
}

// NewNumericColumn creates a numeric column.
func NewNumericColumn(name string, cells []Float) *Column {
	return &Column{Name: name, Kind: KindNumeric, nums: cells}
}

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	if c.Kind == KindNumeric {
		return len(c.nums)
	}
	return len(c.text)
}

// Text returns the text cell at row i. For numeric columns it formats
// the value, keeping the missing marker.
func (c *Column) Text(i int) Str {
	if c.Kind == KindText {
		return c.text[i]
	}
	f := c.nums[i]
	if !f.Valid {
		return Str{}
	}
	return Str{Val: strconv.FormatFloat(f.Val, 'f', -1, 64), Valid: true}
}

// Num returns the numeric cell at row i. For text columns the cell is
// parsed on the fly; unparsable text is missing.
func (c *Column) Num(i int) Float {
	if c.Kind == KindNumeric {
		return c.nums[i]
	}
	s := c.text[i]
	if !s.Valid {
		return Float{}
	}
	return ParseFloat(s.Val)
}

// Missing reports whether the cell at row i is the missing marker.
func (c *Column) Missing(i int) bool {
	if c.Kind == KindNumeric {
		return !c.nums[i].Valid
	}
	return !c.text[i].Valid
}

// MissingCount returns the number of missing cells.
func (c *Column) MissingCount() int {
	n := 0
	for i := 0; i < c.Len(); i++ {
		if c.Missing(i) {
			n++
		}
	}
	return n
}

// Mean returns the arithmetic mean over present values. The result is
// the missing marker when every cell is missing.
func (c *Column) Mean() Float {
	var sum float64
	var n int
	for i := 0; i < c.Len(); i++ {
		if v := c.Num(i); v.Valid {
			sum += v.Val
			n++
		}
	}
	if n == 0 {
		return Float{}
	}
	return Float{Val: sum / float64(n), Valid: true}
}

// ToNumeric returns a numeric copy of the column: every cell is either
// a parsed value or the missing marker. Numeric columns are copied as-is.
func (c *Column) ToNumeric() *Column {
	cells := make([]Float, c.Len())
	for i := range cells {
		cells[i] = c.Num(i)
	}
	return NewNumericColumn(c.Name, cells)
}

func (c *Column) clone() *Column {
	cc := &Column{Name: c.Name, Kind: c.Kind}
	if c.Kind == KindNumeric {
		cc.nums = append([]Float(nil), c.nums...)
	} else {
		cc.text = append([]Str(nil), c.text...)
	}
	return cc
}

func (c *Column) selectRows(rows []int) *Column {
	cc := &Column{Name: c.Name, Kind: c.Kind}
	if c.Kind == KindNumeric {
		cc.nums = make([]Float, len(rows))
		for i, r := range rows {
			cc.nums[i] = c.nums[r]
		}
	} else {
		cc.text = make([]Str, len(rows))
		for i, r := range rows {
			cc.text[i] = c.text[r]
		}
	}
	return cc
}
