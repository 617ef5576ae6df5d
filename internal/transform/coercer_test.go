package transform

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrowley/gridiron/internal/table"
)

func TestCoercer_PerValueFailure(t *testing.T) {
	c := NewCoercer(zerolog.Nop())
	tbl := rawTable(t,
		[]string{"Pass Yds"},
		[][]string{{"100"}, {"abc"}, {""}, {"250.5"}},
	)

	out := c.Apply(tbl, []string{"Pass Yds"})

	col, ok := out.Col("Pass Yds")
	require.True(t, ok)
	assert.Equal(t, table.KindNumeric, col.Kind)
	assert.Equal(t, 4, col.Len(), "column length preserved")

	assert.Equal(t, 100.0, col.Num(0).Val)
	assert.False(t, col.Num(1).Valid, "bad parse affects only its own cell")
	assert.False(t, col.Num(2).Valid)
	assert.Equal(t, 250.5, col.Num(3).Val)
}

func TestCoercer_AbsentColumnSkipped(t *testing.T) {
	c := NewCoercer(zerolog.Nop())
	tbl := rawTable(t,
		[]string{"Player"},
		[][]string{{"A"}},
	)

	out := c.Apply(tbl, []string{"Pass Yds", "Pass TD"})

	assert.Equal(t, []string{"Player"}, out.ColumnNames())
	assert.Equal(t, 1, out.RowCount())
}

func TestCoercer_InputNotMutated(t *testing.T) {
	c := NewCoercer(zerolog.Nop())
	tbl := rawTable(t,
		[]string{"Pass Yds"},
		[][]string{{"100"}},
	)

	_ = c.Apply(tbl, []string{"Pass Yds"})

	col, _ := tbl.Col("Pass Yds")
	assert.Equal(t, table.KindText, col.Kind, "input table keeps its text column")
}
