package transform

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerived_MaskScenario(t *testing.T) {
	// Pass Yds = [300, 400], G = [0, 4] -> Calc Pass Y/G = [missing, 100.0]
	d := NewDerivedComputer(zerolog.Nop())
	tbl := rawTable(t,
		[]string{"Pass Yds", "G"},
		[][]string{{"300", "0"}, {"400", "4"}},
	)

	out := d.Apply(tbl)

	col, ok := out.Col(ColCalcPassYG)
	require.True(t, ok)
	assert.False(t, col.Num(0).Valid, "G = 0 masks the row")
	require.True(t, col.Num(1).Valid)
	assert.InDelta(t, 100.0, col.Num(1).Val, 1e-9)
}

func TestDerived_InvalidGamesValues(t *testing.T) {
	d := NewDerivedComputer(zerolog.Nop())
	tbl := rawTable(t,
		[]string{"Pass Yds", "G"},
		[][]string{
			{"100", "2"},  // valid
			{"100", ""},   // missing G
			{"100", "xy"}, // non-numeric G
			{"100", "-1"}, // negative G
			{"", "5"},     // missing yards
		},
	)

	out := d.Apply(tbl)
	col, ok := out.Col(ColCalcPassYG)
	require.True(t, ok)

	assert.Equal(t, 5, out.RowCount(), "row count conserved")
	assert.True(t, col.Num(0).Valid)
	assert.InDelta(t, 50.0, col.Num(0).Val, 1e-9)
	for i := 1; i < 5; i++ {
		assert.False(t, col.Num(i).Valid, "row %d must be masked", i)
	}
}

func TestDerived_NoQualifyingRowsStillCreatesColumn(t *testing.T) {
	d := NewDerivedComputer(zerolog.Nop())
	tbl := rawTable(t,
		[]string{"Pass Yds", "G"},
		[][]string{{"300", "0"}, {"400", ""}},
	)

	out := d.Apply(tbl)

	col, ok := out.Col(ColCalcPassYG)
	require.True(t, ok, "column exists even when no row qualifies")
	assert.Equal(t, col.Len(), col.MissingCount())
}

func TestDerived_MissingInputColumnsSkipsComputation(t *testing.T) {
	d := NewDerivedComputer(zerolog.Nop())

	tests := []struct {
		name   string
		header []string
	}{
		{"no games column", []string{"Pass Yds"}},
		{"no yards column", []string{"G"}},
		{"neither", []string{"Player"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := make([]string, len(tt.header))
			for i := range row {
				row[i] = "1"
			}
			tbl := rawTable(t, tt.header, [][]string{row})

			out := d.Apply(tbl)
			assert.False(t, out.Has(ColCalcPassYG), "derived column stays absent")
			assert.Equal(t, 1, out.RowCount())
		})
	}
}
