package analysis

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrowley/gridiron/internal/table"
)

func cleanedTable(t *testing.T, rows [][]string) *table.Table {
	t.Helper()
	tbl, err := table.FromRecords(
		[]string{"Player", "Pass Yds", "Pass TD", "Pass Int"},
		rows,
	)
	require.NoError(t, err)
	return tbl
}

func TestAnalyzer_WithFantasyPoints(t *testing.T) {
	a := NewAnalyzer(zerolog.Nop())
	tbl := cleanedTable(t, [][]string{
		{"P.Mahomes", "300", "2", "1"}, // 300/25 + 8 - 2 = 18
		{"J.Allen", "250", "3", "0"},   // 10 + 12 = 22
	})

	out, err := a.WithFantasyPoints(tbl)
	require.NoError(t, err)

	fp, ok := out.Col(ColFantasyPoints)
	require.True(t, ok)
	assert.Equal(t, table.Float{Val: 18, Valid: true}, fp.Num(0))
	assert.Equal(t, table.Float{Val: 22, Valid: true}, fp.Num(1))

	assert.False(t, tbl.Has(ColFantasyPoints), "input table is not mutated")
}

func TestAnalyzer_WithFantasyPointsMissingInput(t *testing.T) {
	a := NewAnalyzer(zerolog.Nop())
	tbl := cleanedTable(t, [][]string{
		{"P.Mahomes", "300", "", "1"},
	})

	out, err := a.WithFantasyPoints(tbl)
	require.NoError(t, err)

	fp, _ := out.Col(ColFantasyPoints)
	assert.False(t, fp.Num(0).Valid, "any missing stat makes the score missing")
}

func TestAnalyzer_WithFantasyPointsMissingColumn(t *testing.T) {
	a := NewAnalyzer(zerolog.Nop())
	tbl, err := table.FromRecords(
		[]string{"Player", "Pass Yds"},
		[][]string{{"P.Mahomes", "300"}},
	)
	require.NoError(t, err)

	_, err = a.WithFantasyPoints(tbl)
	assert.ErrorIs(t, err, ErrMissingStats)
}

func TestAnalyzer_TopBy(t *testing.T) {
	a := NewAnalyzer(zerolog.Nop())
	tbl := cleanedTable(t, [][]string{
		{"P.Mahomes", "300", "2", "1"},
		{"J.Allen", "250", "3", "0"},
		{"J.Burrow", "400", "1", "2"},
		{"", "500", "5", "0"},       // missing player skipped
		{"L.Jackson", "", "4", "1"}, // missing value skipped
	})
	withPoints, err := a.WithFantasyPoints(tbl)
	require.NoError(t, err)

	entries, err := a.TopBy(withPoints, "Player", ColFantasyPoints, 2)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Player: "J.Allen", Value: 22}, entries[0])
	assert.Equal(t, Entry{Player: "J.Burrow", Value: 16}, entries[1])
}

func TestAnalyzer_TopBySmallTable(t *testing.T) {
	a := NewAnalyzer(zerolog.Nop())
	tbl := cleanedTable(t, [][]string{
		{"P.Mahomes", "300", "2", "1"},
	})

	entries, err := a.TopBy(tbl, "Player", "Pass Yds", 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "n larger than the table returns what exists")
}

func TestAnalyzer_TopByUnknownColumn(t *testing.T) {
	a := NewAnalyzer(zerolog.Nop())
	tbl := cleanedTable(t, [][]string{{"P.Mahomes", "300", "2", "1"}})

	_, err := a.TopBy(tbl, "Player", "QBR", 5)
	assert.ErrorContains(t, err, "QBR")
}
