package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrowley/gridiron/internal/extract"
	"github.com/wrowley/gridiron/internal/table"
	"github.com/wrowley/gridiron/internal/transform"
)

const rawCSV = `Player,Yds,TD,Int,G
P.Mahomes,4839,41,12,16
J.Allen,4306,36,14,
,1000,5,2,10
J.Burrow,4611,34,
`

func newTestRunner() *Runner {
	return NewRunner("Player", nil, zerolog.Nop())
}

func TestRunner_Transform(t *testing.T) {
	raw, err := table.FromRecords(
		[]string{"Player", "Yds", "TD", "Int", "G"},
		[][]string{
			{"P.Mahomes", "4839", "41", "12", "16"},
			{"J.Allen", "4306", "36", "14", ""},
			{"", "1000", "5", "2", "10"},
		},
	)
	require.NoError(t, err)

	r := newTestRunner()
	cleaned, dropped, err := r.Transform(raw)
	require.NoError(t, err)

	assert.Equal(t, 1, dropped, "row with no player identity is dropped")
	assert.Equal(t, 2, cleaned.RowCount())

	// Raw stat names become canonical passing names.
	assert.False(t, cleaned.Has("Yds"))
	require.True(t, cleaned.Has(transform.ColPassYds))

	yds, _ := cleaned.Col(transform.ColPassYds)
	assert.Equal(t, table.Float{Val: 4839, Valid: true}, yds.Num(0))

	// Per-game yardage is derived where games played is known.
	ypg, ok := cleaned.Col(transform.ColCalcPassYG)
	require.True(t, ok)
	assert.InDelta(t, 4839.0/16, ypg.Num(0).Val, 1e-9)
	assert.False(t, ypg.Num(1).Valid, "unknown games played leaves the metric missing")
}

func TestRunner_TransformKeyColumnAbsent(t *testing.T) {
	raw, err := table.FromRecords([]string{"Yds"}, [][]string{{"4839"}})
	require.NoError(t, err)

	r := newTestRunner()
	_, _, err = r.Transform(raw)
	assert.ErrorIs(t, err, transform.ErrKeyColumnMissing)
}

func TestRunner_TransformAllRowsFiltered(t *testing.T) {
	raw, err := table.FromRecords(
		[]string{"Player", "Yds"},
		[][]string{{"", "4839"}, {"", "4306"}},
	)
	require.NoError(t, err)

	r := newTestRunner()
	_, dropped, err := r.Transform(raw)
	assert.ErrorIs(t, err, transform.ErrAllRowsFiltered)
	assert.Equal(t, 2, dropped)
}

func TestRunner_Run(t *testing.T) {
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "raw.csv")
	outFile := filepath.Join(dir, "cleaned.csv")
	require.NoError(t, os.WriteFile(dataFile, []byte(rawCSV), 0o644))

	r := newTestRunner()
	summary, err := r.Run(context.Background(), Options{
		DataFile:   dataFile,
		OutputFile: outFile,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, summary.InputRows)
	assert.Equal(t, 1, summary.RowsDropped)
	assert.Equal(t, 3, summary.OutputRows)
	assert.Equal(t, outFile, summary.OutputFile)
	assert.Zero(t, summary.LoadedRows)

	// The written file reads back as a table with canonical names.
	src := extract.NewCSVSource(zerolog.Nop())
	cleaned, err := src.Read(outFile)
	require.NoError(t, err)
	assert.Equal(t, 3, cleaned.RowCount())
	assert.True(t, cleaned.Has(transform.ColPassYds))
	assert.True(t, cleaned.Has(transform.ColCalcPassYG))
}

func TestRunner_RunMissingInput(t *testing.T) {
	r := newTestRunner()
	_, err := r.Run(context.Background(), Options{
		DataFile: filepath.Join(t.TempDir(), "nope.csv"),
	})
	assert.ErrorIs(t, err, extract.ErrNotFound)
}

func TestRunner_RunLoadWithoutSink(t *testing.T) {
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "raw.csv")
	require.NoError(t, os.WriteFile(dataFile, []byte(rawCSV), 0o644))

	r := newTestRunner()
	_, err := r.Run(context.Background(), Options{
		DataFile:  dataFile,
		TableName: "player_passing_stats",
		LoadDB:    true,
	})
	assert.ErrorContains(t, err, "no sink configured")
}
