package transform

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrowley/gridiron/internal/table"
)

func rawTable(t *testing.T, header []string, rows [][]string) *table.Table {
	t.Helper()
	tbl, err := table.FromRecords(header, rows)
	require.NoError(t, err)
	return tbl
}

func TestNormalizer_RenamesPresentColumns(t *testing.T) {
	n := NewNormalizer(zerolog.Nop())
	tbl := rawTable(t,
		[]string{"Player", "Yds", "TD", "Int", "Team"},
		[][]string{{"A", "100", "1", "0", "KC"}},
	)

	out, err := n.Apply(tbl)
	require.NoError(t, err)

	assert.Equal(t, []string{"Player", "Pass Yds", "Pass TD", "Pass Int", "Team"}, out.ColumnNames())
	assert.Equal(t, 1, out.RowCount(), "row count conserved")
}

func TestNormalizer_Idempotent(t *testing.T) {
	n := NewNormalizer(zerolog.Nop())
	tbl := rawTable(t,
		[]string{"Player", "Yds", "Rate"},
		[][]string{{"A", "100", "95.2"}},
	)

	once, err := n.Apply(tbl)
	require.NoError(t, err)
	twice, err := n.Apply(once)
	require.NoError(t, err)

	assert.Equal(t, once.ColumnNames(), twice.ColumnNames())
}

func TestNormalizer_NoMappableColumns(t *testing.T) {
	n := NewNormalizer(zerolog.Nop())
	tbl := rawTable(t,
		[]string{"Player", "Team"},
		[][]string{{"A", "KC"}},
	)

	out, err := n.Apply(tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"Player", "Team"}, out.ColumnNames())
}

func TestRenameMap_DomainAndRangeDisjoint(t *testing.T) {
	m := RenameMap()
	for raw, canonical := range m {
		_, rawIsCanonical := m[canonical]
		assert.False(t, rawIsCanonical, "canonical name %q must not be a raw name", canonical)
		assert.NotEqual(t, raw, canonical)
	}
}
