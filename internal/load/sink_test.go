package load

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrowley/gridiron/internal/table"
	"github.com/wrowley/gridiron/pkg/config"
)

// testPool connects to the configured database, skipping the test when no
// database is reachable. Run with -short to skip these outright.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database integration test in short mode")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.ConnString())
	if err != nil {
		t.Skipf("database unavailable: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("database unavailable: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func cleanedTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.FromRecords(
		[]string{"Player", "Pass Yds", "Pass TD"},
		[][]string{
			{"P.Mahomes", "4839", "41"},
			{"J.Allen", "4306", "36"},
			{"J.Burrow", "", "34"},
		},
	)
	require.NoError(t, err)
	for _, name := range []string{"Pass Yds", "Pass TD"} {
		col, _ := tbl.Col(name)
		require.NoError(t, tbl.ReplaceColumn(name, col.ToNumeric()))
	}
	return tbl
}

func TestSink_Replace(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	const dest = "sink_replace_test"

	sink := NewSink(pool, zerolog.Nop())
	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, `DROP TABLE IF EXISTS "`+dest+`"`)
	})

	count, err := sink.Replace(ctx, cleanedTable(t), dest)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	repo := NewRepository(pool)
	got, err := repo.ReadTable(ctx, dest)
	require.NoError(t, err)

	assert.Equal(t, []string{"Player", "Pass Yds", "Pass TD"}, got.ColumnNames())
	assert.Equal(t, 3, got.RowCount())

	yds, _ := got.Col("Pass Yds")
	assert.Equal(t, table.KindNumeric, yds.Kind)
	assert.Equal(t, table.Float{Val: 4839, Valid: true}, yds.Num(0))
	assert.False(t, yds.Num(2).Valid, "NULL cells come back as missing")
}

func TestSink_ReplaceIsDestructive(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	const dest = "sink_destructive_test"

	sink := NewSink(pool, zerolog.Nop())
	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, `DROP TABLE IF EXISTS "`+dest+`"`)
	})

	_, err := sink.Replace(ctx, cleanedTable(t), dest)
	require.NoError(t, err)

	// A second load fully replaces the first, it does not append.
	smaller, err := table.FromRecords(
		[]string{"Player"},
		[][]string{{"L.Jackson"}},
	)
	require.NoError(t, err)

	count, err := sink.Replace(ctx, smaller, dest)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	repo := NewRepository(pool)
	n, err := repo.RowCount(ctx, dest)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.ReadTable(ctx, dest)
	require.NoError(t, err)
	assert.Equal(t, []string{"Player"}, got.ColumnNames(), "old columns are gone after replace")
}

func TestSink_ReplaceEmptyTable(t *testing.T) {
	pool := testPool(t)

	empty, err := table.New()
	require.NoError(t, err)

	sink := NewSink(pool, zerolog.Nop())
	_, err = sink.Replace(context.Background(), empty, "sink_empty_test")
	assert.ErrorIs(t, err, ErrPersistence)
}
