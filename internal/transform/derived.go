package transform

import (
	"github.com/rs/zerolog"

	"github.com/wrowley/gridiron/internal/table"
)

// DerivedComputer computes "Calc Pass Y/G" (passing yards per game) from
// already-coerced base columns, using a per-row validity mask so that a
// zero or missing games count yields the missing marker instead of an
// error or infinity.
type DerivedComputer struct {
	log zerolog.Logger
}

// NewDerivedComputer creates a derived-metric computer.
func NewDerivedComputer(log zerolog.Logger) *DerivedComputer {
	return &DerivedComputer{log: log.With().Str("component", "transform.derived").Logger()}
}

// Apply returns a new table with the "Calc Pass Y/G" column. The games
// column is coerced first since it does not go through the numeric
// coercer. Rows where G is missing, non-numeric or <= 0 get the missing
// marker. When either input column is absent the computation is skipped
// and the derived column is left absent; when no row qualifies the
// column is still created, entirely missing.
func (d *DerivedComputer) Apply(t *table.Table) *table.Table {
	if !t.Has(ColPassYds) || !t.Has(ColGames) {
		d.log.Warn().
			Str("yards_column", ColPassYds).
			Str("games_column", ColGames).
			Msg("input columns not found, skipping derived metric")
		return t.Clone()
	}

	out := t.Clone()

	games, _ := out.Col(ColGames)
	games = games.ToNumeric()
	_ = out.ReplaceColumn(ColGames, games)

	yards, _ := out.Col(ColPassYds)

	n := out.RowCount()
	cells := make([]table.Float, n)
	validRows := 0
	for i := 0; i < n; i++ {
		g := games.Num(i)
		if !g.Valid || g.Val <= 0 {
			continue // missing marker
		}
		y := yards.Num(i)
		if !y.Valid {
			continue
		}
		cells[i] = table.Float{Val: y.Val / g.Val, Valid: true}
		validRows++
	}

	derived := table.NewNumericColumn(ColCalcPassYG, cells)
	if out.Has(ColCalcPassYG) {
		_ = out.ReplaceColumn(ColCalcPassYG, derived)
	} else {
		_ = out.AddColumn(derived)
	}

	if validRows == 0 {
		d.log.Warn().Msg("no rows with a positive games count, derived column set entirely missing")
	} else {
		d.log.Info().
			Int("valid_rows", validRows).
			Int("masked_rows", n-validRows).
			Msg("computed passing yards per game")
	}
	return out
}
