// Package ml contains the model-training stage: feature imputation,
// minimum-sample gating, deterministic train/test splitting and the
// fit/evaluate contract around a supervised regressor.
package ml

import (
	"github.com/rs/zerolog"

	"github.com/wrowley/gridiron/internal/table"
)

// Imputer fills missing values in numeric feature columns with the
// column mean and drops rows whose non-numeric feature or target values
// are missing. Targets are never imputed; imputing a prediction target
// would leak bias into evaluation.
type Imputer struct {
	log zerolog.Logger
}

// NewImputer creates a feature imputer.
func NewImputer(log zerolog.Logger) *Imputer {
	return &Imputer{log: log.With().Str("component", "ml.imputer").Logger()}
}

// Apply returns a new table ready for matrix building. Feature columns
// are processed in the given order, then target rows are dropped last
// over whatever rows remain. A feature column that is entirely missing
// keeps its undefined mean and stays missing; the trainer rejects it
// before fitting.
func (im *Imputer) Apply(t *table.Table, features []string, target string) *table.Table {
	out := t.Clone()

	for _, name := range features {
		col, ok := out.Col(name)
		if !ok {
			continue // validated by the trainer before this runs
		}

		if col.MissingCount() == 0 {
			if isNumeric(col) {
				_ = out.ReplaceColumn(name, col.ToNumeric())
			}
			continue
		}

		if isNumeric(col) {
			mean := col.Mean()
			if !mean.Valid {
				// Undefined mean: leave the column entirely missing.
				_ = out.ReplaceColumn(name, col.ToNumeric())
				im.log.Warn().Str("column", name).Msg("feature entirely missing, mean undefined")
				continue
			}
			filled := make([]table.Float, col.Len())
			for i := range filled {
				if v := col.Num(i); v.Valid {
					filled[i] = v
				} else {
					filled[i] = mean
				}
			}
			_ = out.ReplaceColumn(name, table.NewNumericColumn(name, filled))
			im.log.Info().
				Str("column", name).
				Float64("mean", mean.Val).
				Msg("imputed missing feature values with column mean")
			continue
		}

		// Non-numeric feature: mean imputation is meaningless, drop the
		// affected rows instead.
		before := out.RowCount()
		col, _ = out.Col(name)
		keep := col
		out = out.FilterRows(func(i int) bool { return !keep.Missing(i) })
		im.log.Warn().
			Str("column", name).
			Int("rows_dropped", before-out.RowCount()).
			Msg("dropped rows with missing non-numeric feature values")
	}

	if tcol, ok := out.Col(target); ok && tcol.MissingCount() > 0 {
		before := out.RowCount()
		out = out.FilterRows(func(i int) bool { return !tcol.Missing(i) })
		im.log.Warn().
			Str("column", target).
			Int("rows_dropped", before-out.RowCount()).
			Msg("dropped rows with missing target values")
	}

	return out
}

// isNumeric reports whether every present cell in the column parses as
// a number. An all-missing column counts as numeric.
func isNumeric(col *table.Column) bool {
	if col.Kind == table.KindNumeric {
		return true
	}
	for i := 0; i < col.Len(); i++ {
		if !col.Missing(i) && !col.Num(i).Valid {
			return false
		}
	}
	return true
}
