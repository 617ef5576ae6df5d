// Package analysis computes fantasy scoring and simple leaderboards over
// a cleaned passing table.
package analysis

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/wrowley/gridiron/internal/table"
	"github.com/wrowley/gridiron/internal/transform"
)

// ColFantasyPoints is the computed fantasy scoring column.
const ColFantasyPoints = "Fantasy Points"

// ErrMissingStats means the table lacks the passing columns the fantasy
// formula needs.
var ErrMissingStats = errors.New("missing required columns for fantasy points calculation")

// Analyzer derives fantasy points and rankings from cleaned data.
type Analyzer struct {
	log zerolog.Logger
}

// NewAnalyzer creates an analyzer.
func NewAnalyzer(log zerolog.Logger) *Analyzer {
	return &Analyzer{log: log.With().Str("component", "analysis").Logger()}
}

// WithFantasyPoints returns a new table with a "Fantasy Points" column:
// Pass Yds / 25 + Pass TD * 4 - Pass Int * 2. Rows where any input is
// missing get the missing marker.
func (a *Analyzer) WithFantasyPoints(t *table.Table) (*table.Table, error) {
	required := []string{transform.ColPassYds, transform.ColPassTD, transform.ColPassInt}
	for _, name := range required {
		if !t.Has(name) {
			a.log.Error().Str("column", name).Msg("missing required columns for fantasy points calculation")
			return nil, fmt.Errorf("%w: %q", ErrMissingStats, name)
		}
	}

	out := t.Clone()
	yds, _ := out.Col(transform.ColPassYds)
	tds, _ := out.Col(transform.ColPassTD)
	ints, _ := out.Col(transform.ColPassInt)

	cells := make([]table.Float, out.RowCount())
	for i := range cells {
		y, td, in := yds.Num(i), tds.Num(i), ints.Num(i)
		if !y.Valid || !td.Valid || !in.Valid {
			continue
		}
		cells[i] = table.Float{
			Val:   y.Val/25 + td.Val*4 - in.Val*2,
			Valid: true,
		}
	}

	col := table.NewNumericColumn(ColFantasyPoints, cells)
	if out.Has(ColFantasyPoints) {
		_ = out.ReplaceColumn(ColFantasyPoints, col)
	} else {
		_ = out.AddColumn(col)
	}

	a.log.Info().Int("rows", out.RowCount()).Msg("calculated fantasy points")
	return out, nil
}

// Entry is one leaderboard row.
type Entry struct {
	Player string  `json:"player"`
	Value  float64 `json:"value"`
}

// TopBy returns the top n rows by the named numeric column, descending.
// Rows with a missing value or a missing player name are skipped.
func (a *Analyzer) TopBy(t *table.Table, keyColumn, valueColumn string, n int) ([]Entry, error) {
	key, ok := t.Col(keyColumn)
	if !ok {
		return nil, fmt.Errorf("no such column %q", keyColumn)
	}
	val, ok := t.Col(valueColumn)
	if !ok {
		return nil, fmt.Errorf("no such column %q", valueColumn)
	}

	var entries []Entry
	for i := 0; i < t.RowCount(); i++ {
		p := key.Text(i)
		v := val.Num(i)
		if !p.Valid || !v.Valid {
			continue
		}
		entries = append(entries, Entry{Player: p.Val, Value: v.Val})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}
