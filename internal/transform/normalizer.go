// Package transform implements the cleaning stages applied to raw passing
// statistics: column normalization, numeric coercion, derived-metric
// computation and key-based row filtering.
package transform

import (
	"github.com/rs/zerolog"

	"github.com/wrowley/gridiron/internal/table"
)

// Canonical column names produced by the normalizer and consumed
// downstream.
const (
	ColPassYds    = "Pass Yds"
	ColPassTD     = "Pass TD"
	ColPassInt    = "Pass Int"
	ColGames      = "G"
	ColCalcPassYG = "Calc Pass Y/G"
)

// renameMap maps raw source column names to the canonical schema. The
// domain (raw names) and range (canonical names) are disjoint, so
// applying the map twice is a no-op.
var renameMap = map[string]string{
	"Yds":   ColPassYds,
	"TD":    ColPassTD,
	"Int":   ColPassInt,
	"Cmp":   "Pass Cmp",
	"Att":   "Pass Att",
	"Cmp%":  "Pass Cmp%",
	"Y/A":   "Pass Y/A",
	"AY/A":  "Pass AY/A",
	"Y/C":   "Pass Y/C",
	"Y/G":   "Pass Y/G",
	"Rate":  "Pass Rate",
	"Sk":    "Pass Sk",
	"Sk%":   "Pass Sk%",
	"NY/A":  "Pass NY/A",
	"ANY/A": "Pass ANY/A",
}

// RenameMap returns a copy of the raw-to-canonical column mapping.
func RenameMap() map[string]string {
	out := make(map[string]string, len(renameMap))
	for k, v := range renameMap {
		out[k] = v
	}
	return out
}

// CanonicalColumns returns the canonical names in the rename map's range.
func CanonicalColumns() []string {
	out := make([]string, 0, len(renameMap))
	for _, v := range renameMap {
		out = append(out, v)
	}
	return out
}

// Normalizer renames known raw columns to the canonical schema.
type Normalizer struct {
	log zerolog.Logger
}

// NewNormalizer creates a column normalizer.
func NewNormalizer(log zerolog.Logger) *Normalizer {
	return &Normalizer{log: log.With().Str("component", "transform.normalizer").Logger()}
}

// Apply returns a new table with every mappable column renamed. Columns
// not in the map pass through unchanged and keep their positions; the
// absence of any mappable column is a no-op, logged only.
func (n *Normalizer) Apply(t *table.Table) (*table.Table, error) {
	applied := make(map[string]string)
	for raw, canonical := range renameMap {
		if t.Has(raw) {
			applied[raw] = canonical
		}
	}

	if len(applied) == 0 {
		n.log.Info().Msg("no columns to rename based on the predefined map")
		return t.Clone(), nil
	}

	out, err := t.Rename(applied)
	if err != nil {
		return nil, err
	}

	n.log.Info().
		Interface("renamed", applied).
		Msg("renamed columns to canonical schema")
	return out, nil
}
