// Package pipeline orchestrates the ETL run: extract a raw CSV,
// normalize and coerce columns, compute derived metrics, filter rows
// with no identity, then persist the cleaned table.
package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/wrowley/gridiron/internal/extract"
	"github.com/wrowley/gridiron/internal/load"
	"github.com/wrowley/gridiron/internal/table"
	"github.com/wrowley/gridiron/internal/transform"
)

// Options configures one pipeline run.
type Options struct {
	DataFile   string
	OutputFile string // cleaned CSV destination; empty skips the file write
	TableName  string // database destination; requires a sink
	LoadDB     bool
}

// Summary reports what a run did.
type Summary struct {
	InputRows   int    `json:"input_rows"`
	InputCols   int    `json:"input_columns"`
	RowsDropped int    `json:"rows_dropped"`
	OutputRows  int    `json:"output_rows"`
	LoadedRows  int64  `json:"loaded_rows,omitempty"`
	OutputFile  string `json:"output_file,omitempty"`
	TableName   string `json:"table_name,omitempty"`
}

// Runner wires the pipeline stages together. The sink is optional; a
// nil sink limits runs to file output.
type Runner struct {
	source     *extract.CSVSource
	writer     *extract.CSVWriter
	normalizer *transform.Normalizer
	coercer    *transform.Coercer
	derived    *transform.DerivedComputer
	filter     *transform.RowFilter
	sink       *load.Sink
	log        zerolog.Logger
}

// NewRunner creates a pipeline runner filtering on the given identity
// column.
func NewRunner(keyColumn string, sink *load.Sink, log zerolog.Logger) *Runner {
	return &Runner{
		source:     extract.NewCSVSource(log),
		writer:     extract.NewCSVWriter(log),
		normalizer: transform.NewNormalizer(log),
		coercer:    transform.NewCoercer(log),
		derived:    transform.NewDerivedComputer(log),
		filter:     transform.NewRowFilter(keyColumn, log),
		sink:       sink,
		log:        log.With().Str("component", "pipeline").Logger(),
	}
}

// Run executes the pipeline end to end and returns a run summary. Any
// terminal condition (unreadable input, absent key column, everything
// filtered away, sink failure) aborts the run with nothing written.
func (r *Runner) Run(ctx context.Context, opts Options) (*Summary, error) {
	raw, err := r.source.Read(opts.DataFile)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		InputRows: raw.RowCount(),
		InputCols: raw.ColumnCount(),
	}

	cleaned, dropped, err := r.Transform(raw)
	if err != nil {
		return nil, err
	}
	summary.RowsDropped = dropped
	summary.OutputRows = cleaned.RowCount()

	if opts.OutputFile != "" {
		if err := r.writer.Write(cleaned, opts.OutputFile); err != nil {
			return nil, err
		}
		summary.OutputFile = opts.OutputFile
	}

	if opts.LoadDB {
		if r.sink == nil {
			return nil, fmt.Errorf("database load requested but no sink configured")
		}
		loaded, err := r.sink.Replace(ctx, cleaned, opts.TableName)
		if err != nil {
			return nil, err
		}
		summary.LoadedRows = loaded
		summary.TableName = opts.TableName
	}

	r.log.Info().
		Int("input_rows", summary.InputRows).
		Int("rows_dropped", summary.RowsDropped).
		Int("output_rows", summary.OutputRows).
		Msg("pipeline run complete")
	return summary, nil
}

// Transform applies the cleaning stages to an already-loaded table and
// returns the cleaned table plus the identity-filter drop count.
func (r *Runner) Transform(raw *table.Table) (*table.Table, int, error) {
	t, err := r.normalizer.Apply(raw)
	if err != nil {
		return nil, 0, err
	}

	t = r.coercer.Apply(t, transform.CanonicalColumns())
	t = r.derived.Apply(t)

	t, dropped, err := r.filter.Apply(t)
	if err != nil {
		return nil, dropped, err
	}
	return t, dropped, nil
}
