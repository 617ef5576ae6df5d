// Package jobs defines the scheduled pipeline jobs.
package jobs

import (
	"context"

	"github.com/wrowley/gridiron/internal/pipeline"
	"github.com/wrowley/gridiron/pkg/config"
	"github.com/wrowley/gridiron/pkg/logger"
)

// ETLJob runs the full ETL pipeline on a schedule.
type ETLJob struct {
	runner *pipeline.Runner
	cfg    config.PipelineConfig
	loadDB bool
	log    *logger.Logger
}

// NewETLJob creates a scheduled ETL job.
func NewETLJob(runner *pipeline.Runner, cfg config.PipelineConfig, loadDB bool, log *logger.Logger) *ETLJob {
	return &ETLJob{runner: runner, cfg: cfg, loadDB: loadDB, log: log}
}

// Name returns the job name
func (j *ETLJob) Name() string {
	return "etl"
}

// Schedule runs every day at 6 AM
func (j *ETLJob) Schedule() string {
	return "0 0 6 * * *"
}

// Run executes the pipeline
func (j *ETLJob) Run(ctx context.Context) error {
	summary, err := j.runner.Run(ctx, pipeline.Options{
		DataFile:   j.cfg.DataFile,
		OutputFile: j.cfg.OutputFile,
		TableName:  j.cfg.TableName,
		LoadDB:     j.loadDB,
	})
	if err != nil {
		return err
	}

	j.log.WithFields(map[string]interface{}{
		"input_rows":   summary.InputRows,
		"rows_dropped": summary.RowsDropped,
		"output_rows":  summary.OutputRows,
	}).Info("Scheduled ETL run finished")
	return nil
}
