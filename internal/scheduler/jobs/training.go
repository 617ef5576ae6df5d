package jobs

import (
	"context"

	"github.com/wrowley/gridiron/internal/extract"
	"github.com/wrowley/gridiron/internal/ml"
	"github.com/wrowley/gridiron/pkg/config"
	"github.com/wrowley/gridiron/pkg/logger"
)

// TrainingJob refits the fantasy-points regressor on the cleaned data
// file after each ETL run.
type TrainingJob struct {
	source  *extract.CSVSource
	trainer *ml.Trainer
	cfg     *config.Config
	log     *logger.Logger
}

// NewTrainingJob creates a scheduled training job.
func NewTrainingJob(source *extract.CSVSource, trainer *ml.Trainer, cfg *config.Config, log *logger.Logger) *TrainingJob {
	return &TrainingJob{source: source, trainer: trainer, cfg: cfg, log: log}
}

// Name returns the job name
func (j *TrainingJob) Name() string {
	return "training"
}

// Schedule runs every day at 7 AM, after the ETL job
func (j *TrainingJob) Schedule() string {
	return "0 0 7 * * *"
}

// Run loads the cleaned dataset and trains the model
func (j *TrainingJob) Run(ctx context.Context) error {
	t, err := j.source.Read(j.cfg.Pipeline.OutputFile)
	if err != nil {
		return err
	}

	result, err := j.trainer.Train(t, ml.Options{
		Features: j.cfg.ML.Features,
		Target:   j.cfg.ML.Target,
		TestSize: j.cfg.ML.TestSize,
		Seed:     j.cfg.ML.Seed,
	})
	if err != nil {
		return err
	}

	j.log.WithFields(map[string]interface{}{
		"train_rows": result.TrainRows,
		"test_rows":  result.TestRows,
		"mse":        result.MSE.Val,
	}).Info("Scheduled training run finished")
	return nil
}
