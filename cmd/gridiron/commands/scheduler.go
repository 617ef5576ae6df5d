package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wrowley/gridiron/internal/extract"
	"github.com/wrowley/gridiron/internal/load"
	"github.com/wrowley/gridiron/internal/ml"
	"github.com/wrowley/gridiron/internal/pipeline"
	"github.com/wrowley/gridiron/internal/scheduler"
	"github.com/wrowley/gridiron/internal/scheduler/jobs"
	"github.com/wrowley/gridiron/pkg/database"
)

var (
	schedulerLoadDB bool
	schedulerRunNow bool
)

var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the ETL and training pipelines on a schedule",
	Long: `Starts the cron scheduler: the ETL pipeline runs daily at 6 AM and
model training at 7 AM, with retries on failure.

Example:
  go run ./cmd/gridiron scheduler
  go run ./cmd/gridiron scheduler --load-db --run-now`,
	RunE: runScheduler,
}

func init() {
	rootCmd.AddCommand(schedulerCmd)

	schedulerCmd.Flags().BoolVar(&schedulerLoadDB, "load-db", false, "load cleaned tables into PostgreSQL on each run")
	schedulerCmd.Flags().BoolVar(&schedulerRunNow, "run-now", false, "trigger every job once at startup instead of waiting for its schedule")
}

func runScheduler(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	var sink *load.Sink
	if schedulerLoadDB {
		db, err := database.New(cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		sink = load.NewSink(db.Pool, log.Zerolog())
	}

	runner := pipeline.NewRunner(cfg.Pipeline.KeyColumn, sink, log.Zerolog())
	source := extract.NewCSVSource(log.Zerolog())
	trainer := ml.NewTrainer(func() ml.Regressor { return ml.NewOLS() }, log.Zerolog())

	sched := scheduler.New(log)
	if err := sched.AddJob(jobs.NewETLJob(runner, cfg.Pipeline, schedulerLoadDB, log)); err != nil {
		return err
	}
	if err := sched.AddJob(jobs.NewTrainingJob(source, trainer, cfg, log)); err != nil {
		return err
	}

	sched.Start()
	defer sched.Stop()

	if schedulerRunNow {
		for _, name := range sched.GetAllJobs() {
			if err := sched.RunJob(name); err != nil {
				return err
			}
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.WithField("signal", sig.String()).Info("Shutdown signal received")

	for _, name := range sched.GetAllJobs() {
		history, err := sched.GetJobHistory(name)
		if err != nil || len(history.Results) == 0 {
			continue
		}
		log.WithFields(map[string]interface{}{
			"job":          name,
			"runs":         len(history.Results),
			"success_rate": history.GetSuccessRate(),
		}).Info("Job history at shutdown")
	}
	return nil
}
