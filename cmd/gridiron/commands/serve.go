package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wrowley/gridiron/internal/analysis"
	"github.com/wrowley/gridiron/internal/api"
	"github.com/wrowley/gridiron/internal/api/handlers"
	"github.com/wrowley/gridiron/internal/extract"
	"github.com/wrowley/gridiron/internal/load"
	"github.com/wrowley/gridiron/internal/ml"
	"github.com/wrowley/gridiron/internal/pipeline"
	"github.com/wrowley/gridiron/pkg/database"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Starts the API server exposing rankings and pipeline/training
triggers. A reachable PostgreSQL instance enables the database-backed
endpoints; without one the server still runs with file-based endpoints.

Example:
  go run ./cmd/gridiron serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	var repo *load.Repository
	var sink *load.Sink
	if db, err := database.New(cfg); err != nil {
		log.WithError(err).Warn("Database unavailable, database-backed endpoints disabled")
	} else {
		defer db.Close()
		repo = load.NewRepository(db.Pool)
		sink = load.NewSink(db.Pool, log.Zerolog())
	}

	runner := pipeline.NewRunner(cfg.Pipeline.KeyColumn, sink, log.Zerolog())
	source := extract.NewCSVSource(log.Zerolog())
	trainer := ml.NewTrainer(func() ml.Regressor { return ml.NewOLS() }, log.Zerolog())
	analyzer := analysis.NewAnalyzer(log.Zerolog())

	handler := handlers.NewStatsHandler(repo, runner, source, trainer, analyzer, cfg, log)
	router := api.NewRouter(handler, log)
	server := api.New(cfg, log, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
