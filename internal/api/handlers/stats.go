// Package handlers implements the HTTP handlers for the stats API.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/wrowley/gridiron/internal/analysis"
	"github.com/wrowley/gridiron/internal/extract"
	"github.com/wrowley/gridiron/internal/load"
	"github.com/wrowley/gridiron/internal/ml"
	"github.com/wrowley/gridiron/internal/pipeline"
	"github.com/wrowley/gridiron/internal/transform"
	"github.com/wrowley/gridiron/pkg/config"
	"github.com/wrowley/gridiron/pkg/logger"
)

// StatsHandler serves rankings and pipeline/training triggers.
type StatsHandler struct {
	repo     *load.Repository // nil when no database is configured
	runner   *pipeline.Runner
	source   *extract.CSVSource
	trainer  *ml.Trainer
	analyzer *analysis.Analyzer
	cfg      *config.Config
	log      *logger.Logger
}

// NewStatsHandler creates a stats handler.
func NewStatsHandler(repo *load.Repository, runner *pipeline.Runner, source *extract.CSVSource,
	trainer *ml.Trainer, analyzer *analysis.Analyzer, cfg *config.Config, log *logger.Logger) *StatsHandler {
	return &StatsHandler{
		repo:     repo,
		runner:   runner,
		source:   source,
		trainer:  trainer,
		analyzer: analyzer,
		cfg:      cfg,
		log:      log,
	}
}

// GetRankings returns top passers by yards and by fantasy points.
// Query params: limit (default 5).
func (h *StatsHandler) GetRankings(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		writeError(w, http.StatusServiceUnavailable, "no database configured")
		return
	}

	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}

	t, err := h.repo.ReadTable(r.Context(), h.cfg.Pipeline.TableName)
	if err != nil {
		h.log.WithError(err).Error("Failed to read stats table")
		writeError(w, http.StatusInternalServerError, "failed to read stats table")
		return
	}

	t, err = h.analyzer.WithFantasyPoints(t)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	key := h.cfg.Pipeline.KeyColumn
	byYards, err := h.analyzer.TopBy(t, key, transform.ColPassYds, limit)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	byFantasy, err := h.analyzer.TopBy(t, key, analysis.ColFantasyPoints, limit)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"by_pass_yards":     byYards,
		"by_fantasy_points": byFantasy,
	})
}

// RunPipeline triggers an ETL run with the configured paths.
func (h *StatsHandler) RunPipeline(w http.ResponseWriter, r *http.Request) {
	summary, err := h.runner.Run(r.Context(), pipeline.Options{
		DataFile:   h.cfg.Pipeline.DataFile,
		OutputFile: h.cfg.Pipeline.OutputFile,
		TableName:  h.cfg.Pipeline.TableName,
		LoadDB:     h.repo != nil,
	})
	if err != nil {
		h.log.WithError(err).Error("Pipeline run failed")
		status := http.StatusInternalServerError
		if errors.Is(err, extract.ErrNotFound) {
			status = http.StatusNotFound
		} else if errors.Is(err, transform.ErrAllRowsFiltered) || errors.Is(err, transform.ErrKeyColumnMissing) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Train fits the regressor on the cleaned data file and reports the
// evaluation metric.
func (h *StatsHandler) Train(w http.ResponseWriter, r *http.Request) {
	t, err := h.source.Read(h.cfg.Pipeline.OutputFile)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	result, err := h.trainer.Train(t, ml.Options{
		Features: h.cfg.ML.Features,
		Target:   h.cfg.ML.Target,
		TestSize: h.cfg.ML.TestSize,
		Seed:     h.cfg.ML.Seed,
	})
	if err != nil && !errors.Is(err, ml.ErrUndefinedMetric) {
		h.log.WithError(err).Error("Training failed")
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	resp := map[string]interface{}{
		"train_rows": result.TrainRows,
		"test_rows":  result.TestRows,
	}
	if result.MSE.Valid {
		resp["mse"] = result.MSE.Val
	} else {
		resp["mse"] = nil
		resp["warning"] = "metric undefined, model fitted without evaluation"
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
