package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/wrowley/gridiron/internal/analysis"
	"github.com/wrowley/gridiron/internal/api/handlers"
	"github.com/wrowley/gridiron/internal/extract"
	"github.com/wrowley/gridiron/internal/ml"
	"github.com/wrowley/gridiron/internal/pipeline"
	"github.com/wrowley/gridiron/pkg/config"
	"github.com/wrowley/gridiron/pkg/logger"
)

func newTestRouter() http.Handler {
	cfg := &config.Config{
		Pipeline: config.PipelineConfig{KeyColumn: "Player"},
		ML:       config.MLConfig{Features: []string{"Pass Yds"}, Target: "FantasyPoints"},
	}
	h := handlers.NewStatsHandler(
		nil,
		pipeline.NewRunner(cfg.Pipeline.KeyColumn, nil, zerolog.Nop()),
		extract.NewCSVSource(zerolog.Nop()),
		ml.NewTrainer(func() ml.Regressor { return ml.NewOLS() }, zerolog.Nop()),
		analysis.NewAnalyzer(zerolog.Nop()),
		cfg,
		logger.NewNop(),
	)
	return NewRouter(h, logger.NewNop())
}

func TestRouter_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","service":"gridiron-api"}`, rec.Body.String())
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pipeline/run", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"error":"method not allowed"}`, rec.Body.String())
}

func TestRouter_UnknownRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
