package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8089", cfg.Port)
	assert.Equal(t, "development", cfg.Env)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "nfl_data", cfg.Database.Name)
	assert.Equal(t, "nfl_user", cfg.Database.User)
	assert.Equal(t, 10, cfg.Database.MaxConns)

	assert.Equal(t, "data/sample.csv", cfg.Pipeline.DataFile)
	assert.Equal(t, "player_passing_stats", cfg.Pipeline.TableName)
	assert.Equal(t, "Player", cfg.Pipeline.KeyColumn)

	assert.Equal(t, 0.2, cfg.ML.TestSize)
	assert.Equal(t, int64(42), cfg.ML.Seed)
	assert.Equal(t, "FantasyPoints", cfg.ML.Target)
	assert.Equal(t, []string{
		"Pass Yds", "Pass TD", "Pass Int",
		"Rush Yds", "Rush TD", "Rec Yds", "Rec TD",
	}, cfg.ML.Features)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.Scraper.HTTPTimeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "production")
	t.Setenv("ML_TEST_SIZE", "0.3")
	t.Setenv("ML_SEED", "7")
	t.Setenv("ML_FEATURES", "Pass Yds, Pass TD")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("SCRAPER_HTTP_TIMEOUT", "10s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 0.3, cfg.ML.TestSize)
	assert.Equal(t, int64(7), cfg.ML.Seed)
	assert.Equal(t, []string{"Pass Yds", "Pass TD"}, cfg.ML.Features)
	assert.Equal(t, 25, cfg.Database.MaxConns)
	assert.Equal(t, 10*time.Second, cfg.Scraper.HTTPTimeout)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "not-a-number")
	t.Setenv("SCRAPER_HTTP_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Database.MaxConns)
	assert.Equal(t, 30*time.Second, cfg.Scraper.HTTPTimeout)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown env", "ENV", "testing"},
		{"test size too large", "ML_TEST_SIZE", "1.0"},
		{"test size negative", "ML_TEST_SIZE", "-0.1"},
		{"empty features", "ML_FEATURES", ", ,"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.ErrorContains(t, err, "config validation failed")
		})
	}
}

func TestDatabaseConfig_ConnString(t *testing.T) {
	d := DatabaseConfig{
		Host: "db", Port: "5433", Name: "nfl_data",
		User: "nfl_user", Password: "nfl_password",
	}
	assert.Equal(t, "postgres://nfl_user:nfl_password@db:5433/nfl_data", d.ConnString())

	d.URL = "postgres://elsewhere/custom"
	assert.Equal(t, "postgres://elsewhere/custom", d.ConnString(), "DATABASE_URL wins when set")
}
