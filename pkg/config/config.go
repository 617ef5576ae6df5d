package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// All environment variables are read through this package only.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Scraper
	Scraper ScraperConfig

	// Pipeline
	Pipeline PipelineConfig

	// Model training
	ML MLConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	URL      string

	// Connection pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// ScraperConfig holds stats-site scraper configuration.
type ScraperConfig struct {
	BaseURL     string
	RatePerSec  float64
	HTTPTimeout time.Duration
}

// PipelineConfig holds ETL pipeline configuration.
type PipelineConfig struct {
	DataFile   string // input CSV path
	OutputFile string // cleaned CSV path
	TableName  string // destination table for the database sink
	KeyColumn  string // player identity column used by the row filter
}

// MLConfig holds model training configuration.
type MLConfig struct {
	TestSize float64
	Seed     int64
	Features []string
	Target   string
}

// ConnString returns the pgx connection string, preferring DATABASE_URL
// and falling back to the individual host/port/user settings.
func (d DatabaseConfig) ConnString() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// Load reads configuration from environment variables.
// This is the only function that calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			Name:            getEnv("DB_NAME", "nfl_data"),
			User:            getEnv("DB_USER", "nfl_user"),
			Password:        getEnv("DB_PASSWORD", "nfl_password"),
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Scraper
		Scraper: ScraperConfig{
			BaseURL:     getEnv("SCRAPER_BASE_URL", "https://www.pro-football-reference.com"),
			RatePerSec:  getEnvAsFloat("SCRAPER_RATE_PER_SEC", 0.5),
			HTTPTimeout: getEnvAsDuration("SCRAPER_HTTP_TIMEOUT", "30s"),
		},

		// Pipeline
		Pipeline: PipelineConfig{
			DataFile:   getEnv("PIPELINE_DATA_FILE", "data/sample.csv"),
			OutputFile: getEnv("PIPELINE_OUTPUT_FILE", "data/cleaned_nfl_stats.csv"),
			TableName:  getEnv("PIPELINE_TABLE_NAME", "player_passing_stats"),
			KeyColumn:  getEnv("PIPELINE_KEY_COLUMN", "Player"),
		},

		// Model training
		ML: MLConfig{
			TestSize: getEnvAsFloat("ML_TEST_SIZE", 0.2),
			Seed:     int64(getEnvAsInt("ML_SEED", 42)),
			Features: getEnvAsList("ML_FEATURES",
				"Pass Yds,Pass TD,Pass Int,Rush Yds,Rush TD,Rec Yds,Rec TD"),
			Target: getEnv("ML_TARGET", "FantasyPoints"),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.ML.TestSize < 0 || c.ML.TestSize >= 1 {
		return fmt.Errorf("ML_TEST_SIZE must be in [0, 1), got %v", c.ML.TestSize)
	}

	if len(c.ML.Features) == 0 {
		return fmt.Errorf("ML_FEATURES must not be empty")
	}

	if c.ML.Target == "" {
		return fmt.Errorf("ML_TARGET must not be empty")
	}

	if c.Pipeline.KeyColumn == "" {
		return fmt.Errorf("PIPELINE_KEY_COLUMN must not be empty")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations.
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

func getEnvAsList(key string, defaultValue string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
