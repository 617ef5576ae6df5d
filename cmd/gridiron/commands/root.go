package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wrowley/gridiron/pkg/config"
	"github.com/wrowley/gridiron/pkg/logger"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gridiron",
	Short: "gridiron - NFL passing stats ETL and fantasy regression",
	Long: `gridiron cleans NFL passing statistics and trains a fantasy-points
regression model on the result.

Usage:
  go run ./cmd/gridiron [command]

Examples:
  go run ./cmd/gridiron etl --data-file data/passing_2022.csv
  go run ./cmd/gridiron analyze
  go run ./cmd/gridiron train --test-size 0.2
  go run ./cmd/gridiron serve`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// setup loads config and builds the logger shared by every command.
func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, logger.New(cfg), nil
}
