package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wrowley/gridiron/internal/load"
	"github.com/wrowley/gridiron/pkg/database"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and database health",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}

	fmt.Printf("Environment:   %s\n", cfg.Env)
	fmt.Printf("Data file:     %s\n", cfg.Pipeline.DataFile)
	fmt.Printf("Output file:   %s\n", cfg.Pipeline.OutputFile)
	fmt.Printf("Table name:    %s\n", cfg.Pipeline.TableName)
	fmt.Printf("Key column:    %s\n", cfg.Pipeline.KeyColumn)
	fmt.Printf("Features:      %v\n", cfg.ML.Features)
	fmt.Printf("Target:        %s\n", cfg.ML.Target)
	fmt.Printf("Test size:     %.2f\n", cfg.ML.TestSize)

	db, err := database.New(cfg)
	if err != nil {
		fmt.Printf("Database:      unreachable (%v)\n", err)
		return nil
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	health, err := db.HealthCheck(ctx)
	if err != nil {
		fmt.Printf("Database:      unhealthy (%v)\n", err)
		return nil
	}
	fmt.Printf("Database:      healthy (ping %s)\n", health.ResponseTime)

	repo := load.NewRepository(db.Pool)
	if count, err := repo.RowCount(ctx, cfg.Pipeline.TableName); err == nil {
		fmt.Printf("Table rows:    %d\n", count)
	} else {
		fmt.Printf("Table rows:    table %q not loaded yet\n", cfg.Pipeline.TableName)
	}
	return nil
}
