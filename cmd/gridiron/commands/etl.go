package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wrowley/gridiron/internal/load"
	"github.com/wrowley/gridiron/internal/pipeline"
	"github.com/wrowley/gridiron/pkg/database"
)

var (
	etlDataFile string
	etlOutput   string
	etlTable    string
	etlLoadDB   bool
)

var etlCmd = &cobra.Command{
	Use:   "etl",
	Short: "Run the ETL pipeline: extract, clean, and persist passing stats",
	Long: `Extracts passing statistics from a CSV file, normalizes columns,
coerces numeric types, computes passing yards per game, drops rows with
no player identity, then writes the cleaned CSV and optionally loads the
result into PostgreSQL.

Example:
  go run ./cmd/gridiron etl --data-file data/passing_2022.csv
  go run ./cmd/gridiron etl --load-db --table player_passing_stats`,
	RunE: runETL,
}

func init() {
	rootCmd.AddCommand(etlCmd)

	etlCmd.Flags().StringVar(&etlDataFile, "data-file", "", "input CSV path (default from config)")
	etlCmd.Flags().StringVar(&etlOutput, "output", "", "cleaned CSV path (default from config)")
	etlCmd.Flags().StringVar(&etlTable, "table", "", "destination database table (default from config)")
	etlCmd.Flags().BoolVar(&etlLoadDB, "load-db", false, "load the cleaned table into PostgreSQL")
}

func runETL(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	if etlDataFile == "" {
		etlDataFile = cfg.Pipeline.DataFile
	}
	if etlOutput == "" {
		etlOutput = cfg.Pipeline.OutputFile
	}
	if etlTable == "" {
		etlTable = cfg.Pipeline.TableName
	}

	var sink *load.Sink
	if etlLoadDB {
		db, err := database.New(cfg)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()
		sink = load.NewSink(db.Pool, log.Zerolog())
	}

	runner := pipeline.NewRunner(cfg.Pipeline.KeyColumn, sink, log.Zerolog())
	summary, err := runner.Run(context.Background(), pipeline.Options{
		DataFile:   etlDataFile,
		OutputFile: etlOutput,
		TableName:  etlTable,
		LoadDB:     etlLoadDB,
	})
	if err != nil {
		return err
	}

	fmt.Printf("ETL complete: %d rows in, %d dropped, %d rows out\n",
		summary.InputRows, summary.RowsDropped, summary.OutputRows)
	if summary.OutputFile != "" {
		fmt.Printf("Cleaned data saved to %s\n", summary.OutputFile)
	}
	if summary.TableName != "" {
		fmt.Printf("Loaded %d rows into table %q\n", summary.LoadedRows, summary.TableName)
	}
	return nil
}
