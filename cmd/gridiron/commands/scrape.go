package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wrowley/gridiron/internal/extract"
	"github.com/wrowley/gridiron/internal/extract/pfr"
)

var (
	scrapeYear   int
	scrapeOutput string
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape a season passing table into a raw CSV",
	Long: `Fetches the season passing table from the configured stats site and
writes it as a raw CSV, ready for the etl command.

Example:
  go run ./cmd/gridiron scrape --year 2022 --output data/passing_2022.csv`,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().IntVar(&scrapeYear, "year", time.Now().Year()-1, "season year to scrape")
	scrapeCmd.Flags().StringVar(&scrapeOutput, "output", "", "raw CSV destination (default: data/passing_<year>.csv)")
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	if scrapeOutput == "" {
		scrapeOutput = fmt.Sprintf("data/passing_%d.csv", scrapeYear)
	}

	client := pfr.NewClient(cfg.Scraper, log.Zerolog())
	t, err := client.FetchPassing(context.Background(), scrapeYear)
	if err != nil {
		return err
	}

	writer := extract.NewCSVWriter(log.Zerolog())
	if err := writer.Write(t, scrapeOutput); err != nil {
		return err
	}

	fmt.Printf("Scraped %d rows for %d into %s\n", t.RowCount(), scrapeYear, scrapeOutput)
	return nil
}
