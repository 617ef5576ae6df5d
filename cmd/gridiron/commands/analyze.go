package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wrowley/gridiron/internal/analysis"
	"github.com/wrowley/gridiron/internal/extract"
	"github.com/wrowley/gridiron/internal/transform"
)

var (
	analyzeDataFile string
	analyzeLimit    int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Rank quarterbacks by passing yards and fantasy points",
	Long: `Loads a cleaned dataset, computes fantasy points and prints the top
quarterbacks by passing yards and by fantasy points.

Example:
  go run ./cmd/gridiron analyze
  go run ./cmd/gridiron analyze --data-file data/cleaned_passing_2022.csv --limit 10`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeDataFile, "data-file", "", "cleaned CSV path (default from config)")
	analyzeCmd.Flags().IntVar(&analyzeLimit, "limit", 5, "number of players to show")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	if analyzeDataFile == "" {
		analyzeDataFile = cfg.Pipeline.OutputFile
	}

	source := extract.NewCSVSource(log.Zerolog())
	t, err := source.Read(analyzeDataFile)
	if err != nil {
		return err
	}

	analyzer := analysis.NewAnalyzer(log.Zerolog())
	t, err = analyzer.WithFantasyPoints(t)
	if err != nil {
		return err
	}

	key := cfg.Pipeline.KeyColumn
	byYards, err := analyzer.TopBy(t, key, transform.ColPassYds, analyzeLimit)
	if err != nil {
		return err
	}
	byFantasy, err := analyzer.TopBy(t, key, analysis.ColFantasyPoints, analyzeLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Top %d by passing yards:\n", analyzeLimit)
	for _, e := range byYards {
		fmt.Printf("  %-24s %8.0f\n", e.Player, e.Value)
	}
	fmt.Printf("\nTop %d by fantasy points:\n", analyzeLimit)
	for _, e := range byFantasy {
		fmt.Printf("  %-24s %8.2f\n", e.Player, e.Value)
	}
	return nil
}
