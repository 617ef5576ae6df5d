package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wrowley/gridiron/internal/extract"
	"github.com/wrowley/gridiron/internal/ml"
)

var (
	trainDataFile string
	trainTestSize float64
	trainSeed     int64
	trainFeatures string
	trainTarget   string
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the fantasy-points regression model",
	Long: `Loads a cleaned dataset, imputes missing feature values, splits the
rows into train/test partitions and fits a regressor, reporting the mean
squared error on the held-out partition.

Example:
  go run ./cmd/gridiron train
  go run ./cmd/gridiron train --data-file data/cleaned_nfl_stats.csv --test-size 0.25 --seed 7`,
	RunE: runTrain,
}

func init() {
	rootCmd.AddCommand(trainCmd)

	trainCmd.Flags().StringVar(&trainDataFile, "data-file", "", "dataset CSV path (default: cleaned output from config)")
	trainCmd.Flags().Float64Var(&trainTestSize, "test-size", -1, "test fraction in [0, 1) (default from config)")
	trainCmd.Flags().Int64Var(&trainSeed, "seed", -1, "random seed for the split (default from config)")
	trainCmd.Flags().StringVar(&trainFeatures, "features", "", "comma-separated feature columns (default from config)")
	trainCmd.Flags().StringVar(&trainTarget, "target", "", "target column (default from config)")
}

func runTrain(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	opts := ml.Options{
		Features: cfg.ML.Features,
		Target:   cfg.ML.Target,
		TestSize: cfg.ML.TestSize,
		Seed:     cfg.ML.Seed,
	}
	if trainDataFile == "" {
		trainDataFile = cfg.Pipeline.OutputFile
	}
	if trainTestSize >= 0 {
		opts.TestSize = trainTestSize
	}
	if trainSeed >= 0 {
		opts.Seed = trainSeed
	}
	if trainFeatures != "" {
		opts.Features = splitList(trainFeatures)
	}
	if trainTarget != "" {
		opts.Target = trainTarget
	}

	source := extract.NewCSVSource(log.Zerolog())
	t, err := source.Read(trainDataFile)
	if err != nil {
		return err
	}

	trainer := ml.NewTrainer(func() ml.Regressor { return ml.NewOLS() }, log.Zerolog())
	result, err := trainer.Train(t, opts)
	if err != nil {
		if errors.Is(err, ml.ErrUndefinedMetric) {
			fmt.Println("Model fitted, but every prediction was undefined; no MSE available")
			return nil
		}
		return err
	}

	fmt.Printf("Training complete: %d train rows, %d test rows\n", result.TrainRows, result.TestRows)
	if result.MSE.Valid {
		fmt.Printf("MSE on test set: %.4f\n", result.MSE.Val)
	}

	if ols, ok := result.Model.(*ml.OLS); ok {
		if intercept, weights, err := ols.Coefficients(); err == nil {
			fmt.Printf("Intercept: %.4f\n", intercept)
			for i, w := range weights {
				if i < len(opts.Features) {
					fmt.Printf("  %-12s %10.4f\n", opts.Features[i], w)
				}
			}
		}
	}
	return nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
