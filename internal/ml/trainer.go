package ml

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/wrowley/gridiron/internal/table"
)

var (
	// ErrMissingColumns means the dataset lacks required feature or
	// target columns. Training short-circuits with no partial result.
	ErrMissingColumns = errors.New("missing required columns")
	// ErrDegenerateFeatures means a feature column still holds missing
	// values after imputation (undefined mean), so no honest fit exists.
	ErrDegenerateFeatures = errors.New("feature columns unusable after imputation")
	// ErrUndefinedMetric means every prediction came out undefined; the
	// fitted model is returned for diagnosis but the metric is invalid.
	ErrUndefinedMetric = errors.New("all predictions undefined, metric not computable")
)

// Options configures a training run.
type Options struct {
	Features []string
	Target   string
	TestSize float64
	Seed     int64
}

// Result is the outcome of a successful (or partially successful)
// training run.
type Result struct {
	Model       Regressor
	MSE         table.Float
	Predictions []float64
	// Held-out partitions, for caller-side inspection.
	TestFeatures *table.Table
	TestTargets  []float64

	TrainRows int
	TestRows  int
}

// Trainer runs the fit/evaluate contract: validate columns, impute,
// gate on sample size, split, fit, predict, score. Any stage failure
// short-circuits with a nil result; the single exception is an
// undefined metric, which still surfaces the fitted model.
type Trainer struct {
	imputer *Imputer
	newReg  func() Regressor
	log     zerolog.Logger
}

// NewTrainer creates a trainer using the given regressor constructor.
func NewTrainer(newReg func() Regressor, log zerolog.Logger) *Trainer {
	return &Trainer{
		imputer: NewImputer(log),
		newReg:  newReg,
		log:     log.With().Str("component", "ml.trainer").Logger(),
	}
}

// Train fits a regressor on the dataset and evaluates it on a held-out
// partition.
func (tr *Trainer) Train(t *table.Table, opts Options) (*Result, error) {
	// Validate columns
	var missing []string
	for _, name := range append(append([]string{}, opts.Features...), opts.Target) {
		if !t.Has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		tr.log.Error().Strs("columns", missing).Msg("missing required columns in the data")
		return nil, fmt.Errorf("%w: %v", ErrMissingColumns, missing)
	}

	// Impute
	imputed := tr.imputer.Apply(t, opts.Features, opts.Target)

	// Gate
	if err := CheckSampleSize(imputed.RowCount(), opts.TestSize); err != nil {
		tr.log.Error().
			Int("rows", imputed.RowCount()).
			Float64("test_size", opts.TestSize).
			Msg("not enough data to proceed with training")
		return nil, err
	}

	// Split. A test fraction near 1 can claim every row, which leaves
	// nothing to fit on; that is a data problem, not a fault.
	trainIdx, testIdx := SplitIndices(imputed.RowCount(), opts.TestSize, opts.Seed)
	if len(trainIdx) == 0 {
		tr.log.Error().
			Int("rows", imputed.RowCount()).
			Float64("test_size", opts.TestSize).
			Msg("test fraction leaves no rows to train on")
		return nil, fmt.Errorf("%w: test fraction %v leaves no training rows", ErrInsufficientSamples, opts.TestSize)
	}

	xTrain, yTrain, err := designMatrix(imputed, opts.Features, opts.Target, trainIdx)
	if err != nil {
		return nil, err
	}
	tr.log.Info().
		Int("train_rows", len(trainIdx)).
		Int("test_rows", len(testIdx)).
		Msg("data split into training and testing sets")

	// Fit
	model := tr.newReg()
	if err := model.Fit(xTrain, yTrain); err != nil {
		return nil, fmt.Errorf("model fit failed: %w", err)
	}
	tr.log.Info().Msg("model training complete")

	// A zero test fraction means fit-only: no held-out partition, no
	// metric, and that is not a failure.
	if len(testIdx) == 0 {
		tr.log.Info().Msg("no test partition requested, skipping evaluation")
		return &Result{Model: model, TrainRows: len(trainIdx)}, nil
	}

	// Evaluate
	xTest, yTest, err := designMatrix(imputed, opts.Features, opts.Target, testIdx)
	if err != nil {
		return nil, err
	}

	predictions := model.Predict(xTest)

	testFeatures := imputed.SelectRows(testIdx)
	testFeatures, _ = testFeatures.Select(opts.Features...)

	result := &Result{
		Model:        model,
		Predictions:  predictions,
		TestFeatures: testFeatures,
		TestTargets:  yTest,
		TrainRows:    len(trainIdx),
		TestRows:     len(testIdx),
	}

	if allNaN(predictions) {
		tr.log.Error().Msg("all predictions are undefined, returning model without metric")
		return result, ErrUndefinedMetric
	}

	mse, ok := MeanSquaredError(yTest, predictions)
	if !ok {
		return result, ErrUndefinedMetric
	}
	result.MSE = table.Float{Val: mse, Valid: true}

	tr.log.Info().Float64("mse", mse).Msg("model evaluation complete")
	return result, nil
}

// designMatrix builds the feature matrix and target vector for the
// given rows. Missing cells mean a feature column survived imputation
// undefined, which is rejected rather than fitted around.
func designMatrix(t *table.Table, features []string, target string, rows []int) (*mat.Dense, []float64, error) {
	x := mat.NewDense(len(rows), len(features), nil)
	for j, name := range features {
		col, _ := t.Col(name)
		for i, r := range rows {
			v := col.Num(r)
			if !v.Valid {
				return nil, nil, fmt.Errorf("%w: %q", ErrDegenerateFeatures, name)
			}
			x.Set(i, j, v.Val)
		}
	}

	tcol, _ := t.Col(target)
	y := make([]float64, len(rows))
	for i, r := range rows {
		v := tcol.Num(r)
		if !v.Valid {
			// Imputation drops missing targets; a leftover here means a
			// non-numeric target cell.
			return nil, nil, fmt.Errorf("%w: %q", ErrDegenerateFeatures, target)
		}
		y[i] = v.Val
	}
	return x, y, nil
}

func allNaN(values []float64) bool {
	if len(values) == 0 {
		return true
	}
	for _, v := range values {
		if !math.IsNaN(v) {
			return false
		}
	}
	return true
}
