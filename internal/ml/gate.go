package ml

import (
	"errors"
	"fmt"
	"math"
)

// ErrInsufficientSamples means too few rows remain for the requested
// evaluation split. Terminal for training: no model is produced.
var ErrInsufficientSamples = errors.New("not enough samples to train")

// minSamplesNoSplit is the floor applied when no test partition is
// requested; it guards against degenerate fits on a handful of rows.
const minSamplesNoSplit = 5

// MinSamples returns the smallest row count accepted for the given test
// fraction. For t > 0 it guarantees a non-empty test partition.
func MinSamples(testSize float64) int {
	if testSize > 0 {
		return int(math.Ceil(1 / testSize))
	}
	return minSamplesNoSplit
}

// CheckSampleSize rejects a dataset as untrainable when rows is below
// the minimum for the requested split. It runs on the row count left
// after imputation-driven drops.
func CheckSampleSize(rows int, testSize float64) error {
	if required := MinSamples(testSize); rows < required {
		return fmt.Errorf("%w: %d rows after cleaning, %d required for split", ErrInsufficientSamples, rows, required)
	}
	return nil
}
