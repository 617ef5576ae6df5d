package ml

import "math"

// MeanSquaredError returns the mean squared error between targets and
// predictions, skipping NaN prediction entries. The second result is
// false when no defined pair exists.
func MeanSquaredError(targets, predictions []float64) (float64, bool) {
	if len(targets) != len(predictions) || len(targets) == 0 {
		return 0, false
	}

	var sum float64
	var n int
	for i := range targets {
		if math.IsNaN(predictions[i]) || math.IsNaN(targets[i]) {
			continue
		}
		d := targets[i] - predictions[i]
		sum += d * d
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
