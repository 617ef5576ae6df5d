package ml

import (
	"math"
	"math/rand"
)

// SplitIndices partitions row indices [0, n) pseudo-randomly into train
// and test sets. The shuffle is seeded, so the same n, testSize and seed
// always produce identical partitions. The split is row-level: callers
// select both features and target with the same index sets.
func SplitIndices(n int, testSize float64, seed int64) (train, test []int) {
	r := rand.New(rand.NewSource(seed))
	perm := r.Perm(n)

	testLen := 0
	if testSize > 0 {
		testLen = int(math.Ceil(float64(n) * testSize))
		if testLen > n {
			testLen = n
		}
	}

	test = perm[:testLen]
	train = perm[testLen:]
	return train, test
}
