package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckSampleSize(t *testing.T) {
	tests := []struct {
		name     string
		rows     int
		testSize float64
		wantErr  bool
	}{
		{"boundary rejected", 4, 0.2, true},
		{"boundary accepted", 5, 0.2, false},
		{"plenty", 100, 0.2, false},
		{"half split needs two", 1, 0.5, true},
		{"half split accepted", 2, 0.5, false},
		{"no split needs five", 4, 0, true},
		{"no split accepted", 5, 0, false},
		{"small fraction", 9, 0.1, true},
		{"small fraction accepted", 10, 0.1, false},
		{"non-integer reciprocal rounds up", 3, 0.3, true},
		{"non-integer reciprocal accepted", 4, 0.3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSampleSize(tt.rows, tt.testSize)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInsufficientSamples)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMinSamples(t *testing.T) {
	assert.Equal(t, 5, MinSamples(0.2))
	assert.Equal(t, 2, MinSamples(0.5))
	assert.Equal(t, 5, MinSamples(0))
	assert.Equal(t, 4, MinSamples(0.3))
}
