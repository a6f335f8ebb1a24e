package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateWeights(t *testing.T) {
	// mean = 26, limit with T=1 is 26: only 100 exceeds it
	w := []float64{1, 1, 2, 100}
	truncateWeights(w, 1)
	assert.Equal(t, []float64{1, 1, 2, 0}, w)

	w = []float64{1, 1, 2, 100}
	truncateWeights(w, 3)
	assert.Equal(t, []float64{1, 1, 2, 100}, w)

	truncateWeights(nil, 3)
}

func TestRelativeChange(t *testing.T) {
	assert.InDelta(t, 0.5, relativeChange([]complex128{2, 0}, []complex128{1, 0}), 1e-12)
	assert.Zero(t, relativeChange([]complex128{0, 0}, []complex128{0, 0}))
}

func TestAmplitudeMisfit(t *testing.T) {
	// ½((1-1)² + (|3+4i|-3)²) = 2
	assert.InDelta(t, 2, amplitudeMisfit([]complex128{1, 3 + 4i}, []float64{1, 3}), 1e-12)
}
