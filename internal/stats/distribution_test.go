package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cstats/internal/model"
)

func sequence(from int64, to int64) []int64 {
	values := make([]int64, 0, to-from+1)
	for v := from; v <= to; v++ {
		values = append(values, v)
	}
	return values
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, model.Distribution{}, Summarize(nil))
}

func TestSummarizeSingleValue(t *testing.T) {
	assert.Equal(t, model.Distribution{Avg: 7, Median: 7, P90: 7, P95: 7, P99: 7}, Summarize([]int64{7}))
}

func TestSummarizeTenValues(t *testing.T) {
	values := []int64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}

	got := Summarize(values)

	assert.Equal(t, model.Distribution{Avg: 5, Median: 5, P90: 9, P95: 10, P99: 10}, got)
	assert.Equal(t, int64(10), values[0], "input must not be reordered")
}

func TestSummarizeTwentyValues(t *testing.T) {
	got := Summarize(sequence(1, 20))

	assert.Equal(t, model.Distribution{Avg: 10, Median: 10, P90: 18, P95: 19, P99: 20}, got)
}

func TestQuantileExclusive(t *testing.T) {
	sorted := sequence(1, 10)

	assert.InDelta(t, 9.9, Quantile(sorted, 10, 9), 1e-9)
	assert.InDelta(t, 5.5, Quantile(sorted, 2, 1), 1e-9)
	assert.InDelta(t, 0.03, Quantile([]int64{1, 2}, 100, 1), 1e-9)
}
