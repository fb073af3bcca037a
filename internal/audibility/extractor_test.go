package audibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nps-soundscapes/activespace/internal/errors"
)

func TestExtractIntervals(t *testing.T) {
	tests := []struct {
		name   string
		series DetectionSeries
		want   IntervalSet
	}{
		{
			name:   "all false yields empty set",
			series: DetectionSeries{false, false, false, false},
			want:   IntervalSet{},
		},
		{
			name:   "all true yields single full interval",
			series: DetectionSeries{true, true, true, true, true},
			want:   IntervalSet{{Start: 0, End: 4}},
		},
		{
			name:   "single element true",
			series: DetectionSeries{true},
			want:   IntervalSet{{Start: 0, End: 0}},
		},
		{
			name:   "single element false",
			series: DetectionSeries{false},
			want:   IntervalSet{},
		},
		{
			name:   "run in the middle",
			series: DetectionSeries{false, true, true, false},
			want:   IntervalSet{{Start: 1, End: 2}},
		},
		{
			name:   "runs touching both edges",
			series: DetectionSeries{true, false, false, true, true, false},
			want:   IntervalSet{{Start: 0, End: 0}, {Start: 3, End: 4}},
		},
		{
			name:   "alternating values",
			series: DetectionSeries{true, false, true, false, true},
			want:   IntervalSet{{Start: 0, End: 0}, {Start: 2, End: 2}, {Start: 4, End: 4}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractIntervals(tt.series)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractIntervalsEmptySeries(t *testing.T) {
	_, err := ExtractIntervals(DetectionSeries{})
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation))
}

func TestInvertDoesNotMutate(t *testing.T) {
	series := DetectionSeries{true, false, true}
	inverted := series.Invert()

	assert.Equal(t, DetectionSeries{false, true, false}, inverted)
	assert.Equal(t, DetectionSeries{true, false, true}, series)
}

func TestIntervalDuration(t *testing.T) {
	assert.Equal(t, 0, Interval{Start: 5, End: 5}.Duration())
	assert.Equal(t, 3, Interval{Start: 10, End: 13}.Duration())
}

func TestIntervalContains(t *testing.T) {
	iv := Interval{Start: 2, End: 4}

	assert.True(t, iv.Contains(2))
	assert.True(t, iv.Contains(3))
	assert.True(t, iv.Contains(4))
	assert.False(t, iv.Contains(1))
	assert.False(t, iv.Contains(5))
}
