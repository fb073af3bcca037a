package audibility

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name          string
		series        DetectionSeries
		invert        bool
		wantNoise     IntervalSet
		wantNoiseFree IntervalSet
	}{
		{
			name:          "boundary correction at both series edges",
			series:        DetectionSeries{true, false, false, true, true, false},
			wantNoise:     IntervalSet{{Start: 0, End: 0}, {Start: 3, End: 4}},
			wantNoiseFree: IntervalSet{{Start: 1, End: 2}, {Start: 5, End: 5}},
		},
		{
			name:          "series starting quiet keeps index zero",
			series:        DetectionSeries{false, true},
			wantNoise:     IntervalSet{{Start: 1, End: 1}},
			wantNoiseFree: IntervalSet{{Start: 0, End: 0}},
		},
		{
			name:          "series ending quiet keeps last index",
			series:        DetectionSeries{true, false},
			wantNoise:     IntervalSet{{Start: 0, End: 0}},
			wantNoiseFree: IntervalSet{{Start: 1, End: 1}},
		},
		{
			name:          "quiet at both edges",
			series:        DetectionSeries{false, true, true, false},
			wantNoise:     IntervalSet{{Start: 1, End: 2}},
			wantNoiseFree: IntervalSet{{Start: 0, End: 0}, {Start: 3, End: 3}},
		},
		{
			name:          "all noise yields empty noise-free set",
			series:        DetectionSeries{true, true, true},
			wantNoise:     IntervalSet{{Start: 0, End: 2}},
			wantNoiseFree: IntervalSet{},
		},
		{
			name:          "all quiet yields empty noise set",
			series:        DetectionSeries{false, false, false},
			wantNoise:     IntervalSet{},
			wantNoiseFree: IntervalSet{{Start: 0, End: 2}},
		},
		{
			name:          "length one series",
			series:        DetectionSeries{true},
			wantNoise:     IntervalSet{{Start: 0, End: 0}},
			wantNoiseFree: IntervalSet{},
		},
		{
			name:          "inverted semantics flip the sides",
			series:        DetectionSeries{false, true, true, false, false, true},
			invert:        true,
			wantNoise:     IntervalSet{{Start: 0, End: 0}, {Start: 3, End: 4}},
			wantNoiseFree: IntervalSet{{Start: 1, End: 2}, {Start: 5, End: 5}},
		},
		{
			name:          "interior single step quiet run",
			series:        DetectionSeries{true, false, true},
			wantNoise:     IntervalSet{{Start: 0, End: 0}, {Start: 2, End: 2}},
			wantNoiseFree: IntervalSet{{Start: 1, End: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			noise, noiseFree, err := Segment(tt.series, tt.invert)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNoise, noise)
			assert.Equal(t, tt.wantNoiseFree, noiseFree)
		})
	}
}

func TestSegmentEmptySeries(t *testing.T) {
	_, _, err := Segment(DetectionSeries{}, false)
	require.Error(t, err)
}

// Every index of the series must land in exactly one interval across the
// union of the noise and noise-free sets, for any input.
func TestSegmentCoversEveryIndexExactlyOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(50)
		series := make(DetectionSeries, n)
		for i := range series {
			series[i] = rng.Intn(2) == 1
		}

		noise, noiseFree, err := Segment(series, false)
		require.NoError(t, err)

		covered := make([]int, n)
		for _, set := range []IntervalSet{noise, noiseFree} {
			for _, iv := range set {
				require.LessOrEqual(t, iv.Start, iv.End, "series %v", series)
				require.GreaterOrEqual(t, iv.Start, 0, "series %v", series)
				require.Less(t, iv.End, n, "series %v", series)
				for i := iv.Start; i <= iv.End; i++ {
					covered[i]++
				}
			}
		}
		for i, c := range covered {
			assert.Equalf(t, 1, c, "index %d of series %v covered %d times", i, series, c)
		}
	}
}

// Noise intervals must contain only detections and noise-free intervals only
// non-detections.
func TestSegmentIntervalsMatchSeriesValues(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 100; trial++ {
		n := 1 + rng.Intn(40)
		series := make(DetectionSeries, n)
		for i := range series {
			series[i] = rng.Intn(2) == 1
		}

		noise, noiseFree, err := Segment(series, false)
		require.NoError(t, err)

		for _, iv := range noise {
			for i := iv.Start; i <= iv.End; i++ {
				assert.Truef(t, series[i], "noise interval %+v covers quiet index %d in %v", iv, i, series)
			}
		}
		for _, iv := range noiseFree {
			for i := iv.Start; i <= iv.End; i++ {
				assert.Falsef(t, series[i], "noise-free interval %+v covers noisy index %d in %v", iv, i, series)
			}
		}
	}
}
