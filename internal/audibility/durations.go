package audibility

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/nps-soundscapes/activespace/internal/errors"
)

// DurationSummary holds the per-interval durations of an interval set and
// robust descriptive statistics over them. Durations are in series steps.
type DurationSummary struct {
	Durations []float64 // end - start per interval, in set order
	Mean      float64   // arithmetic mean
	StdDev    float64   // population standard deviation (divisor = count)
	Median    float64   // 50th percentile, midpoint rule for even counts
	MAD       float64   // median absolute deviation about the median
}

// SummarizeDurations computes the duration sequence and its summary
// statistics for an interval set. An empty set has no meaningful central
// tendency and is rejected.
func SummarizeDurations(set IntervalSet) (*DurationSummary, error) {
	if len(set) == 0 {
		return nil, errors.Newf("interval set is empty").
			Component("audibility").
			Category(errors.CategoryValidation).
			Build()
	}

	durations := make([]float64, len(set))
	for i, iv := range set {
		durations[i] = float64(iv.Duration())
	}

	med := median(durations)

	deviations := make([]float64, len(durations))
	for i, d := range durations {
		deviations[i] = math.Abs(d - med)
	}

	return &DurationSummary{
		Durations: durations,
		Mean:      stat.Mean(durations, nil),
		StdDev:    stat.PopStdDev(durations, nil),
		Median:    med,
		MAD:       median(deviations),
	}, nil
}

// SummarizePair summarizes both sides of a segmentation. Summaries for
// non-empty sides are always returned; when either side has no intervals the
// error carries the EmptyComplement category so callers can tell a one-sided
// series apart from a computation failure.
func SummarizePair(noise, noiseFree IntervalSet) (noiseSummary, noiseFreeSummary *DurationSummary, err error) {
	if len(noise) > 0 {
		noiseSummary, err = SummarizeDurations(noise)
		if err != nil {
			return nil, nil, err
		}
	}
	if len(noiseFree) > 0 {
		noiseFreeSummary, err = SummarizeDurations(noiseFree)
		if err != nil {
			return nil, nil, err
		}
	}
	if len(noise) == 0 || len(noiseFree) == 0 {
		side := "noise"
		if len(noiseFree) == 0 {
			side = "noise-free"
		}
		return noiseSummary, noiseFreeSummary, errors.Newf("series has no %s intervals", side).
			Component("audibility").
			Category(errors.CategoryEmptyComplement).
			Build()
	}
	return noiseSummary, noiseFreeSummary, nil
}

// median returns the 50th percentile of xs, averaging the two middle ranks
// when the count is even. xs is not modified.
func median(xs []float64) float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
