package audibility

import (
	"github.com/nps-soundscapes/activespace/internal/errors"
)

// ExtractIntervals finds all maximal runs of true values in the series and
// returns them as closed intervals in ascending index order.
//
// The scan records a boundary at every position where consecutive values
// differ. A series starting true contributes index 0 as a leading boundary
// and a series ending true contributes the series length as a trailing
// boundary, so boundaries always pair up into (start, end) runs.
//
// An all-false series yields an empty set; only a zero-length series is an
// error.
func ExtractIntervals(series DetectionSeries) (IntervalSet, error) {
	if len(series) == 0 {
		return nil, errors.Newf("detection series is empty").
			Component("audibility").
			Category(errors.CategoryValidation).
			Build()
	}

	var bounds []int
	if series[0] {
		bounds = append(bounds, 0)
	}
	for i := 0; i < len(series)-1; i++ {
		if series[i] != series[i+1] {
			bounds = append(bounds, i+1)
		}
	}
	if series[len(series)-1] {
		bounds = append(bounds, len(series))
	}

	set := make(IntervalSet, 0, len(bounds)/2)
	for i := 0; i+1 < len(bounds); i += 2 {
		// bounds[i] is the first index of a run, bounds[i+1] the index just
		// past its last element.
		set = append(set, Interval{Start: bounds[i], End: bounds[i+1] - 1})
	}
	return set, nil
}
