// Package audibility converts per-second aircraft noise detection series
// into closed temporal intervals of noise and noise-free periods and
// summarizes event durations.
//
// A detection series is an ordered sequence of booleans, one per uniform
// time step, where true means aircraft noise was judged audible during that
// step. Intervals use closed semantics: both the start and end index belong
// to the interval, and the union of noise and noise-free intervals covers
// every index of the series exactly once.
package audibility

// DetectionSeries is a per-time-step boolean record of whether a sound was
// judged audible. Index 0..N-1 is chronological order with uniform sampling;
// the caller guarantees there are no missing steps.
type DetectionSeries []bool

// Invert returns a new series with detection semantics flipped. The receiver
// is left untouched.
func (s DetectionSeries) Invert() DetectionSeries {
	inverted := make(DetectionSeries, len(s))
	for i, v := range s {
		inverted[i] = !v
	}
	return inverted
}

// Interval is a pair of indices into a DetectionSeries, inclusive on both
// ends, representing a contiguous noise event or noise-free period.
type Interval struct {
	Start int // first index of the run
	End   int // last index of the run, Start <= End
}

// Duration returns the interval length in steps, End - Start under closed
// interval semantics.
func (iv Interval) Duration() int {
	return iv.End - iv.Start
}

// Contains reports whether index i falls inside the interval.
func (iv Interval) Contains(i int) bool {
	return i >= iv.Start && i <= iv.End
}

// IntervalSet is an ordered, non-overlapping, index-ascending sequence of
// intervals.
type IntervalSet []Interval

// TotalSteps returns the number of series indices covered by the set.
func (set IntervalSet) TotalSteps() int {
	total := 0
	for _, iv := range set {
		total += iv.End - iv.Start + 1
	}
	return total
}
