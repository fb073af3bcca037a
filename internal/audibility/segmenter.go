package audibility

// Segment splits a detection series into noise intervals and noise-free
// intervals. Both sets use closed semantics and together cover every index
// of the series exactly once.
//
// When invert is true the series is logically negated first, for callers
// whose raw data encodes quiet rather than noise as true.
//
// The noise-free intervals are first laid out naively between consecutive
// noise runs, sharing their boundary indices with the adjacent noise
// intervals. The shared boundaries are then pulled inward by one step on
// each side, except where a noise-free run touches a series edge: index 0
// and index N-1 are real data, not shared boundaries, so an edge-touching
// run keeps its edge index. A series that is one single run returns the
// empty counterpart set cleanly.
func Segment(series DetectionSeries, invert bool) (noise, noiseFree IntervalSet, err error) {
	if invert {
		series = series.Invert()
	}

	noise, err = ExtractIntervals(series)
	if err != nil {
		return nil, nil, err
	}

	last := len(series) - 1
	if len(noise) == 0 {
		// All quiet: the whole series is one noise-free interval.
		return IntervalSet{}, IntervalSet{{Start: 0, End: last}}, nil
	}

	startsWithNoise := series[0]
	endsWithNoise := series[last]

	// Naive noise-free intervals spanning between noise runs. Each one
	// borrows the boundary index of its neighbouring noise interval on any
	// side that is not a series edge.
	naive := make(IntervalSet, 0, len(noise)+1)
	if !startsWithNoise {
		naive = append(naive, Interval{Start: 0, End: noise[0].Start})
	}
	for k := 0; k+1 < len(noise); k++ {
		naive = append(naive, Interval{Start: noise[k].End, End: noise[k+1].Start})
	}
	if !endsWithNoise {
		naive = append(naive, Interval{Start: noise[len(noise)-1].End, End: last})
	}

	// Boundary correction, one case per series edge: an interior boundary is
	// shared with a noise interval and moves inward one step, an edge
	// boundary stays put.
	noiseFree = make(IntervalSet, 0, len(naive))
	for k, iv := range naive {
		start, end := iv.Start, iv.End
		if !(k == 0 && !startsWithNoise) {
			start++
		}
		if !(k == len(naive)-1 && !endsWithNoise) {
			end--
		}
		noiseFree = append(noiseFree, Interval{Start: start, End: end})
	}

	return noise, noiseFree, nil
}
