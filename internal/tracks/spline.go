package tracks

import (
	"time"

	"gonum.org/v1/gonum/interp"

	"github.com/nps-soundscapes/activespace/internal/errors"
)

// InterpolateSpline fits a natural cubic spline through a flight's track
// points, one spline per coordinate parameterized by seconds since the first
// point, and samples it every ds. The sampled path always includes the final
// point time. A minimum of 2 points is required.
//
// Duplicate timestamps are collapsed to the last point seen, since the fit
// needs strictly increasing parameter values.
func InterpolateSpline(points []TrackPoint, ds time.Duration) ([]TrackPoint, error) {
	if len(points) < 2 {
		return nil, errors.Newf("a minimum of 2 points is required to calculate a spline, got %d", len(points)).
			Component("tracks").
			Category(errors.CategoryValidation).
			Build()
	}
	if ds <= 0 {
		return nil, errors.Newf("spline interval must be positive, got %s", ds).
			Component("tracks").
			Category(errors.CategoryValidation).
			Build()
	}

	sorted := Standardize(points)
	start := sorted[0].Time

	var ts, xs, ys, zs []float64
	for _, pt := range sorted {
		t := pt.Time.Sub(start).Seconds()
		if len(ts) > 0 && t == ts[len(ts)-1] {
			xs[len(xs)-1] = pt.X
			ys[len(ys)-1] = pt.Y
			zs[len(zs)-1] = pt.Z
			continue
		}
		ts = append(ts, t)
		xs = append(xs, pt.X)
		ys = append(ys, pt.Y)
		zs = append(zs, pt.Z)
	}
	if len(ts) < 2 {
		return nil, errors.Newf("flight collapses to a single timestamp, cannot fit a spline").
			Component("tracks").
			Category(errors.CategoryValidation).
			Build()
	}

	var sx, sy, sz interp.NaturalCubic
	if err := sx.Fit(ts, xs); err != nil {
		return nil, splineFitError(err)
	}
	if err := sy.Fit(ts, ys); err != nil {
		return nil, splineFitError(err)
	}
	if err := sz.Fit(ts, zs); err != nil {
		return nil, splineFitError(err)
	}

	duration := ts[len(ts)-1]
	step := ds.Seconds()

	var out []TrackPoint
	for t := 0.0; t <= duration; t += step {
		out = append(out, TrackPoint{
			TrackID: sorted[0].TrackID,
			Time:    start.Add(time.Duration(t * float64(time.Second))),
			X:       sx.Predict(t),
			Y:       sy.Predict(t),
			Z:       sz.Predict(t),
		})
	}
	// Make sure the path ends exactly at the last known point.
	if out[len(out)-1].Time.Before(start.Add(time.Duration(duration * float64(time.Second)))) {
		out = append(out, sorted[len(sorted)-1])
	}

	return out, nil
}

func splineFitError(err error) error {
	return errors.Newf("fitting track spline: %w", err).
		Component("tracks").
		Category(errors.CategoryValidation).
		Build()
}
