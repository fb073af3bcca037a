// Package scoring computes confusion-matrix accuracy metrics for predicted
// active space geometries against ground-truth audibility annotations.
//
// An active space is the planar region within which a sound source is
// predicted to be audible. Scoring tests each annotated point for spatial
// containment, classifies it as a true positive, false positive or false
// negative, and derives precision, recall and the F-beta score. All inputs
// must share one planar coordinate system; reprojection is the caller's
// concern.
package scoring

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/nps-soundscapes/activespace/internal/errors"
)

// AnnotatedPoint is a georeferenced ground-truth observation. Audible is the
// human annotation; InActiveSpace is set by Score as a byproduct of the
// containment test.
type AnnotatedPoint struct {
	ID            string
	Point         orb.Point
	StartTime     time.Time
	EndTime       time.Time
	Valid         bool // annotation passed review and may be scored
	Audible       bool // ground-truth label
	InActiveSpace bool // set by Score, initially false
	Note          string
}

// ActiveSpace is an opaque polygonal region consumed only for point-in-region
// testing.
type ActiveSpace struct {
	geom orb.Geometry
}

// NewActiveSpace wraps a polygonal geometry. Only polygons and multipolygons
// describe a region and are accepted.
func NewActiveSpace(g orb.Geometry) (ActiveSpace, error) {
	switch g.(type) {
	case orb.Polygon, orb.MultiPolygon:
		return ActiveSpace{geom: g}, nil
	default:
		return ActiveSpace{}, errors.Newf("active space geometry must be a polygon or multipolygon, got %s", g.GeoJSONType()).
			Component("scoring").
			Category(errors.CategoryGeometry).
			Build()
	}
}

// Geometry returns the wrapped geometry.
func (a ActiveSpace) Geometry() orb.Geometry {
	return a.geom
}

// Contains reports whether the point lies within or on the boundary of the
// active space.
func (a ActiveSpace) Contains(p orb.Point) bool {
	switch g := a.geom.(type) {
	case orb.Polygon:
		return planar.PolygonContains(g, p)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(g, p)
	default:
		return false
	}
}

// Report is the immutable result of one scoring call.
type Report struct {
	FBeta     float64
	Precision float64
	Recall    float64
	NTotal    int

	TruePositives  int
	FalsePositives int
	FalseNegatives int
}

// Score sets each point's InActiveSpace flag from the containment test and
// computes precision, recall and the F-beta score over the whole collection.
//
// A zero denominator makes the corresponding metric undefined and is
// surfaced as an error rather than defaulted to zero, so callers can tell
// "no positives to judge" apart from a genuine zero rate.
func Score(points []*AnnotatedPoint, space ActiveSpace, beta float64) (Report, error) {
	if len(points) == 0 {
		return Report{}, errors.Newf("no annotated points to score").
			Component("scoring").
			Category(errors.CategoryValidation).
			Build()
	}
	if beta <= 0 {
		return Report{}, errors.Newf("beta must be positive, got %f", beta).
			Component("scoring").
			Category(errors.CategoryValidation).
			Build()
	}

	var tp, fp, fn int
	for _, pt := range points {
		pt.InActiveSpace = space.Contains(pt.Point)
		switch {
		case pt.InActiveSpace && pt.Audible:
			tp++
		case pt.InActiveSpace && !pt.Audible:
			fp++
		case !pt.InActiveSpace && pt.Audible:
			fn++
		}
		// True negatives are implicit: NTotal - TP - FP - FN.
	}

	if tp+fp == 0 {
		return Report{}, errors.Newf("precision undefined: no points inside the active space").
			Component("scoring").
			Category(errors.CategoryUndefinedMetric).
			Context("n_total", len(points)).
			Build()
	}
	if tp+fn == 0 {
		return Report{}, errors.Newf("recall undefined: no audible points annotated").
			Component("scoring").
			Category(errors.CategoryUndefinedMetric).
			Context("n_total", len(points)).
			Build()
	}

	precision := float64(tp) / float64(tp+fp)
	recall := float64(tp) / float64(tp+fn)

	denom := beta*beta*precision + recall
	if denom == 0 {
		return Report{}, errors.Newf("f-beta undefined: precision and recall are both zero").
			Component("scoring").
			Category(errors.CategoryUndefinedMetric).
			Context("beta", beta).
			Build()
	}
	fbeta := (1 + beta*beta) * (precision * recall) / denom

	return Report{
		FBeta:          fbeta,
		Precision:      precision,
		Recall:         recall,
		NTotal:         len(points),
		TruePositives:  tp,
		FalsePositives: fp,
		FalseNegatives: fn,
	}, nil
}
