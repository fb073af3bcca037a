// Package tracks standardizes aircraft track points and derives per-second
// flight paths and sound arrival times from them.
package tracks

import (
	"fmt"
	"sort"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/nps-soundscapes/activespace/internal/errors"
)

// TrackPoint is one georeferenced waypoint of an aircraft track in a planar
// coordinate system shared with the study area.
type TrackPoint struct {
	TrackID string    // unique identifier grouping points into one track
	Time    time.Time // time the aircraft was at this point
	X       float64
	Y       float64
	Z       float64 // altitude in meters
}

// Flight is a contiguous sequence of track points flown by one aircraft.
type Flight struct {
	ID     string
	Points []TrackPoint
}

// Standardize returns a new slice sorted by track id then time. The input
// slice is not modified.
func Standardize(points []TrackPoint) []TrackPoint {
	sorted := make([]TrackPoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TrackID != sorted[j].TrackID {
			return sorted[i].TrackID < sorted[j].TrackID
		}
		return sorted[i].Time.Before(sorted[j].Time)
	})
	return sorted
}

// SplitFlights groups track points into individual flights. Consecutive
// points of one aircraft separated by gap or more start a new flight, so an
// aircraft landing and departing again later in the day is counted twice.
// Flights with a single waypoint carry no usable path and are dropped.
func SplitFlights(points []TrackPoint, gap time.Duration) []Flight {
	sorted := Standardize(points)

	var flights []Flight
	var current []TrackPoint
	seq := 0

	flush := func() {
		if len(current) > 1 {
			first := current[0]
			id := fmt.Sprintf("%s_%d_%s", first.TrackID, seq, first.Time.Format("20060102"))
			flights = append(flights, Flight{ID: id, Points: current})
		}
		current = nil
	}

	for i, pt := range sorted {
		if i > 0 {
			prev := sorted[i-1]
			if pt.TrackID != prev.TrackID {
				flush()
				seq = 0
			} else if pt.Time.Sub(prev.Time) >= gap {
				flush()
				seq++
			}
		}
		current = append(current, pt)
	}
	flush()

	return flights
}

// Arrival pairs a track point with the time its sound reaches a target.
type Arrival struct {
	TrackPoint
	Distance  float64   // planar distance to the target, in crs units
	AudibleAt time.Time // Time plus the propagation delay
}

// AudibleArrivals calculates when a sound made at each track point could be
// heard at the target. Points and target must share a planar coordinate
// system whose unit matches speedOfSound (meters and m/s for UTM).
func AudibleArrivals(points []TrackPoint, target orb.Point, speedOfSound float64) ([]Arrival, error) {
	if speedOfSound <= 0 {
		return nil, errors.Newf("speed of sound must be positive, got %f", speedOfSound).
			Component("tracks").
			Category(errors.CategoryValidation).
			Build()
	}

	arrivals := make([]Arrival, len(points))
	for i, pt := range points {
		dist := planar.Distance(orb.Point{pt.X, pt.Y}, target)
		delay := time.Duration(dist / speedOfSound * float64(time.Second))
		arrivals[i] = Arrival{
			TrackPoint: pt,
			Distance:   dist,
			AudibleAt:  pt.Time.Add(delay),
		}
	}
	return arrivals, nil
}
