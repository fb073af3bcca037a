// Package geo provides small geographic helpers for siting analyses:
// UTM zone selection and flight vector angles. Actual coordinate
// reprojection is left to external tooling.
package geo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/nps-soundscapes/activespace/internal/errors"
)

// UTMZone returns the EPSG code for the UTM zone containing a WGS84
// coordinate, e.g. "epsg:26906" for UTM 6N. Remember: x=longitude,
// y=latitude.
func UTMZone(lat, lon float64) (string, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return "", errors.Newf("coordinate out of range: lat=%f lon=%f", lat, lon).
			Component("geo").
			Category(errors.CategoryValidation).
			Build()
	}

	// 6 degrees per zone; add 180 because zone 1 starts at 180 W.
	zone := int((lon+180)/6) + 1
	if zone > 60 {
		zone = 60 // lon == 180 falls into the last zone
	}

	// 269xx = NAD83 northern hemisphere, 327xx = WGS84 southern hemisphere.
	if lat > 0 {
		return fmt.Sprintf("epsg:269%02d", zone), nil
	}
	return fmt.Sprintf("epsg:327%02d", zone), nil
}

// ClimbAngle returns the angle of a velocity vector above the horizontal
// plane, in degrees. Positive for climbing, negative for descending.
func ClimbAngle(v [3]float64) (float64, error) {
	norm := floats.Norm(v[:], 2)
	if norm == 0 {
		return 0, errors.Newf("cannot compute climb angle of a zero vector").
			Component("geo").
			Category(errors.CategoryValidation).
			Build()
	}
	return math.Asin(v[2]/norm) * 180 / math.Pi, nil
}
