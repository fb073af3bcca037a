// Package microphone models sound station deployments and looks up their
// metadata from the park service deployment inventory.
package microphone

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/nps-soundscapes/activespace/internal/errors"
)

// Transform projects a WGS84 coordinate into a target coordinate system.
// Projection math is owned by external tooling; callers pass one in.
type Transform func(lon, lat float64) (x, y float64, err error)

// Microphone represents a microphone deployment location.
type Microphone struct {
	Name      string  // unit and site code, e.g. "DENATRLA"
	Unit      string  // four letter park unit code, e.g. "DENA"
	Site      string  // deployment site character code, e.g. "TRLA"
	Year      int     // deployment year
	Lat       float64 // WGS84 latitude
	Lon       float64 // WGS84 longitude
	Elevation float64 // elevation in meters

	// Projected coordinates, populated by Project.
	X   float64
	Y   float64
	CRS string
}

// Project sets the microphone's x,y coordinates in the given coordinate
// system using the supplied transform.
func (m *Microphone) Project(crs string, tf Transform) error {
	if tf == nil {
		return errors.Newf("no coordinate transform provided").
			Component("microphone").
			Category(errors.CategoryValidation).
			Build()
	}
	x, y, err := tf(m.Lon, m.Lat)
	if err != nil {
		return errors.Newf("projecting microphone %s to %s: %w", m.Name, crs, err).
			Component("microphone").
			Category(errors.CategoryGeometry).
			Build()
	}
	m.X, m.Y = x, y
	m.CRS = crs
	return nil
}

// LoadDeployment reads the tab separated deployment metadata file and
// returns the microphone for a specific unit, site and year.
func LoadDeployment(path, unit, site string, year int) (*Microphone, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Newf("opening deployment metadata: %w", err).
			Component("microphone").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Newf("reading deployment metadata: %w", err).
			Component("microphone").
			Category(errors.CategoryFileParsing).
			Build()
	}
	if len(rows) < 2 {
		return nil, errors.Newf("deployment metadata file has no data rows").
			Component("microphone").
			Category(errors.CategoryValidation).
			Build()
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[name] = i
	}
	for _, required := range []string{"unit", "code", "year", "lat", "long", "elevation"} {
		if _, ok := col[required]; !ok {
			return nil, errors.Newf("deployment metadata missing column %q", required).
				Component("microphone").
				Category(errors.CategoryValidation).
				Build()
		}
	}

	for _, row := range rows[1:] {
		// Inventory exports carry ragged trailing fields on some rows, so
		// missing cells decode to "" and fail the per-field parses below.
		get := func(name string) string {
			i := col[name]
			if i >= len(row) {
				return ""
			}
			return row[i]
		}
		rowYear, err := strconv.Atoi(get("year"))
		if err != nil || get("unit") != unit || get("code") != site || rowYear != year {
			continue
		}

		lat, latErr := strconv.ParseFloat(get("lat"), 64)
		lon, lonErr := strconv.ParseFloat(get("long"), 64)
		z, zErr := strconv.ParseFloat(get("elevation"), 64)
		if latErr != nil || lonErr != nil || zErr != nil {
			return nil, errors.Newf("deployment %s%s %d has malformed coordinates", unit, site, year).
				Component("microphone").
				Category(errors.CategoryFileParsing).
				Build()
		}

		return &Microphone{
			Name:      unit + site,
			Unit:      unit,
			Site:      site,
			Year:      year,
			Lat:       lat,
			Lon:       lon,
			Elevation: z,
		}, nil
	}

	return nil, errors.Newf("no deployment found for %s%s in %d", unit, site, year).
		Component("microphone").
		Category(errors.CategoryValidation).
		Build()
}
