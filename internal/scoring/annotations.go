package scoring

import (
	"fmt"
	"os"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/nps-soundscapes/activespace/internal/errors"
)

// LoadAnnotations reads ground-truth annotations from a GeoJSON file. Each
// feature becomes one AnnotatedPoint; non-point geometries are reduced to
// their planar centroid.
func LoadAnnotations(path string) ([]*AnnotatedPoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Newf("reading annotations: %w", err).
			Component("scoring").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	points, err := ParseAnnotations(data)
	if err != nil {
		return nil, err
	}
	return points, nil
}

// ParseAnnotations decodes a GeoJSON feature collection of annotations.
// The audible and valid properties tolerate boolean, numeric and "1"/"0"
// string encodings, matching the mixed encodings found in annotation files.
func ParseAnnotations(data []byte) ([]*AnnotatedPoint, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Newf("parsing annotations: %w", err).
			Component("scoring").
			Category(errors.CategoryFileParsing).
			Build()
	}

	points := make([]*AnnotatedPoint, 0, len(fc.Features))
	for i, f := range fc.Features {
		if f.Geometry == nil {
			return nil, errors.Newf("annotation feature %d has no geometry", i).
				Component("scoring").
				Category(errors.CategoryFileParsing).
				Build()
		}

		var pt orb.Point
		if p, ok := f.Geometry.(orb.Point); ok {
			pt = p
		} else {
			pt, _ = planar.CentroidArea(f.Geometry)
		}

		ap := &AnnotatedPoint{
			ID:      fmt.Sprint(propOr(f.Properties, "_id", i)),
			Point:   pt,
			Valid:   propBool(f.Properties, "valid"),
			Audible: propBool(f.Properties, "audible"),
			Note:    fmt.Sprint(propOr(f.Properties, "note", "")),
		}
		if ts, ok := propTime(f.Properties, "start_dt"); ok {
			ap.StartTime = ts
		}
		if ts, ok := propTime(f.Properties, "end_dt"); ok {
			ap.EndTime = ts
		}
		points = append(points, ap)
	}
	return points, nil
}

// FilterValid returns only the annotations marked valid, for scoring runs
// that should exclude rejected annotations.
func FilterValid(points []*AnnotatedPoint) []*AnnotatedPoint {
	valid := make([]*AnnotatedPoint, 0, len(points))
	for _, pt := range points {
		if pt.Valid {
			valid = append(valid, pt)
		}
	}
	return valid
}

// LoadActiveSpace reads a predicted active space geometry from a GeoJSON
// file. The first polygonal geometry found is used; multiple polygon
// features are merged into one multipolygon.
func LoadActiveSpace(path string) (ActiveSpace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ActiveSpace{}, errors.Newf("reading active space: %w", err).
			Component("scoring").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	return ParseActiveSpace(data)
}

// ParseActiveSpace decodes an active space geometry from GeoJSON. Accepts a
// feature collection, a single feature, or a bare geometry.
func ParseActiveSpace(data []byte) (ActiveSpace, error) {
	if fc, err := geojson.UnmarshalFeatureCollection(data); err == nil {
		var parts orb.MultiPolygon
		for _, f := range fc.Features {
			switch g := f.Geometry.(type) {
			case orb.Polygon:
				parts = append(parts, g)
			case orb.MultiPolygon:
				parts = append(parts, g...)
			}
		}
		switch len(parts) {
		case 0:
			return ActiveSpace{}, errors.Newf("no polygonal geometry in active space feature collection").
				Component("scoring").
				Category(errors.CategoryGeometry).
				Build()
		case 1:
			return NewActiveSpace(parts[0])
		default:
			return NewActiveSpace(parts)
		}
	}

	if f, err := geojson.UnmarshalFeature(data); err == nil && f.Geometry != nil {
		return NewActiveSpace(f.Geometry)
	}

	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return ActiveSpace{}, errors.Newf("parsing active space geometry: %w", err).
			Component("scoring").
			Category(errors.CategoryFileParsing).
			Build()
	}
	return NewActiveSpace(g.Geometry())
}

func propOr(props geojson.Properties, key string, fallback any) any {
	if v, ok := props[key]; ok && v != nil {
		return v
	}
	return fallback
}

// propBool reads a boolean property that may be encoded as a bool, a number
// or a "1"/"0"/"true"/"false" string.
func propBool(props geojson.Properties, key string) bool {
	switch v := props[key].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v == "1" || v == "true" || v == "True"
	default:
		return false
	}
}

func propTime(props geojson.Properties, key string) (time.Time, bool) {
	s, ok := props[key].(string)
	if !ok || s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
