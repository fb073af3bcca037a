// Package nvspl reads National Park Service NVSPL files, the standard
// format for per-second sound pressure level measurements, and validates
// their schema before any record is used.
package nvspl

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nps-soundscapes/activespace/internal/audibility"
	"github.com/nps-soundscapes/activespace/internal/errors"
)

// standardFields are the columns every NVSPL file must carry.
var standardFields = map[string]struct{}{
	"SiteID": {}, "STime": {}, "dbA": {}, "dbC": {}, "dbF": {},
	"Voltage": {}, "WindSpeed": {}, "WindDir": {}, "TempIns": {},
	"TempOut": {}, "Humidity": {}, "INVID": {}, "INSID": {},
	"GChar1": {}, "GChar2": {}, "GChar3": {}, "AdjustmentsApplied": {},
	"CalibrationAdjustment": {}, "GPSTimeAdjustment": {},
	"GainAdjustment": {}, "Status": {},
}

// octaveRegex matches one-third octave band columns such as H40 or H12p5.
var octaveRegex = regexp.MustCompile(`^H[0-9]+$|^H[0-9]+p[0-9]$`)

// Record is one second of sound pressure level measurements.
type Record struct {
	SiteID  string
	Time    time.Time
	DBA     float64            // A-weighted broadband level
	DBC     float64            // C-weighted broadband level
	DBF     float64            // flat broadband level
	Octaves map[string]float64 // one-third octave levels keyed by band, e.g. "12.5"
}

// Dataset is a validated, time-ordered collection of NVSPL records.
type Dataset struct {
	OctaveBands []string // octave band names in ascending column order
	Records     []Record
}

// ReadFiles loads and concatenates one or more NVSPL .txt files, sorted by
// record time.
func ReadFiles(paths []string) (*Dataset, error) {
	if len(paths) == 0 {
		return nil, errors.Newf("no NVSPL files provided").
			Component("nvspl").
			Category(errors.CategoryValidation).
			Build()
	}

	ds := &Dataset{}
	for _, path := range paths {
		if !strings.HasSuffix(path, ".txt") {
			return nil, errors.Newf("only .txt NVSPL files accepted, got %s", path).
				Component("nvspl").
				Category(errors.CategoryValidation).
				Build()
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Newf("opening NVSPL file: %w", err).
				Component("nvspl").
				Category(errors.CategoryFileIO).
				Context("path", path).
				Build()
		}
		part, err := Read(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if ds.OctaveBands == nil {
			ds.OctaveBands = part.OctaveBands
		}
		ds.Records = append(ds.Records, part.Records...)
	}

	sort.SliceStable(ds.Records, func(i, j int) bool {
		return ds.Records[i].Time.Before(ds.Records[j].Time)
	})
	return ds, nil
}

// Read parses NVSPL CSV data from r, validating the header schema first.
func Read(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Newf("reading NVSPL header: %w", err).
			Component("nvspl").
			Category(errors.CategoryFileParsing).
			Build()
	}

	octaves, err := validateHeader(header)
	if err != nil {
		return nil, err
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}

	bands := make([]string, 0, len(octaves))
	for _, name := range header {
		if band, ok := octaves[name]; ok {
			bands = append(bands, band)
		}
	}

	ds := &Dataset{OctaveBands: bands}
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, errors.Newf("reading NVSPL row %d: %w", line, err).
				Component("nvspl").
				Category(errors.CategoryFileParsing).
				Build()
		}

		rec, err := parseRecord(row, col, octaves)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		ds.Records = append(ds.Records, rec)
	}

	return ds, nil
}

// validateHeader checks that all standard columns are present and every
// extra column is an octave band. Returns the octave column renames,
// H40 -> "40" and H12p5 -> "12.5".
func validateHeader(header []string) (map[string]string, error) {
	seen := make(map[string]struct{}, len(header))
	octaves := make(map[string]string)

	for _, name := range header {
		seen[name] = struct{}{}
		if _, standard := standardFields[name]; standard {
			continue
		}
		if !octaveRegex.MatchString(name) {
			return nil, errors.Newf("NVSPL data contains unexpected column %q", name).
				Component("nvspl").
				Category(errors.CategoryValidation).
				Build()
		}
		band := strings.TrimPrefix(name, "H")
		band = strings.ReplaceAll(band, "p", ".")
		octaves[name] = band
	}

	var missing []string
	for name := range standardFields {
		if _, ok := seen[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, errors.Newf("missing standard NVSPL columns: %s", strings.Join(missing, ", ")).
			Component("nvspl").
			Category(errors.CategoryValidation).
			Build()
	}

	return octaves, nil
}

func parseRecord(row []string, col map[string]int, octaves map[string]string) (Record, error) {
	get := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	ts, err := parseTime(get("STime"))
	if err != nil {
		return Record{}, errors.Newf("parsing STime %q: %w", get("STime"), err).
			Component("nvspl").
			Category(errors.CategoryFileParsing).
			Build()
	}

	rec := Record{
		SiteID:  get("SiteID"),
		Time:    ts,
		DBA:     parseLevel(get("dbA")),
		DBC:     parseLevel(get("dbC")),
		DBF:     parseLevel(get("dbF")),
		Octaves: make(map[string]float64, len(octaves)),
	}
	for name, band := range octaves {
		rec.Octaves[band] = parseLevel(get(name))
	}
	return rec, nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339, "2006/01/02 15:04:05"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format")
}

// parseLevel reads a dB value. Blanks and placeholders decode to -999, the
// NVSPL no-data sentinel, so they never pass an audibility threshold.
func parseLevel(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return -999
	}
	return v
}

// Level returns the sound pressure level for a band name. Band is one of
// the broadband columns dbA, dbC or dbF, or an octave band key such as
// "12.5". Reports false for a band the record does not carry.
func (r Record) Level(band string) (float64, bool) {
	switch band {
	case "dbA":
		return r.DBA, true
	case "dbC":
		return r.DBC, true
	case "dbF":
		return r.DBF, true
	}
	v, ok := r.Octaves[band]
	return v, ok
}

// AudibilitySeries derives a detection series from one level band of the
// dataset: a second counts as a detection when the band meets or exceeds
// the threshold. Records must be time-ordered; use ReadFiles which sorts
// them.
func AudibilitySeries(ds *Dataset, band string, threshold float64) (audibility.DetectionSeries, error) {
	series := make(audibility.DetectionSeries, len(ds.Records))
	for i, rec := range ds.Records {
		level, ok := rec.Level(band)
		if !ok {
			return nil, errors.Newf("dataset has no level band %q", band).
				Component("nvspl").
				Category(errors.CategoryValidation).
				Context("bands", strings.Join(ds.OctaveBands, ",")).
				Build()
		}
		series[i] = level >= threshold
	}
	return series, nil
}
