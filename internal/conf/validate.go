package conf

import (
	"github.com/nps-soundscapes/activespace/internal/errors"
)

// ValidateSettings checks that loaded settings are usable.
func ValidateSettings(settings *Settings) error {
	if settings.Analysis.SpeedOfSound <= 0 {
		return errors.Newf("analysis.speedofsound must be positive, got %f", settings.Analysis.SpeedOfSound).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}
	if settings.Analysis.Beta <= 0 {
		return errors.Newf("analysis.beta must be positive, got %f", settings.Analysis.Beta).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}
	if settings.Analysis.FlightGap <= 0 {
		return errors.Newf("analysis.flightgap must be positive, got %d", settings.Analysis.FlightGap).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}
	if settings.Analysis.Audibility.Band == "" {
		return errors.Newf("analysis.audibility.band must be set").
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}
	if settings.Analysis.SplineInterval <= 0 {
		return errors.Newf("analysis.splineinterval must be positive, got %d", settings.Analysis.SplineInterval).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}
	return nil
}
