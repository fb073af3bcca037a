// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "activespace")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "activespace.log")

	viper.SetDefault("analysis.speedofsound", 343.0)
	viper.SetDefault("analysis.beta", 1.0)
	viper.SetDefault("analysis.flightgap", 900)
	viper.SetDefault("analysis.splineinterval", 1)
	viper.SetDefault("analysis.audibility.band", "dbA")
	viper.SetDefault("analysis.audibility.threshold", 45.0)
	viper.SetDefault("analysis.audibility.invert", false)
}

// defaultSettings returns a Settings struct populated with default values.
func defaultSettings() *Settings {
	return &Settings{
		Debug: false,
		Main: MainSettings{
			Name: "activespace",
			Log: LogConfig{
				Enabled: true,
				Path:    "activespace.log",
			},
		},
		Analysis: AnalysisSettings{
			SpeedOfSound:   343.0,
			Beta:           1.0,
			FlightGap:      900,
			SplineInterval: 1,
			Audibility: AudibilitySettings{
				Band:      "dbA",
				Threshold: 45.0,
				Invert:    false,
			},
		},
	}
}
