// Package conf loads and validates application configuration.
package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/nps-soundscapes/activespace/internal/errors"
)

// LogConfig holds logging related settings.
type LogConfig struct {
	Enabled bool   // true to enable file logging
	Path    string // path to log file
}

// AudibilitySettings control how a detection series is derived and segmented.
type AudibilitySettings struct {
	Band      string  // level band the series is derived from, e.g. dbA or an octave key
	Threshold float64 // level above which a second counts as noise
	Invert    bool    // true when the raw series encodes quiet as true
}

// AnalysisSettings hold the tunables of the acoustic analysis.
type AnalysisSettings struct {
	SpeedOfSound   float64 // meters per second, used for audible delay
	Beta           float64 // F-beta weighting for accuracy scoring
	FlightGap      int     // seconds of silence separating two flights of one aircraft
	SplineInterval int     // seconds between interpolated track spline points
	Audibility     AudibilitySettings
}

// MainSettings hold application wide settings.
type MainSettings struct {
	Name string    // application name
	Log  LogConfig // log settings
}

// Settings is the root configuration structure.
type Settings struct {
	Debug    bool // true to enable debug level logging
	Main     MainSettings
	Analysis AnalysisSettings
}

var (
	settingsInstance *Settings
	settingsMutex    sync.RWMutex
)

// Load reads the configuration file and environment variables into Settings.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, errors.Newf("error unmarshaling config into struct: %w", err).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, err
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// initViper initializes viper with default values and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := configSearchPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found, create config with defaults.
			return createDefaultConfig()
		}
		return errors.Newf("fatal error reading config file: %w", err).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	return nil
}

// configSearchPaths returns the directories searched for config.yaml,
// most specific first. The working directory is a read-only override;
// generated configs go to the user config directory.
func configSearchPaths() ([]string, error) {
	paths := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "activespace"))
	}
	return paths, nil
}

// configWriteDir returns the directory a generated default config is
// written to.
func configWriteDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("error resolving user config directory: %w", err)
	}
	return filepath.Join(dir, "activespace"), nil
}

// createDefaultConfig writes the default configuration to the user config
// directory, creating it if needed.
func createDefaultConfig() error {
	dir, err := configWriteDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	configPath := filepath.Join(dir, "config.yaml")

	out, err := yaml.Marshal(defaultSettings())
	if err != nil {
		return fmt.Errorf("error marshaling default config: %w", err)
	}

	if err := os.WriteFile(configPath, out, 0o600); err != nil {
		return errors.Newf("error writing default config file: %w", err).
			Component("conf").
			Category(errors.CategoryFileIO).
			Context("path", configPath).
			Build()
	}

	return viper.ReadInConfig()
}

// DumpYAML writes the effective settings as YAML.
func (s *Settings) DumpYAML() ([]byte, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("error marshaling settings: %w", err)
	}
	return out, nil
}
