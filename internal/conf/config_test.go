package conf

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nps-soundscapes/activespace/internal/errors"
)

func TestDefaultSettings(t *testing.T) {
	s := defaultSettings()

	assert.InDelta(t, 343.0, s.Analysis.SpeedOfSound, 1e-9)
	assert.InDelta(t, 1.0, s.Analysis.Beta, 1e-9)
	assert.Equal(t, 900, s.Analysis.FlightGap)
	assert.Equal(t, 1, s.Analysis.SplineInterval)
	assert.Equal(t, "dbA", s.Analysis.Audibility.Band)
	assert.InDelta(t, 45.0, s.Analysis.Audibility.Threshold, 1e-9)
	assert.False(t, s.Analysis.Audibility.Invert)
}

func TestValidateSettings(t *testing.T) {
	s := defaultSettings()
	require.NoError(t, ValidateSettings(s))

	s.Analysis.Beta = 0
	err := ValidateSettings(s)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryConfiguration))

	s = defaultSettings()
	s.Analysis.SpeedOfSound = -1
	require.Error(t, ValidateSettings(s))

	s = defaultSettings()
	s.Analysis.FlightGap = 0
	require.Error(t, ValidateSettings(s))

	s = defaultSettings()
	s.Analysis.Audibility.Band = ""
	require.Error(t, ValidateSettings(s))
}

func TestGeneratedConfigGoesToUserDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("relies on XDG_CONFIG_HOME config dir resolution")
	}
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	viper.Reset()
	defer viper.Reset()

	require.NoError(t, initViper())

	// The generated default lands in the user config dir, never in the
	// directory the tool happens to run from.
	_, err := os.Stat(filepath.Join(tmp, "activespace", "config.yaml"))
	require.NoError(t, err)
	_, err = os.Stat("config.yaml")
	assert.True(t, os.IsNotExist(err))
}

func TestDumpYAML(t *testing.T) {
	out, err := defaultSettings().DumpYAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "speedofsound")
	assert.Contains(t, string(out), "beta")
}
