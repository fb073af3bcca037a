package microphone

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nps-soundscapes/activespace/internal/errors"
)

func writeMetadata(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metadata.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const metadata = "unit\tcode\tyear\tlat\tlong\televation\n" +
	"DENA\tTRLA\t2018\t63.7232\t-148.9523\t820.5\n" +
	"DENA\tTRLA\t2019\t63.7240\t-148.9531\t821.0\n" +
	"KATM\tBRLA\t2018\t58.5570\t-155.7780\t40.0\n"

func TestLoadDeployment(t *testing.T) {
	path := writeMetadata(t, metadata)

	mic, err := LoadDeployment(path, "DENA", "TRLA", 2019)
	require.NoError(t, err)

	assert.Equal(t, "DENATRLA", mic.Name)
	assert.Equal(t, 2019, mic.Year)
	assert.InDelta(t, 63.7240, mic.Lat, 1e-9)
	assert.InDelta(t, -148.9531, mic.Lon, 1e-9)
	assert.InDelta(t, 821.0, mic.Elevation, 1e-9)
	assert.Empty(t, mic.CRS)
}

func TestLoadDeploymentNotFound(t *testing.T) {
	path := writeMetadata(t, metadata)

	_, err := LoadDeployment(path, "DENA", "TRLA", 2025)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation))
}

func TestLoadDeploymentMissingColumn(t *testing.T) {
	path := writeMetadata(t, "unit\tcode\tyear\tlat\tlong\nDENA\tTRLA\t2018\t63.7\t-148.9\n")

	_, err := LoadDeployment(path, "DENA", "TRLA", 2018)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "elevation")
}

func TestLoadDeploymentRaggedRow(t *testing.T) {
	// A matching row truncated after the year column must surface a parse
	// error rather than crash on the missing coordinate fields.
	path := writeMetadata(t, "unit\tcode\tyear\tlat\tlong\televation\nDENA\tTRLA\t2018\n")

	_, err := LoadDeployment(path, "DENA", "TRLA", 2018)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryFileParsing))
	assert.Contains(t, err.Error(), "malformed coordinates")
}

func TestProject(t *testing.T) {
	mic := &Microphone{Name: "DENATRLA", Lat: 63.7232, Lon: -148.9523}

	err := mic.Project("epsg:26906", func(lon, lat float64) (float64, float64, error) {
		// A stand-in for a real projection.
		return lon * 1000, lat * 1000, nil
	})
	require.NoError(t, err)

	assert.Equal(t, "epsg:26906", mic.CRS)
	assert.InDelta(t, -148952.3, mic.X, 1e-6)
	assert.InDelta(t, 63723.2, mic.Y, 1e-6)
}

func TestProjectWithoutTransform(t *testing.T) {
	mic := &Microphone{Name: "DENATRLA"}
	err := mic.Project("epsg:26906", nil)
	require.Error(t, err)
}
