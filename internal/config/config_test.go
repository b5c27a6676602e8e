package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.inaturalist.org/v1", cfg.API.BaseURL)
	assert.Equal(t, 60, cfg.API.Calls)
	assert.Equal(t, 60, cfg.API.RateLimitPeriodSecs)
	assert.Equal(t, time.Minute, cfg.API.RateLimitPeriod())
	assert.Equal(t, 30*time.Second, cfg.API.Timeout())
	assert.Equal(t, 51347, cfg.Survey.PlaceID)
	assert.Equal(t, "research", cfg.Survey.QualityGrade)
	assert.Equal(t, 5, cfg.Survey.PerPage)
	assert.Equal(t, 2, cfg.Survey.MaxPages)
	assert.Equal(t, 100, cfg.Survey.PhylumPageSize)
	assert.Equal(t, "inat_species_summary.csv", cfg.Survey.Output)
	assert.Empty(t, cfg.Survey.FilterFile)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
survey:
  place_id: 12345
  max_pages: 10
  output: out.csv
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 12345, cfg.Survey.PlaceID)
	assert.Equal(t, 10, cfg.Survey.MaxPages)
	assert.Equal(t, "out.csv", cfg.Survey.Output)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Defaults still apply for unset values
	assert.Equal(t, "research", cfg.Survey.QualityGrade)
	assert.Equal(t, 60, cfg.API.Calls)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
survey:
  place_id: 12345
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))
	t.Setenv("INAT_SURVEY_PLACE_ID", "99999")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 99999, cfg.Survey.PlaceID)
}
