package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	content := `{
		"capacity": 4,
		"speed": 1.5,
		"max_wait_time": 100,
		"max_delay": 10,
		"max_distance": 5,
		"min_efficiency": 0.5,
		"input_file": "requests.csv",
		"output_destination": "csv",
		"database": {"host": "db", "port": "5432"}
	}`
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Capacity)
	assert.InDelta(t, 1.5, cfg.Speed, 1e-9)
	assert.InDelta(t, 10.0, cfg.MaxDelay, 1e-9)
	assert.InDelta(t, 0.5, cfg.MinEfficiency, 1e-9)
	assert.Equal(t, "requests.csv", cfg.InputFile)
	assert.Equal(t, "csv", cfg.OutputDestination)
	assert.Equal(t, "db", cfg.Database.Host)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
