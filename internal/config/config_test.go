package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, []string{"chicago", "new york city", "washington"}, cfg.CityNames())
}

func TestLoadConfig_ParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
data_dir: data
cities:
  - name: "  Chicago "
    file: chicago.csv.gz
    url: https://example.org/chicago.csv.gz
  - name: Boston
    file: /abs/boston.csv
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "data"), cfg.DataDir)
	assert.Equal(t, 5, cfg.PageSize)
	assert.Equal(t, 3, cfg.CacheSize)
	assert.Equal(t, []string{"chicago", "boston"}, cfg.CityNames())

	chicago, ok := cfg.Lookup("chicago")
	require.True(t, ok)
	assert.Equal(t, "https://example.org/chicago.csv.gz", chicago.URL)
	assert.Equal(t, filepath.Join(dir, "data", "chicago.csv.gz"), cfg.DatasetPath(chicago))

	boston, ok := cfg.Lookup("boston")
	require.True(t, ok)
	assert.Equal(t, "/abs/boston.csv", cfg.DatasetPath(boston))

	_, ok = cfg.Lookup(" Boston ")
	assert.True(t, ok, "lookups ignore case and surrounding spaces")

	_, ok = cfg.Lookup("denver")
	assert.False(t, ok)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		errText string
	}{
		{name: "no cities", content: "data_dir: .\n", wantErr: ErrNoCities},
		{name: "bad yaml", content: "cities: [\n", errText: "failed to unmarshal"},
		{name: "city without file", content: "cities:\n  - name: chicago\n", errText: "needs both name and file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "config.yaml", tt.content)

			_, err := LoadConfig(path)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.errText != "" {
				assert.Contains(t, err.Error(), tt.errText)
			}
		})
	}
}
