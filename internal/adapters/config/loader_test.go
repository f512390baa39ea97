package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nanoindent/internal/adapters/config"
	"go.trai.ch/nanoindent/internal/core/domain"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	t.Parallel()

	settings, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestLoad_OverlaysFile(t *testing.T) {
	t.Parallel()

	content := `
log_level: debug
workers: 4
chunk_size: 10
curves_path: curves.json
cache:
  backend: badger
  path: /tmp/nanoindent-cache
  ttl: 10m
elasticity:
  window: 31
  order: 3
  interpolate: false
metadata:
  tip_geometry: cone
  tip_angle: 20
`
	path := filepath.Join(t.TempDir(), "nanoindent.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	settings, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", settings.LogLevel)
	assert.Equal(t, 4, settings.Workers)
	assert.Equal(t, 10, settings.ChunkSize)
	assert.Equal(t, "curves.json", settings.CurvesPath)
	assert.Equal(t, domain.CacheBackendBadger, settings.Cache.Backend)
	assert.Equal(t, 10*time.Minute, settings.Cache.TTL)
	assert.Equal(t, domain.ElasticitySettings{Window: 31, Order: 3}, settings.Elasticity)
	assert.Equal(t, domain.GeometryCone, settings.Metadata.TipGeometry)
	assert.InDelta(t, 20.0, settings.Metadata.TipAngle, 1e-12)
	// Unset fields keep their defaults.
	assert.InDelta(t, domain.DefaultSpringConstant, settings.Metadata.SpringConstant, 1e-12)
	assert.Equal(t, ":8080", settings.Server.Addr)
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    error
	}{
		{name: "malformed", content: "log_level: [", want: domain.ErrConfigParseFailed},
		{name: "bad level", content: "log_level: loud", want: domain.ErrInvalidConfig},
		{name: "badger without path", content: "cache:\n  backend: badger", want: domain.ErrInvalidConfig},
		{name: "unknown backend", content: "cache:\n  backend: redis", want: domain.ErrInvalidConfig},
		{name: "unknown geometry", content: "metadata:\n  tip_geometry: torus", want: domain.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := config.Parse([]byte(tt.content))
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.want.Error())
		})
	}
}

func TestNewLoader_UsesEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 7\n"), 0o600))
	t.Setenv(config.EnvConfigPath, path)

	loader := config.NewLoader()
	assert.Equal(t, path, loader.Filename)

	settings, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, 7, settings.Workers)
}
