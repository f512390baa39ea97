// Package config provides the configuration loader for nanoindent.
package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigPath names the environment variable that overrides the config file path.
	EnvConfigPath = "NANOINDENT_CONFIG"
	// DefaultFilename is read from the working directory when EnvConfigPath is unset.
	DefaultFilename = "nanoindent.yaml"
)

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
}

// NewLoader returns a loader for the path named by NANOINDENT_CONFIG, or nanoindent.yaml.
func NewLoader() *FileConfigLoader {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		path = DefaultFilename
	}
	return &FileConfigLoader{Filename: path}
}

// Load reads the configuration file. A missing file yields the defaults.
func (l *FileConfigLoader) Load() (domain.Settings, error) {
	return Load(l.Filename)
}

// Load reads a configuration file from path and overlays it on the defaults.
func Load(path string) (domain.Settings, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if errors.Is(err, fs.ErrNotExist) {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return domain.Settings{}, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}
	settings, err := Parse(data)
	if err != nil {
		return domain.Settings{}, zerr.With(err, "path", path)
	}
	return settings, nil
}

// Parse decodes YAML settings on top of the defaults and validates the result.
func Parse(data []byte) (domain.Settings, error) {
	settings := domain.DefaultSettings()
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return domain.Settings{}, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	if err := Validate(settings); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

// Validate checks settings against their struct constraints.
func Validate(settings domain.Settings) error {
	if err := validator.New().Struct(settings); err != nil {
		return zerr.Wrap(domain.ErrInvalidConfig, err.Error())
	}
	if _, err := domain.ParseTipGeometry(string(settings.Metadata.TipGeometry)); err != nil {
		return zerr.Wrap(domain.ErrInvalidConfig, err.Error())
	}
	return nil
}
