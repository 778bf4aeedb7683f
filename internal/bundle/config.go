package bundle

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configFileName         = "config.yaml"
	defaultProviderCommand = "apkg"
)

// fileConfig is the optional per-root config file. All fields are
// overrides; an absent file means defaults throughout.
type fileConfig struct {
	TempDir   string `yaml:"temp_dir"`
	BundleDir string `yaml:"bundle_dir"`
	Provider  string `yaml:"provider"`
}

func loadFileConfig(path string) (fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
