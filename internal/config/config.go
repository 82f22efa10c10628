// Package config persists default CLI flags for cmd/cherry across
// invocations in one checkout, the way a project settings file
// supplements cobra flags. It has no bearing on AnalysisResult
// semantics, only on how analysis.Config gets constructed before the
// Facade runs.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the settings file Load searches for, walking upward from
// the working directory the way provenance.Detector walks for project
// markers.
const FileName = ".cherry.yaml"

// Config is the persisted settings shape; every field mirrors one of the
// spec.md §6 CLI options.
type Config struct {
	Algorithm       string   `yaml:"algorithm,omitempty"`
	IncludePrefixes []string `yaml:"includePrefixes,omitempty"`
	ExcludePrefixes []string `yaml:"excludePrefixes,omitempty"`
	ExcludeJDK      bool     `yaml:"excludeJDK,omitempty"`
	Format          string   `yaml:"format,omitempty"`
}

// Load searches dir and its ancestors for FileName and returns the parsed
// Config; ok is false if no such file was found anywhere up the tree.
func Load(dir string) (Config, bool, error) {
	path, ok := findUpward(dir, FileName)
	if !ok {
		return Config{}, false, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, false, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, false, err
	}
	return cfg, true, nil
}

// Save writes cfg to FileName in dir, overwriting any existing file.
func Save(dir string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, FileName), data, 0o644)
}

func findUpward(start, name string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
