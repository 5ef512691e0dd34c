package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for Codemend. Pointers
// distinguish "unset" from zero values so CLI flags can win the merge.
type FileConfig struct {
	Include    *string  `yaml:"include"`
	Exclude    *string  `yaml:"exclude"`
	MaxBytes   *int64   `yaml:"max_bytes"`
	Enable     *string  `yaml:"enable"`
	Disable    *string  `yaml:"disable"`
	Categories *string  `yaml:"categories"`
	Confidence *float64 `yaml:"confidence"`
	NoColor    *bool    `yaml:"no_color"`
	NoCache    *bool    `yaml:"no_cache"`
	SafeOnly   *bool    `yaml:"safe_only"`
	BackupDir  *string  `yaml:"backup_dir"`
	Checkpoint *bool    `yaml:"checkpoint"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
// It supports .codemend.yml/.yaml and codemend.yml/.yaml.
func LoadLocal(repoRoot string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".codemend.yml", ".codemend.yaml", "codemend.yml", "codemend.yaml"} {
		p := filepath.Join(repoRoot, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "codemend", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}
