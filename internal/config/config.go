// Package config loads and persists the classctl configuration: where the
// data snapshot lives, the collation locale for name ordering, and the
// assignment record-materialization policy.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults applied before the file is read.
const (
	DefaultLocale   = "pt-BR"
	DefaultDataFile = "data.json"
	configFileName  = "config.yaml"
)

// Config is the merged configuration. Zero values mean "use the default".
type Config struct {
	// DataFile is the snapshot path. Relative paths resolve against the
	// config directory.
	DataFile string `yaml:"data_file"`

	// Locale selects the collation language for student name ordering.
	Locale string `yaml:"locale"`

	// MaterializeRecordsOnCreate makes AddAssignment eagerly create one
	// pending record per enrolled student instead of lazily on first
	// toggle. Both policies are supported; this flag picks one and the
	// store applies it consistently.
	MaterializeRecordsOnCreate bool `yaml:"materialize_records_on_create"`
}

// Dir returns the configuration directory: $CLASSCTL_CONFIG_DIR when set,
// otherwise ~/.classctl.
func Dir() (string, error) {
	if dir := os.Getenv("CLASSCTL_CONFIG_DIR"); dir != "" {
		return filepath.Clean(dir), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".classctl"), nil
}

// Load reads config.yaml from dir, merging file values over compiled
// defaults. A missing file yields the defaults; a malformed file is an
// error (unlike the data snapshot, configuration is user-authored and
// silently discarding it would hide typos).
func Load(dir string) (*Config, error) {
	cfg := &Config{
		DataFile: DefaultDataFile,
		Locale:   DefaultLocale,
	}

	data, err := os.ReadFile(filepath.Join(dir, configFileName))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.DataFile == "" {
		cfg.DataFile = DefaultDataFile
	}
	if cfg.Locale == "" {
		cfg.Locale = DefaultLocale
	}
	return cfg, nil
}

// Save writes the configuration to dir atomically (temp file + rename).
func Save(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".classctl-config-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // cleanup on error path

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	return os.Rename(tmpName, filepath.Join(dir, configFileName))
}

// DataPath resolves the snapshot path against the config directory.
func (c *Config) DataPath(dir string) string {
	if filepath.IsAbs(c.DataFile) {
		return c.DataFile
	}
	return filepath.Join(dir, c.DataFile)
}
