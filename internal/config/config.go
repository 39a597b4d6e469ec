package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the optional on-disk configuration. Everything has a working
// default; the file only exists when the user wants to change something.
type Config struct {
	DBPath string       `yaml:"db_path"`
	Oracle OracleConfig `yaml:"oracle"`
}

// OracleConfig configures the Gemini-backed advisor.
type OracleConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

const DefaultModel = "gemini-2.0-flash"

// DefaultPath returns ~/.discipline.yaml, or a relative fallback when the
// home directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".discipline.yaml"
	}
	return filepath.Join(home, ".discipline.yaml")
}

func Default() *Config {
	return &Config{
		Oracle: OracleConfig{Model: DefaultModel},
	}
}

// Load reads the config file at path. A missing file is not an error: the
// defaults apply. GEMINI_API_KEY overrides the file in either case.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Oracle.Model == "" {
		cfg.Oracle.Model = DefaultModel
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the config back to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Oracle.APIKey = key
	}
	if path := os.Getenv("DISCIPLINE_DB"); path != "" {
		c.DBPath = path
	}
}
