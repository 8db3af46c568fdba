package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the optional CLI configuration file. Every field has a working
// default so a missing file is not an error.
type Config struct {
	DataDir string `yaml:"dataDir"`
}

// configPath returns the config file location: $MONEYAPP_CONFIG when set,
// otherwise ~/.config/moneyapp/config.yaml.
func configPath() string {
	if p := os.Getenv("MONEYAPP_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "moneyapp", "config.yaml")
}

// LoadConfig reads the config file, filling defaults for absent fields.
func LoadConfig() (Config, error) {
	cfg := Config{}
	path := configPath()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// no file, defaults apply
		case err != nil:
			return Config{}, fmt.Errorf("cannot read config %q: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("cannot parse config %q: %w", path, err)
			}
		}
	}
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("cannot locate home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".moneyapp")
	}
	return cfg, nil
}
