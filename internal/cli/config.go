package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the CLI configuration file schema.
//
//	[api]
//	id  = "your-api-auth-id"
//	key = "your-api-key"
//	url = "https://api.unleashedsoftware.com"
type Config struct {
	API APIConfig `toml:"api"`
}

// APIConfig holds the Unleashed credentials and address.
type APIConfig struct {
	ID  string `toml:"id"`
	Key string `toml:"key"`
	URL string `toml:"url"`
}

// DefaultConfigPath returns the conventional config location,
// $XDG_CONFIG_HOME/unleashed/config.toml.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "unleashed", "config.toml")
}

// LoadConfig reads the TOML config file at path, falling back to the default
// location when path is empty. A missing file is not an error; environment
// variables UNLEASHED_API_ID, UNLEASHED_API_KEY, and UNLEASHED_API_URL
// override file values.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if explicit || !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("load config %s: %w", path, err)
			}
		}
	}

	if v := os.Getenv("UNLEASHED_API_ID"); v != "" {
		cfg.API.ID = v
	}
	if v := os.Getenv("UNLEASHED_API_KEY"); v != "" {
		cfg.API.Key = v
	}
	if v := os.Getenv("UNLEASHED_API_URL"); v != "" {
		cfg.API.URL = v
	}

	return cfg, nil
}
