package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// StorageBackend identifies where the wallpaper gallery is persisted
type StorageBackend string

const (
	BackendJSON   StorageBackend = "json"
	BackendSQLite StorageBackend = "sqlite"
)

// UIConfig stores UI preferences
type UIConfig struct {
	MaxHistory int  `json:"maxHistory,omitempty"` // 0 = unbounded
	Clock      bool `json:"clock"`
}

// StorageConfig selects the gallery store
type StorageConfig struct {
	Backend StorageBackend `json:"backend,omitempty"`
	Dir     string         `json:"dir,omitempty"` // defaults to the config dir
}

// LaunchpadConfig controls the optional hardware keypad
type LaunchpadConfig struct {
	Enabled bool `json:"enabled"`
}

// Config is the main configuration structure
type Config struct {
	UI          UIConfig        `json:"ui"`
	Storage     StorageConfig   `json:"storage"`
	Launchpad   LaunchpadConfig `json:"launchpad"`
	PaletteFile string          `json:"paletteFile,omitempty"` // GIMP .gpl used instead of the built-in colors
	Debug       bool            `json:"debug,omitempty"`

	path  string
	fresh bool // no file on disk yet
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			MaxHistory: 0,
			Clock:      true,
		},
		Storage: StorageConfig{
			Backend: BackendJSON,
		},
		Launchpad: LaunchpadConfig{
			Enabled: true,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-calc"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk. On first run the defaults are written
// out so there is a file to edit; if that fails the defaults are still
// returned along with the error.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if cfg.fresh {
		if err := cfg.Save(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// LoadFile reads the config at path. A missing file yields defaults that will
// be saved to path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.path = path
			cfg.fresh = true
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.path = path
	cfg.normalize()

	return cfg, nil
}

func (c *Config) normalize() {
	if c.UI.MaxHistory < 0 {
		c.UI.MaxHistory = 0
	}
	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite:
	default:
		c.Storage.Backend = BackendJSON
	}
}

// Path is where Save writes
func (c *Config) Path() (string, error) {
	if c.path != "" {
		return c.path, nil
	}
	return ConfigPath()
}

// StorageDir is the directory holding the gallery store
func (c *Config) StorageDir() (string, error) {
	if c.Storage.Dir != "" {
		return c.Storage.Dir, nil
	}
	if c.path != "" {
		return filepath.Dir(c.path), nil
	}
	return ConfigDir()
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := c.Path()
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	c.fresh = false
	return nil
}
