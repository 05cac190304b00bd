// Package config loads and stores CLI configuration in the XDG config dir.
// Values come from config.json when present, then from TABLEPAD_* environment
// variables, then from command-line flags applied by the cmd package.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tablepad/cli/internal/serverurl"
	"tablepad/cli/internal/xdg"

	"github.com/ilyakaznacheev/cleanenv"
)

const fileName = "config.json"

// Config holds CLI settings. Nothing in here is secret.
type Config struct {
	LogLevel string `json:"log_level" env:"TABLEPAD_LOG_LEVEL" env-default:"info"`
	Server   Server `json:"server"`
}

// Server describes where the backend lives and how long to wait for it.
type Server struct {
	URL       string        `json:"url" env:"TABLEPAD_SERVER" env-default:"http://127.0.0.1:5000"`
	Timeout   time.Duration `json:"timeout" env:"TABLEPAD_TIMEOUT" env-default:"30s"`
	Endpoints Endpoints     `json:"endpoints"`
}

// Endpoints contains REST endpoint paths relative to Server.URL.
type Endpoints struct {
	// Upload takes a multipart body with a repeated "files" field.
	Upload string `json:"upload" env-default:"/upload"`
	// Run takes form field "raw" and answers {sql, output}.
	Run   string `json:"run" env-default:"/run"`
	Reset string `json:"reset" env-default:"/reset"`
	// Tables answers [{table, file}].
	Tables string `json:"tables" env-default:"/tables"`
	// View is a prefix; the resource file name is appended.
	View string `json:"view" env-default:"/csvview/"`
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads configuration; missing file returns defaults with env overrides.
func Load() (Config, error) {
	p, err := Path()
	if err != nil {
		return Config{}, err
	}
	return LoadFile(p)
}

// LoadFile reads configuration from p. A missing file is not an error.
func LoadFile(p string) (Config, error) {
	var c Config
	if _, err := os.Stat(p); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return c, err
		}
		return Defaults()
	}
	if err := cleanenv.ReadConfig(p, &c); err != nil {
		return c, fmt.Errorf("read %s: %w", p, err)
	}
	return c, c.Validate()
}

// Defaults returns the built-in settings with environment overrides applied.
func Defaults() (Config, error) {
	var c Config
	if err := cleanenv.ReadEnv(&c); err != nil {
		return c, fmt.Errorf("read environment: %w", err)
	}
	return c, c.Validate()
}

// Validate normalizes the server URL in place and rejects unusable values.
func (c *Config) Validate() error {
	u, err := serverurl.Normalize(c.Server.URL)
	if err != nil {
		return err
	}
	c.Server.URL = u
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server timeout must be positive, got %s", c.Server.Timeout)
	}
	return nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	return SaveFile(p, c)
}

// SaveFile writes configuration to p with 0600 permissions.
func SaveFile(p string, c Config) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}
