// Package config handles loading and parsing application configuration.
// It supports two sources for the file path (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// The same file configures the reference backend (storage, http_server) and
// the roster frontends (roster). Every key can be overridden by the
// corresponding environment variable.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration structure.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	Storage    `yaml:"storage"`
	HTTPServer `yaml:"http_server"`
	Roster     `yaml:"roster"`
}

// Storage selects the backend's record store.
type Storage struct {
	// Driver is "memory" or "sqlite".
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`

	// StoragePath is the filesystem path to the SQLite .db file.
	StoragePath string `yaml:"path" env:"STORAGE_PATH" env-default:"storage/students.db"`

	// SkipSeed leaves an empty store empty on startup instead of filling it
	// with the demo students.
	SkipSeed bool `yaml:"skip_seed" env:"STORAGE_SKIP_SEED"`
}

// HTTPServer holds settings specific to the backend HTTP server.
type HTTPServer struct {
	// Addr is the TCP address the server listens on.
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:"localhost:8000"`

	// CORSOrigins lists the browser origins allowed to call the API.
	CORSOrigins []string `yaml:"cors_origins" env:"HTTP_SERVER_CORS_ORIGINS" env-separator:"," env-default:"http://localhost:3001"`
}

// Roster configures the frontends.
type Roster struct {
	// Variant is "majors" (editable) or "contacts" (guarded).
	Variant string `yaml:"variant" env:"ROSTER_VARIANT" env-default:"majors"`

	// BaseURL overrides the variant's default endpoint when set.
	BaseURL string `yaml:"base_url" env:"ROSTER_BASE_URL"`

	// Timeout bounds every remote call. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout" env:"ROSTER_TIMEOUT" env-default:"0s"`

	// WebAddr is where `roster web` listens.
	WebAddr string `yaml:"web_address" env:"ROSTER_WEB_ADDR" env-default:"localhost:3001"`

	// LogFile receives the TUI's logs. Empty discards them.
	LogFile string `yaml:"log_file" env:"ROSTER_LOG_FILE"`
}

// ErrNoConfig is returned by Load when the file does not exist.
var ErrNoConfig = errors.New("config file does not exist")

// Load reads the YAML file at path and applies environment overrides.
// An empty path loads defaults and the environment only.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config.Load: read env: %w", err)
		}
		return &cfg, nil
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoConfig, path)
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: read %s: %w", path, err)
	}

	return &cfg, nil
}

// MustLoad reads, validates, and returns the backend config.
//
// Functions prefixed with "Must" are allowed to exit on failure: if this
// returns, the config is valid.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err.Error())
	}

	return cfg
}
