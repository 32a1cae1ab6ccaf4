// Package config handles loading and parsing application configuration.
// The config file path comes from (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// Values in the file can be overridden by the environment variables named
// in the env:"..." tags. A .env file in the working directory, if present,
// is loaded first; it never overrides variables that are already set.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Environments accepted in Config.Env.
const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

// Storage drivers accepted in Storage.Driver.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// Config is the root configuration structure.
type Config struct {
	// Env controls log format and verbosity: "dev", "staging" or "prod".
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	Storage Storage `yaml:"storage"`

	// HTTPServer is embedded so cfg.Addr works as well as cfg.HTTPServer.Addr.
	HTTPServer `yaml:"http_server"`

	Metrics Metrics `yaml:"metrics"`
}

// Storage selects and locates the record store.
type Storage struct {
	// Driver is "json" (a flat JSON file) or "sqlite".
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"json"`

	// Path is the JSON file or SQLite database file.
	Path string `yaml:"path" env:"STORAGE_PATH" env-required:"true"`

	// CreateIfMissing seeds an empty JSON file on startup when none exists.
	CreateIfMissing bool `yaml:"create_if_missing" env:"STORAGE_CREATE_IF_MISSING"`
}

// HTTPServer holds settings specific to the HTTP server.
type HTTPServer struct {
	Addr            string        `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:"localhost:8082"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_SERVER_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_SERVER_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_SERVER_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SERVER_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// Metrics controls the Prometheus endpoint. Off unless enabled.
type Metrics struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED"`
	Path    string `yaml:"path" env:"METRICS_PATH" env-default:"/metrics"`
}

// Load reads the YAML file at path, applies environment overrides and
// defaults, and validates the result.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is not set: use --config flag or CONFIG_PATH env var")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvDev, EnvStaging, EnvProd:
	default:
		return fmt.Errorf("config: unknown env %q", c.Env)
	}
	switch c.Storage.Driver {
	case DriverJSON, DriverSQLite:
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	if c.Metrics.Enabled && (c.Metrics.Path == "" || c.Metrics.Path[0] != '/') {
		return fmt.Errorf("config: metrics path %q must start with /", c.Metrics.Path)
	}
	return nil
}

// MustLoad resolves the config path, loads the config and exits the
// process if anything is wrong. If it returns, the config is valid.
func MustLoad() *Config {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}
