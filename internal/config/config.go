package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the race simulator.
type Config struct {
	LogLevel string `yaml:"log_level"` // "debug", "info", "warn", "error"

	Race     Race     `yaml:"race"`
	Campaign Campaign `yaml:"campaign"`
	Store    Store    `yaml:"store"`
}

// Store configures where player progression is saved.
type Store struct {
	Dialect     string `yaml:"dialect"`      // "sqlite" or "postgres"
	SQLitePath  string `yaml:"sqlite_path"`  // used by sqlite dialect
	PostgresDSN string `yaml:"postgres_dsn"` // used by postgres dialect
}

// DSN returns the data source name for the configured dialect.
func (s Store) DSN() string {
	if s.Dialect == DialectPostgres {
		return s.PostgresDSN
	}
	return s.SQLitePath
}

const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// Default returns Config with the original game's tuning.
func Default() Config {
	return Config{
		LogLevel: "info",
		Race:     DefaultRace(),
		Campaign: DefaultCampaign(),
		Store: Store{
			Dialect:    DialectSQLite,
			SQLitePath: "tmp/dinomarathon.sqlite",
		},
	}
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	var errs []error
	if err := c.Race.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Campaign.Validate(); err != nil {
		errs = append(errs, err)
	}
	switch c.Store.Dialect {
	case DialectSQLite, DialectPostgres:
		if c.Store.DSN() == "" {
			errs = append(errs, fmt.Errorf("store: %s dialect requires a dsn", c.Store.Dialect))
		}
	default:
		errs = append(errs, fmt.Errorf("store: unsupported dialect %q", c.Store.Dialect))
	}
	return errors.Join(errs...)
}

// Load loads config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}
