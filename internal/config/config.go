package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/lattice3d/internal/model"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Simulation holds configuration for lattice tooling.
type Simulation struct {
	LogLevel string `yaml:"log_level"` // debug|info|warn|error

	// Lattice extent; coordinates wrap modulo this value.
	Extent model.Coord3D `yaml:"extent"`

	// Concurrent file loaders
	Workers int `yaml:"workers"`

	// Checkpoint name to save under; empty disables persistence
	Checkpoint string `yaml:"checkpoint"`

	// Database
	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultSimulation returns Simulation config with sensible defaults.
func DefaultSimulation() Simulation {
	return Simulation{
		LogLevel: "info",
		Extent:   model.NewCoord3D(64, 64, 16),
		Workers:  4,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "lattice",
			Password: "lattice",
			DBName:   "lattice",
			SSLMode:  "disable",
		},
	}
}

// Validate checks values that later code divides by or sizes pools with.
func (s Simulation) Validate() error {
	if s.Extent.X <= 0 || s.Extent.Y <= 0 || s.Extent.Z <= 0 {
		return fmt.Errorf("%w: extent %v must be positive on every axis", ErrInvalidConfig, s.Extent)
	}
	if s.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, s.Workers)
	}
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, s.LogLevel)
	}
	return nil
}

// LoadSimulation loads config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadSimulation(path string) (Simulation, error) {
	cfg := DefaultSimulation()

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
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}
