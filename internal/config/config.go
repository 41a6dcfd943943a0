// Package config provides configuration management for the portfolio server.
//
// Values come from three layers, later layers winning:
//  1. built-in defaults
//  2. an optional YAML file ($PORTFOLIO_CONFIG or ./portfolio.yaml)
//  3. environment variables, optionally loaded from a .env file
//
// Config file locations (priority order):
//  1. $PORTFOLIO_CONFIG
//  2. ./portfolio.yaml
//  3. ~/.config/portfolio/config.yaml
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultDatabasePath is used when DATABASE_URL is unset
	DefaultDatabasePath = "sqlite.db"
	DefaultPort         = "5000"
)

// Environment variable names
const (
	EnvDatabaseURL   = "DATABASE_URL"
	EnvUseMemStorage = "USE_MEM_STORAGE"
	EnvServerless    = "VERCEL"
	EnvSeedFile      = "SEED_FILE"
	EnvPort          = "PORT"
	EnvGinMode       = "GIN_MODE"
	EnvCORSOrigins   = "CORS_ORIGINS"
	EnvLogLevel      = "LOG_LEVEL"
	EnvLogFormat     = "LOG_FORMAT"
	EnvLogFile       = "LOG_FILE"
	EnvLogMaxSizeMB  = "LOG_MAX_SIZE_MB"
	EnvLogMaxFiles   = "LOG_MAX_FILES"
)

// Config is the complete runtime configuration
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig controls backend selection
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	ForceMemory bool   `yaml:"force_memory"`
	Serverless  bool   `yaml:"serverless"`
	SeedFile    string `yaml:"seed_file,omitempty"`
}

// ServerConfig controls the HTTP listener
type ServerConfig struct {
	Port           string   `yaml:"port"`
	Mode           string   `yaml:"mode"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// LoggingConfig controls log output
type LoggingConfig struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	File      string `yaml:"file,omitempty"`
	MaxSizeMB int    `yaml:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files"`
}

// Load builds the configuration from defaults, the config file if one is
// found, and the process environment. It returns the config file path used,
// or "" when none was found.
func Load() (*Config, string, error) {
	return LoadWithPath("")
}

// LoadWithPath is Load with an explicit config file. An empty path falls
// back to FindConfigPath; a non-empty path must exist. Environment values
// still override the file.
func LoadWithPath(path string) (*Config, string, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	if path == "" {
		path = FindConfigPath()
	}

	cfg := DefaultConfig()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, path, err
		}
	}

	cfg.applyEnv(os.LookupEnv)
	cfg.applyDefaults()
	return cfg, path, nil
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Path: DefaultDatabasePath},
		Server:   ServerConfig{Port: DefaultPort, Mode: "debug"},
		Logging: LoggingConfig{
			Level:     "info",
			Format:    "json",
			MaxSizeMB: 10,
			MaxFiles:  5,
		},
	}
}

// UseMemoryStore reports whether backend selection must skip the durable
// store entirely
func (c *Config) UseMemoryStore() bool {
	return c.Database.ForceMemory || c.Database.Serverless
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// applyEnv overlays environment values. Malformed booleans and integers
// leave the current value in place.
func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(key); ok {
			if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				*dst = b
			}
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				*dst = n
			}
		}
	}

	str(EnvDatabaseURL, &c.Database.Path)
	boolean(EnvUseMemStorage, &c.Database.ForceMemory)
	boolean(EnvServerless, &c.Database.Serverless)
	str(EnvSeedFile, &c.Database.SeedFile)
	str(EnvPort, &c.Server.Port)
	str(EnvGinMode, &c.Server.Mode)
	if v, ok := lookup(EnvCORSOrigins); ok && strings.TrimSpace(v) != "" {
		c.Server.AllowedOrigins = splitList(v)
	}
	str(EnvLogLevel, &c.Logging.Level)
	str(EnvLogFormat, &c.Logging.Format)
	str(EnvLogFile, &c.Logging.File)
	integer(EnvLogMaxSizeMB, &c.Logging.MaxSizeMB)
	integer(EnvLogMaxFiles, &c.Logging.MaxFiles)
}

// splitList parses a comma-separated list, dropping blanks
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Database.Path == "" {
		c.Database.Path = DefaultDatabasePath
	}
	if c.Server.Port == "" {
		c.Server.Port = DefaultPort
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "debug"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = 10
	}
	if c.Logging.MaxFiles <= 0 {
		c.Logging.MaxFiles = 5
	}
}

// IsPostgresURL reports whether location names a PostgreSQL server rather
// than a SQLite file
func IsPostgresURL(location string) bool {
	lower := strings.ToLower(strings.TrimSpace(location))
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}

// RedactLocation hides credentials embedded in a server URL. File paths are
// returned unchanged.
func RedactLocation(location string) string {
	if !IsPostgresURL(location) {
		return location
	}
	return "postgres://[REDACTED]"
}

// Summary returns a one-line human-readable summary safe to log
func (c *Config) Summary() string {
	backend := "sqlite:" + c.Database.Path
	switch {
	case c.UseMemoryStore():
		backend = "memory"
	case IsPostgresURL(c.Database.Path):
		backend = "postgres:" + RedactLocation(c.Database.Path)
	}
	return fmt.Sprintf("port=%s mode=%s backend=%s log=%s/%s",
		c.Server.Port, c.Server.Mode, backend, c.Logging.Level, c.Logging.Format)
}
