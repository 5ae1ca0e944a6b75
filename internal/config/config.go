// Package config handles application configuration loading from YAML files.
// Supports ${ENV_VAR} expansion in string values, an optional .env file and
// PAKO_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Client      ClientConfig   `yaml:"client"`
	CommandsDir string         `yaml:"commands_dir" env:"PAKO_COMMANDS_DIR"`
	Database    DatabaseConfig `yaml:"database"`
	Guild       GuildConfig    `yaml:"guild"`
	Defaults    DefaultsConfig `yaml:"defaults"`
	Log         LogConfig      `yaml:"log"`
}

// ClientConfig holds the hosting client vocabulary.
type ClientConfig struct {
	OwnerID string   `yaml:"owner_id" env:"PAKO_OWNER_ID"`
	Prefix  string   `yaml:"prefix" env:"PAKO_PREFIX"`
	Types   []string `yaml:"types" env:"PAKO_TYPES" envSeparator:","`
}

// DatabaseConfig holds audit database settings.
type DatabaseConfig struct {
	Path string `yaml:"path" env:"PAKO_DATABASE_PATH"`
}

// GuildConfig points at the guild snapshot used for offline runs.
type GuildConfig struct {
	Fixture string `yaml:"fixture" env:"PAKO_GUILD_FIXTURE"`
}

// DefaultsConfig holds default values for command execution.
type DefaultsConfig struct {
	Timeout   time.Duration `yaml:"timeout" env:"PAKO_TIMEOUT"`
	MaxOutput int           `yaml:"max_output" env:"PAKO_MAX_OUTPUT"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level" env:"PAKO_LOG_LEVEL"`
}

// Load reads configuration from the specified YAML file path.
// A .env file next to the config is loaded first when present; variables
// already set in the environment win.
func Load(path string) (*Config, error) {
	dotenv := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(dotenv); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", dotenv, err)
		}
		slog.Debug("no .env file found", "path", dotenv)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML config data, applies environment overrides and defaults.
func Parse(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.setDefaults(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults applies default values for unset fields.
func (c *Config) setDefaults() error {
	if c.Client.Prefix == "" {
		c.Client.Prefix = "!"
	}

	if c.CommandsDir == "" {
		c.CommandsDir = "./commands"
	}

	if c.Database.Path == "" {
		c.Database.Path = "./audit.db"
	}

	if c.Defaults.Timeout == 0 {
		c.Defaults.Timeout = 30 * time.Second
	}
	if c.Defaults.Timeout < 0 {
		return fmt.Errorf("defaults.timeout must be positive")
	}

	if c.Defaults.MaxOutput == 0 {
		c.Defaults.MaxOutput = 2000
	}
	if c.Defaults.MaxOutput < 0 {
		return fmt.Errorf("defaults.max_output must be positive")
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}

	for i, t := range c.Client.Types {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" {
			return fmt.Errorf("client.types[%d] is empty", i)
		}
		c.Client.Types[i] = t
	}

	return nil
}

// SlogLevel converts the configured level name.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// ExpandPath resolves a path relative to the config file directory.
func (c *Config) ExpandPath(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(base), path)
}

// envVarPattern matches ${VAR} or $VAR patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// expandEnvVars replaces ${VAR} and $VAR with environment variable values.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var name string
		if match[1] == '{' {
			name = match[2 : len(match)-1]
		} else {
			name = match[1:]
		}
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}
