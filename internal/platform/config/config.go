// Package config handles YAML configuration with environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/velore/contactbook/internal/platform/envutil"
)

// Config holds all server configuration.
type Config struct {
	Server   Server   `yaml:"server"`
	Database Database `yaml:"database"`
	Realtime Realtime `yaml:"realtime"`
	Log      Log      `yaml:"log"`
}

// Server holds HTTP listener settings.
type Server struct {
	Port         string   `yaml:"port"`
	AllowOrigins []string `yaml:"allow_origins"`
}

// Database holds persistence settings. Driver is "postgres" or "sqlite".
type Database struct {
	Driver     string `yaml:"driver"`
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	Name       string `yaml:"name"`
	SQLitePath string `yaml:"sqlite_path"`
}

// Realtime holds change-event bus settings. Bus is "local" or "redis".
type Realtime struct {
	Bus          string `yaml:"bus"`
	RedisAddr    string `yaml:"redis_addr"`
	RedisChannel string `yaml:"redis_channel"`
}

// Log holds logger settings.
type Log struct {
	Mode string `yaml:"mode"`
}

// Default returns a Config with sensible defaults for local development.
func Default() Config {
	return Config{
		Server: Server{
			Port:         "8080",
			AllowOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Database: Database{
			Driver:     "postgres",
			Host:       "localhost",
			Port:       "5432",
			User:       "postgres",
			Name:       "contactbook",
			SQLitePath: "contactbook.db",
		},
		Realtime: Realtime{
			Bus:          "local",
			RedisChannel: "contacts",
		},
		Log: Log{Mode: "development"},
	}
}

// Load reads the YAML config at path, falling back to defaults when the file
// does not exist, then applies environment overrides on top.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// defaults + env only
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		dec := yaml.NewDecoder(strings.NewReader(string(data)))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = envutil.Str("PORT", cfg.Server.Port)
	cfg.Database.Driver = envutil.Str("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.Host = envutil.Str("POSTGRES_HOST", cfg.Database.Host)
	cfg.Database.Port = envutil.Str("POSTGRES_PORT", cfg.Database.Port)
	cfg.Database.User = envutil.Str("POSTGRES_USER", cfg.Database.User)
	cfg.Database.Password = envutil.Str("POSTGRES_PASSWORD", cfg.Database.Password)
	cfg.Database.Name = envutil.Str("POSTGRES_NAME", cfg.Database.Name)
	cfg.Database.SQLitePath = envutil.Str("SQLITE_PATH", cfg.Database.SQLitePath)
	cfg.Realtime.Bus = envutil.Str("REALTIME_BUS", cfg.Realtime.Bus)
	cfg.Realtime.RedisAddr = envutil.Str("REDIS_ADDR", cfg.Realtime.RedisAddr)
	cfg.Realtime.RedisChannel = envutil.Str("REDIS_CHANNEL", cfg.Realtime.RedisChannel)
	cfg.Log.Mode = envutil.Str("LOG_MODE", cfg.Log.Mode)
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("config: unknown database driver %q", c.Database.Driver)
	}
	switch c.Realtime.Bus {
	case "local", "redis":
	default:
		return fmt.Errorf("config: unknown realtime bus %q", c.Realtime.Bus)
	}
	if c.Realtime.Bus == "redis" && strings.TrimSpace(c.Realtime.RedisAddr) == "" {
		return fmt.Errorf("config: realtime bus is redis but redis_addr is empty")
	}
	return nil
}
