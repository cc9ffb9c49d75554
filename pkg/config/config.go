package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable read into Config
const EnvPrefix = "REDISLITE_"

// ConfigFileEnv names the optional YAML file loaded before the environment
const ConfigFileEnv = EnvPrefix + "CONFIG_FILE"

// ErrInvalidConfig is returned when a loaded configuration fails validation
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Host       string `yaml:"host" env:"HOST"`
	Port       int    `yaml:"port" env:"PORT"`
	Dir        string `yaml:"dir" env:"DIR"`
	DBFilename string `yaml:"dbfilename" env:"DBFILENAME"`
	ReplicaOf  string `yaml:"replicaof" env:"REPLICAOF"`
	LogLevel   string `yaml:"log_level" env:"LOG_LEVEL"`
	AdminAddr  string `yaml:"admin_addr" env:"ADMIN_ADDR"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Host:       "0.0.0.0",
		Port:       6379,
		Dir:        "/tmp/redis-files",
		DBFilename: "dump.rdb",
		LogLevel:   "info",
	}
}

// Load builds the configuration from defaults, the optional YAML file named
// by REDISLITE_CONFIG_FILE, .env files and REDISLITE_* environment variables,
// each layer overriding the previous one.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	return load(nil)
}

// load resolves the layers against environment, or the process env when nil
func load(environment map[string]string) (*Config, error) {
	cfg := Default()

	path, ok := environment[ConfigFileEnv]
	if environment == nil {
		path, ok = os.LookupEnv(ConfigFileEnv)
	}
	if ok && path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	opts := env.Options{Prefix: EnvPrefix, Environment: environment}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks field ranges
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	if c.DBFilename == "" {
		return fmt.Errorf("%w: dbfilename is empty", ErrInvalidConfig)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// ListenAddr returns host:port for the RESP listener
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
