package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. DEVCONSOLE_LOG_LEVEL.
const EnvPrefix = "DEVCONSOLE"

// EnvConfigFile points at an explicit config file.
const EnvConfigFile = "DEVCONSOLE_CONFIG"

// Config holds application configuration.
type Config struct {
	Log          LogConfig     `mapstructure:"log"`
	Catalog      CatalogConfig `mapstructure:"catalog"`
	Redis        RedisConfig   `mapstructure:"redis"`
	HTTP         HTTPConfig    `mapstructure:"http"`
	Metrics      MetricsConfig `mapstructure:"metrics"`
	Prompt       string        `mapstructure:"prompt"`
	MaxInputSize int           `mapstructure:"max_input_size"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// CatalogConfig points at an id catalog file (yaml, toml or json).
type CatalogConfig struct {
	Path  string `mapstructure:"path"`
	Watch bool   `mapstructure:"watch"`
}

// RedisConfig holds the redis id source settings. An empty URL disables it.
type RedisConfig struct {
	URL    string `mapstructure:"url"`
	Prefix string `mapstructure:"prefix"`
}

// HTTPConfig holds the serve command settings.
type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

// MetricsConfig toggles the prometheus collectors.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// New returns a viper instance with defaults, config search paths and
// environment overrides set. Flags may be bound to it before Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.watch", false)
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.prefix", "devconsole:ids:")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("prompt", "> ")
	v.SetDefault("max_input_size", 4096)

	if path := os.Getenv(EnvConfigFile); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("devconsole")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "devconsole"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Load reads the config file, if any, and decodes the settings.
// A missing file is not an error; a malformed one is.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
