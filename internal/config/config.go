// Package config loads the dashboard configuration from file, .env and environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. JOBDASH_API_BASE_URL
const EnvPrefix = "JOBDASH"

// Defaults
const (
	DefaultBaseURL      = "http://localhost:8000"
	DefaultTimeout      = 30 * time.Second
	DefaultPollInterval = 5 * time.Second
	DefaultListen       = "127.0.0.1:8080"
	DefaultKeyring      = "jobdash"
)

// Config is the full dashboard configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Poll    PollConfig    `mapstructure:"poll"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Keyring KeyringConfig `mapstructure:"keyring"`
}

// APIConfig points at the agent API
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	// RateLimit is requests per second against the agent API, 0 means unlimited
	RateLimit float64 `mapstructure:"rate_limit"`
	Burst     int     `mapstructure:"burst"`
}

// PollConfig controls the refresh cadence while the agent runs
type PollConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// ServerConfig is the dashboard HTTP surface
type ServerConfig struct {
	Listen string `mapstructure:"listen"`
}

// LogConfig mirrors logger.Options
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// KeyringConfig names the OS keychain service holding the LinkedIn password
type KeyringConfig struct {
	Service string `mapstructure:"service"`
}

// Load reads configPath (or ./jobdash.yaml when empty), then .env, then JOBDASH_* variables.
func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("jobdash")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", DefaultTimeout)
	v.SetDefault("api.rate_limit", 0.0)
	v.SetDefault("api.burst", 1)
	v.SetDefault("poll.interval", DefaultPollInterval)
	v.SetDefault("server.listen", DefaultListen)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("keyring.service", DefaultKeyring)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unprefixed names kept for parity with the logger's own environment
	_ = v.BindEnv("log.level", EnvPrefix+"_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("log.format", EnvPrefix+"_LOG_FORMAT", "LOG_FORMAT")
	_ = v.BindEnv("log.file", EnvPrefix+"_LOG_FILE", "LOG_FILE")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values the dashboard cannot run without
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.API.BaseURL) == "" {
		errs = append(errs, "api.base_url is required")
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, "api.timeout must be > 0")
	}
	if c.API.RateLimit < 0 {
		errs = append(errs, "api.rate_limit must be >= 0")
	}
	if c.Poll.Interval <= 0 {
		errs = append(errs, "poll.interval must be > 0")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
