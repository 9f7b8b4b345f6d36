// Package config holds the typed runtime configuration assembled by viper
// from flags, environment and the optional config file.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"

	"github.com/cheerioskun/charbrowser/internal/catalog"
	"github.com/cheerioskun/charbrowser/internal/utils"
)

// EnvPrefix is prepended to every environment variable viper reads
const EnvPrefix = "CHARBROWSER"

// Config is the runtime configuration
type Config struct {
	API     APIConfig `mapstructure:"api"`
	Log     LogConfig `mapstructure:"log"`
	Verbose bool      `mapstructure:"verbose"`
}

// APIConfig configures the catalog client
type APIConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Retries  int           `mapstructure:"retries"`
}

// LogConfig configures the log file
type LogConfig struct {
	File string `mapstructure:"file"`
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.endpoint", catalog.DefaultEndpoint)
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("api.retries", 0)
	v.SetDefault("log.file", utils.DefaultLogPath)
	v.SetDefault("verbose", false)
}

// Load unmarshals and validates the configuration held by v
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be corrected silently
func (c Config) Validate() error {
	u, err := url.Parse(c.API.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid api.endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid api.endpoint %q: scheme must be http or https", c.API.Endpoint)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	if c.API.Retries < 0 {
		return fmt.Errorf("api.retries must not be negative, got %d", c.API.Retries)
	}
	return nil
}

// ClientOptions converts the API section into catalog client options
func (c Config) ClientOptions(logger *utils.Logger) catalog.Options {
	return catalog.Options{
		Endpoint: c.API.Endpoint,
		Timeout:  c.API.Timeout,
		Retries:  c.API.Retries,
		Logger:   logger,
	}
}
