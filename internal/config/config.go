package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultBaseURL = "https://jsonplaceholder.typicode.com"

// Config holds the application configuration loaded from defaults, .env and environment variables.
type Config struct {
	AppName               string        `mapstructure:"app_name"`
	LogLevel              string        `mapstructure:"log_level"`
	BaseURL               string        `mapstructure:"base_url"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`
	DirectoriesFile       string        `mapstructure:"directories_file"`
	Directory             string        `mapstructure:"directory"`
	OutputFormat          string        `mapstructure:"output_format"`
}

// Load reads configuration from configs/.env and environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("app_name", "userdir")
	v.SetDefault("log_level", "info")
	v.SetDefault("base_url", defaultBaseURL)
	v.SetDefault("request_timeout_seconds", 15)
	v.SetDefault("directories_file", "")
	v.SetDefault("directory", "")
	v.SetDefault("output_format", "json")

	v.SetEnvPrefix("userdir")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate normalizes fields and rejects invalid values. It is safe to call again
// after command-line overrides.
func (c *Config) Validate() error {
	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	c.RequestTimeout = time.Duration(c.RequestTimeoutSeconds) * time.Second

	c.BaseURL = strings.TrimSpace(c.BaseURL)
	if c.BaseURL == "" {
		return fmt.Errorf("invalid base_url (must not be empty)")
	}
	c.Directory = strings.TrimSpace(c.Directory)
	c.DirectoriesFile = strings.TrimSpace(c.DirectoriesFile)

	c.OutputFormat = strings.ToLower(strings.TrimSpace(c.OutputFormat))
	switch c.OutputFormat {
	case "json", "yaml":
	default:
		return fmt.Errorf("invalid output_format %q (expected json or yaml)", c.OutputFormat)
	}
	return nil
}
