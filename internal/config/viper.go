package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
	DatabasePath string        `mapstructure:"database_path" yaml:"database_path"`
	OutputDir    string        `mapstructure:"output_dir" yaml:"output_dir"`
	BaseURL      string        `mapstructure:"base_url" yaml:"base_url"`
	HTTPTimeout  time.Duration `mapstructure:"http_timeout" yaml:"http_timeout"`
	CronSpec     string        `mapstructure:"cron_spec" yaml:"cron_spec"`
	KeepFiles    bool          `mapstructure:"keep_files" yaml:"keep_files"`
	LogLevel     string        `mapstructure:"log_level" yaml:"log_level"`
	LogFormat    string        `mapstructure:"log_format" yaml:"log_format"`
}

// Load builds the configuration from defaults, an optional config.yaml, and
// NRLDC_-prefixed environment variables, in increasing precedence.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.nrldc-psp")
	v.AddConfigPath(".")

	v.SetEnvPrefix("NRLDC")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
		}
		// No config file is fine; defaults and env vars apply.
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database_path", "nrldc_psp.db")
	v.SetDefault("output_dir", "downloads")
	v.SetDefault("base_url", "https://nrldc.in")
	v.SetDefault("http_timeout", 60*time.Second)
	v.SetDefault("cron_spec", "30 7 * * *")
	v.SetDefault("keep_files", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %s", config.LogLevel)
	}

	if config.LogFormat != "text" && config.LogFormat != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.LogFormat)
	}

	if config.DatabasePath == "" {
		return fmt.Errorf("database_path must not be empty")
	}

	if config.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got: %s", config.HTTPTimeout)
	}

	return nil
}
