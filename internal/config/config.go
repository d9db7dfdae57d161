// Package config provides environment loading and Viper-based configuration.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"

	"gridops/nrldc-psp/internal/logging"
)

var once sync.Once

// LoadEnv loads environment variables from a .env file if one exists. It is
// safe to call more than once; only the first call does anything.
func LoadEnv() {
	once.Do(func() {
		log := logging.GetLogger()

		envFile := ".env"
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			envFile = filepath.Join("..", ".env")
			if _, err := os.Stat(envFile); os.IsNotExist(err) {
				log.Debug("No .env file found, using environment variables")
				return
			}
		}

		if err := godotenv.Load(envFile); err != nil {
			log.WithError(err).Warn("Error loading .env file")
			return
		}
		log.Info("Loaded environment variables",
			logging.Field{Key: logging.FieldFile, Value: envFile})
	})
}

// ConfigureLogging builds the application logger from the configuration and
// installs it as the package default used by logging.GetLogger.
func ConfigureLogging(cfg *Config) logging.Logger {
	logger := logging.NewLogrusAdapter(cfg.LogLevel, cfg.LogFormat)
	logging.SetDefault(logger)
	return logger
}
