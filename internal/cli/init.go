// Package cli holds the initialization shared by the server and the
// statement binaries: env loading, logging, config and backend selection.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"financetrack/internal/config"
	"financetrack/internal/log"
	"financetrack/internal/storage"
	"financetrack/internal/store"
)

// SetupLogger initializes structured logging and installs it as the default.
func SetupLogger() *log.Logger {
	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// OpenPersistence picks the persistence backend the config names. The
// returned closer releases backend resources and is safe to call on every
// backend.
func OpenPersistence(logger *log.Logger, cfg *config.Config) (store.Persistence, func() error, error) {
	switch cfg.Backend {
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Initialized sqlite backend", "path", cfg.SQLiteDBPath)
		return repo, repo.Close, nil
	case "memory":
		logger.Info("Initialized memory backend")
		return store.NewMemory(), func() error { return nil }, nil
	default:
		p := store.NewJSONFileInDir(cfg.DataDir)
		logger.Info("Initialized json backend", "dir", cfg.DataDir)
		return p, func() error { return nil }, nil
	}
}
