// Package cli provides common CLI initialization utilities.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"spese-charts/internal/config"
	"spese-charts/internal/log"
)

// SetupLogger initializes structured logging from the configuration.
// Returns the configured logger and sets it as the default logger.
func SetupLogger(cfg *config.Config) *log.Logger {
	lc := log.DefaultConfig()
	lc.Output = os.Stderr
	if cfg != nil {
		if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
			lc.Level = level
		}
		lc.Format = cfg.LogFormat
	}
	logger := log.New(lc)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it. Non-empty args
// replace the context files named by the environment.
func LoadAndValidateConfig(args []string) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if len(args) > 0 {
		cfg.ContextFiles = args
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoadConfig is LoadAndValidateConfig that exits the process on failure.
func MustLoadConfig(args []string) *config.Config {
	cfg, err := LoadAndValidateConfig(args)
	if err != nil {
		logConfigError(SetupLogger(nil), err)
		os.Exit(2)
	}
	return cfg
}

func logConfigError(logger *log.Logger, err error) {
	logger.WithComponent(log.ComponentConfig).Error("Configuration validation failed",
		log.FieldOperation, log.OpValidate,
		log.FieldError, err)
}

// GracefulShutdown sets up signal handling for graceful shutdown.
// Returns a context that is cancelled on the first shutdown signal. A second
// signal, or the timeout elapsing after the first, exits the process.
func GracefulShutdown(logger *log.Logger, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		sigChan := make(chan os.Signal, 2)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
			return
		}

		select {
		case sig := <-sigChan:
			logger.Warn("Forced shutdown", "signal", sig.String())
		case <-time.After(timeout):
			logger.Warn("Shutdown timeout reached")
		}
		os.Exit(130)
	}()

	return ctx, cancel
}
