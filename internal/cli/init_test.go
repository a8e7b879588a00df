package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"spese-charts/internal/log"
)

func TestLoadAndValidateConfigArgsOverrideEnv(t *testing.T) {
	t.Setenv("CHARTS_OUTPUT_DIR", t.TempDir())
	t.Setenv("CHARTS_CONTEXT_FILES", "env.yaml")

	cfg, err := LoadAndValidateConfig(nil)
	if err != nil {
		t.Fatalf("LoadAndValidateConfig: %v", err)
	}
	if len(cfg.ContextFiles) != 1 || cfg.ContextFiles[0] != "env.yaml" {
		t.Fatalf("ContextFiles = %v", cfg.ContextFiles)
	}

	cfg, err = LoadAndValidateConfig([]string{"a.yaml", "b.json"})
	if err != nil {
		t.Fatalf("LoadAndValidateConfig: %v", err)
	}
	if len(cfg.ContextFiles) != 2 || cfg.ContextFiles[0] != "a.yaml" {
		t.Fatalf("ContextFiles = %v", cfg.ContextFiles)
	}
}

func TestLoadAndValidateConfigRejectsInvalid(t *testing.T) {
	t.Setenv("CHARTS_OUTPUT_DIR", t.TempDir())
	t.Setenv("CHARTS_ENGINE", "canvas")
	if _, err := LoadAndValidateConfig(nil); err == nil {
		t.Fatalf("expected validation error")
	}

	t.Setenv("CHARTS_ENGINE", "svg")
	if _, err := LoadAndValidateConfig([]string{"notes.txt"}); err == nil {
		t.Fatalf("expected validation error for context file extension")
	}
}

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	t.Setenv("CHARTS_OUTPUT_DIR", t.TempDir())
	t.Setenv("LOG_LEVEL", "debug")
	cfg, err := LoadAndValidateConfig(nil)
	if err != nil {
		t.Fatalf("LoadAndValidateConfig: %v", err)
	}

	logger := SetupLogger(cfg)
	if logger.Component() != log.ComponentApp {
		t.Fatalf("component = %q", logger.Component())
	}
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		t.Fatalf("default logger should be at debug level")
	}
}

func TestGracefulShutdownCancel(t *testing.T) {
	ctx, cancel := GracefulShutdown(log.Discard(), time.Second)
	cancel()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatalf("context not cancelled")
	}
}

func TestLogConfigError(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(log.Config{Output: &buf, Level: slog.LevelInfo, Format: log.FormatJSON})

	logConfigError(logger, errors.New("invalid engine 'canvas'"))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log record: %v", err)
	}
	if rec[log.FieldComponent] != log.ComponentConfig {
		t.Errorf("component = %v", rec[log.FieldComponent])
	}
	if rec[log.FieldOperation] != log.OpValidate {
		t.Errorf("operation = %v", rec[log.FieldOperation])
	}
	if rec[log.FieldError] != "invalid engine 'canvas'" {
		t.Errorf("error = %v", rec[log.FieldError])
	}
}
