package config

import (
	"os"
	"testing"
)

// writeTempConfig creates a minimal configuration file required for LoadConfig
// and returns its path.
func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp("", "cfg-*.yml")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close temp file: %v", err)
	}
	return f.Name()
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	path := writeTempConfig(t, `xdfflow:
  name: "TestApp"
  version: "1.0"
converter:
  stream_indices: [1, 3]
  sync_clocks: false
logging:
  level: debug
`)
	defer os.Remove(path)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Xdfflow.Name != "TestApp" {
		t.Errorf("unexpected name: %s", cfg.Xdfflow.Name)
	}
	if len(cfg.Converter.StreamIndices) != 2 || cfg.Converter.StreamIndices[0] != 1 {
		t.Errorf("unexpected stream indices: %v", cfg.Converter.StreamIndices)
	}
	if cfg.Converter.SyncClocks {
		t.Errorf("sync_clocks should be disabled")
	}
	// Defaults survive a partial file
	if cfg.Converter.MarkerType != "Markers" {
		t.Errorf("unexpected marker type: %s", cfg.Converter.MarkerType)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("unexpected log level: %s", cfg.Logging.Level)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("does-not-exist.yml"); err == nil {
		t.Fatalf("expected error for missing file")
	} else if !os.IsNotExist(unwrapAll(err)) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoadConfigInvalidIndices(t *testing.T) {
	path := writeTempConfig(t, `converter:
  stream_indices: [0]
`)
	defer os.Remove(path)

	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected validation error for 0-based index")
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	path := writeTempConfig(t, `logging:
  level: info
`)
	defer os.Remove(path)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("environment override not applied: %s", cfg.Logging.Level)
	}
}

func unwrapAll(err error) error {
	for {
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return err
		}
		err = u.Unwrap()
	}
}
