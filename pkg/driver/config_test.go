package driver

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Parallelism != runtime.NumCPU() {
		t.Fatalf("Parallelism = %d, want %d", cfg.Parallelism, runtime.NumCPU())
	}
	if cfg.CacheDir == "" || cfg.Trace || cfg.LogVerbosity != 0 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigFileName), `
log_verbosity = 2
trace = true
cache_dir = "cache"
parallelism = 3
`)
	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := Config{LogVerbosity: 2, Trace: true, CacheDir: filepath.Join(dir, "cache"), Parallelism: 3}
	if *cfg != want {
		t.Fatalf("config = %+v, want %+v", *cfg, want)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigFileName), "parallelism = -1\n")
	_, err := LoadConfig(dir)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	writeFile(t, filepath.Join(dir, ConfigFileName), "parallelism = \"many\"\n")
	if _, err := LoadConfig(dir); err == nil {
		t.Fatalf("expected parse error")
	}
}
