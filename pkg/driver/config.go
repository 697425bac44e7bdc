package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is the optional CLI configuration looked up in the working
// directory.
const ConfigFileName = "brewin.toml"

// Config holds CLI settings read from brewin.toml.
type Config struct {
	LogVerbosity int    `toml:"log_verbosity"`
	Trace        bool   `toml:"trace"`
	CacheDir     string `toml:"cache_dir"`
	Parallelism  int    `toml:"parallelism"`
}

// DefaultConfig returns the settings used when no brewin.toml exists.
func DefaultConfig() *Config {
	return &Config{
		CacheDir:    defaultCacheDir(),
		Parallelism: runtime.NumCPU(),
	}
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "brewin", "suites")
	}
	return filepath.Join(os.TempDir(), "brewin", "suites")
}

// LoadConfig reads brewin.toml from dir. A missing file yields DefaultConfig.
func LoadConfig(dir string) (*Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = defaultCacheDir()
	} else if !filepath.IsAbs(cfg.CacheDir) {
		cfg.CacheDir = filepath.Join(dir, cfg.CacheDir)
	}
	if cfg.Parallelism < 0 {
		return nil, &ValidationError{Issues: []string{fmt.Sprintf("parallelism must not be negative, got %d", cfg.Parallelism)}}
	}
	if cfg.Parallelism == 0 {
		cfg.Parallelism = runtime.NumCPU()
	}
	return cfg, nil
}
