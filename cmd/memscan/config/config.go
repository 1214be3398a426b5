// Package config loads memscan CLI defaults from an optional YAML file,
// in the same style the tripwire sibling agent in this ecosystem loads
// its own configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds CLI-level defaults overridable by flags. The memscan
// library itself persists nothing (spec.md §6); this only configures how
// the CLI drives the library.
type Config struct {
	// ChunkCapBytes is the per-region scan buffer cap. Defaults to 64 MiB
	// when zero. The CLI does not pass it to the library: scans always use
	// the library's built-in 64 MiB cap.
	ChunkCapBytes int `yaml:"chunk_cap_bytes"`

	// ReportProgress enables progress-info reporting on scan commands by
	// default. Defaults to false.
	ReportProgress bool `yaml:"report_progress"`

	// DefaultPermission is one of "read_only", "write_only", "read_write",
	// "all". Defaults to "read_write".
	DefaultPermission string `yaml:"default_permission"`

	// LogLevel sets the minimum zerolog severity: "debug", "info", "warn",
	// or "error". Defaults to "info".
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in defaults used when no config file is
// supplied.
func Default() Config {
	return Config{
		ChunkCapBytes:     64 * 1024 * 1024,
		ReportProgress:    false,
		DefaultPermission: "read_write",
		LogLevel:          "info",
	}
}

// Load reads and validates a YAML config file, filling in any field the
// file leaves zero-valued with the built-in default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var fromFile Config
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if fromFile.ChunkCapBytes > 0 {
		cfg.ChunkCapBytes = fromFile.ChunkCapBytes
	}
	if fromFile.DefaultPermission != "" {
		cfg.DefaultPermission = fromFile.DefaultPermission
	}
	if fromFile.LogLevel != "" {
		cfg.LogLevel = fromFile.LogLevel
	}
	cfg.ReportProgress = cfg.ReportProgress || fromFile.ReportProgress

	return cfg, nil
}
