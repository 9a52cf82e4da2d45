// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables read by the CLI. Flags win over the environment,
// which wins over the config file.
const (
	envConfig   = "JDEC_CONFIG"
	envLibrary  = "JDEC_LIBRARY"
	envLogLevel = "JDEC_LOG_LEVEL"
)

// Config is the optional YAML configuration file.
type Config struct {
	// Library is the SQLite catalog path used by the lib commands.
	Library string `yaml:"library"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// Controllers is the controller count used when parsing text input.
	Controllers int `yaml:"controllers"`
}

func defaultConfig() Config {
	return Config{Library: "jdec.db", LogLevel: "info", Controllers: 1}
}

// loadConfig reads path (if non-empty) over the defaults and then applies
// environment overrides.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if v := os.Getenv(envLibrary); v != "" {
		cfg.Library = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return cfg, err
	}
	if cfg.Controllers < 1 {
		return cfg, fmt.Errorf("config: controllers must be positive, got %d", cfg.Controllers)
	}

	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("config: log level %q: %w", s, err)
	}

	return l, nil
}
