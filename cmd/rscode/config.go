package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config describes one encoding run. Fields left empty in the YAML file keep
// the values given on the command line.
type Config struct {
	Modulus uint64   `yaml:"modulus"`
	Message []uint64 `yaml:"message"`
	Anchors []uint64 `yaml:"anchors"`
	Values  []uint64 `yaml:"values"`
	Workers int      `yaml:"workers"`
	Queries int      `yaml:"queries"`
	Seed    uint64   `yaml:"seed"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// loadConfig overlays the YAML file at path onto base.
func loadConfig(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg := base
	if file.Modulus != 0 {
		cfg.Modulus = file.Modulus
	}
	if file.Message != nil {
		cfg.Message = file.Message
	}
	if file.Anchors != nil {
		cfg.Anchors = file.Anchors
	}
	if file.Values != nil {
		cfg.Values = file.Values
	}
	if file.Workers != 0 {
		cfg.Workers = file.Workers
	}
	if file.Queries != 0 {
		cfg.Queries = file.Queries
	}
	if file.Seed != 0 {
		cfg.Seed = file.Seed
	}
	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	if file.LogFormat != "" {
		cfg.LogFormat = file.LogFormat
	}
	return cfg, nil
}

// parseUints parses a comma separated list such as "2,1,1".
func parseUints(s string) ([]uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	out := make([]uint64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

func newLogger(level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: logLevel(level)}
	if strings.ToLower(format) == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func logLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
