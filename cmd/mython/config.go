package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mythonlang/mython/mython"
	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML layout accepted by -config.
type fileConfig struct {
	mython.Config `yaml:",inline"`
	LogLevel      string `yaml:"log_level"`
}

const levelTrace = slog.Level(-8)

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// newLogger builds the JSON logger for level. "none" and the empty string
// disable logging.
func newLogger(level string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "none":
		return slog.New(slog.DiscardHandler), nil
	case "trace":
		lvl = levelTrace
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// newEngine loads configPath, lets a non-empty logLevel override the file,
// and constructs the engine.
func newEngine(configPath, logLevel string, logOut io.Writer) (*mython.Engine, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logger, err := newLogger(cfg.LogLevel, logOut)
	if err != nil {
		return nil, err
	}
	cfg.Config.Logger = logger
	engine, err := mython.NewEngine(cfg.Config)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return engine, nil
}
