// Package config loads the optional .filipe.yaml settings file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hc12r/filipeX/interpreter"
)

// FileName is looked up in the working directory, then in $HOME.
const FileName = ".filipe.yaml"

type ReplConfig struct {
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
}

type Config struct {
	Seed         int64      `yaml:"seed"`
	MaxCallDepth int        `yaml:"max_call_depth"`
	Color        string     `yaml:"color"`
	LogLevel     string     `yaml:"log_level"`
	Repl         ReplConfig `yaml:"repl"`

	// Path is the file the config was read from, empty for defaults.
	Path string `yaml:"-"`
}

func Default() *Config {
	return &Config{
		MaxCallDepth: interpreter.DefaultMaxCallDepth,
		Color:        "auto",
		LogLevel:     "warn",
		Repl: ReplConfig{
			Prompt:      "filipe> ",
			HistoryFile: "~/.filipe_history",
		},
	}
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Load reads path on top of the defaults. Fields absent from the file keep
// their default values; unknown fields are rejected.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	cfg := Default()
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	cfg.Path = absPath

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault loads FileName from the working directory or the home
// directory. With neither present it returns the defaults.
func LoadDefault() (*Config, error) {
	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, FileName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, FileName))
	}

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return Load(candidate)
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: stat %s: %w", candidate, err)
		}
	}
	return Default(), nil
}

func (c *Config) Validate() error {
	var errs ValidationError
	if c.MaxCallDepth <= 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_call_depth must be positive, got %d", c.MaxCallDepth))
	}
	if _, ok := parseColor(c.Color); !ok {
		errs.Issues = append(errs.Issues, fmt.Sprintf("color must be one of auto, always, never; got %q", c.Color))
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		errs.Issues = append(errs.Issues, fmt.Sprintf("log_level must be one of debug, info, warn, error; got %q", c.LogLevel))
	}
	if strings.TrimSpace(c.Repl.Prompt) == "" {
		errs.Issues = append(errs.Issues, "repl.prompt must not be empty")
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

func parseColor(s string) (interpreter.ColorMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return interpreter.ColorAuto, true
	case "always":
		return interpreter.ColorAlways, true
	case "never":
		return interpreter.ColorNever, true
	default:
		return interpreter.ColorAuto, false
	}
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "", "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelWarn, false
	}
}

func (c *Config) ColorMode() interpreter.ColorMode {
	mode, _ := parseColor(c.Color)
	return mode
}

func (c *Config) Level() slog.Level {
	lvl, _ := parseLevel(c.LogLevel)
	return lvl
}

// HistoryPath expands a leading ~ in the REPL history file.
func (c *Config) HistoryPath() string {
	p := c.Repl.HistoryFile
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
		}
	}
	return p
}

// Options turns the config into interpreter options. A zero seed leaves the
// interpreter's time-based source in place.
func (c *Config) Options() []interpreter.Option {
	opts := []interpreter.Option{
		interpreter.WithMaxCallDepth(c.MaxCallDepth),
		interpreter.WithColor(c.ColorMode()),
	}
	if c.Seed != 0 {
		opts = append(opts, interpreter.WithSeed(c.Seed))
	}
	return opts
}
