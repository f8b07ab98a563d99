package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/logfold/internal/processor"
)

// Config is the processing configuration for one logfold session.
type Config struct {
	Open   OpenConfig
	Split  SplitConfig
	Filter FilterConfig
	Color  ColorConfig
	Log    LogConfig
}

type OpenConfig struct {
	Files          []string
	TailLines      int
	SourceLocation string
	Workers        int
}

type SplitConfig struct {
	Pattern         string
	TimestampFormat string
}

type FilterConfig struct {
	Enabled      bool
	Rules        []FilterRule
	Context      string
	ContextLines int
	KeepHidden   bool
}

type FilterRule struct {
	Column  string `toml:"column"`
	Pattern string `toml:"pattern"`
}

type ColorConfig struct {
	Enabled bool
	Rules   []ColorRule
}

type ColorRule struct {
	Column     string `toml:"column"`
	Pattern    string `toml:"pattern"`
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
}

// LogConfig controls the diagnostic log file. An empty File puts the log
// beside the preferences file.
type LogConfig struct {
	Level  string
	Format string
	File   string
}

const (
	defaultConfigPath   = "~/.config/logfold/config.toml"
	defaultLogLevel     = "info"
	defaultLogFormat    = "text"
	defaultContextLines = 5
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Open:   OpenConfig{SourceLocation: string(processor.LocationNone)},
		Filter: FilterConfig{Enabled: true, Context: string(processor.ContextNone), ContextLines: defaultContextLines, KeepHidden: true},
		Color:  ColorConfig{Enabled: true},
		Log:    LogConfig{Level: defaultLogLevel, Format: defaultLogFormat},
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Open struct {
			Files          []string `toml:"files"`
			TailLines      int      `toml:"tail_lines"`
			SourceLocation string   `toml:"source_location"`
			Workers        int      `toml:"workers"`
		} `toml:"open"`
		Split struct {
			Pattern         string `toml:"pattern"`
			TimestampFormat string `toml:"timestamp_format"`
		} `toml:"split"`
		Filter struct {
			Enabled      *bool        `toml:"enabled"`
			Rules        []FilterRule `toml:"rules"`
			Context      string       `toml:"context"`
			ContextLines *int         `toml:"context_lines"`
			KeepHidden   *bool        `toml:"keep_hidden"`
		} `toml:"filter"`
		Color struct {
			Enabled *bool       `toml:"enabled"`
			Rules   []ColorRule `toml:"rules"`
		} `toml:"color"`
		Log struct {
			Level  string `toml:"level"`
			Format string `toml:"format"`
			File   string `toml:"file"`
		} `toml:"log"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	for _, f := range raw.Open.Files {
		if f = strings.TrimSpace(f); f != "" {
			cfg.Open.Files = append(cfg.Open.Files, mustExpand(f))
		}
	}
	cfg.Open.TailLines = max(raw.Open.TailLines, 0)
	cfg.Open.Workers = max(raw.Open.Workers, 0)
	if v := strings.TrimSpace(raw.Open.SourceLocation); v != "" {
		cfg.Open.SourceLocation = v
	}

	cfg.Split.Pattern = strings.TrimSpace(raw.Split.Pattern)
	cfg.Split.TimestampFormat = strings.TrimSpace(raw.Split.TimestampFormat)

	if raw.Filter.Enabled != nil {
		cfg.Filter.Enabled = *raw.Filter.Enabled
	}
	cfg.Filter.Rules = raw.Filter.Rules
	if v := strings.TrimSpace(raw.Filter.Context); v != "" {
		cfg.Filter.Context = v
	}
	if raw.Filter.ContextLines != nil {
		cfg.Filter.ContextLines = max(*raw.Filter.ContextLines, 0)
	}
	if raw.Filter.KeepHidden != nil {
		cfg.Filter.KeepHidden = *raw.Filter.KeepHidden
	}

	if raw.Color.Enabled != nil {
		cfg.Color.Enabled = *raw.Color.Enabled
	}
	cfg.Color.Rules = raw.Color.Rules

	if v := strings.TrimSpace(raw.Log.Level); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(raw.Log.Format); v != "" {
		cfg.Log.Format = v
	}
	if v := strings.TrimSpace(raw.Log.File); v != "" {
		cfg.Log.File = mustExpand(v)
	}

	return cfg, nil
}

var colorRE = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// Validate rejects unknown modes, patterns that do not compile and colors
// lipgloss cannot render.
func (c Config) Validate() error {
	var errs []error
	if _, err := processor.ParseLocation(c.Open.SourceLocation); err != nil {
		errs = append(errs, fmt.Errorf("[open] %w", err))
	}
	if _, err := processor.ParseContext(c.Filter.Context); err != nil {
		errs = append(errs, fmt.Errorf("[filter] %w", err))
	}
	for i, r := range c.Filter.Rules {
		if _, err := regexp.Compile(strings.TrimSpace(r.Pattern)); err != nil {
			errs = append(errs, fmt.Errorf("[filter] rule %d: %w", i+1, err))
		}
	}
	for i, r := range c.Color.Rules {
		if _, err := regexp.Compile(r.Pattern); err != nil {
			errs = append(errs, fmt.Errorf("[color] rule %d: %w", i+1, err))
		}
		for _, v := range []string{r.Foreground, r.Background} {
			if !validColor(v) {
				errs = append(errs, fmt.Errorf("[color] rule %d: color %q is not #RGB, #RRGGBB or 0-255", i+1, v))
			}
		}
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("[log] format %q: %w", c.Log.Format, processor.ErrUnknownMode))
	}
	return errors.Join(errs...)
}

func validColor(v string) bool {
	if v == "" || colorRE.MatchString(v) {
		return true
	}
	n, err := strconv.Atoi(v)
	return err == nil && n >= 0 && n <= 255
}

// ResolvePath returns the absolute config path, applying the default.
func ResolvePath(path string) (string, error) {
	return resolvePath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
