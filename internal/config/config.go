// Package config loads the YAML configuration of the huf command.
package config

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration document.
type Config struct {
	Naming NamingConfig `yaml:"naming"`
	Log    LogConfig    `yaml:"log"`
}

// NamingConfig overrides the file-naming convention.
type NamingConfig struct {
	CompressedSuffix string `yaml:"compressed_suffix"`
	ArchiveSuffix    string `yaml:"archive_suffix"`
	OutputSuffix     string `yaml:"output_suffix"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Naming: NamingConfig{
			CompressedSuffix: ".huf",
			ArchiveSuffix:    ".txt.huf",
			OutputSuffix:     "_unc.txt",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads and validates the configuration file at path.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read config")
	}
	cfg, err := Parse(raw)
	if err != nil {
		return Config{}, errors.Wrapf(err, "%s", path)
	}
	return cfg, nil
}

// Parse decodes a YAML document on top of Default and validates the result.
// Unknown keys are rejected.
func Parse(raw []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "failed to parse config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every field holds a usable value.
func (cfg Config) Validate() error {
	if cfg.Naming.CompressedSuffix == "" {
		return errors.New("naming.compressed_suffix must not be empty")
	}
	if cfg.Naming.ArchiveSuffix == "" {
		return errors.New("naming.archive_suffix must not be empty")
	}
	if cfg.Naming.OutputSuffix == "" {
		return errors.New("naming.output_suffix must not be empty")
	}
	if _, err := cfg.Log.level(); err != nil {
		return err
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		return errors.Errorf("log.format %q is not \"text\" or \"json\"", cfg.Log.Format)
	}
	return nil
}

// NewLogger returns a logger writing to w at the configured level and format.
func (lc LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := lc.level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func (lc LogConfig) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(lc.Level))); err != nil {
		return 0, errors.Errorf("log.level %q is not one of debug, info, warn, error", lc.Level)
	}
	return level, nil
}
